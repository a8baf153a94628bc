package main

import (
	"github.com/pavithranrajkumar/devbuddy-backend/cmd"
)

func main() {
	cmd.Execute()
}
