package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pavithranrajkumar/devbuddy-backend/dao/query"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the skill catalog and demo accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		if err := query.InitDB(); err != nil {
			return err
		}
		if err := query.Migrate(query.DB); err != nil {
			return err
		}
		return query.Seed(query.DB)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
