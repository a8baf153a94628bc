package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pavithranrajkumar/devbuddy-backend/dao/query"
	"github.com/pavithranrajkumar/devbuddy-backend/logutils"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		if err := query.InitDB(); err != nil {
			return err
		}
		if err := query.Migrate(query.DB); err != nil {
			return err
		}
		logutils.Log.Info("migration complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
