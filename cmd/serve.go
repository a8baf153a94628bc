package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pavithranrajkumar/devbuddy-backend/config"
	"github.com/pavithranrajkumar/devbuddy-backend/dao/query"
	"github.com/pavithranrajkumar/devbuddy-backend/logutils"
	"github.com/pavithranrajkumar/devbuddy-backend/service"
	"github.com/pavithranrajkumar/devbuddy-backend/util"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			logutils.Log.Info(".env file not found, using environment variables")
		}

		cfg := config.GetConfig()
		if err := query.InitDB(); err != nil {
			return err
		}
		if err := query.Migrate(query.DB); err != nil {
			return err
		}

		r := service.NewRouter(query.DB, util.GetTokenMgr())
		logutils.Log.Infof("HTTP server listening on :%s", cfg.Server.Port)
		return r.Run(":" + cfg.Server.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
