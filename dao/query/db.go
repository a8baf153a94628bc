package query

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pavithranrajkumar/devbuddy-backend/config"
	"github.com/pavithranrajkumar/devbuddy-backend/logutils"
)

var DB *gorm.DB

// InitDB opens the database connection configured in the config file.
// Postgres is the production driver; sqlite serves local development.
func InitDB() error {
	cfg := config.GetConfig()

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		path := cfg.Database.SQLitePath
		if path == "" {
			path = "devbuddy.db"
		}
		dialector = sqlite.Open(path)
	default:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			cfg.Postgres.Host, cfg.Postgres.User, cfg.Postgres.Password,
			cfg.Postgres.DBName, cfg.Postgres.Port, cfg.Postgres.SSLMode, cfg.Postgres.TimeZone)
		dialector = postgres.Open(dsn)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return err
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	if cfg.Database.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	logutils.Log.Infof("database init success (driver=%s)", cfg.Database.Driver)
	return nil
}
