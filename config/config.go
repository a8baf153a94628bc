package config

import (
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pavithranrajkumar/devbuddy-backend/logutils"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		// Driver is "postgres" or "sqlite". The sqlite driver is the
		// local development and test path.
		Driver     string `yaml:"driver"`
		SQLitePath string `yaml:"sqlitePath"`
	} `yaml:"database"`
	Postgres struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		DBName   string `yaml:"dbname"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		SSLMode  string `yaml:"sslmode"`
		TimeZone string `yaml:"TimeZone"`
	} `yaml:"postgres"`
	Auth struct {
		AccessTokenSecret      string `yaml:"accessTokenSecret"`
		AccessTokenExpiryHour  int    `yaml:"accessTokenExpiryHour"`
		RefreshTokenExpiryHour int    `yaml:"refreshTokenExpiryHour"`
	} `yaml:"auth"`
}

var (
	once   sync.Once
	config *Config
)

func GetConfig() *Config {
	once.Do(func() {
		config = initConfig()
	})
	return config
}

// initConfig reads the configuration file pointed at by CONFIG_PATH
// (./etc/config.yaml when unset) and applies environment overrides for
// the secrets that should not live in the file.
func initConfig() *Config {
	config := &Config{}
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./etc/config.yaml"
	}

	err := readConfig(configPath, config)
	if err != nil {
		logutils.Log.Error("init config: ", err)
		panic(err)
	}

	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		config.Postgres.Password = v
	}
	if v := os.Getenv("ACCESS_TOKEN_SECRET"); v != "" {
		config.Auth.AccessTokenSecret = v
	}
	if config.Database.Driver == "" {
		config.Database.Driver = "postgres"
	}
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.Auth.AccessTokenExpiryHour == 0 {
		config.Auth.AccessTokenExpiryHour = 1
	}
	if config.Auth.RefreshTokenExpiryHour == 0 {
		config.Auth.RefreshTokenExpiryHour = 168
	}
	return config
}

func readConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return err
	}
	return nil
}
