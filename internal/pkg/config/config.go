package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ougirez/billing-tracker/internal/pkg/constants"
	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL      string
	Port             int
	LogLevel         string
	LogFormat        string
	AllowOrigins     []string
	DebugErrors      bool
	DBMaxConns       int32
	DBConnectTimeout time.Duration
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads an optional .env file and then the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("godotenv.Load: %w", err)
	}

	viper.SetDefault(constants.ViperPort, 5000)
	viper.SetDefault(constants.ViperLogLevel, "info")
	viper.SetDefault(constants.ViperLogFormat, "json")
	viper.SetDefault(constants.ViperCORSAllowOrigins, "*")
	viper.SetDefault(constants.ViperDebugErrors, false)
	viper.SetDefault(constants.ViperDBMaxConns, 4)
	viper.SetDefault(constants.ViperDBConnectTimeout, 30*time.Second)
	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString(constants.ViperDatabaseURL),
		Port:             viper.GetInt(constants.ViperPort),
		LogLevel:         viper.GetString(constants.ViperLogLevel),
		LogFormat:        viper.GetString(constants.ViperLogFormat),
		AllowOrigins:     splitList(viper.GetString(constants.ViperCORSAllowOrigins)),
		DebugErrors:      viper.GetBool(constants.ViperDebugErrors),
		DBMaxConns:       viper.GetInt32(constants.ViperDBMaxConns),
		DBConnectTimeout: viper.GetDuration(constants.ViperDBConnectTimeout),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("%s environment variable not set", constants.ViperDatabaseURL)
	}
	if cfg.DBMaxConns < 1 {
		cfg.DBMaxConns = 1
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
