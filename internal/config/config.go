package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full server configuration. Values come from config.yaml when
// present, overridden by MIRIFER_* environment variables.
type Config struct {
	Server    Server    `mapstructure:"server"`
	Database  Database  `mapstructure:"database"`
	Admin     Admin     `mapstructure:"admin"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
	Email     Email     `mapstructure:"email"`
}

type Server struct {
	Addr string `mapstructure:"addr"`
}

type Database struct {
	Path string `mapstructure:"path"`
}

type Admin struct {
	Password string `mapstructure:"password"`
}

type RateLimit struct {
	Window time.Duration `mapstructure:"window"`
	Max    int           `mapstructure:"max"`
}

type Email struct {
	APIKey string `mapstructure:"api_key"`
	From   string `mapstructure:"from"`
	To     string `mapstructure:"to"`
}

// Load reads configuration from config.yaml in the working directory if one
// exists, then applies environment overrides. A missing config file is not
// an error; everything has a usable default except the admin password.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.addr", ":3001")
	v.SetDefault("database.path", "data/mirifer.db")
	v.SetDefault("rate_limit.window", 15*time.Minute)
	v.SetDefault("rate_limit.max", 100)

	// Secrets default to empty so the env override is picked up during
	// unmarshal; viper only surfaces env values for registered keys.
	v.SetDefault("admin.password", "")
	v.SetDefault("email.api_key", "")
	v.SetDefault("email.from", "")
	v.SetDefault("email.to", "")

	v.SetEnvPrefix("MIRIFER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
