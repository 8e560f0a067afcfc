package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Server   ServerConfig   `validate:"required"`
	Database DatabaseConfig `validate:"required"`
	Output   OutputConfig   `validate:"required"`
	Logging  LoggingConfig  `validate:"required"`
	Ingest   IngestConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Address      string        `mapstructure:"address" validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

type IngestConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	RetryMax int           `mapstructure:"retry_max" validate:"gte=0"`
}

type CacheConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Expiration time.Duration `mapstructure:"expiration"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/takeoff")

	setDefaults(v)

	v.SetEnvPrefix("TAKEOFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	defaults := GetDefaultConfig()
	v.SetDefault("server.address", defaults.Server.Address)
	v.SetDefault("server.read_timeout", defaults.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", defaults.Server.WriteTimeout)
	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("output.dir", defaults.Output.Dir)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("ingest.timeout", defaults.Ingest.Timeout)
	v.SetDefault("ingest.retry_max", defaults.Ingest.RetryMax)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.expiration", defaults.Cache.Expiration)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development.
// The CLI and tests use it directly.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Database: DatabaseConfig{Path: "takeoff.db"},
		Output:   OutputConfig{Dir: "outputs"},
		Logging:  LoggingConfig{Level: "info"},
		Ingest: IngestConfig{
			Timeout:  2 * time.Minute,
			RetryMax: 3,
		},
		Cache: CacheConfig{
			Enabled:    true,
			Expiration: 30 * time.Minute,
		},
	}
}
