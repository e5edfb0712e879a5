package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the application configuration
type Config struct {
	Environment string `mapstructure:"environment"` // development|production
	Port        string `mapstructure:"port"`

	Database struct {
		Driver        string `mapstructure:"driver"` // "mongo" | "postgres" | "memory"
		MongoURI      string `mapstructure:"mongo_uri"`
		MongoDatabase string `mapstructure:"mongo_database"`
		PostgresDSN   string `mapstructure:"postgres_dsn"`
	} `mapstructure:"database"`

	JWTSecret string `mapstructure:"jwt_secret"`

	AllowedOrigins []string `mapstructure:"allowed_origins"`

	Logging struct {
		Level  string `mapstructure:"level"`  // trace|debug|info|warning|error|fatal
		Format string `mapstructure:"format"` // text|json
	} `mapstructure:"logging"`
}

// Load reads configuration from env and an optional config file with defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "development")
	v.SetDefault("port", "3000")
	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("database.mongo_database", "hireboard")
	v.SetDefault("database.postgres_dsn", "")
	v.SetDefault("jwt_secret", "dev-secret-change-in-production")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/hireboard")
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("config read error: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad loads configuration or panics
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks the configuration for a runnable state
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("port must not be empty")
	}

	if c.IsProduction() {
		if c.JWTSecret == "" || c.JWTSecret == "dev-secret-change-in-production" {
			return errors.New("jwt_secret must be set in production")
		}
	}

	switch c.Database.Driver {
	case "mongo":
		if strings.TrimSpace(c.Database.MongoURI) == "" {
			return errors.New("database.mongo_uri must be set for the mongo driver")
		}
	case "postgres":
		if strings.TrimSpace(c.Database.PostgresDSN) == "" {
			return errors.New("database.postgres_dsn must be set for the postgres driver")
		}
	case "memory":
		if c.IsProduction() {
			return errors.New("the memory driver is not supported in production")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
