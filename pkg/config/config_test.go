package config

import "testing"

func validConfig() *Config {
	cfg := &Config{
		Environment: "development",
		Port:        "3000",
		JWTSecret:   "dev-secret-change-in-production",
	}
	cfg.Database.Driver = "memory"
	return cfg
}

func TestValidate(t *testing.T) {
	t.Run("development defaults pass", func(t *testing.T) {
		if err := validConfig().Validate(); err != nil {
			t.Fatalf("Validate() error: %v", err)
		}
	})

	t.Run("production rejects the dev secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Environment = "production"
		cfg.Database.Driver = "postgres"
		cfg.Database.PostgresDSN = "postgres://localhost/hireboard"
		if err := cfg.Validate(); err == nil {
			t.Fatal("Validate() accepted the development jwt secret in production")
		}
	})

	t.Run("production rejects the memory driver", func(t *testing.T) {
		cfg := validConfig()
		cfg.Environment = "production"
		cfg.JWTSecret = "a-real-secret"
		if err := cfg.Validate(); err == nil {
			t.Fatal("Validate() accepted the memory driver in production")
		}
	})

	t.Run("mongo driver requires a uri", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Driver = "mongo"
		cfg.Database.MongoURI = ""
		if err := cfg.Validate(); err == nil {
			t.Fatal("Validate() accepted the mongo driver without a uri")
		}
	})

	t.Run("unknown driver is rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Driver = "sqlite"
		if err := cfg.Validate(); err == nil {
			t.Fatal("Validate() accepted an unknown driver")
		}
	})

	t.Run("empty port is rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Port = ""
		if err := cfg.Validate(); err == nil {
			t.Fatal("Validate() accepted an empty port")
		}
	})
}

func TestLoadUsesDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port == "" || cfg.Database.Driver == "" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if !cfg.IsDevelopment() {
		t.Errorf("default environment = %q, want development", cfg.Environment)
	}
}
