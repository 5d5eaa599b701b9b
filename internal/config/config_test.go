package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	yaml := `
instance:
  id: test-tracker
api:
  base_url: https://sandbox.csmarketapi.com/v1
  api_key: test-key
database:
  host: localhost
  port: 5432
  name: test_db
  user: testuser
  password: testpass
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Instance.ID != "test-tracker" {
		t.Errorf("Instance.ID = %q, want %q", cfg.Instance.ID, "test-tracker")
	}
	if cfg.API.BaseURL != "https://sandbox.csmarketapi.com/v1" {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, "https://sandbox.csmarketapi.com/v1")
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "localhost")
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_MARKET_API_KEY", "secret123")

	yaml := `
instance:
  id: test-tracker
api:
  api_key: ${TEST_MARKET_API_KEY}
database:
  host: localhost
  name: test_db
  user: testuser
  password: testpass
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.APIKey != "secret123" {
		t.Errorf("API.APIKey = %q, want %q", cfg.API.APIKey, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
instance:
  id: test-tracker
api:
  api_key: test-key
database:
  host: localhost
  name: test_db
  user: testuser
  password: testpass
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want default %q", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.API.Timeout != DefaultAPITimeout {
		t.Errorf("API.Timeout = %v, want default %v", cfg.API.Timeout, DefaultAPITimeout)
	}
	if cfg.Database.Port != DefaultDBPort {
		t.Errorf("Database.Port = %d, want default %d", cfg.Database.Port, DefaultDBPort)
	}
	if cfg.Fetcher.MaxConcurrent != DefaultMaxConcurrent {
		t.Errorf("Fetcher.MaxConcurrent = %d, want default %d", cfg.Fetcher.MaxConcurrent, DefaultMaxConcurrent)
	}
	if cfg.Fetcher.MaxRetries != DefaultFetchMaxRetries {
		t.Errorf("Fetcher.MaxRetries = %d, want default %d", cfg.Fetcher.MaxRetries, DefaultFetchMaxRetries)
	}
	if cfg.Valuation.OutlierThreshold != DefaultOutlierThreshold {
		t.Errorf("Valuation.OutlierThreshold = %v, want default %v", cfg.Valuation.OutlierThreshold, DefaultOutlierThreshold)
	}
	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("Server.Port = %d, want default %d", cfg.Server.Port, DefaultServerPort)
	}
}

func TestValidate(t *testing.T) {
	validDB := DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 10, MinConns: 2}

	valid := TrackerConfig{
		Instance: InstanceConfig{ID: "test"},
		API:      APIConfig{APIKey: "key"},
		Database: validDB,
		Fetcher: FetcherConfig{
			MaxConcurrent: 50,
			MaxRetries:    5,
			DelayStep:     DefaultDelayStep,
			DelayDecay:    DefaultDelayDecay,
			MaxDelay:      DefaultMaxDelay,
		},
		Valuation: ValuationConfig{OutlierThreshold: 0.25, StaleDays: 7},
		Catalog:   CatalogConfig{BatchSize: 500},
		Server:    ServerConfig{Port: 8080},
	}

	tests := []struct {
		name    string
		mutate  func(*TrackerConfig)
		wantErr string
	}{
		{
			name:    "valid config",
			mutate:  func(c *TrackerConfig) {},
			wantErr: "",
		},
		{
			name:    "missing instance id",
			mutate:  func(c *TrackerConfig) { c.Instance.ID = "" },
			wantErr: "instance.id is required",
		},
		{
			name:    "missing api key",
			mutate:  func(c *TrackerConfig) { c.API.APIKey = "" },
			wantErr: "api.api_key is required",
		},
		{
			name:    "missing database host",
			mutate:  func(c *TrackerConfig) { c.Database.Host = "" },
			wantErr: "database.host is required",
		},
		{
			name:    "min_conns exceeds max_conns",
			mutate:  func(c *TrackerConfig) { c.Database.MinConns = 20 },
			wantErr: "database.min_conns (20) cannot exceed max_conns (10)",
		},
		{
			name:    "outlier threshold above 1",
			mutate:  func(c *TrackerConfig) { c.Valuation.OutlierThreshold = 1.5 },
			wantErr: "valuation.outlier_threshold must be in (0, 1], got 1.5",
		},
		{
			name:    "zero stale days",
			mutate:  func(c *TrackerConfig) { c.Valuation.StaleDays = -1 },
			wantErr: "valuation.stale_days must be >= 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
