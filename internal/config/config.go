package config

import "time"

// TrackerConfig is the root configuration for a tracker instance.
type TrackerConfig struct {
	Instance  InstanceConfig  `yaml:"instance"`
	API       APIConfig       `yaml:"api"`
	Database  DBConfig        `yaml:"database"`
	Fetcher   FetcherConfig   `yaml:"fetcher"`
	Valuation ValuationConfig `yaml:"valuation"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Server    ServerConfig    `yaml:"server"`
}

// InstanceConfig identifies this tracker.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// APIConfig holds market aggregator API settings.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// DBConfig holds the PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// FetcherConfig holds batch fetcher settings.
type FetcherConfig struct {
	MaxConcurrent int           `yaml:"max_concurrent"`
	MaxRetries    int           `yaml:"max_retries"`
	DelayStep     time.Duration `yaml:"delay_step"`
	DelayDecay    time.Duration `yaml:"delay_decay"`
	MaxDelay      time.Duration `yaml:"max_delay"`
}

// ValuationConfig holds robust history aggregation defaults.
type ValuationConfig struct {
	OutlierThreshold float64 `yaml:"outlier_threshold"`
	StaleDays        int     `yaml:"stale_days"`
}

// CatalogConfig holds item sync settings.
type CatalogConfig struct {
	SyncOnStart  bool          `yaml:"sync_on_start"`
	SyncInterval time.Duration `yaml:"sync_interval"`
	BatchSize    int           `yaml:"batch_size"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}
