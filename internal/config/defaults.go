package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL          = "https://api.csmarketapi.com/v1"
	DefaultAPITimeout       = 30 * time.Second
	DefaultAPIMaxRetries    = 3
	DefaultDBPort           = 5432
	DefaultDBSSLMode        = "prefer"
	DefaultMaxConns         = 10
	DefaultMinConns         = 2
	DefaultMaxConcurrent    = 50
	DefaultFetchMaxRetries  = 5
	DefaultDelayStep        = 500 * time.Millisecond
	DefaultDelayDecay       = 100 * time.Millisecond
	DefaultMaxDelay         = 5 * time.Second
	DefaultOutlierThreshold = 0.25
	DefaultStaleDays        = 7
	DefaultSyncInterval     = 24 * time.Hour
	DefaultSyncBatchSize    = 500
	DefaultServerPort       = 8080
)

func (c *TrackerConfig) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultAPIMaxRetries
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Fetcher defaults
	if c.Fetcher.MaxConcurrent == 0 {
		c.Fetcher.MaxConcurrent = DefaultMaxConcurrent
	}
	if c.Fetcher.MaxRetries == 0 {
		c.Fetcher.MaxRetries = DefaultFetchMaxRetries
	}
	if c.Fetcher.DelayStep == 0 {
		c.Fetcher.DelayStep = DefaultDelayStep
	}
	if c.Fetcher.DelayDecay == 0 {
		c.Fetcher.DelayDecay = DefaultDelayDecay
	}
	if c.Fetcher.MaxDelay == 0 {
		c.Fetcher.MaxDelay = DefaultMaxDelay
	}

	// Valuation defaults
	if c.Valuation.OutlierThreshold == 0 {
		c.Valuation.OutlierThreshold = DefaultOutlierThreshold
	}
	if c.Valuation.StaleDays == 0 {
		c.Valuation.StaleDays = DefaultStaleDays
	}

	// Catalog defaults
	if c.Catalog.SyncInterval == 0 {
		c.Catalog.SyncInterval = DefaultSyncInterval
	}
	if c.Catalog.BatchSize == 0 {
		c.Catalog.BatchSize = DefaultSyncBatchSize
	}

	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
}
