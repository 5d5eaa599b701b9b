package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *TrackerConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if c.API.APIKey == "" {
		return errors.New("api.api_key is required")
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if c.Fetcher.MaxConcurrent < 1 {
		return errors.New("fetcher.max_concurrent must be >= 1")
	}
	if c.Fetcher.MaxRetries < 0 {
		return errors.New("fetcher.max_retries must be >= 0")
	}
	if c.Fetcher.MaxDelay < c.Fetcher.DelayStep {
		return fmt.Errorf("fetcher.max_delay (%v) must be >= fetcher.delay_step (%v)",
			c.Fetcher.MaxDelay, c.Fetcher.DelayStep)
	}

	if c.Valuation.OutlierThreshold <= 0 || c.Valuation.OutlierThreshold > 1 {
		return fmt.Errorf("valuation.outlier_threshold must be in (0, 1], got %v", c.Valuation.OutlierThreshold)
	}
	if c.Valuation.StaleDays < 1 {
		return errors.New("valuation.stale_days must be >= 1")
	}

	if c.Catalog.BatchSize < 1 {
		return errors.New("catalog.batch_size must be >= 1")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
