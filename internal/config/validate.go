package config

import (
	"errors"
	"fmt"
)

var validStrategies = map[string]struct{}{
	"sequence":  {},
	"timestamp": {},
	"hybrid":    {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateExifTool(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateMatch(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateExifTool() error {
	if c.ExifTool.PayloadTimeout <= 0 {
		return errors.New("exiftool.payload_timeout must be positive")
	}
	if c.ExifTool.Retries < 0 {
		return errors.New("exiftool.retries must not be negative")
	}
	if c.ExifTool.RetryBackoffMS < 0 {
		return errors.New("exiftool.retry_backoff_ms must not be negative")
	}
	return nil
}

func (c *Config) validateEngine() error {
	if c.Engine.Concurrency < 0 {
		return errors.New("engine.concurrency must not be negative")
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.MaxPayloadTasks <= 0 {
		return errors.New("batch.max_payload_tasks must be positive")
	}
	if c.Batch.MaxPayloadBytes <= 0 {
		return errors.New("batch.max_payload_bytes must be positive")
	}
	if c.Batch.Shards < 1 {
		return errors.New("batch.shards must be at least 1")
	}
	return nil
}

func (c *Config) validateMatch() error {
	if _, ok := validStrategies[c.Match.Strategy]; !ok {
		return fmt.Errorf("match.strategy must be one of sequence, timestamp, hybrid (got %q)", c.Match.Strategy)
	}
	if c.Match.ToleranceMinutes <= 0 {
		return errors.New("match.tolerance_minutes must be positive")
	}
	if c.Match.HybridThreshold <= 0 || c.Match.HybridThreshold > 1 {
		return errors.New("match.hybrid_threshold must be between 0 and 1")
	}
	return nil
}
