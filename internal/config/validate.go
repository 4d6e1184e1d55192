package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.FuzzyThreshold <= 0 || c.Matching.FuzzyThreshold > 1 {
		return errors.New("matching.fuzzy_threshold must be in (0, 1]")
	}
	if c.Matching.FuzzyMargin < 0 || c.Matching.FuzzyMargin > 1 {
		return errors.New("matching.fuzzy_margin must be in [0, 1]")
	}
	if c.Matching.Workers < 1 {
		return fmt.Errorf("matching.workers must be at least 1, got %d", c.Matching.Workers)
	}
	if c.Matching.EventBuffer < 1 {
		return fmt.Errorf("matching.event_buffer must be at least 1, got %d", c.Matching.EventBuffer)
	}
	return nil
}
