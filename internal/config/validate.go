package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSpool(); err != nil {
		return err
	}
	if err := c.validateDelivery(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.SpoolDir) == "" {
		return errors.New("paths.spool_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateSpool() error {
	if c.Spool.EventCapacity < 1 {
		return errors.New("spool.event_capacity must be a positive integer")
	}
	if c.Spool.SessionCapacity < 1 {
		return errors.New("spool.session_capacity must be a positive integer")
	}
	if c.Spool.EventFolder == c.Spool.SessionFolder {
		return fmt.Errorf("spool.event_folder and spool.session_folder must differ (both %q)", c.Spool.EventFolder)
	}
	return nil
}

func (c *Config) validateDelivery() error {
	if c.Delivery.PollInterval < 1 {
		return errors.New("delivery.poll_interval must be at least 1 second")
	}
	if c.Delivery.RetryInterval < 1 {
		return errors.New("delivery.retry_interval must be at least 1 second")
	}
	if c.Delivery.Concurrency < 1 {
		return errors.New("delivery.concurrency must be at least 1")
	}
	if c.Delivery.RequestTimeout < 1 {
		return errors.New("delivery.request_timeout must be at least 1 second")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
