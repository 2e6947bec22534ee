package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"outbox/internal/config"
	"outbox/internal/spool"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// storesFor resolves the spool stores a command operates on. An empty
// stream name selects every configured stream.
func (c *commandContext) storesFor(stream string) ([]*spool.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	build := func(folder string, capacity int) *spool.Store {
		return spool.New(spool.Options{
			Root:     cfg.Paths.SpoolDir,
			Folder:   folder,
			Capacity: capacity,
		})
	}

	switch stream {
	case "":
		return []*spool.Store{
			build(cfg.Spool.EventFolder, cfg.Spool.EventCapacity),
			build(cfg.Spool.SessionFolder, cfg.Spool.SessionCapacity),
		}, nil
	case cfg.Spool.EventFolder:
		return []*spool.Store{build(cfg.Spool.EventFolder, cfg.Spool.EventCapacity)}, nil
	case cfg.Spool.SessionFolder:
		return []*spool.Store{build(cfg.Spool.SessionFolder, cfg.Spool.SessionCapacity)}, nil
	default:
		return nil, fmt.Errorf("unknown stream %q (expected %q or %q)", stream, cfg.Spool.EventFolder, cfg.Spool.SessionFolder)
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
