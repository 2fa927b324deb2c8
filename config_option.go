package jdql

import (
	"time"

	"gorm.io/jdql/logger"
	"gorm.io/jdql/schema"
)

// ConfigOption use functional option for jdql Config.
type ConfigOption func(c *Config)

// WithNameStrategy set schema namer.
func WithNameStrategy(namer schema.Namer) ConfigOption {
	return func(c *Config) {
		c.NamingStrategy = namer
	}
}

// WithLogger set logger.
func WithLogger(logger logger.Interface) ConfigOption {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithCache set descriptor cache size and ttl, a negative size disables the cache.
func WithCache(size int, ttl time.Duration) ConfigOption {
	return func(c *Config) {
		c.CacheSize = size
		c.CacheTTL = ttl
	}
}

// WithoutOrderBy skip order by clauses of method names when rendering.
func WithoutOrderBy() ConfigOption {
	return func(c *Config) {
		c.RenderOrderBy = false
	}
}

// WithEnableDryRun enable dry run.
func WithEnableDryRun() ConfigOption {
	return func(c *Config) {
		c.DryRun = true
	}
}
