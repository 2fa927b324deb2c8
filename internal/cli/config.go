package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gorm.io/jdql"
	"gorm.io/jdql/logger"
	"gorm.io/jdql/schema"
)

// Config jdql config file, e.g.
//
//	log_level: info
//	logger: zerolog
//	order_by: false
//	entity: Product
//	naming:
//	  singular: true
//	cache:
//	  size: 100
//	  ttl: 10m
//	entities:
//	  Product: [name, price, address.city]
type Config struct {
	LogLevel string              `yaml:"log_level"`
	Logger   string              `yaml:"logger"`
	OrderBy  *bool               `yaml:"order_by"`
	Entity   string              `yaml:"entity"`
	Naming   NamingConfig        `yaml:"naming"`
	Cache    CacheConfig         `yaml:"cache"`
	Entities map[string][]string `yaml:"entities"`
}

type NamingConfig struct {
	Prefix    string `yaml:"prefix"`
	Singular  bool   `yaml:"singular"`
	SnakeCase bool   `yaml:"snake_case"`
}

type CacheConfig struct {
	Size int           `yaml:"size"`
	TTL  time.Duration `yaml:"ttl"`
}

// LoadConfig read config file, an empty path returns the zero config
func LoadConfig(path string) (*Config, error) {
	config := &Config{}
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return config, nil
}

// Options jdql config options of the config file
func (c *Config) Options(log logger.Interface) []jdql.ConfigOption {
	opts := []jdql.ConfigOption{
		jdql.WithLogger(log),
		jdql.WithNameStrategy(schema.NamingStrategy{
			EntityPrefix:   c.Naming.Prefix,
			SingularEntity: c.Naming.Singular,
			SnakeCase:      c.Naming.SnakeCase,
		}),
	}

	if c.Cache.Size != 0 || c.Cache.TTL != 0 {
		opts = append(opts, jdql.WithCache(c.Cache.Size, c.Cache.TTL))
	}

	if c.OrderBy != nil && !*c.OrderBy {
		opts = append(opts, jdql.WithoutOrderBy())
	}
	return opts
}
