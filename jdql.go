package jdql

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/jdql/internal/lru"
	"gorm.io/jdql/logger"
	"gorm.io/jdql/method"
	"gorm.io/jdql/schema"
)

// DefaultCacheSize descriptors kept when Config.CacheSize is 0
const DefaultCacheSize = 1000

// Config JDQL config
type Config struct {
	// NamingStrategy entity and attribute naming strategy
	NamingStrategy schema.Namer
	// Logger
	Logger logger.Interface
	// CacheSize parsed descriptors kept in memory, negative disables the cache
	CacheSize int
	// CacheTTL how long a parsed descriptor is kept, 0 keeps it until evicted
	CacheTTL time.Duration
	// RenderOrderBy append the order by clause of method names
	RenderOrderBy bool
	// DryRun render queries without calling handlers
	DryRun bool

	cache      *lru.LRU[string, *method.QueryDescriptor]
	cacheStore *sync.Map
	entities   *sync.Map
}

// DB query builder over method names and restrictions, safe for concurrent use
type DB struct {
	*Config
}

// Session session config when create session with Session() method
type Session struct {
	DryRun        bool
	RenderOrderBy *bool
	Logger        logger.Interface
}

// Open initialize db
func Open(opts ...ConfigOption) *DB {
	config := &Config{RenderOrderBy: true}
	for _, opt := range opts {
		opt(config)
	}

	if config.NamingStrategy == nil {
		config.NamingStrategy = schema.NamingStrategy{}
	}

	if config.Logger == nil {
		config.Logger = logger.Default
	}

	if config.CacheSize == 0 {
		config.CacheSize = DefaultCacheSize
	}

	if config.CacheSize > 0 {
		config.cache = lru.New[string, *method.QueryDescriptor](config.CacheSize, config.CacheTTL, nil)
	}

	config.cacheStore = &sync.Map{}
	config.entities = &sync.Map{}
	return &DB{Config: config}
}

// Session create new db session sharing caches and registered entities
func (db *DB) Session(config *Session) *DB {
	txConfig := *db.Config

	if config.DryRun {
		txConfig.DryRun = true
	}

	if config.RenderOrderBy != nil {
		txConfig.RenderOrderBy = *config.RenderOrderBy
	}

	if config.Logger != nil {
		txConfig.Logger = config.Logger
	}

	return &DB{Config: &txConfig}
}

// Debug start debug mode
func (db *DB) Debug() *DB {
	return db.Session(&Session{Logger: db.Logger.LogMode(logger.Info)})
}

// Parse decode a method name, results are cached by name.
// The returned descriptor is a copy and may be modified.
func (db *DB) Parse(ctx context.Context, name string) (*method.QueryDescriptor, error) {
	if db.cache != nil {
		if desc, ok := db.cache.Get(name); ok {
			return desc.WithEntity(desc.Entity), nil
		}
	}

	desc, err := method.Parse(name)
	if err != nil {
		return nil, err
	}

	if db.cache != nil {
		db.cache.Add(name, desc)
	}
	return desc.WithEntity(desc.Entity), nil
}

// Register parse models into entities, queries on a registered entity are validated
func (db *DB) Register(models ...interface{}) error {
	for _, model := range models {
		s, err := schema.Parse(model, db.cacheStore, db.NamingStrategy)
		if err != nil {
			return err
		}
		db.entities.Store(s.Name, s)
	}
	return nil
}

// RegisterAttributes register an entity by attribute names only
func (db *DB) RegisterAttributes(entity string, attributes ...string) *schema.Schema {
	s := schema.New(db.NamingStrategy.EntityName(entity), attributes...)
	db.entities.Store(s.Name, s)
	return s
}

// Schema registered entity schema
func (db *DB) Schema(entity string) (*schema.Schema, bool) {
	if v, ok := db.entities.Load(db.NamingStrategy.EntityName(entity)); ok {
		return v.(*schema.Schema), true
	}
	return nil, false
}

// Validate check desc against the registered entity
func (db *DB) Validate(entity string, desc *method.QueryDescriptor) error {
	s, ok := db.Schema(entity)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}
	return s.Validate(db.attributeNames(s.Name, desc))
}

// validate like Validate, unregistered entities pass
func (db *DB) validate(entity string, desc *method.QueryDescriptor) error {
	if s, ok := db.Schema(entity); ok {
		return s.Validate(db.attributeNames(s.Name, desc))
	}
	return nil
}

// attributeNames copy of desc with properties mapped by the naming strategy
func (db *DB) attributeNames(entity string, desc *method.QueryDescriptor) *method.QueryDescriptor {
	named := desc.WithEntity(entity)
	for idx := range named.Conditions {
		named.Conditions[idx].Property = db.NamingStrategy.AttributeName(entity, named.Conditions[idx].Property)
	}
	for idx := range named.OrderBy {
		named.OrderBy[idx].Property = db.NamingStrategy.AttributeName(entity, named.OrderBy[idx].Property)
	}
	return named
}

func (db *DB) trace(ctx context.Context, begin time.Time, stmt *Statement, err error) {
	db.Logger.Trace(ctx, begin, func() (string, int64) {
		if stmt == nil {
			return "", -1
		}
		return db.explain(ctx, stmt), int64(stmt.Params())
	}, err)
}

func (db *DB) explain(ctx context.Context, stmt *Statement) string {
	query, vars := stmt.SQL.String(), stmt.Vars
	if filter, ok := db.Logger.(logger.ParamsFilter); ok {
		query, vars = filter.ParamsFilter(ctx, query, vars...)
	}
	if !stmt.Bound() {
		return query
	}
	return logger.Explain(query, vars...)
}
