package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osis/backend/internal/domain/reference"
)

// Default TTLs. Person records change rarely; the learning-unit catalogue
// is effectively frozen within an academic year.
const (
	defaultPersonTTL       = 15 * time.Minute
	defaultLearningUnitTTL = 6 * time.Hour
)

// CachedPersonTranslator is a read-through cache in front of a
// reference.PersonTranslator. Cache failures fall through to the inner
// translator and are logged, never surfaced.
type CachedPersonTranslator struct {
	inner  reference.PersonTranslator
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// CachedPersonTranslatorOption configures the cache decorator
type CachedPersonTranslatorOption func(*CachedPersonTranslator)

// WithPersonTTL overrides the default person cache TTL
func WithPersonTTL(ttl time.Duration) CachedPersonTranslatorOption {
	return func(c *CachedPersonTranslator) {
		c.ttl = ttl
	}
}

// WithPersonCacheLogger sets the logger
func WithPersonCacheLogger(logger *zap.Logger) CachedPersonTranslatorOption {
	return func(c *CachedPersonTranslator) {
		c.logger = logger
	}
}

// NewCachedPersonTranslator wraps a person translator with a cache
func NewCachedPersonTranslator(inner reference.PersonTranslator, store Store, opts ...CachedPersonTranslatorOption) *CachedPersonTranslator {
	c := &CachedPersonTranslator{
		inner:  inner,
		store:  store,
		ttl:    defaultPersonTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get resolves a person, serving from the cache when possible
func (c *CachedPersonTranslator) Get(ctx context.Context, id uuid.UUID) (*reference.PersonDTO, error) {
	key := "ref:person:" + id.String()

	if data, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.Warn("person cache read failed", zap.Error(err))
	} else if ok {
		var dto reference.PersonDTO
		if err := json.Unmarshal(data, &dto); err == nil {
			return &dto, nil
		}
		c.logger.Warn("person cache entry corrupt, evicting", zap.String("key", key))
		_ = c.store.Delete(ctx, key)
	}

	dto, err := c.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(dto); err == nil {
		if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("person cache write failed", zap.Error(err))
		}
	}
	return dto, nil
}

// CachedLearningUnitTranslator is a read-through cache in front of a
// reference.LearningUnitTranslator
type CachedLearningUnitTranslator struct {
	inner  reference.LearningUnitTranslator
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// CachedLearningUnitTranslatorOption configures the cache decorator
type CachedLearningUnitTranslatorOption func(*CachedLearningUnitTranslator)

// WithLearningUnitTTL overrides the default learning-unit cache TTL
func WithLearningUnitTTL(ttl time.Duration) CachedLearningUnitTranslatorOption {
	return func(c *CachedLearningUnitTranslator) {
		c.ttl = ttl
	}
}

// WithLearningUnitCacheLogger sets the logger
func WithLearningUnitCacheLogger(logger *zap.Logger) CachedLearningUnitTranslatorOption {
	return func(c *CachedLearningUnitTranslator) {
		c.logger = logger
	}
}

// NewCachedLearningUnitTranslator wraps a learning-unit translator with a cache
func NewCachedLearningUnitTranslator(inner reference.LearningUnitTranslator, store Store, opts ...CachedLearningUnitTranslatorOption) *CachedLearningUnitTranslator {
	c := &CachedLearningUnitTranslator{
		inner:  inner,
		store:  store,
		ttl:    defaultLearningUnitTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get resolves a learning unit, serving from the cache when possible
func (c *CachedLearningUnitTranslator) Get(ctx context.Context, code string, academicYear int) (*reference.LearningUnitDTO, error) {
	key := fmt.Sprintf("ref:lu:%s:%d", code, academicYear)

	if data, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.Warn("learning unit cache read failed", zap.Error(err))
	} else if ok {
		var dto reference.LearningUnitDTO
		if err := json.Unmarshal(data, &dto); err == nil {
			return &dto, nil
		}
		c.logger.Warn("learning unit cache entry corrupt, evicting", zap.String("key", key))
		_ = c.store.Delete(ctx, key)
	}

	dto, err := c.inner.Get(ctx, code, academicYear)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(dto); err == nil {
		if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("learning unit cache write failed", zap.Error(err))
		}
	}
	return dto, nil
}
