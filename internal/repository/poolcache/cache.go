// Package poolcache keeps popularity-ordered candidate pools in the key-value
// store so discovery feeds can skip the catalog scan.
package poolcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/db"
	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

var keyPrefix = domain.KeyPrefix + "trending_pool:"

// store is the consumer interface for the pool cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache stores trending pools keyed by pool size.
type Cache struct {
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a pool cache. cacheTotal has label "result" ("hit"/"miss") and may be nil.
func New(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	return &Cache{store: s, ttl: ttl, cacheTotal: cacheTotal, logger: logger}
}

// Get returns the cached pool of the given size. Any failure is a miss.
func (c *Cache) Get(ctx context.Context, size int) ([]movie.Movie, bool) {
	data, err := c.store.Get(ctx, key(size))
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to read trending pool", zap.Int("size", size), zap.Error(err))
		}
		c.inc("miss")
		return nil, false
	}

	var pool []movie.Movie
	if err := json.Unmarshal(data, &pool); err != nil {
		c.logger.Warn("Failed to decode trending pool", zap.Int("size", size), zap.Error(err))
		c.inc("miss")
		return nil, false
	}

	c.inc("hit")
	return pool, true
}

// Put stores a pool. Embeddings are dropped before encoding.
func (c *Cache) Put(ctx context.Context, size int, pool []movie.Movie) error {
	stripped := make([]movie.Movie, len(pool))
	for i := range pool {
		stripped[i] = pool[i].WithoutEmbedding()
	}

	data, err := json.Marshal(stripped)
	if err != nil {
		return fmt.Errorf("encode trending pool: %w", err)
	}
	if err := c.store.SetWithTTL(ctx, key(size), data, c.ttl); err != nil {
		return fmt.Errorf("store trending pool: %w", err)
	}
	return nil
}

func (c *Cache) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func key(size int) string {
	return keyPrefix + strconv.Itoa(size)
}
