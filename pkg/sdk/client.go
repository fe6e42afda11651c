package cinedex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbPostgres "github.com/kailas-cloud/cinedex/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/cinedex/internal/db/redis"
	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/repository/embcache"
	movierepo "github.com/kailas-cloud/cinedex/internal/repository/movie"
	"github.com/kailas-cloud/cinedex/internal/repository/poolcache"
	discoveryuc "github.com/kailas-cloud/cinedex/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/cinedex/internal/usecase/search"
	similaruc "github.com/kailas-cloud/cinedex/internal/usecase/similar"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultTable            = "movies"
	poolTTL                 = 24 * time.Hour
	embeddingTTL            = 7 * 24 * time.Hour
)

// Internal interfaces, swapped out in tests.
type searchUseCase interface {
	Search(ctx context.Context, q *request.Query) ([]result.Candidate, error)
}

type discoveryUseCase interface {
	Trending(ctx context.Context, req *request.TrendingRequest) ([]movie.Movie, error)
	PopularByGenre(ctx context.Context, req *request.GenreRequest) ([]movie.Movie, error)
}

type similarUseCase interface {
	Similar(ctx context.Context, req *request.SimilarRequest) (result.Page, error)
}

type resource interface {
	Ping(ctx context.Context) error
	Close()
}

// Client is the cinedex SDK entry point.
type Client struct {
	store        resource
	cache        resource
	searchSvc    searchUseCase
	discoverySvc discoveryUseCase
	similarSvc   similarUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a Client and connects to the catalog (and Redis when configured).
// The provided context is used for the initial readiness checks.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{table: defaultTable}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.dsn == "" {
		return nil, errors.New("cinedex: database dsn required (use WithPostgres)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := dbPostgres.NewStore(ctx, dbPostgres.Config{DSN: cfg.dsn, MaxConns: cfg.maxConns})
	if err != nil {
		return nil, fmt.Errorf("cinedex: create postgres store: %w", err)
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("cinedex: database not ready: %w", err)
	}

	var cache *dbRedis.Store
	if len(cfg.redisAddrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{Addrs: cfg.redisAddrs, Password: cfg.redisPassword})
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("cinedex: create redis store: %w", err)
		}
		if err := cache.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			cache.Close()
			store.Close()
			return nil, fmt.Errorf("cinedex: cache not ready: %w", err)
		}
	}

	return wireClient(store, cache, cfg, obs), nil
}

func wireClient(store *dbPostgres.Store, cache *dbRedis.Store, cfg *clientConfig, obs *observer) *Client {
	repo := movierepo.New(store, cfg.table)
	nop := zap.NewNop()

	discoveryOpts := []discoveryuc.Option{}
	if cfg.random != nil {
		discoveryOpts = append(discoveryOpts, discoveryuc.WithRandom(cfg.random))
	}

	var searchOpts []searchuc.Option
	var embedder domain.Embedder
	if cfg.embedder != nil {
		embedder = &embedderAdapter{inner: cfg.embedder}
	}

	c := &Client{store: store, obs: obs}
	healthOpts := []healthuc.Option{}

	if cache != nil {
		c.cache = cache
		healthOpts = append(healthOpts, healthuc.WithCache(cache))
		discoveryOpts = append(discoveryOpts,
			discoveryuc.WithPoolCache(poolcache.New(cache, poolTTL, nil, nop)))
		if embedder != nil {
			embedder = cachedEmbedder(embedder, cache, cfg.embeddingModel)
		}
	}

	if embedder != nil {
		live := domain.NewInstructionEmbedder(embedder, cfg.instruction)
		searchOpts = append(searchOpts, searchuc.WithLiveEmbedding(live))
		healthOpts = append(healthOpts, healthuc.WithEmbedding(live))
	}

	c.searchSvc = searchuc.New(repo, searchOpts...)
	c.discoverySvc = discoveryuc.New(repo, discoveryOpts...)
	c.similarSvc = similaruc.New(repo, similaruc.WithExactTotal(cfg.exactTotal))
	c.healthSvc = healthuc.New(store, healthOpts...)
	return c
}

// embeddingCache is the key-value subset the query embedding cache needs.
type embeddingCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// cachedEmbedder caches query vectors under the model name. An unnamed
// embedder is left uncached because its vectors cannot be told apart.
func cachedEmbedder(inner domain.Embedder, cache embeddingCache, model string) domain.Embedder {
	if model == "" {
		return inner
	}
	return embcache.New(inner, cache, model, embeddingTTL, nil, zap.NewNop())
}

// Close releases all resources.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search ranks catalog movies for a free-text query.
func (c *Client) Search(ctx context.Context, query string) (_ []Movie, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	q, err := request.NewQuery(query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	items, err := c.searchSvc.Search(ctx, &q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return candidatesFromDomain(items), nil
}

// PopularByGenre returns a shuffled feed of popular movies in any of the genres.
func (c *Client) PopularByGenre(ctx context.Context, genres ...string) (_ []Movie, err error) {
	start := time.Now()
	defer func() { c.obs.observe("popular_by_genre", start, err) }()

	req, err := request.NewGenre(genres)
	if err != nil {
		return nil, fmt.Errorf("popular by genre: %w", err)
	}
	movies, err := c.discoverySvc.PopularByGenre(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("popular by genre: %w", err)
	}
	return moviesFromDomain(movies), nil
}

// Trending returns a tiered shuffle of popular movies. limit 0 selects the default.
func (c *Client) Trending(ctx context.Context, limit int) (_ []Movie, err error) {
	start := time.Now()
	defer func() { c.obs.observe("trending", start, err) }()

	req, err := request.NewTrending(limit)
	if err != nil {
		return nil, fmt.Errorf("trending: %w", err)
	}
	movies, err := c.discoverySvc.Trending(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("trending: %w", err)
	}
	return moviesFromDomain(movies), nil
}

// Similar returns one page of movies closest to movieID. Out of range page
// and limit values are clamped.
func (c *Client) Similar(ctx context.Context, movieID int64, page, limit int) (_ SimilarPage, err error) {
	start := time.Now()
	defer func() { c.obs.observe("similar", start, err) }()

	req := request.NewSimilar(movieID, page, limit)
	p, err := c.similarSvc.Similar(ctx, &req)
	if err != nil {
		return SimilarPage{}, fmt.Errorf("similar: %w", err)
	}
	return pageFromDomain(&p), nil
}
