package discovery

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/logger"
)

// Feed labels for metrics.
const (
	FeedTrending = "trending"
	FeedGenre    = "genre"
)

// Service serves the browsing feeds: trending and genre discovery.
type Service struct {
	repo     Repository
	cache    PoolCache
	rnd      Random
	recorder Recorder
}

// Option configures a Service.
type Option func(*Service)

// WithPoolCache serves trending pools from cache when present.
func WithPoolCache(c PoolCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithRandom replaces the randomness source (tests).
func WithRandom(r Random) Option {
	return func(s *Service) {
		if r != nil {
			s.rnd = r
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// New creates a discovery service.
func New(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, rnd: globalRandom{}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Trending returns up to req.Limit() popular movies, diversified by
// TieredShuffle over a pool of req.PoolSize().
func (s *Service) Trending(ctx context.Context, req *request.TrendingRequest) ([]movie.Movie, error) {
	pool, err := s.trendingPool(ctx, req.PoolSize())
	if err != nil {
		return nil, err
	}
	s.observe(FeedTrending, len(pool))
	return TieredShuffle(pool, req.Limit(), s.rnd), nil
}

// PopularByGenre returns up to GenreFeedSize movies from the requested
// genres, diversified by NoisyRankShuffle.
func (s *Service) PopularByGenre(ctx context.Context, req *request.GenreRequest) ([]movie.Movie, error) {
	pool, err := s.repo.GenrePool(ctx, req.Genres(), GenrePoolSize)
	if err != nil {
		return nil, fmt.Errorf("genre pool: %w", err)
	}
	s.observe(FeedGenre, len(pool))
	return NoisyRankShuffle(pool, s.rnd), nil
}

// Refresh loads the trending pool of the given size from the catalog and
// stores it in the cache.
func (s *Service) Refresh(ctx context.Context, size int) error {
	pool, err := s.repo.PopularPool(ctx, size)
	if err != nil {
		return fmt.Errorf("popular pool: %w", err)
	}
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Put(ctx, size, pool); err != nil {
		return fmt.Errorf("cache trending pool: %w", err)
	}
	return nil
}

func (s *Service) trendingPool(ctx context.Context, size int) ([]movie.Movie, error) {
	if s.cache != nil {
		if pool, ok := s.cache.Get(ctx, size); ok {
			return pool, nil
		}
	}

	pool, err := s.repo.PopularPool(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("popular pool: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, size, pool); err != nil {
			logger.FromContext(ctx).Warn("Failed to cache trending pool", zap.Int("size", size), zap.Error(err))
		}
	}
	return pool, nil
}

func (s *Service) observe(feed string, n int) {
	if s.recorder != nil {
		s.recorder.ObservePool(feed, n)
	}
}
