package discovery

import (
	"context"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// Repository defines the catalog queries behind the discovery feeds.
type Repository interface {
	PopularPool(ctx context.Context, n int) ([]movie.Movie, error)
	GenrePool(ctx context.Context, genres []string, limit int) ([]movie.Movie, error)
}

// PoolCache stores trending pools between catalog scans. Optional.
type PoolCache interface {
	Get(ctx context.Context, size int) ([]movie.Movie, bool)
	Put(ctx context.Context, size int, pool []movie.Movie) error
}

// Random is the randomness source for shuffles and noise.
// *math/rand/v2.Rand satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// Recorder observes candidate pool sizes per feed. Optional.
type Recorder interface {
	ObservePool(feed string, n int)
}
