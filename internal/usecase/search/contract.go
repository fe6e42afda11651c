package search

import (
	"context"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/source"
)

// Repository defines the catalog queries behind the candidate generators.
type Repository interface {
	FindSeed(ctx context.Context, base string) (*movie.Movie, error)
	FuzzyMatch(ctx context.Context, q string, limit int) ([]movie.Movie, error)
	NearestToSeed(ctx context.Context, seed *movie.Movie, limit int) ([]movie.Scored, error)
	TopQuality(ctx context.Context, limit int) ([]movie.Movie, error)
	ByGenres(ctx context.Context, genres []string, limit int) ([]movie.Movie, error)
	NearestToVector(ctx context.Context, vec []float32, limit int) ([]movie.Scored, error)
}

// Embedder vectorizes the query text for the live semantic generator.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Recorder observes generator output and result sizes. Optional.
type Recorder interface {
	ObserveGenerator(src source.Source, candidates int)
	ObserveResults(n int)
}
