package similar

import (
	"context"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// Repository defines the catalog queries behind "movies like this".
type Repository interface {
	EmbeddingOf(ctx context.Context, id int64) ([]float32, error)
	SimilarPage(ctx context.Context, id int64, vec []float32, offset, limit int) ([]movie.Scored, error)
	CountWithEmbedding(ctx context.Context, excludeID int64) (int, error)
}
