// Package similar pages through the nearest neighbours of one catalog movie.
package similar

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/domain/search/source"
	"github.com/kailas-cloud/cinedex/internal/logger"
)

// ApproximateTotal is reported as the page total unless exact totals are enabled.
const ApproximateTotal = 90

// Service answers "movies like this" requests.
type Service struct {
	repo       Repository
	exactTotal bool
}

// Option configures a Service.
type Option func(*Service)

// WithExactTotal counts the real number of comparable movies per request.
func WithExactTotal(enabled bool) Option {
	return func(s *Service) { s.exactTotal = enabled }
}

// New creates a similar-movies service.
func New(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Similar returns one page of movies ordered by cosine distance to the target.
// A target without an embedding (or an unknown id) yields an empty page.
func (s *Service) Similar(ctx context.Context, req *request.SimilarRequest) (result.Page, error) {
	vec, err := s.repo.EmbeddingOf(ctx, req.MovieID())
	if err != nil {
		return result.Page{}, fmt.Errorf("target embedding: %w", err)
	}
	if len(vec) == 0 {
		logger.FromContext(ctx).Debug("Similar target has no embedding", zap.Int64("movie_id", req.MovieID()))
		return result.EmptyPage(req.Page(), req.Limit()), nil
	}

	rows, err := s.repo.SimilarPage(ctx, req.MovieID(), vec, req.Offset(), req.Limit())
	if err != nil {
		return result.Page{}, fmt.Errorf("similar page: %w", err)
	}

	total := ApproximateTotal
	if s.exactTotal {
		if total, err = s.repo.CountWithEmbedding(ctx, req.MovieID()); err != nil {
			return result.Page{}, fmt.Errorf("count similar: %w", err)
		}
	}

	items := make([]result.Candidate, 0, len(rows))
	for i := range rows {
		c := result.New(rows[i].Movie, source.Semantic, 0)
		c.SetSimilarity(rows[i].Similarity)
		c.Strip()
		items = append(items, c)
	}

	return result.Page{Page: req.Page(), Limit: req.Limit(), Total: total, Items: items}, nil
}
