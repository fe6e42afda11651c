package cinedex

import (
	"context"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, q *request.Query) ([]result.Candidate, error)
}

func (m *mockSearchUC) Search(ctx context.Context, q *request.Query) ([]result.Candidate, error) {
	return m.searchFn(ctx, q)
}

// --- discoveryUseCase mock ---

type mockDiscoveryUC struct {
	trendingFn func(ctx context.Context, req *request.TrendingRequest) ([]movie.Movie, error)
	genreFn    func(ctx context.Context, req *request.GenreRequest) ([]movie.Movie, error)
}

func (m *mockDiscoveryUC) Trending(ctx context.Context, req *request.TrendingRequest) ([]movie.Movie, error) {
	return m.trendingFn(ctx, req)
}

func (m *mockDiscoveryUC) PopularByGenre(ctx context.Context, req *request.GenreRequest) ([]movie.Movie, error) {
	return m.genreFn(ctx, req)
}

// --- similarUseCase mock ---

type mockSimilarUC struct {
	similarFn func(ctx context.Context, req *request.SimilarRequest) (result.Page, error)
}

func (m *mockSimilarUC) Similar(ctx context.Context, req *request.SimilarRequest) (result.Page, error) {
	return m.similarFn(ctx, req)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- resource mock ---

type mockResource struct {
	pingErr error
	closed  bool
}

func (m *mockResource) Ping(_ context.Context) error { return m.pingErr }
func (m *mockResource) Close()                       { m.closed = true }

// --- Embedder mock ---

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }
