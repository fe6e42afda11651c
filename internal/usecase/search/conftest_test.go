package search

import (
	"context"
	"sync"
	"testing"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/source"
)

// mockRepo records calls; generators run concurrently so access is locked.
type mockRepo struct {
	mu    sync.Mutex
	calls []string

	seed     *movie.Movie
	seedErr  error
	lastBase string

	fuzzy      []movie.Movie
	fuzzyErr   error
	fuzzyLimit int

	semantic   []movie.Scored
	semanticFn func(ctx context.Context) ([]movie.Scored, error)

	quality   []movie.Movie
	qualityFn func(ctx context.Context) ([]movie.Movie, error)

	byGenre     []movie.Movie
	genreErr    error
	genreParams []string

	nearest      []movie.Scored
	nearestLimit int
}

func (m *mockRepo) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockRepo) called(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (m *mockRepo) FindSeed(_ context.Context, base string) (*movie.Movie, error) {
	m.record("FindSeed")
	m.mu.Lock()
	m.lastBase = base
	m.mu.Unlock()
	return m.seed, m.seedErr
}

func (m *mockRepo) FuzzyMatch(_ context.Context, _ string, limit int) ([]movie.Movie, error) {
	m.record("FuzzyMatch")
	m.mu.Lock()
	m.fuzzyLimit = limit
	m.mu.Unlock()
	return m.fuzzy, m.fuzzyErr
}

func (m *mockRepo) NearestToSeed(ctx context.Context, _ *movie.Movie, _ int) ([]movie.Scored, error) {
	m.record("NearestToSeed")
	if m.semanticFn != nil {
		return m.semanticFn(ctx)
	}
	return m.semantic, nil
}

func (m *mockRepo) TopQuality(ctx context.Context, _ int) ([]movie.Movie, error) {
	m.record("TopQuality")
	if m.qualityFn != nil {
		return m.qualityFn(ctx)
	}
	return m.quality, nil
}

func (m *mockRepo) ByGenres(_ context.Context, genres []string, _ int) ([]movie.Movie, error) {
	m.record("ByGenres")
	m.mu.Lock()
	m.genreParams = genres
	m.mu.Unlock()
	return m.byGenre, m.genreErr
}

func (m *mockRepo) NearestToVector(_ context.Context, _ []float32, limit int) ([]movie.Scored, error) {
	m.record("NearestToVector")
	m.mu.Lock()
	m.nearestLimit = limit
	m.mu.Unlock()
	return m.nearest, nil
}

type mockEmbedder struct {
	vec    []float32
	tokens int
	err    error
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called = true
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec, TotalTokens: m.tokens}, nil
}

type mockRecorder struct {
	mu         sync.Mutex
	generators map[source.Source]int
	results    int
}

func (m *mockRecorder) ObserveGenerator(src source.Source, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generators == nil {
		m.generators = map[source.Source]int{}
	}
	m.generators[src] += n
}

func (m *mockRecorder) ObserveResults(n int) { m.results = n }

func mustQuery(t *testing.T, raw string) *request.Query {
	t.Helper()
	q, err := request.NewQuery(raw)
	if err != nil {
		t.Fatalf("NewQuery(%q): %v", raw, err)
	}
	return &q
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

// film builds a movie with the ranking signals set.
func film(id int64, pop, avg float64, votes int64) movie.Movie {
	return movie.Movie{
		ID:          id,
		Title:       "movie",
		Popularity:  f64(pop),
		VoteAverage: f64(avg),
		VoteCount:   i64(votes),
		Embedding:   []float32{0.1, 0.2},
	}
}
