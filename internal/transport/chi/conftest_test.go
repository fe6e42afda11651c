package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/domain/search/source"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
)

type mockSearcher struct {
	items  []result.Candidate
	err    error
	tokens int
	got    string
}

func (m *mockSearcher) Search(ctx context.Context, q *request.Query) ([]result.Candidate, error) {
	m.got = q.Raw()
	if m.tokens > 0 {
		domain.UsageFromContext(ctx).AddTokens(m.tokens)
	}
	return m.items, m.err
}

type mockDiscoverer struct {
	movies    []movie.Movie
	err       error
	gotLimit  int
	gotGenres []string
}

func (m *mockDiscoverer) Trending(_ context.Context, req *request.TrendingRequest) ([]movie.Movie, error) {
	m.gotLimit = req.Limit()
	return m.movies, m.err
}

func (m *mockDiscoverer) PopularByGenre(_ context.Context, req *request.GenreRequest) ([]movie.Movie, error) {
	m.gotGenres = req.Genres()
	return m.movies, m.err
}

type mockSimilar struct {
	page   *result.Page
	err    error
	gotReq request.SimilarRequest
}

func (m *mockSimilar) Similar(_ context.Context, req *request.SimilarRequest) (result.Page, error) {
	m.gotReq = *req
	if m.page != nil {
		return *m.page, m.err
	}
	return result.EmptyPage(req.Page(), req.Limit()), m.err
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

type testDeps struct {
	search    *mockSearcher
	discovery *mockDiscoverer
	similar   *mockSimilar
	health    *mockHealth
}

func newTestDeps() *testDeps {
	return &testDeps{
		search:    &mockSearcher{},
		discovery: &mockDiscoverer{},
		similar:   &mockSimilar{},
		health: &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
		}},
	}
}

func (d *testDeps) router(cfg RouterConfig) http.Handler {
	s := NewServer(d.search, d.discovery, d.similar, d.health)
	return NewRouter(s, cfg, zap.NewNop())
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return v
}

func f64(v float64) *float64 { return &v }

func film(id int64, title string) movie.Movie {
	return movie.Movie{ID: id, Title: title, Popularity: f64(10), Embedding: []float32{0.1}}
}

func candidate(m movie.Movie, sim *float64) result.Candidate {
	c := result.New(m, source.Semantic, 1)
	if sim != nil {
		c.SetSimilarity(*sim)
	}
	c.Strip()
	return c
}
