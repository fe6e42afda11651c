package chi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/genre"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
)

// Searcher runs free-text movie search.
type Searcher interface {
	Search(ctx context.Context, q *request.Query) ([]result.Candidate, error)
}

// Discoverer serves the browsing feeds.
type Discoverer interface {
	Trending(ctx context.Context, req *request.TrendingRequest) ([]movie.Movie, error)
	PopularByGenre(ctx context.Context, req *request.GenreRequest) ([]movie.Movie, error)
}

// SimilarFinder pages through "movies like this".
type SimilarFinder interface {
	Similar(ctx context.Context, req *request.SimilarRequest) (result.Page, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server serves the movie discovery HTTP API. Handlers log through the
// request logger placed in the context by WideEventMiddleware.
type Server struct {
	search        Searcher
	discovery     Discoverer
	similar       SimilarFinder
	health        HealthChecker
	validate      *validator.Validate
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search Searcher,
	discovery Discoverer,
	similar SimilarFinder,
	health HealthChecker,
) *Server {
	return &Server{
		search:        search,
		discovery:     discovery,
		similar:       similar,
		health:        health,
		validate:      newValidator(),
		errorHandlers: defaultErrorHandlers(),
	}
}

// Routes registers the API endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/search", s.SearchMovies)
		r.Get("/genre/popular", s.PopularByGenre)
		r.Get("/trending", s.Trending)
		r.Get("/{id}/similar", s.MoviesLikeThis)
		r.Get("/moviesLikeThis/{id}", s.MoviesLikeThis)
	})
}

// SearchMovies handles GET /movies/search.
func (s *Server) SearchMovies(w http.ResponseWriter, r *http.Request) {
	params := searchParams{Q: r.URL.Query().Get("q")}
	if err := s.validateParams(&params); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	q, err := request.NewQuery(params.Q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	items, err := s.search.Search(ctx, &q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, candidatesToResponse(items))
}

// PopularByGenre handles GET /movies/genre/popular.
func (s *Server) PopularByGenre(w http.ResponseWriter, r *http.Request) {
	params := genreParams{Genre: r.URL.Query().Get("genre")}
	if err := s.validateParams(&params); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	req, err := request.NewGenre(genre.ParseList(params.Genre))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	movies, err := s.discovery.PopularByGenre(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moviesToResponse(movies))
}

// Trending handles GET /movies/trending.
func (s *Server) Trending(w http.ResponseWriter, r *http.Request) {
	params := trendingParams{Limit: r.URL.Query().Get("limit")}
	if err := s.validateParams(&params); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	limit, err := atoiParam("limit", params.Limit, 0)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	req, err := request.NewTrending(limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	movies, err := s.discovery.Trending(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moviesToResponse(movies))
}

// MoviesLikeThis handles GET /movies/{id}/similar and GET /movies/moviesLikeThis/{id}.
func (s *Server) MoviesLikeThis(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := similarParams{
		ID:    chi.URLParam(r, "id"),
		Page:  query.Get("page"),
		Limit: query.Get("limit"),
	}
	if err := s.validateParams(&params); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	id, err := strconv.ParseInt(params.ID, 10, 64)
	if err != nil {
		s.handleDomainError(w, r, domain.NewInvalidParam("id", "must be an integer"))
		return
	}
	page, err := atoiParam("page", params.Page, request.DefaultPage)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	limit, err := atoiParam("limit", params.Limit, request.DefaultSimilarLimit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	req := request.NewSimilar(id, page, limit)
	p, err := s.similar.Similar(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToResponse(&p))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}
