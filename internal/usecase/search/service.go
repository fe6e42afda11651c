package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/domain/search/source"
	"github.com/kailas-cloud/cinedex/internal/logger"
)

// Service ranks movies for free-text queries by fusing several candidate generators.
type Service struct {
	repo       Repository
	generators map[source.Source]Generator
	recorder   Recorder
}

// Option configures a Service.
type Option func(*Service)

// WithLiveEmbedding enables the query-embedding generator.
func WithLiveEmbedding(e Embedder) Option {
	return func(s *Service) {
		if e != nil {
			s.generators[source.LiveSemantic] = liveSemanticGenerator{repo: s.repo, embed: e}
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// New creates a search service.
func New(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		generators: map[source.Source]Generator{
			source.Lexical:  lexicalGenerator{repo: repo},
			source.Semantic: semanticGenerator{repo: repo},
			source.Quality:  qualityGenerator{repo: repo},
			source.Genre:    genreGenerator{repo: repo},
		},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search runs the classifier, fetches every planned generator concurrently,
// merges their batches in plan order and returns at most MaxResults movies.
// Any store or provider failure aborts the whole query.
func (s *Service) Search(ctx context.Context, q *request.Query) ([]result.Candidate, error) {
	log := logger.FromContext(ctx)

	_, live := s.generators[source.LiveSemantic]
	c := Classify(q, live)

	if c.NeedsSeed() {
		seed, err := s.findSeed(ctx, q.Raw())
		if err != nil {
			return nil, err
		}
		c.Seed = seed
	}

	plan := c.Plan()
	log.Debug("Search plan",
		zap.String("query", q.Raw()),
		zap.Int("length", q.Len()),
		zap.Bool("seed_vector", c.HasSeedVector()),
		zap.Strings("genres", c.Genres),
		zap.Any("generators", plan),
	)

	batches := make([][]result.Candidate, len(plan))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range plan {
		gen := s.generators[src]
		g.Go(func() error {
			b, err := gen.Generate(gctx, &c)
			if err != nil {
				return err
			}
			batches[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generate candidates: %w", err)
	}

	set := NewResultSet()
	for i, src := range plan {
		set.Merge(src, s.generators[src].Rule(), batches[i])
		s.observeGenerator(src, len(batches[i]))
	}

	out := set.Ranked(MaxResults)
	if s.recorder != nil {
		s.recorder.ObserveResults(len(out))
	}
	return out, nil
}

func (s *Service) findSeed(ctx context.Context, raw string) (*movie.Movie, error) {
	base := SeedTitle(raw)
	if base == "" {
		return nil, nil
	}
	seed, err := s.repo.FindSeed(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("seed lookup: %w", err)
	}
	if seed != nil {
		logger.FromContext(ctx).Debug("Seed found",
			zap.Int64("movie_id", seed.ID),
			zap.String("title", seed.Title),
			zap.Bool("has_embedding", seed.HasEmbedding()),
		)
	}
	return seed, nil
}

func (s *Service) observeGenerator(src source.Source, n int) {
	if s.recorder != nil {
		s.recorder.ObserveGenerator(src, n)
	}
}
