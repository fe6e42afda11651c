package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/genre"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/domain/search/source"
)

// Generator result sizes.
const (
	semanticLimit     = 50
	qualityLimit      = 50
	genreLimit        = 50
	liveSemanticLimit = 10
)

// MergeRule says how a generator's candidates enter the result set.
// New ids get Base. Existing ids get Boost added when BoostExisting is set
// and are left alone otherwise.
type MergeRule struct {
	Base          float64
	Boost         float64
	BoostExisting bool
}

// Generator produces candidates from one signal.
type Generator interface {
	Source() source.Source
	Rule() MergeRule
	Generate(ctx context.Context, c *Classification) ([]result.Candidate, error)
}

type lexicalGenerator struct{ repo Repository }

func (lexicalGenerator) Source() source.Source { return source.Lexical }
func (lexicalGenerator) Rule() MergeRule       { return MergeRule{Base: 1.0} }

func (g lexicalGenerator) Generate(ctx context.Context, c *Classification) ([]result.Candidate, error) {
	movies, err := g.repo.FuzzyMatch(ctx, c.Query.Raw(), c.LexicalWindow())
	if err != nil {
		return nil, fmt.Errorf("lexical: %w", err)
	}
	return fromMovies(movies, source.Lexical, 1.0), nil
}

type semanticGenerator struct{ repo Repository }

func (semanticGenerator) Source() source.Source { return source.Semantic }
func (semanticGenerator) Rule() MergeRule       { return MergeRule{Base: 1.0} }

func (g semanticGenerator) Generate(ctx context.Context, c *Classification) ([]result.Candidate, error) {
	if !c.HasSeedVector() {
		return nil, nil
	}
	scored, err := g.repo.NearestToSeed(ctx, c.Seed, semanticLimit)
	if err != nil {
		return nil, fmt.Errorf("semantic: %w", err)
	}
	return fromScored(scored, source.Semantic, 1.0), nil
}

type qualityGenerator struct{ repo Repository }

func (qualityGenerator) Source() source.Source { return source.Quality }
func (qualityGenerator) Rule() MergeRule {
	return MergeRule{Base: 1.1, Boost: 1.2, BoostExisting: true}
}

func (g qualityGenerator) Generate(ctx context.Context, _ *Classification) ([]result.Candidate, error) {
	movies, err := g.repo.TopQuality(ctx, qualityLimit)
	if err != nil {
		return nil, fmt.Errorf("quality: %w", err)
	}
	return fromMovies(movies, source.Quality, 1.1), nil
}

type genreGenerator struct{ repo Repository }

func (genreGenerator) Source() source.Source { return source.Genre }
func (genreGenerator) Rule() MergeRule       { return MergeRule{Base: 0.9} }

func (g genreGenerator) Generate(ctx context.Context, c *Classification) ([]result.Candidate, error) {
	if len(c.Genres) == 0 {
		return nil, nil
	}
	movies, err := g.repo.ByGenres(ctx, genre.Normalize(c.Genres), genreLimit)
	if err != nil {
		return nil, fmt.Errorf("genre: %w", err)
	}
	return fromMovies(movies, source.Genre, 0.9), nil
}

// liveSemanticGenerator embeds the query text itself instead of borrowing a
// seed title's vector.
type liveSemanticGenerator struct {
	repo  Repository
	embed Embedder
}

func (liveSemanticGenerator) Source() source.Source { return source.LiveSemantic }
func (liveSemanticGenerator) Rule() MergeRule {
	return MergeRule{Base: 0.9, Boost: 1.0, BoostExisting: true}
}

func (g liveSemanticGenerator) Generate(ctx context.Context, c *Classification) ([]result.Candidate, error) {
	emb, err := g.embed.Embed(ctx, c.Query.Raw())
	if err != nil {
		return nil, fmt.Errorf("live semantic: vectorize query: %w", err)
	}
	domain.UsageFromContext(ctx).AddTokens(emb.TotalTokens)

	scored, err := g.repo.NearestToVector(ctx, emb.Embedding, liveSemanticLimit)
	if err != nil {
		return nil, fmt.Errorf("live semantic: %w", err)
	}
	return fromScored(scored, source.LiveSemantic, 0.9), nil
}

func fromMovies(movies []movie.Movie, src source.Source, base float64) []result.Candidate {
	out := make([]result.Candidate, len(movies))
	for i := range movies {
		out[i] = result.New(movies[i], src, base)
	}
	return out
}

func fromScored(scored []movie.Scored, src source.Source, base float64) []result.Candidate {
	out := make([]result.Candidate, len(scored))
	for i := range scored {
		out[i] = result.New(scored[i].Movie, src, base)
		out[i].SetSimilarity(scored[i].Similarity)
	}
	return out
}
