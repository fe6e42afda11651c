package search

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/domain/genre"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/request"
	"github.com/kailas-cloud/cinedex/internal/domain/search/source"
)

// Classifier thresholds, in characters.
const (
	SeedMinLength         = 8
	GenreMinLength        = 5
	LiveSemanticMinLength = 3
	shortQueryLength      = 3

	shortQueryWindow   = 50
	defaultQueryWindow = 20
)

var (
	discoveryPattern = regexp.MustCompile(`(?i)(best|top|popular|trending|high rated|must watch)`)
	connectorPattern = regexp.MustCompile(`(?i)movies?\s+(like|similar\s+to|recommend)|similar\s+(like|to)|recommend|me|some`)
)

// Classification is everything the plan rules look at for one query.
type Classification struct {
	Query *request.Query
	// Seed is the best title match, nil when not looked up or not found.
	Seed *movie.Movie
	// Discovery is set for superlative queries ("best", "top", ...).
	Discovery bool
	// Genres are canonical genre names recognized in the query.
	Genres []string
	// Live enables the query-embedding generator.
	Live bool
}

// Classify derives the query-only signals. The seed is resolved separately
// because it needs the store; see NeedsSeed.
func Classify(q *request.Query, live bool) Classification {
	c := Classification{
		Query:     q,
		Discovery: discoveryPattern.MatchString(q.Raw()),
		Live:      live,
	}
	if q.Len() >= GenreMinLength {
		c.Genres = genre.FromQuery(q.Raw())
	}
	return c
}

// NeedsSeed reports whether a seed title lookup should run.
func (c *Classification) NeedsSeed() bool {
	return c.Query.Len() >= SeedMinLength
}

// HasSeedVector reports whether a seed with an embedding was found.
func (c *Classification) HasSeedVector() bool {
	return c.Seed != nil && c.Seed.HasEmbedding()
}

// LexicalWindow is the fuzzy match result size: short queries are treated
// as prefixes and get a wider window.
func (c *Classification) LexicalWindow() int {
	if c.Query.Len() < shortQueryLength {
		return shortQueryWindow
	}
	return defaultQueryWindow
}

// rule binds a generator to the predicate that enables it.
type rule struct {
	source source.Source
	when   func(c *Classification) bool
}

// rules run in merge order. Boosting depends on earlier generators having
// populated the result set, so the order is part of the ranking contract.
var rules = []rule{
	{source.Semantic, func(c *Classification) bool { return c.HasSeedVector() }},
	{source.Quality, func(c *Classification) bool { return c.Discovery }},
	{source.Lexical, func(c *Classification) bool { return !c.HasSeedVector() && !c.Discovery }},
	{source.Genre, func(c *Classification) bool { return c.Query.Len() >= GenreMinLength && len(c.Genres) > 0 }},
	{source.LiveSemantic, func(c *Classification) bool { return c.Live && c.Query.Len() >= LiveSemanticMinLength }},
}

// Plan returns the generators to run, in merge order.
func (c *Classification) Plan() []source.Source {
	var plan []source.Source
	for _, r := range rules {
		if r.when(c) {
			plan = append(plan, r.source)
		}
	}
	return plan
}

// SeedTitle strips connector phrases ("movies like", "similar to", ...)
// and lowercases what is left.
func SeedTitle(raw string) string {
	return strings.ToLower(strings.TrimSpace(connectorPattern.ReplaceAllString(raw, "")))
}
