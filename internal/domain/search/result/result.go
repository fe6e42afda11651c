package result

import (
	"math"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/source"
)

// Candidate is a movie scored by one or more generators for one query.
type Candidate struct {
	movie      movie.Movie
	rank       float64
	similarity *float64
	sources    []source.Source
}

// New creates a candidate introduced by src with a base rank contribution.
func New(m movie.Movie, src source.Source, rank float64) Candidate {
	return Candidate{movie: m, rank: rank, sources: []source.Source{src}}
}

// SetSimilarity attaches a vector similarity (1 - distance).
func (c *Candidate) SetSimilarity(sim float64) {
	c.similarity = &sim
}

// Boost adds delta to the rank contribution and records src as agreeing.
func (c *Candidate) Boost(src source.Source, delta float64) {
	c.rank += delta
	for _, s := range c.sources {
		if s == src {
			return
		}
	}
	c.sources = append(c.sources, src)
}

// Movie returns the candidate's record.
func (c *Candidate) Movie() movie.Movie { return c.movie }

// ID returns the record identifier.
func (c *Candidate) ID() int64 { return c.movie.ID }

// Rank returns the accumulated rank contribution.
func (c *Candidate) Rank() float64 { return c.rank }

// Similarity returns the vector similarity, if a vector generator set one.
func (c *Candidate) Similarity() *float64 { return c.similarity }

// Sources returns the generators that contributed, in contribution order.
func (c *Candidate) Sources() []source.Source { return c.sources }

// Score is the fusion ordering key:
// rank + popularity*0.01 + vote_average*0.2 + ln(vote_count+1)*0.15.
func (c *Candidate) Score() float64 {
	return c.rank +
		c.movie.PopularityOr(0)*0.01 +
		c.movie.VoteAverageOr(0)*0.2 +
		math.Log(c.movie.VoteCountOr(1)+1)*0.15
}

// Strip drops the embedding so the candidate can leave the service.
func (c *Candidate) Strip() {
	c.movie = c.movie.WithoutEmbedding()
}

// Page is one page of "movies like this" results.
type Page struct {
	Page  int
	Limit int
	Total int
	Items []Candidate
}

// EmptyPage is returned when the target has no embedding.
func EmptyPage(page, limit int) Page {
	return Page{Page: page, Limit: limit, Total: 0, Items: []Candidate{}}
}
