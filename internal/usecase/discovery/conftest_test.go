package discovery

import (
	"context"
	"sync"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

type mockRepo struct {
	popular     []movie.Movie
	popularErr  error
	popularN    int
	popularHits int

	genre       []movie.Movie
	genreErr    error
	genreParams []string
	genreLimit  int
}

func (m *mockRepo) PopularPool(_ context.Context, n int) ([]movie.Movie, error) {
	m.popularHits++
	m.popularN = n
	if m.popularErr != nil {
		return nil, m.popularErr
	}
	if len(m.popular) > n {
		return m.popular[:n], nil
	}
	return m.popular, nil
}

func (m *mockRepo) GenrePool(_ context.Context, genres []string, limit int) ([]movie.Movie, error) {
	m.genreParams = genres
	m.genreLimit = limit
	return m.genre, m.genreErr
}

type memPoolCache struct {
	mu     sync.Mutex
	pools  map[int][]movie.Movie
	putErr error
}

func newMemPoolCache() *memPoolCache {
	return &memPoolCache{pools: map[int][]movie.Movie{}}
}

func (c *memPoolCache) Get(_ context.Context, size int) ([]movie.Movie, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pools[size]
	return p, ok
}

func (c *memPoolCache) Put(_ context.Context, size int, pool []movie.Movie) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.putErr != nil {
		return c.putErr
	}
	c.pools[size] = pool
	return nil
}

// identityRandom adds no noise and makes every shuffle a no-op.
type identityRandom struct{}

func (identityRandom) Float64() float64 { return 0 }
func (identityRandom) IntN(n int) int   { return n - 1 }

// noiseRandom returns fixed noise values in order and never swaps.
type noiseRandom struct {
	noise []float64
	pos   int
}

func (r *noiseRandom) Float64() float64 {
	v := r.noise[r.pos%len(r.noise)]
	r.pos++
	return v
}

func (r *noiseRandom) IntN(n int) int { return n - 1 }

type mockRecorder struct {
	pools map[string]int
}

func (m *mockRecorder) ObservePool(feed string, n int) {
	if m.pools == nil {
		m.pools = map[string]int{}
	}
	m.pools[feed] = n
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

// ranked returns n movies with ids 1..n in descending popularity.
func ranked(n int) []movie.Movie {
	out := make([]movie.Movie, n)
	for i := range out {
		out[i] = movie.Movie{
			ID:          int64(i + 1),
			Popularity:  f64(float64(1000 - i)),
			VoteAverage: f64(7),
			VoteCount:   i64(100),
			Embedding:   []float32{0.5},
		}
	}
	return out
}

func idsOf(ms []movie.Movie) []int64 {
	out := make([]int64, len(ms))
	for i := range ms {
		out[i] = ms[i].ID
	}
	return out
}
