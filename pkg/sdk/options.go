package cinedex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	dsn      string
	table    string
	maxConns int32

	redisAddrs    []string
	redisPassword string

	embedder       Embedder
	embeddingModel string
	instruction    string
	exactTotal  bool
	random      Random

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// Random is the randomness source for discovery shuffles. *math/rand/v2.Rand satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// WithPostgres sets the catalog database DSN. Required.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dsn = dsn
	})
}

// WithTable overrides the catalog table name. Default: movies.
func WithTable(table string) Option {
	return optionFunc(func(c *clientConfig) {
		c.table = table
	})
}

// WithMaxConns caps the database connection pool.
func WithMaxConns(n int32) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxConns = n
	})
}

// WithRedis enables trending pool and query embedding caching.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddrs = []string{addr}
		c.redisPassword = password
	})
}

// WithEmbedder enables live query embedding for search.
// The embedder must produce vectors in the same space as the catalog.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithEmbeddingModel names the model behind the embedder. Cached query
// vectors are keyed by it, so clients sharing a Redis only reuse each other's
// vectors when they use the same model. Without it query vectors are not cached.
func WithEmbeddingModel(model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.embeddingModel = model
	})
}

// WithQueryInstruction sets a prefix prepended to every query before embedding.
func WithQueryInstruction(instruction string) Option {
	return optionFunc(func(c *clientConfig) {
		c.instruction = instruction
	})
}

// WithExactTotal makes Similar count the matching movies instead of
// reporting the fixed approximate total.
func WithExactTotal() Option {
	return optionFunc(func(c *clientConfig) {
		c.exactTotal = true
	})
}

// WithRandom sets the randomness source of the discovery feeds.
// A seeded source makes Trending and PopularByGenre reproducible.
func WithRandom(r Random) Option {
	return optionFunc(func(c *clientConfig) {
		c.random = r
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
