package discovery

import (
	"cmp"
	"math"
	"slices"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// Genre feed sizes.
const (
	GenrePoolSize   = 300
	genreShuffleTop = 50
	GenreFeedSize   = 30

	// noiseSpan dominates the deterministic terms on purpose so the head of
	// the feed changes between calls.
	noiseSpan = 15
)

// NoisyScore is ln(popularity+1)*2 + (vote_average/2)*2 + ln(vote_count+1) + noise.
// Missing popularity counts as 1, vote_average as 5 and vote_count as 1.
func NoisyScore(m *movie.Movie, noise float64) float64 {
	popularity := math.Log(m.PopularityOr(1)+1) * 2
	rating := (m.VoteAverageOr(5) / 2) * 2
	votes := math.Log(m.VoteCountOr(1) + 1)
	return popularity + rating + votes + noise
}

// NoisyRankShuffle ranks the pool by NoisyScore with uniform noise in
// [0, noiseSpan), keeps the top 50, shuffles them once and returns the first 30.
func NoisyRankShuffle(pool []movie.Movie, rnd Random) []movie.Movie {
	type scored struct {
		m     movie.Movie
		score float64
	}
	ranked := make([]scored, len(pool))
	for i := range pool {
		ranked[i] = scored{m: pool[i], score: NoisyScore(&pool[i], rnd.Float64()*noiseSpan)}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	top := ranked[:min(genreShuffleTop, len(ranked))]
	shuffle(top, rnd)

	out := make([]movie.Movie, 0, min(GenreFeedSize, len(top)))
	for i := 0; i < len(top) && i < GenreFeedSize; i++ {
		out = append(out, top[i].m.WithoutEmbedding())
	}
	return out
}
