package discovery

import (
	"math"
	"slices"

	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// Tier sampling weights for the trending feed.
const (
	topTierShare = 0.5
	midTierShare = 0.35
	lowTierShare = 0.15
)

// TierQuotas returns how many movies are drawn from each popularity tier.
// The quotas round up, so together they may exceed limit.
func TierQuotas(limit int) (top, mid, low int) {
	l := float64(limit)
	return int(math.Ceil(l * topTierShare)),
		int(math.Ceil(l * midTierShare)),
		int(math.Ceil(l * lowTierShare))
}

// TieredShuffle samples a popularity-ordered pool in three tiers: the first
// 2*limit, the next 2*limit and the rest. Each tier is shuffled, a weighted
// quota is drawn from each, and the draw is shuffled again and cut to limit.
func TieredShuffle(pool []movie.Movie, limit int, rnd Random) []movie.Movie {
	picked := pickTiers(pool, limit, rnd)
	shuffle(picked, rnd)
	if len(picked) > limit {
		picked = picked[:limit]
	}
	for i := range picked {
		picked[i] = picked[i].WithoutEmbedding()
	}
	return picked
}

func pickTiers(pool []movie.Movie, limit int, rnd Random) []movie.Movie {
	topEnd := min(2*limit, len(pool))
	midEnd := min(4*limit, len(pool))

	tiers := [][]movie.Movie{
		slices.Clone(pool[:topEnd]),
		slices.Clone(pool[topEnd:midEnd]),
		slices.Clone(pool[midEnd:]),
	}
	qt, qm, ql := TierQuotas(limit)
	quotas := []int{qt, qm, ql}

	picked := make([]movie.Movie, 0, qt+qm+ql)
	for i, tier := range tiers {
		shuffle(tier, rnd)
		picked = append(picked, tier[:min(quotas[i], len(tier))]...)
	}
	return picked
}
