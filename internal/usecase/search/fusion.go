package search

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
	"github.com/kailas-cloud/cinedex/internal/domain/search/source"
)

// MaxResults caps the free-text search response.
const MaxResults = 54

// ResultSet accumulates candidates keyed by movie id across generators.
// The first generator to introduce an id owns the entry; later ones can only
// apply their merge rule to it.
type ResultSet struct {
	order   []int64
	entries map[int64]*result.Candidate
}

// NewResultSet creates an empty set.
func NewResultSet() *ResultSet {
	return &ResultSet{entries: make(map[int64]*result.Candidate)}
}

// Merge applies one generator's batch. Call in plan order only.
func (s *ResultSet) Merge(src source.Source, rule MergeRule, batch []result.Candidate) {
	for i := range batch {
		id := batch[i].ID()
		if existing, ok := s.entries[id]; ok {
			if rule.BoostExisting {
				existing.Boost(src, rule.Boost)
			}
			continue
		}
		c := batch[i]
		s.entries[id] = &c
		s.order = append(s.order, id)
	}
}

// Len returns the number of distinct movies.
func (s *ResultSet) Len() int { return len(s.order) }

// Get returns the entry for id.
func (s *ResultSet) Get(id int64) (result.Candidate, bool) {
	c, ok := s.entries[id]
	if !ok {
		return result.Candidate{}, false
	}
	return *c, true
}

// Ranked strips embeddings, sorts by composite score descending and returns
// at most limit entries. Ties keep insertion order.
func (s *ResultSet) Ranked(limit int) []result.Candidate {
	out := make([]result.Candidate, 0, len(s.order))
	for _, id := range s.order {
		c := *s.entries[id]
		c.Strip()
		out = append(out, c)
	}

	slices.SortStableFunc(out, func(a, b result.Candidate) int {
		return cmp.Compare(b.Score(), a.Score())
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
