// Package movie defines the catalog record the ranking engine works on.
package movie

// Movie is one catalog item. Records are written once by ingestion and are
// read-only for the ranking engine. Numeric signals are nullable because the
// source dataset has gaps; the nil value is meaningful to the scoring formulas.
type Movie struct {
	ID            int64
	Title         string
	OriginalTitle *string

	VoteAverage *float64
	VoteCount   *int64
	Popularity  *float64
	Revenue     *int64
	Budget      *int64
	Runtime     *int64

	Status           *string
	ReleaseDate      *string // YYYY-MM-DD
	Adult            *bool
	OriginalLanguage *string
	Overview         *string
	Tagline          *string
	IMDBID           *string
	Homepage         *string
	PosterPath       *string
	BackdropPath     *string

	Genres              []string
	ProductionCompanies []string
	ProductionCountries []string
	SpokenLanguages     []string
	Keywords            []string

	// Embedding is either nil or a full-length vector. It is a matching
	// artifact only and must never leave the service.
	Embedding []float32
}

// HasEmbedding reports whether the record carries a semantic vector.
func (m Movie) HasEmbedding() bool { return len(m.Embedding) > 0 }

// WithoutEmbedding returns a copy of the record with the embedding removed.
func (m *Movie) WithoutEmbedding() Movie {
	c := *m
	c.Embedding = nil
	return c
}

// The dataset encodes missing signals both as NULL and as 0, so the
// accessors below fall back to def for either.

// PopularityOr returns popularity or def when unknown.
func (m *Movie) PopularityOr(def float64) float64 {
	if m.Popularity == nil || *m.Popularity == 0 {
		return def
	}
	return *m.Popularity
}

// VoteAverageOr returns the average rating or def when unknown.
func (m *Movie) VoteAverageOr(def float64) float64 {
	if m.VoteAverage == nil || *m.VoteAverage == 0 {
		return def
	}
	return *m.VoteAverage
}

// VoteCountOr returns the rating count or def when unknown.
func (m *Movie) VoteCountOr(def float64) float64 {
	if m.VoteCount == nil || *m.VoteCount == 0 {
		return def
	}
	return float64(*m.VoteCount)
}

// Scored is a movie with a vector similarity (1 - cosine distance).
type Scored struct {
	Movie      Movie
	Similarity float64
}
