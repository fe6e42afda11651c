package cinedex

import (
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
)

// Movie is a catalog record as returned to callers. Embeddings never leave the engine.
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
	ReleaseDate      *string
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

	// Similarity is set for semantic matches only.
	Similarity *float64
}

// SimilarPage is one page of "movies like this".
type SimilarPage struct {
	Page   int
	Limit  int
	Total  int
	Movies []Movie
}

func movieFromDomain(m *movie.Movie) Movie {
	return Movie{
		ID:                  m.ID,
		Title:               m.Title,
		OriginalTitle:       m.OriginalTitle,
		VoteAverage:         m.VoteAverage,
		VoteCount:           m.VoteCount,
		Popularity:          m.Popularity,
		Revenue:             m.Revenue,
		Budget:              m.Budget,
		Runtime:             m.Runtime,
		Status:              m.Status,
		ReleaseDate:         m.ReleaseDate,
		Adult:               m.Adult,
		OriginalLanguage:    m.OriginalLanguage,
		Overview:            m.Overview,
		Tagline:             m.Tagline,
		IMDBID:              m.IMDBID,
		Homepage:            m.Homepage,
		PosterPath:          m.PosterPath,
		BackdropPath:        m.BackdropPath,
		Genres:              m.Genres,
		ProductionCompanies: m.ProductionCompanies,
		ProductionCountries: m.ProductionCountries,
		SpokenLanguages:     m.SpokenLanguages,
		Keywords:            m.Keywords,
	}
}

func moviesFromDomain(ms []movie.Movie) []Movie {
	out := make([]Movie, len(ms))
	for i := range ms {
		out[i] = movieFromDomain(&ms[i])
	}
	return out
}

func candidatesFromDomain(cs []result.Candidate) []Movie {
	out := make([]Movie, len(cs))
	for i := range cs {
		m := cs[i].Movie()
		out[i] = movieFromDomain(&m)
		out[i].Similarity = cs[i].Similarity()
	}
	return out
}

func pageFromDomain(p *result.Page) SimilarPage {
	return SimilarPage{
		Page:   p.Page,
		Limit:  p.Limit,
		Total:  p.Total,
		Movies: candidatesFromDomain(p.Items),
	}
}
