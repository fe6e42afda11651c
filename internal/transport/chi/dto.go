package chi

import (
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
	"github.com/kailas-cloud/cinedex/internal/domain/search/result"
)

// movieResponse is the public shape of a catalog record. The embedding never leaves the service.
type movieResponse struct {
	ID                  int64    `json:"id"`
	Title               string   `json:"title"`
	OriginalTitle       *string  `json:"original_title"`
	VoteAverage         *float64 `json:"vote_average"`
	VoteCount           *int64   `json:"vote_count"`
	Popularity          *float64 `json:"popularity"`
	Revenue             *int64   `json:"revenue"`
	Budget              *int64   `json:"budget"`
	Runtime             *int64   `json:"runtime"`
	Status              *string  `json:"status"`
	ReleaseDate         *string  `json:"release_date"`
	Adult               *bool    `json:"adult"`
	OriginalLanguage    *string  `json:"original_language"`
	Overview            *string  `json:"overview"`
	Tagline             *string  `json:"tagline"`
	IMDBID              *string  `json:"imdb_id"`
	Homepage            *string  `json:"homepage"`
	PosterPath          *string  `json:"poster_path"`
	BackdropPath        *string  `json:"backdrop_path"`
	Genres              []string `json:"genres"`
	ProductionCompanies []string `json:"production_companies"`
	ProductionCountries []string `json:"production_countries"`
	SpokenLanguages     []string `json:"spoken_languages"`
	Keywords            []string `json:"keywords"`
	SimilarityScore     *float64 `json:"similarity_score,omitempty"`
}

type similarPageResponse struct {
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int             `json:"total"`
	Data  []movieResponse `json:"data"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func movieToResponse(m *movie.Movie) movieResponse {
	return movieResponse{
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

func moviesToResponse(ms []movie.Movie) []movieResponse {
	out := make([]movieResponse, len(ms))
	for i := range ms {
		out[i] = movieToResponse(&ms[i])
	}
	return out
}

func candidateToResponse(c *result.Candidate) movieResponse {
	m := c.Movie()
	resp := movieToResponse(&m)
	resp.SimilarityScore = c.Similarity()
	return resp
}

func candidatesToResponse(cs []result.Candidate) []movieResponse {
	out := make([]movieResponse, len(cs))
	for i := range cs {
		out[i] = candidateToResponse(&cs[i])
	}
	return out
}

func pageToResponse(p *result.Page) similarPageResponse {
	return similarPageResponse{
		Page:  p.Page,
		Limit: p.Limit,
		Total: p.Total,
		Data:  candidatesToResponse(p.Items),
	}
}
