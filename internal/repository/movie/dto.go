package movie

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/cinedex/internal/db/postgres"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// Column list shared by every movie query. Numeric columns are cast so the
// scan targets do not depend on how ingestion declared them.
var baseColumns = []string{
	"id",
	"title",
	"original_title",
	"vote_average::float8",
	"vote_count::bigint",
	"popularity::float8",
	"revenue::bigint",
	"budget::bigint",
	"runtime::bigint",
	"status",
	"release_date::text",
	"adult",
	"original_language",
	"overview",
	"tagline",
	"imdb_id",
	"homepage",
	"poster_path",
	"backdrop_path",
	"genres",
	"production_companies",
	"production_countries",
	"spoken_languages",
	"keywords",
}

// columns renders the select list. Without embeddings the vector column is
// replaced by NULL to keep the scan layout fixed.
func columns(withEmbedding bool) string {
	emb := "NULL::text"
	if withEmbedding {
		emb = "embedding::text"
	}
	return strings.Join(baseColumns, ", ") + ", " + emb
}

type scanner interface {
	Scan(dest ...any) error
}

// movieRow mirrors the select list.
type movieRow struct {
	m         movie.Movie
	embedding *string
}

func (r *movieRow) dest() []any {
	m := &r.m
	return []any{
		&m.ID,
		&m.Title,
		&m.OriginalTitle,
		&m.VoteAverage,
		&m.VoteCount,
		&m.Popularity,
		&m.Revenue,
		&m.Budget,
		&m.Runtime,
		&m.Status,
		&m.ReleaseDate,
		&m.Adult,
		&m.OriginalLanguage,
		&m.Overview,
		&m.Tagline,
		&m.IMDBID,
		&m.Homepage,
		&m.PosterPath,
		&m.BackdropPath,
		&m.Genres,
		&m.ProductionCompanies,
		&m.ProductionCountries,
		&m.SpokenLanguages,
		&m.Keywords,
		&r.embedding,
	}
}

func (r *movieRow) toDomain() (movie.Movie, error) {
	if r.embedding != nil {
		vec, err := postgres.ParseVector(*r.embedding)
		if err != nil {
			return movie.Movie{}, fmt.Errorf("movie %d embedding: %w", r.m.ID, err)
		}
		r.m.Embedding = vec
	}
	return r.m, nil
}

func scanMovie(s scanner, extra ...any) (movie.Movie, error) {
	var row movieRow
	if err := s.Scan(append(row.dest(), extra...)...); err != nil {
		return movie.Movie{}, fmt.Errorf("scan movie: %w", err)
	}
	return row.toDomain()
}
