package movie

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/cinedex/internal/db"
	"github.com/kailas-cloud/cinedex/internal/db/postgres"
	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// MinWordSimilarity is the pg_trgm word_similarity cutoff for title and text matches.
const MinWordSimilarity = 0.25

// store is the consumer interface for catalog queries (ISP).
type store interface {
	Query(ctx context.Context, sql string, args ...any) (db.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) db.Row
}

// Repo runs the catalog queries behind every candidate generator and feed.
type Repo struct {
	store store
	table string
}

// New creates a movie repository over the given table (default "movies").
func New(s store, table string) *Repo {
	if table == "" {
		table = "movies"
	}
	return &Repo{store: s, table: table}
}

// FindSeed returns the title that best fuzzy-matches base, ties broken by
// popularity. Returns nil when no title clears MinWordSimilarity.
func (r *Repo) FindSeed(ctx context.Context, base string) (*movie.Movie, error) {
	sql := fmt.Sprintf(`
SELECT %s, word_similarity(lower(title), $1) AS sim
FROM %s
WHERE word_similarity(lower(title), $1) > $2
ORDER BY sim DESC, popularity DESC NULLS LAST
LIMIT 1`, columns(true), r.table)

	var sim float64
	m, err := scanMovie(r.store.QueryRow(ctx, sql, base, MinWordSimilarity), &sim)
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return nil, nil
		}
		return nil, storeError("find seed", err)
	}
	return &m, nil
}

// FuzzyMatch scores title, overview and tagline independently and keeps the best.
func (r *Repo) FuzzyMatch(ctx context.Context, q string, limit int) ([]movie.Movie, error) {
	sql := fmt.Sprintf(`
WITH scored AS (
	SELECT *, GREATEST(
		word_similarity(lower(title), lower($1)),
		COALESCE(word_similarity(lower(overview), lower($1)), 0),
		COALESCE(word_similarity(lower(tagline), lower($1)), 0)
	) AS score
	FROM %s
)
SELECT %s
FROM scored
WHERE score > $2
ORDER BY score DESC
LIMIT $3`, r.table, columns(false))

	return r.queryMovies(ctx, "fuzzy match", sql, q, MinWordSimilarity, limit)
}

// NearestToSeed returns the seed's vector neighbours that share at least one genre.
func (r *Repo) NearestToSeed(ctx context.Context, seed *movie.Movie, limit int) ([]movie.Scored, error) {
	sql := fmt.Sprintf(`
SELECT %s, 1 - (embedding <=> $1::vector) AS similarity
FROM %s
WHERE embedding IS NOT NULL
  AND id != $2
  AND genres && $3::text[]
ORDER BY embedding <=> $1::vector
LIMIT $4`, columns(false), r.table)

	genres := seed.Genres
	if genres == nil {
		genres = []string{}
	}
	return r.queryScored(ctx, "nearest to seed", sql,
		postgres.FormatVector(seed.Embedding), seed.ID, genres, limit)
}

// NearestToVector returns the vector neighbours of an arbitrary embedding.
func (r *Repo) NearestToVector(ctx context.Context, vec []float32, limit int) ([]movie.Scored, error) {
	sql := fmt.Sprintf(`
SELECT %s, 1 - (embedding <=> $1::vector) AS similarity
FROM %s
WHERE embedding IS NOT NULL
ORDER BY embedding <=> $1::vector
LIMIT $2`, columns(false), r.table)

	return r.queryScored(ctx, "nearest to vector", sql, postgres.FormatVector(vec), limit)
}

// TopQuality returns well-rated movies with many votes ordered by
// vote_average*ln(vote_count+1) + popularity*0.5.
func (r *Repo) TopQuality(ctx context.Context, limit int) ([]movie.Movie, error) {
	sql := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE vote_count > 500
  AND vote_average >= 7.5
ORDER BY (vote_average * ln(vote_count + 1) + popularity * 0.5) DESC NULLS LAST
LIMIT $1`, columns(false), r.table)

	return r.queryMovies(ctx, "top quality", sql, limit)
}

// ByGenres returns the most popular movies having any of genres.
// genres must be lowercase; catalog values are compared lowercased.
func (r *Repo) ByGenres(ctx context.Context, genres []string, limit int) ([]movie.Movie, error) {
	sql := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE EXISTS (SELECT 1 FROM unnest(genres) g WHERE lower(g) = ANY($1::text[]))
ORDER BY popularity DESC NULLS LAST
LIMIT $2`, columns(false), r.table)

	return r.queryMovies(ctx, "by genres", sql, genres, limit)
}

// PopularPool returns the n most popular movies with a known popularity and
// release date.
func (r *Repo) PopularPool(ctx context.Context, n int) ([]movie.Movie, error) {
	sql := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE popularity IS NOT NULL
  AND release_date IS NOT NULL
ORDER BY popularity DESC
LIMIT $1`, columns(false), r.table)

	return r.queryMovies(ctx, "popular pool", sql, n)
}

// GenrePool returns up to limit popular movies where any catalog genre
// contains any of the requested (lowercase) names.
func (r *Repo) GenrePool(ctx context.Context, genres []string, limit int) ([]movie.Movie, error) {
	sql := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE EXISTS (
	SELECT 1 FROM unnest(genres) g, unnest($1::text[]) want
	WHERE position(want IN lower(g)) > 0
)
  AND popularity IS NOT NULL
ORDER BY popularity DESC
LIMIT $2`, columns(false), r.table)

	return r.queryMovies(ctx, "genre pool", sql, genres, limit)
}

// EmbeddingOf returns the stored embedding of id, or nil when the movie does
// not exist or has none.
func (r *Repo) EmbeddingOf(ctx context.Context, id int64) ([]float32, error) {
	sql := fmt.Sprintf(`SELECT embedding::text FROM %s WHERE id = $1 AND embedding IS NOT NULL`, r.table)

	var text string
	if err := r.store.QueryRow(ctx, sql, id).Scan(&text); err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return nil, nil
		}
		return nil, storeError(fmt.Sprintf("embedding of %d", id), err)
	}
	vec, err := postgres.ParseVector(text)
	if err != nil {
		return nil, fmt.Errorf("embedding of %d: %w", id, err)
	}
	return vec, nil
}

// SimilarPage returns one page of movies ordered by distance from vec, excluding id.
func (r *Repo) SimilarPage(ctx context.Context, id int64, vec []float32, offset, limit int) ([]movie.Scored, error) {
	sql := fmt.Sprintf(`
SELECT %s, 1 - (embedding <=> $1::vector) AS similarity
FROM %s
WHERE embedding IS NOT NULL
  AND id != $2
ORDER BY embedding <=> $1::vector
OFFSET $3
LIMIT $4`, columns(false), r.table)

	return r.queryScored(ctx, "similar page", sql, postgres.FormatVector(vec), id, offset, limit)
}

// CountWithEmbedding counts movies with an embedding other than excludeID.
func (r *Repo) CountWithEmbedding(ctx context.Context, excludeID int64) (int, error) {
	sql := fmt.Sprintf(`SELECT count(*) FROM %s WHERE embedding IS NOT NULL AND id != $1`, r.table)

	var n int64
	if err := r.store.QueryRow(ctx, sql, excludeID).Scan(&n); err != nil {
		return 0, storeError("count with embedding", err)
	}
	return int(n), nil
}

func (r *Repo) queryMovies(ctx context.Context, op, sql string, args ...any) ([]movie.Movie, error) {
	rows, err := r.store.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError(op, err)
	}
	defer rows.Close()

	var out []movie.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, storeError(op, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err)
	}
	return out, nil
}

func (r *Repo) queryScored(ctx context.Context, op, sql string, args ...any) ([]movie.Scored, error) {
	rows, err := r.store.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError(op, err)
	}
	defer rows.Close()

	var out []movie.Scored
	for rows.Next() {
		var sim float64
		m, err := scanMovie(rows, &sim)
		if err != nil {
			return nil, storeError(op, err)
		}
		out = append(out, movie.Scored{Movie: m, Similarity: sim})
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err)
	}
	return out, nil
}

// storeError marks a failed catalog query as ErrStoreUnavailable.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
