package movie

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kailas-cloud/cinedex/internal/db"
	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

func TestFindSeed_Found(t *testing.T) {
	repo, ms := newTestRepo(t)
	seed := movie.Movie{
		ID: 27205, Title: "Inception", Popularity: f64(83.9),
		Genres: []string{"Action", "Science Fiction"}, Embedding: []float32{0.25, 0.5},
	}
	ms.queryRowFn = func(_ context.Context, _ string, _ ...any) db.Row {
		return fakeRow{values: movieValues(seed, 0.9)}
	}

	got, err := repo.FindSeed(context.Background(), "inception")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != 27205 {
		t.Fatalf("FindSeed = %+v", got)
	}
	if !reflect.DeepEqual(got.Embedding, seed.Embedding) {
		t.Errorf("Embedding = %v", got.Embedding)
	}
	if !strings.Contains(ms.lastSQL, "embedding::text") {
		t.Error("seed query must load the embedding")
	}
	if ms.lastArgs[0] != "inception" || ms.lastArgs[1] != MinWordSimilarity {
		t.Errorf("args = %v", ms.lastArgs)
	}
}

func TestFindSeed_NoMatch(t *testing.T) {
	repo, _ := newTestRepo(t)

	got, err := repo.FindSeed(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil seed, got %+v", got)
	}
}

func TestFindSeed_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	cause := &db.Error{Op: db.OpQueryRow, Err: errors.New("conn reset")}
	ms.queryRowFn = func(_ context.Context, _ string, _ ...any) db.Row {
		return fakeRow{err: cause}
	}

	_, err := repo.FindSeed(context.Background(), "heat")
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestFuzzyMatch(t *testing.T) {
	repo, ms := newTestRepo(t)
	rows := rowsOf(
		movieValues(movie.Movie{ID: 1, Title: "Up", Tagline: str("Adventure is out there")}),
		movieValues(movie.Movie{ID: 2, Title: "Upgrade"}),
	)
	ms.queryFn = func(_ context.Context, _ string, _ ...any) (db.Rows, error) { return rows, nil }

	got, err := repo.FuzzyMatch(context.Background(), "up", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || *got[0].Tagline != "Adventure is out there" {
		t.Fatalf("FuzzyMatch = %+v", got)
	}
	if got[0].Embedding != nil {
		t.Error("fuzzy results must not carry embeddings")
	}
	if !rows.closed {
		t.Error("rows not closed")
	}
	if ms.lastArgs[2] != 50 {
		t.Errorf("limit arg = %v", ms.lastArgs[2])
	}
	for _, col := range []string{"title", "overview", "tagline"} {
		if !strings.Contains(ms.lastSQL, "word_similarity(lower("+col+")") {
			t.Errorf("missing %s similarity in SQL", col)
		}
	}
}

func TestNearestToSeed(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.queryFn = func(_ context.Context, _ string, _ ...any) (db.Rows, error) {
		return rowsOf(movieValues(movie.Movie{ID: 157336, Title: "Interstellar"}, 0.82)), nil
	}
	seed := &movie.Movie{ID: 27205, Genres: []string{"Action"}, Embedding: []float32{1, 0}}

	got, err := repo.NearestToSeed(context.Background(), seed, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Similarity != 0.82 || got[0].Movie.ID != 157336 {
		t.Fatalf("NearestToSeed = %+v", got)
	}
	if ms.lastArgs[0] != "[1,0]" || ms.lastArgs[1] != int64(27205) {
		t.Errorf("args = %v", ms.lastArgs)
	}
	if !strings.Contains(ms.lastSQL, "genres && $3::text[]") {
		t.Error("semantic neighbours must share a genre with the seed")
	}
}

func TestNearestToSeed_NilGenres(t *testing.T) {
	repo, ms := newTestRepo(t)
	if _, err := repo.NearestToSeed(context.Background(), &movie.Movie{ID: 1, Embedding: []float32{1}}, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g, ok := ms.lastArgs[2].([]string); !ok || g == nil {
		t.Errorf("genres arg = %#v, want empty slice", ms.lastArgs[2])
	}
}

func TestTopQuality(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.queryFn = func(_ context.Context, _ string, _ ...any) (db.Rows, error) {
		return rowsOf(movieValues(movie.Movie{ID: 278, VoteAverage: f64(8.7), VoteCount: i64(24000)})), nil
	}

	got, err := repo.TopQuality(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || *got[0].VoteCount != 24000 {
		t.Fatalf("TopQuality = %+v", got)
	}
	if !strings.Contains(ms.lastSQL, "vote_count > 500") || !strings.Contains(ms.lastSQL, "vote_average >= 7.5") {
		t.Error("quality thresholds missing from SQL")
	}
}

func TestByGenres_LowercaseComparison(t *testing.T) {
	repo, ms := newTestRepo(t)
	if _, err := repo.ByGenres(context.Background(), []string{"action"}, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(ms.lastSQL, "lower(g) = ANY($1::text[])") {
		t.Errorf("SQL = %s", ms.lastSQL)
	}
}

func TestGenrePool_SubstringMatch(t *testing.T) {
	repo, ms := newTestRepo(t)
	if _, err := repo.GenrePool(context.Background(), []string{"fiction"}, 300); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(ms.lastSQL, "position(want IN lower(g)) > 0") {
		t.Errorf("SQL = %s", ms.lastSQL)
	}
	if ms.lastArgs[1] != 300 {
		t.Errorf("limit arg = %v", ms.lastArgs[1])
	}
}

func TestPopularPool_RequiresKnownSignals(t *testing.T) {
	repo, ms := newTestRepo(t)
	if _, err := repo.PopularPool(context.Background(), 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(ms.lastSQL, "popularity IS NOT NULL") || !strings.Contains(ms.lastSQL, "release_date IS NOT NULL") {
		t.Errorf("SQL = %s", ms.lastSQL)
	}
}

func TestQueryMovies_QueryError(t *testing.T) {
	repo, ms := newTestRepo(t)
	cause := errors.New("timeout")
	ms.queryFn = func(_ context.Context, _ string, _ ...any) (db.Rows, error) { return nil, cause }

	_, err := repo.PopularPool(context.Background(), 50)
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestQueryMovies_RowsError(t *testing.T) {
	repo, ms := newTestRepo(t)
	cause := errors.New("stream broken")
	ms.queryFn = func(_ context.Context, _ string, _ ...any) (db.Rows, error) {
		return &fakeRows{err: cause}, nil
	}

	if _, err := repo.TopQuality(context.Background(), 50); !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestEmbeddingOf(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.queryRowFn = func(_ context.Context, _ string, _ ...any) db.Row {
		return fakeRow{values: []any{"[0.5,0.25]"}}
	}

	got, err := repo.EmbeddingOf(context.Background(), 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []float32{0.5, 0.25}) {
		t.Errorf("EmbeddingOf = %v", got)
	}
}

func TestEmbeddingOf_Missing(t *testing.T) {
	repo, _ := newTestRepo(t)

	got, err := repo.EmbeddingOf(context.Background(), 11)
	if err != nil || got != nil {
		t.Errorf("EmbeddingOf = %v, %v; want nil, nil", got, err)
	}
}

func TestSimilarPage_Args(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.queryFn = func(_ context.Context, _ string, _ ...any) (db.Rows, error) {
		return rowsOf(
			movieValues(movie.Movie{ID: 2}, 0.9),
			movieValues(movie.Movie{ID: 3}, 0.7),
		), nil
	}

	got, err := repo.SimilarPage(context.Background(), 1, []float32{0.5}, 24, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[1].Similarity != 0.7 {
		t.Fatalf("SimilarPage = %+v", got)
	}
	want := []any{"[0.5]", int64(1), 24, 12}
	if !reflect.DeepEqual(ms.lastArgs, want) {
		t.Errorf("args = %v, want %v", ms.lastArgs, want)
	}
}

func TestCountWithEmbedding(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.queryRowFn = func(_ context.Context, _ string, _ ...any) db.Row {
		return fakeRow{values: []any{int64(4123)}}
	}

	n, err := repo.CountWithEmbedding(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4123 {
		t.Errorf("CountWithEmbedding = %d", n)
	}
}

func TestScanMovie_BadEmbedding(t *testing.T) {
	bad := "not a vector"
	vals := movieValues(movie.Movie{ID: 9})
	vals[len(vals)-1] = &bad

	if _, err := scanMovie(fakeRow{values: vals}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNew_DefaultTable(t *testing.T) {
	repo := New(&mockStore{}, "")
	if repo.table != "movies" {
		t.Errorf("table = %q", repo.table)
	}
}
