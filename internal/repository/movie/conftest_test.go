package movie

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/kailas-cloud/cinedex/internal/db"
	"github.com/kailas-cloud/cinedex/internal/db/postgres"
	"github.com/kailas-cloud/cinedex/internal/domain/movie"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	queryFn    func(ctx context.Context, sql string, args ...any) (db.Rows, error)
	queryRowFn func(ctx context.Context, sql string, args ...any) db.Row

	lastSQL  string
	lastArgs []any
}

func (m *mockStore) Query(ctx context.Context, sql string, args ...any) (db.Rows, error) {
	m.lastSQL, m.lastArgs = sql, args
	if m.queryFn != nil {
		return m.queryFn(ctx, sql, args...)
	}
	return &fakeRows{}, nil
}

func (m *mockStore) QueryRow(ctx context.Context, sql string, args ...any) db.Row {
	m.lastSQL, m.lastArgs = sql, args
	if m.queryRowFn != nil {
		return m.queryRowFn(ctx, sql, args...)
	}
	return fakeRow{err: db.ErrNoRows}
}

// fakeRows replays fixed column values into scan destinations.
type fakeRows struct {
	data   [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error { return assign(dest, r.data[r.pos-1]) }
func (r *fakeRows) Err() error             { return r.err }
func (r *fakeRows) Close()                 { r.closed = true }

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.values)
}

func assign(dest, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations, %d values", len(dest), len(values))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(values[i])
		if !v.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("scan column %d: %s into %s", i, v.Type(), target.Type())
		}
		target.Set(v)
	}
	return nil
}

// movieValues renders m in select-list order, followed by extra columns.
func movieValues(m movie.Movie, extra ...any) []any {
	var emb *string
	if m.Embedding != nil {
		s := postgres.FormatVector(m.Embedding)
		emb = &s
	}
	vals := []any{
		m.ID, m.Title, m.OriginalTitle,
		m.VoteAverage, m.VoteCount, m.Popularity, m.Revenue, m.Budget, m.Runtime,
		m.Status, m.ReleaseDate, m.Adult, m.OriginalLanguage, m.Overview, m.Tagline,
		m.IMDBID, m.Homepage, m.PosterPath, m.BackdropPath,
		m.Genres, m.ProductionCompanies, m.ProductionCountries, m.SpokenLanguages, m.Keywords,
		emb,
	}
	return append(vals, extra...)
}

func rowsOf(values ...[]any) *fakeRows {
	return &fakeRows{data: values}
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, ""), ms
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }
func str(v string) *string   { return &v }
