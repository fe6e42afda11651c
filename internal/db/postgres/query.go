package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kailas-cloud/cinedex/internal/db"
)

// Query runs sql and returns its rows. The caller must Close them.
func (s *Store) Query(ctx context.Context, sql string, args ...any) (db.Rows, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	return &wrappedRows{rows: rows}, nil
}

// QueryRow runs sql expecting at most one row.
func (s *Store) QueryRow(ctx context.Context, sql string, args ...any) db.Row {
	return wrappedRow{row: s.pool.QueryRow(ctx, sql, args...)}
}

// wrappedRows maps driver errors onto db errors.
type wrappedRows struct {
	rows pgx.Rows
}

func (r *wrappedRows) Next() bool { return r.rows.Next() }
func (r *wrappedRows) Close()     { r.rows.Close() }

func (r *wrappedRows) Scan(dest ...any) error {
	if err := r.rows.Scan(dest...); err != nil {
		return &db.Error{Op: db.OpScan, Err: err}
	}
	return nil
}

func (r *wrappedRows) Err() error {
	if err := r.rows.Err(); err != nil {
		return &db.Error{Op: db.OpQuery, Err: err}
	}
	return nil
}

type wrappedRow struct {
	row pgx.Row
}

func (r wrappedRow) Scan(dest ...any) error {
	return mapRowErr(r.row.Scan(dest...))
}

func mapRowErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return db.ErrNoRows
	default:
		return &db.Error{Op: db.OpQueryRow, Err: err}
	}
}
