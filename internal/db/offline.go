package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/hostel/internal/pkg/apperrors"
)

// Offline returns a handle whose every statement fails with
// apperrors.ErrConnectionFailed. The application starts with it when the
// server cannot be reached, so each operation reports "connection failed"
// instead of crashing.
func Offline() *PostgresDB {
	return &PostgresDB{Pool: offlinePool{}}
}

type offlinePool struct{}

func (offlinePool) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, apperrors.ErrConnectionFailed
}

func (offlinePool) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, apperrors.ErrConnectionFailed
}

func (offlinePool) QueryRow(context.Context, string, ...any) pgx.Row {
	return offlineRow{}
}

func (offlinePool) Begin(context.Context) (pgx.Tx, error) {
	return nil, apperrors.ErrConnectionFailed
}

func (offlinePool) Ping(context.Context) error {
	return apperrors.ErrConnectionFailed
}

func (offlinePool) Close() {}

type offlineRow struct{}

func (offlineRow) Scan(...any) error {
	return apperrors.ErrConnectionFailed
}
