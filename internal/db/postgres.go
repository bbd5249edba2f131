package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/hostel/internal/config"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/dberrors"
	"github.com/yigit/hostel/internal/pkg/logger"
)

// Querier is the statement surface shared by the pool and an open transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool is what the application needs from a connection pool.
// *pgxpool.Pool satisfies it, and so does pgxmock's pool in tests.
type Pool interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresDB database connection structure
type PostgresDB struct {
	Pool Pool
}

// New wraps an existing pool.
func New(pool Pool) *PostgresDB {
	return &PostgresDB{Pool: pool}
}

// NewPostgresDB creates a new PostgreSQL connection pool
func NewPostgresDB(cfg *config.Config) (*PostgresDB, error) {
	// Create a context with timeout for connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	// One desktop client drives the whole data layer; a small pool is enough.
	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)

	maxLifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}
	poolConfig.MaxConnLifetime = maxLifetime

	// Add health check for connections
	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Unhealthy connection detected")
			return false
		}
		return true
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &PostgresDB{Pool: pool}, nil
}

// Close closing method
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Connected reports whether a live pool is attached.
func (db *PostgresDB) Connected() bool {
	_, offline := db.Pool.(offlinePool)
	return db.Pool != nil && !offline
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// WithTransaction runs fn inside one transaction. It commits when fn returns
// nil and rolls back every statement otherwise, including on panic.
func (db *PostgresDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return txError("begin", err)
	}

	// Rollback on panic
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("%w (rollback error: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return txError("commit", err)
	}

	return nil
}

// txError wraps a Begin or Commit failure. A lost connection is reported as
// apperrors.ErrConnectionFailed, the same as a failed statement.
func txError(step string, err error) error {
	if errors.Is(err, apperrors.ErrConnectionFailed) {
		return err
	}
	if dberrors.IsConnectionError(err) {
		return fmt.Errorf("failed to %s transaction: %w: %w", step, apperrors.ErrConnectionFailed, err)
	}
	return fmt.Errorf("failed to %s transaction: %w", step, err)
}
