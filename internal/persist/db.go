package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/r2db/catalog/internal/config"
	"go.uber.org/zap"
)

// DataAccessError is the single error kind repositories surface for any
// driver or connection failure. Callers never see pgx error types.
type DataAccessError struct {
	Stmt string
	Err  error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access: %v", e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// IsDataAccess reports whether err wraps a DataAccessError.
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}

// DB wraps a pgx connection pool and implements the query gateway: every
// statement goes through Query/QueryRow/Exec, which log failures with the
// statement and its parameters and wrap the driver error.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

func NewDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return &DB{Pool: pool, log: log}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}

func (db *DB) wrap(stmt string, args []any, err error) error {
	db.log.Error("query failed",
		zap.String("stmt", stmt),
		zap.Any("params", args),
		zap.Error(err),
	)
	return &DataAccessError{Stmt: stmt, Err: err}
}

// Query runs a SELECT and returns its rows. The caller owns rows.Close.
func (db *DB) Query(ctx context.Context, stmt string, args ...any) (pgx.Rows, error) {
	rows, err := db.Pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, db.wrap(stmt, args, err)
	}
	return rows, nil
}

// QueryRow runs a SELECT expected to yield at most one row.
func (db *DB) QueryRow(ctx context.Context, stmt string, args ...any) pgx.Row {
	return db.Pool.QueryRow(ctx, stmt, args...)
}

// Exec runs a non-SELECT statement and reports whether it succeeded.
func (db *DB) Exec(ctx context.Context, stmt string, args ...any) (pgconn.CommandTag, error) {
	tag, err := db.Pool.Exec(ctx, stmt, args...)
	if err != nil {
		return tag, db.wrap(stmt, args, err)
	}
	return tag, nil
}

// ScanErr normalizes a row-scan failure: pgx.ErrNoRows passes through so
// repositories can translate it to an absent result, anything else becomes
// a DataAccessError.
func (db *DB) ScanErr(stmt string, err error) error {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return db.wrap(stmt, nil, err)
}
