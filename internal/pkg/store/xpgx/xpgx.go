// Package xpgx glues squirrel builders and scany struct scanning onto pgx.
package xpgx

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ougirez/billing-tracker/internal/pkg/logger"
)

// Querier is the subset shared by a pool and a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool is satisfied by *pgxpool.Pool and by pgxmock pools.
type Pool interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

type ConnectOpts struct {
	URL      string
	MaxConns int32
	// Timeout bounds the whole retry loop.
	Timeout time.Duration
}

// Connect opens a pool and pings it, retrying with exponential backoff.
func Connect(ctx context.Context, opts ConnectOpts) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = opts.Timeout

	var pool *pgxpool.Pool
	err = backoff.RetryNotify(
		func() error {
			p, err := pgxpool.NewWithConfig(ctx, cfg)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("pgxpool.NewWithConfig: %w", err))
			}
			if err = p.Ping(ctx); err != nil {
				p.Close()
				return fmt.Errorf("ping: %w", err)
			}
			pool = p
			return nil
		},
		backoff.WithContext(b, ctx),
		func(err error, next time.Duration) {
			logger.Warnf(ctx, "database not ready, retrying in %s: %s", next, err)
		},
	)
	if err != nil {
		return nil, err
	}

	return pool, nil
}

// Execx runs a statement built with squirrel.
func Execx(ctx context.Context, q Querier, query sq.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("build query: %w", err)
	}
	return q.Exec(ctx, sql, args...)
}

// Getx scans exactly one row into dest (a struct pointer or a scalar pointer).
func Getx(ctx context.Context, q Querier, dest any, query sq.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Get(ctx, q, dest, sql, args...)
}

// Selectx scans all rows into dest, a pointer to a slice.
func Selectx(ctx context.Context, q Querier, dest any, query sq.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Select(ctx, q, dest, sql, args...)
}
