package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

type ConnectOptions struct {
	// PingTimeout bounds each connection attempt.
	PingTimeout time.Duration
	// Attempts > 1 retries while Postgres is still starting (docker compose).
	Attempts     int
	RetryBackoff time.Duration

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func DefaultConnectOptions() ConnectOptions {
	return ConnectOptions{
		PingTimeout:     5 * time.Second,
		Attempts:        5,
		RetryBackoff:    time.Second,
		MaxOpenConns:    25,
		MaxIdleConns:    25,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// Connect opens the pool and waits until Postgres answers a ping.
func Connect(ctx context.Context, dsn string, opts ConnectOptions, logger *slog.Logger) (*sqlx.DB, error) {
	conn, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	conn.SetMaxOpenConns(opts.MaxOpenConns)
	conn.SetMaxIdleConns(opts.MaxIdleConns)
	conn.SetConnMaxLifetime(opts.ConnMaxLifetime)

	attempts := max(opts.Attempts, 1)
	backoff := opts.RetryBackoff
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = ping(ctx, conn, opts.PingTimeout); err == nil {
			return conn, nil
		}
		if attempt == attempts {
			break
		}
		logger.Warn("database not ready, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("backoff", backoff),
			slog.Any("error", err))

		if waitErr := sleepCtx(ctx, backoff); waitErr != nil {
			err = waitErr
			break
		}
		backoff *= 2
	}

	if closeErr := conn.Close(); closeErr != nil {
		logger.Error("failed to close database handle after ping error", slog.Any("error", closeErr))
	}
	return nil, fmt.Errorf("database unreachable after %d attempt(s): %w", attempts, err)
}

func ping(ctx context.Context, conn *sqlx.DB, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return conn.PingContext(pingCtx)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
