// Package db opens and configures the Postgres connection pool.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"range-ring-service/internal/config"
	"time"
)

// Open connects to Postgres via the pgx stdlib driver and verifies the
// connection. Pool sizing is tunable through DB_MAX_OPEN_CONNS,
// DB_MAX_IDLE_CONNS and DB_CONN_MAX_LIFETIME.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	pool, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	pool.SetMaxOpenConns(config.GetInt("DB_MAX_OPEN_CONNS", 10))
	pool.SetMaxIdleConns(config.GetInt("DB_MAX_IDLE_CONNS", 10))
	pool.SetConnMaxLifetime(config.GetDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db open: verify postgres connection: %w", err)
	}

	return pool, nil
}
