package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the ring storage schema. Statements are idempotent so the
// server and dbtool can both run this on startup.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRingSetsQuery := `
	CREATE TABLE IF NOT EXISTS ring_sets (
		ring_set_id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		center_lat DOUBLE PRECISION NOT NULL,
		center_lon DOUBLE PRECISION NOT NULL,
		step_degrees DOUBLE PRECISION NOT NULL,
		distances TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createRingPointsQuery := `
	CREATE TABLE IF NOT EXISTS ring_points (
		ring_set_id BIGINT NOT NULL REFERENCES ring_sets(ring_set_id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		distance_miles DOUBLE PRECISION NOT NULL,
		angle_degrees DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (ring_set_id, seq)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_ring_points_set_distance
	ON ring_points(ring_set_id, distance_miles);
	`

	statements := []string{
		createRingSetsQuery,
		createRingPointsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
