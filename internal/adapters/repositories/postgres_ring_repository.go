package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"range-ring-service/internal/domain"
	"range-ring-service/internal/platform/obs"
	"range-ring-service/internal/ports"
)

// Postgres-backed implementation of the RingSetRepository port.
type PostgresRingSetRepository struct{ DB *sql.DB }

func NewPostgresRingSetRepository(db *sql.DB) *PostgresRingSetRepository {
	return &PostgresRingSetRepository{DB: db}
}

// Persist the set header and its points inside one transaction.
func (r *PostgresRingSetRepository) SaveRingSet(ctx context.Context, set *domain.RingSet) (_ int64, err error) {
	defer obs.Time(ctx, "ringsets.repo.Save")(&err)

	if r.DB == nil {
		return 0, errors.New("ring set repository: DB is nil")
	}
	if set == nil {
		return 0, errors.New("save ring set: set is nil")
	}

	// The distance list is stored verbatim, duplicates included, so saved
	// sets read back exactly as requested.
	distancesJSON, err := json.Marshal(set.Distances)
	if err != nil {
		return 0, fmt.Errorf("save ring set: encode distances: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("save ring set: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertSetQuery := `
	INSERT INTO ring_sets (name, center_lat, center_lon, step_degrees, distances, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ring_set_id;
	`

	var id int64
	err = tx.QueryRowContext(
		ctx, insertSetQuery,
		set.Name, set.Center.Lat, set.Center.Lon, set.StepDegrees, string(distancesJSON), set.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save ring set: insert header: %w", err)
	}

	insertPointQuery := `
	INSERT INTO ring_points (ring_set_id, seq, distance_miles, angle_degrees, lat, lon)
	VALUES ($1, $2, $3, $4, $5, $6);
	`
	stmt, err := tx.PrepareContext(ctx, insertPointQuery)
	if err != nil {
		return 0, fmt.Errorf("save ring set: prepare point insert: %w", err)
	}
	defer stmt.Close()

	for seq, p := range set.Points {
		if _, err := stmt.ExecContext(ctx, id, seq, p.Distance, p.Angle, p.Latitude, p.Longitude); err != nil {
			return 0, fmt.Errorf("save ring set: insert point seq=%d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("save ring set: commit tx: %w", err)
	}

	return id, nil
}

// Retrieve one set with its points in stored order.
func (r *PostgresRingSetRepository) GetRingSet(ctx context.Context, id int64) (_ *domain.RingSet, err error) {
	defer obs.Time(ctx, "ringsets.repo.Get")(&err)

	if r.DB == nil {
		return nil, errors.New("ring set repository: DB is nil")
	}

	headerQuery := `
	SELECT name, center_lat, center_lon, step_degrees, distances, created_at
	FROM ring_sets
	WHERE ring_set_id = $1;
	`

	set := &domain.RingSet{ID: id}
	var distancesJSON []byte
	err = r.DB.QueryRowContext(ctx, headerQuery, id).Scan(
		&set.Name, &set.Center.Lat, &set.Center.Lon, &set.StepDegrees, &distancesJSON, &set.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get ring set %d: %w", id, ports.ErrRingSetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get ring set %d: query header: %w", id, err)
	}

	if len(distancesJSON) > 0 {
		if err := json.Unmarshal(distancesJSON, &set.Distances); err != nil {
			return nil, fmt.Errorf("get ring set %d: decode distances: %w", id, err)
		}
	}

	pointsQuery := `
	SELECT distance_miles, angle_degrees, lat, lon
	FROM ring_points
	WHERE ring_set_id = $1
	ORDER BY seq;
	`

	rows, err := r.DB.QueryContext(ctx, pointsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get ring set %d: query points: %w", id, err)
	}
	defer rows.Close()

	set.Points = make([]domain.GeneratedPoint, 0, 64)
	for rows.Next() {
		var p domain.GeneratedPoint
		if err := rows.Scan(&p.Distance, &p.Angle, &p.Latitude, &p.Longitude); err != nil {
			return nil, fmt.Errorf("get ring set %d: scan point: %w", id, err)
		}
		set.Points = append(set.Points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get ring set %d: row iteration: %w", id, err)
	}

	return set, nil
}

// List saved sets, newest first.
func (r *PostgresRingSetRepository) ListRingSets(ctx context.Context, limit int) (_ []ports.RingSetSummary, err error) {
	defer obs.Time(ctx, "ringsets.repo.List")(&err)

	if r.DB == nil {
		return nil, errors.New("ring set repository: DB is nil")
	}
	if limit <= 0 {
		return []ports.RingSetSummary{}, nil
	}

	listQuery := `
	SELECT s.ring_set_id, s.name, s.center_lat, s.center_lon, s.step_degrees, s.created_at,
		COUNT(p.ring_set_id)
	FROM ring_sets s
	LEFT JOIN ring_points p ON p.ring_set_id = s.ring_set_id
	GROUP BY s.ring_set_id
	ORDER BY s.created_at DESC, s.ring_set_id DESC
	LIMIT $1;
	`

	rows, err := r.DB.QueryContext(ctx, listQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("list ring sets: query: %w", err)
	}
	defer rows.Close()

	summaries := make([]ports.RingSetSummary, 0, limit)
	for rows.Next() {
		var s ports.RingSetSummary
		err := rows.Scan(
			&s.ID, &s.Name, &s.Center.Lat, &s.Center.Lon, &s.StepDegrees, &s.CreatedAt,
			&s.PointCount,
		)
		if err != nil {
			return nil, fmt.Errorf("list ring sets: scan row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ring sets: row iteration: %w", err)
	}

	return summaries, nil
}
