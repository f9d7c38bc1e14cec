package services

import (
	"context"
	"fmt"
	"log"
	"range-ring-service/internal/domain"
	"range-ring-service/internal/platform/metrics"
	"range-ring-service/internal/ports"
	"sync"
	"time"
)

// maxConcurrentRings bounds the fan-out across per-distance generation calls.
const maxConcurrentRings = 5

type RingSetRequest struct {
	Center      domain.Coordinate
	Distances   []float64
	StepDegrees float64 // 0 selects DefaultStepDegrees
	Name        string
}

// GenerateRingSet validates the batch and produces one ring per requested
// distance around the center, concatenated in request order (then bearing
// order within each ring).
//
// Rings are independent of one another, so they are computed with a bounded
// fan-out and assembled in request order afterwards. The batch is rejected
// before any work happens if a single distance is invalid: a set either
// succeeds completely or produces no points at all.
func GenerateRingSet(ctx context.Context, req RingSetRequest, cache ports.RingCache) (*domain.RingSet, error) {
	if err := req.Center.Validate(); err != nil {
		return nil, fmt.Errorf("generate ring set: %w", err)
	}

	step := req.StepDegrees
	if step == 0 {
		step = DefaultStepDegrees
	}
	if err := validateStep(step); err != nil {
		return nil, fmt.Errorf("generate ring set: %w", err)
	}

	for _, d := range req.Distances {
		if err := validateDistance(d); err != nil {
			return nil, fmt.Errorf("generate ring set: %w", err)
		}
	}

	set := &domain.RingSet{
		Name:        req.Name,
		Center:      req.Center,
		StepDegrees: step,
		Distances:   append([]float64(nil), req.Distances...),
		CreatedAt:   time.Now().UTC(),
		Points:      []domain.GeneratedPoint{},
	}
	if len(req.Distances) == 0 {
		return set, nil
	}

	rings := make([][]domain.GeneratedPoint, len(req.Distances))
	errs := make([]error, len(req.Distances))

	sem := make(chan struct{}, maxConcurrentRings)
	var wg sync.WaitGroup

	for i, d := range req.Distances {
		wg.Add(1)
		go func(idx int, miles float64) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			rings[idx], errs[idx] = ringFor(ctx, req.Center, miles, step, cache)
		}(i, d)
	}
	wg.Wait()

	total := 0
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("generate ring set: distance %v mi: %w", req.Distances[i], err)
		}
		total += len(rings[i])
	}

	set.Points = make([]domain.GeneratedPoint, 0, total)
	for _, ring := range rings {
		set.Points = append(set.Points, ring...)
	}

	return set, nil
}

// ringFor returns one ring, consulting the cache first when one is wired.
// Cache failures are logged and degrade to recomputation; a broken cache
// never blocks generation, which is purely local arithmetic.
func ringFor(
	ctx context.Context,
	center domain.Coordinate,
	miles float64,
	step float64,
	cache ports.RingCache,
) ([]domain.GeneratedPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cache != nil {
		points, ok, err := cache.GetRing(ctx, center, miles, step)
		switch {
		case err != nil:
			log.Printf("ring cache read failed: %v", err)
		case ok:
			metrics.CacheHitsTotal.Inc()
			return points, nil
		default:
			metrics.CacheMissesTotal.Inc()
		}
	}

	points, err := GenerateRing(center, miles, step)
	if err != nil {
		return nil, err
	}
	metrics.RingsGeneratedTotal.Inc()
	metrics.PointsGeneratedTotal.Add(float64(len(points)))

	if cache != nil {
		if err := cache.PutRing(ctx, center, miles, step, points); err != nil {
			log.Printf("ring cache write failed: %v", err)
		}
	}

	return points, nil
}
