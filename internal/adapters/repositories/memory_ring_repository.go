package repositories

import (
	"context"
	"fmt"
	"range-ring-service/internal/domain"
	"range-ring-service/internal/ports"
	"sync"
)

// MemoryRingSetRepository keeps ring sets in process memory. It backs handler
// tests and local experiments where Postgres would be overkill.
type MemoryRingSetRepository struct {
	mu     sync.Mutex
	nextID int64
	sets   map[int64]*domain.RingSet
}

func NewMemoryRingSetRepository() *MemoryRingSetRepository {
	return &MemoryRingSetRepository{nextID: 1, sets: map[int64]*domain.RingSet{}}
}

func (r *MemoryRingSetRepository) SaveRingSet(_ context.Context, set *domain.RingSet) (int64, error) {
	if set == nil {
		return 0, fmt.Errorf("save ring set: set is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++

	stored := *set
	stored.ID = id
	stored.Points = append([]domain.GeneratedPoint(nil), set.Points...)
	stored.Distances = append([]float64(nil), set.Distances...)
	r.sets[id] = &stored

	return id, nil
}

func (r *MemoryRingSetRepository) GetRingSet(_ context.Context, id int64) (*domain.RingSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.sets[id]
	if !ok {
		return nil, fmt.Errorf("get ring set %d: %w", id, ports.ErrRingSetNotFound)
	}

	out := *set
	out.Points = append([]domain.GeneratedPoint(nil), set.Points...)
	out.Distances = append([]float64(nil), set.Distances...)
	return &out, nil
}

func (r *MemoryRingSetRepository) ListRingSets(_ context.Context, limit int) ([]ports.RingSetSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	summaries := make([]ports.RingSetSummary, 0, len(r.sets))
	// Newest first matches the SQL adapter; IDs are assigned in save order.
	for id := r.nextID - 1; id >= 1 && len(summaries) < limit; id-- {
		set, ok := r.sets[id]
		if !ok {
			continue
		}
		summaries = append(summaries, ports.RingSetSummary{
			ID:          set.ID,
			Name:        set.Name,
			Center:      set.Center,
			StepDegrees: set.StepDegrees,
			PointCount:  len(set.Points),
			CreatedAt:   set.CreatedAt,
		})
	}

	return summaries, nil
}
