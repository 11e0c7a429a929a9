package reservation

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository backs unit tests and standalone mode.
type MemoryRepository struct {
	mu           sync.Mutex
	reservations map[int]*Reservation
	nextID       int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		reservations: make(map[int]*Reservation),
		nextID:       1,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, reservation *Reservation) (*Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reservation.ID = r.nextID
	r.nextID++
	reservation.Status = StatusPending
	reservation.CreatedAt = time.Now()

	stored := *reservation
	r.reservations[reservation.ID] = &stored
	return reservation, nil
}

func (r *MemoryRepository) GetAll(ctx context.Context) ([]Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reservations := make([]Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		reservations = append(reservations, *res)
	}
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.After(reservations[j].CreatedAt)
	})
	return reservations, nil
}

func (r *MemoryRepository) Process(ctx context.Context, id int, status, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.reservations[id]
	if !ok {
		return ErrReservationNotFound
	}
	if res.Status != StatusPending {
		return ErrAlreadyProcessed
	}

	now := time.Now()
	res.Status = status
	res.Reason = reason
	res.ProcessedAt = &now
	return nil
}
