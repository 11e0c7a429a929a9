package reservation

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, reservation *Reservation) (*Reservation, error)
	GetAll(ctx context.Context) ([]Reservation, error)
	// Process transitions a pending reservation to approved or rejected.
	Process(ctx context.Context, id int, status, reason string) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(database *bun.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Create(ctx context.Context, reservation *Reservation) (*Reservation, error) {
	reservation.Status = StatusPending
	_, err := r.db.NewInsert().Model(reservation).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Reservation, error) {
	var reservations []Reservation
	err := r.db.NewSelect().Model(&reservations).Order("created_at DESC").Scan(ctx)
	return reservations, err
}

func (r *repository) Process(ctx context.Context, id int, status, reason string) error {
	result, err := r.db.NewUpdate().
		Model((*Reservation)(nil)).
		Set("status = ?", status).
		Set("processed_reason = ?", reason).
		Set("processed_at = ?", time.Now()).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Exec(ctx)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		exists, err := r.db.NewSelect().
			Model((*Reservation)(nil)).
			Where("id = ?", id).
			Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyProcessed
		}
		return ErrReservationNotFound
	}
	return nil
}
