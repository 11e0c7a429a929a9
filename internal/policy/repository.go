package policy

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

type Repository interface {
	Upsert(ctx context.Context, policy *Policy) error
	Get(ctx context.Context) (*Policy, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(database *bun.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Upsert(ctx context.Context, policy *Policy) error {
	policy.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().
		Model(policy).
		On("CONFLICT (id) DO UPDATE").
		Set("max_borrow_limit = EXCLUDED.max_borrow_limit").
		Set("borrow_duration_days = EXCLUDED.borrow_duration_days").
		Set("fine_per_day = EXCLUDED.fine_per_day").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (r *repository) Get(ctx context.Context) (*Policy, error) {
	policy := new(Policy)
	err := r.db.NewSelect().Model(policy).Where("id = ?", 1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return Default(), nil
		}
		return nil, err
	}
	return policy, nil
}
