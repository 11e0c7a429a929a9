package member

import (
	"context"
	"database/sql"

	"library-service/internal/db"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, member *Member) (*Member, error)
	GetAll(ctx context.Context) ([]Member, error)
	GetByID(ctx context.Context, id int) (*Member, error)
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(database *bun.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Create(ctx context.Context, member *Member) (*Member, error) {
	_, err := r.db.NewInsert().Model(member).Returning("*").Exec(ctx)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return nil, ErrRollNumberExists
		}
		return nil, err
	}
	return member, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Member, error) {
	var members []Member
	err := r.db.NewSelect().Model(&members).Order("id ASC").Scan(ctx)
	return members, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Member, error) {
	member := new(Member)
	err := r.db.NewSelect().Model(member).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func (r *repository) Update(ctx context.Context, member *Member) error {
	result, err := r.db.NewUpdate().
		Model(member).
		Column("name", "roll_number", "email", "phone").
		WherePK().
		Exec(ctx)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return ErrRollNumberExists
		}
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.NewDelete().
		Model((*Member)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}
