package book

import (
	"context"
	"database/sql"
	"time"

	"library-service/internal/db"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, book *Book) (*Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id int) (*Book, error)
	Update(ctx context.Context, book *Book) error
	Archive(ctx context.Context, id int) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(database *bun.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Create(ctx context.Context, book *Book) (*Book, error) {
	book.Status = StatusFor(book.Copies)
	_, err := r.db.NewInsert().Model(book).Returning("*").Exec(ctx)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return nil, ErrISBNExists
		}
		return nil, err
	}
	return book, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Book, error) {
	var books []Book
	err := r.db.NewSelect().
		Model(&books).
		Where("archived = ?", false).
		Order("id DESC").
		Scan(ctx)
	return books, err
}

func (r *repository) GetByID(ctx context.Context, id int) (*Book, error) {
	book := new(Book)
	err := r.db.NewSelect().
		Model(book).
		Where("id = ?", id).
		Where("archived = ?", false).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (r *repository) Update(ctx context.Context, book *Book) error {
	book.Status = StatusFor(book.Copies)
	book.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(book).
		Column("isbn", "title", "author", "category", "copies", "status", "updated_at").
		WherePK().
		Where("archived = ?", false).
		Exec(ctx)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return ErrISBNExists
		}
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (r *repository) Archive(ctx context.Context, id int) error {
	result, err := r.db.NewUpdate().
		Model((*Book)(nil)).
		Set("archived = ?", true).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Where("archived = ?", false).
		Exec(ctx)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}
