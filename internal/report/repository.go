package report

import (
	"context"
	"time"

	"library-service/internal/book"
	"library-service/internal/circulation"
	"library-service/internal/member"

	"github.com/uptrace/bun"
)

type Repository interface {
	// DailyCounts reports issues opened and returns completed on the given
	// calendar day.
	DailyCounts(ctx context.Context, day time.Time) (issued, returned int, err error)
	// FineTotal sums fine amounts with paid_at in [from, to).
	FineTotal(ctx context.Context, from, to time.Time) (float64, error)
	Stats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(database *bun.DB) Repository {
	return &repository{db: database}
}

func (r *repository) DailyCounts(ctx context.Context, day time.Time) (int, int, error) {
	start := startOfDay(day)
	end := start.AddDate(0, 0, 1)

	issued, err := r.db.NewSelect().
		Model((*circulation.Issue)(nil)).
		Where("issue_date >= ?", start).
		Where("issue_date < ?", end).
		Count(ctx)
	if err != nil {
		return 0, 0, err
	}

	returned, err := r.db.NewSelect().
		Model((*circulation.Issue)(nil)).
		Where("status = ?", circulation.StatusReturned).
		Where("return_date >= ?", start).
		Where("return_date < ?", end).
		Count(ctx)
	if err != nil {
		return 0, 0, err
	}

	return issued, returned, nil
}

func (r *repository) FineTotal(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.NewSelect().
		Model((*circulation.Fine)(nil)).
		ColumnExpr("COALESCE(SUM(amount), 0)").
		Where("paid_at >= ?", from).
		Where("paid_at < ?", to).
		Scan(ctx, &total)
	return total, err
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var err error

	stats.TotalBooks, err = r.db.NewSelect().
		Model((*book.Book)(nil)).
		Where("archived = ?", false).
		Count(ctx)
	if err != nil {
		return nil, err
	}

	stats.AvailableBooks, err = r.db.NewSelect().
		Model((*book.Book)(nil)).
		Where("archived = ?", false).
		Where("status = ?", book.StatusAvailable).
		Count(ctx)
	if err != nil {
		return nil, err
	}

	stats.TotalStudents, err = r.db.NewSelect().
		Model((*member.Member)(nil)).
		Count(ctx)
	if err != nil {
		return nil, err
	}

	stats.IssuedBooks, err = r.db.NewSelect().
		Model((*circulation.Issue)(nil)).
		Where("status = ?", circulation.StatusIssued).
		Count(ctx)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
