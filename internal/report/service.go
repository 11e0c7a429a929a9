package report

import (
	"context"
	"time"
)

type Service interface {
	DailyReport(ctx context.Context, day time.Time) (*DailyReport, error)
	FineReport(ctx context.Context, from, to time.Time) (*FineReport, error)
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) DailyReport(ctx context.Context, day time.Time) (*DailyReport, error) {
	if day.IsZero() {
		day = time.Now()
	}
	issued, returned, err := s.repo.DailyCounts(ctx, day)
	if err != nil {
		return nil, err
	}
	return &DailyReport{
		Date:     day.Format("2006-01-02"),
		Issued:   issued,
		Returned: returned,
	}, nil
}

func (s *service) FineReport(ctx context.Context, from, to time.Time) (*FineReport, error) {
	if from.IsZero() {
		from = time.Unix(0, 0)
	}
	if to.IsZero() {
		to = time.Now()
	}
	// The range is inclusive of the "to" day.
	toEnd := startOfDay(to).AddDate(0, 0, 1)

	total, err := s.repo.FineTotal(ctx, from, toEnd)
	if err != nil {
		return nil, err
	}
	return &FineReport{
		From:  from.Format("2006-01-02"),
		To:    to.Format("2006-01-02"),
		Total: total,
	}, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}
