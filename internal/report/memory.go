package report

import (
	"context"
	"time"

	"library-service/internal/book"
	"library-service/internal/circulation"
	"library-service/internal/member"
)

// MemoryRepository aggregates over the in-memory stores for unit tests and
// standalone mode.
type MemoryRepository struct {
	books       *book.MemoryRepository
	members     *member.MemoryRepository
	circulation *circulation.MemoryRepository
}

func NewMemoryRepository(books *book.MemoryRepository, members *member.MemoryRepository, circ *circulation.MemoryRepository) *MemoryRepository {
	return &MemoryRepository{
		books:       books,
		members:     members,
		circulation: circ,
	}
}

func (r *MemoryRepository) DailyCounts(ctx context.Context, day time.Time) (int, int, error) {
	start := startOfDay(day)
	end := start.AddDate(0, 0, 1)

	var issued, returned int
	for _, i := range r.circulation.AllIssues() {
		if !i.IssueDate.Before(start) && i.IssueDate.Before(end) {
			issued++
		}
		if i.Status == circulation.StatusReturned && i.ReturnDate != nil &&
			!i.ReturnDate.Before(start) && i.ReturnDate.Before(end) {
			returned++
		}
	}
	return issued, returned, nil
}

func (r *MemoryRepository) FineTotal(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	for _, f := range r.circulation.AllFines() {
		if !f.PaidAt.Before(from) && f.PaidAt.Before(to) {
			total += f.Amount
		}
	}
	return total, nil
}

func (r *MemoryRepository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	books, err := r.books.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalBooks = len(books)
	for _, b := range books {
		if b.Status == book.StatusAvailable {
			stats.AvailableBooks++
		}
	}

	members, err := r.members.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalStudents = len(members)

	for _, i := range r.circulation.AllIssues() {
		if i.Status == circulation.StatusIssued {
			stats.IssuedBooks++
		}
	}
	return stats, nil
}
