package circulation

import (
	"context"
	"sort"
	"sync"
	"time"

	"library-service/internal/book"
	"library-service/internal/member"
)

// MemoryRepository backs unit tests and standalone mode. It shares the
// in-memory catalog so the copy counter stays the single source of truth,
// the same way the SQL implementation shares the books table.
type MemoryRepository struct {
	mu      sync.Mutex
	books   *book.MemoryRepository
	members *member.MemoryRepository
	issues  map[int]*Issue
	fines   []Fine
	nextID  int
}

func NewMemoryRepository(books *book.MemoryRepository, members *member.MemoryRepository) *MemoryRepository {
	return &MemoryRepository{
		books:   books,
		members: members,
		issues:  make(map[int]*Issue),
		nextID:  1,
	}
}

func (r *MemoryRepository) Issue(ctx context.Context, issue *Issue) error {
	// AdjustCopies is the availability guard; it fails without touching the
	// counter when no copy is left.
	if _, err := r.books.AdjustCopies(ctx, issue.BookID, -1); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	issue.ID = r.nextID
	r.nextID++
	issue.Status = StatusIssued
	issue.CreatedAt = time.Now()

	stored := *issue
	r.issues[issue.ID] = &stored
	return nil
}

func (r *MemoryRepository) Return(ctx context.Context, issueID int, returnDate time.Time, finePerDay float64) (*Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	issue, ok := r.issues[issueID]
	if !ok {
		return nil, ErrIssueNotFound
	}
	if issue.Status != StatusIssued {
		return nil, ErrAlreadyReturned
	}

	if _, err := r.books.AdjustCopies(ctx, issue.BookID, 1); err != nil && err != book.ErrBookNotFound {
		return nil, err
	}

	issue.ReturnDate = &returnDate
	issue.Status = StatusReturned

	if late := daysLate(issue.DueDate, returnDate); late > 0 && finePerDay > 0 {
		r.fines = append(r.fines, Fine{
			ID:      len(r.fines) + 1,
			IssueID: issue.ID,
			BookID:  issue.BookID,
			Amount:  float64(late) * finePerDay,
			PaidAt:  returnDate,
		})
	}

	copy := *issue
	return &copy, nil
}

func (r *MemoryRepository) GetAll(ctx context.Context) ([]IssueDetail, error) {
	r.mu.Lock()
	issues := make([]Issue, 0, len(r.issues))
	for _, i := range r.issues {
		issues = append(issues, *i)
	}
	r.mu.Unlock()

	sort.Slice(issues, func(i, j int) bool { return issues[i].IssueDate.After(issues[j].IssueDate) })

	details := make([]IssueDetail, 0, len(issues))
	for _, i := range issues {
		detail := IssueDetail{Issue: i}
		if b, err := r.books.GetByID(ctx, i.BookID); err == nil {
			detail.BookTitle = b.Title
			detail.BookISBN = b.ISBN
		}
		if m, err := r.members.GetByID(ctx, i.MemberID); err == nil {
			detail.StudentName = m.Name
			detail.RollNumber = m.RollNumber
		}
		details = append(details, detail)
	}
	return details, nil
}

func (r *MemoryRepository) CountOpenForMember(ctx context.Context, memberID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, i := range r.issues {
		if i.MemberID == memberID && i.Status == StatusIssued {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepository) HasOpenIssueForBook(ctx context.Context, bookID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, i := range r.issues {
		if i.BookID == bookID && i.Status == StatusIssued {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) HasOpenIssueForMember(ctx context.Context, memberID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, i := range r.issues {
		if i.MemberID == memberID && i.Status == StatusIssued {
			return true, nil
		}
	}
	return false, nil
}

// AllIssues returns a snapshot of every issue row. Used by the in-memory
// report repository.
func (r *MemoryRepository) AllIssues() []Issue {
	r.mu.Lock()
	defer r.mu.Unlock()

	issues := make([]Issue, 0, len(r.issues))
	for _, i := range r.issues {
		issues = append(issues, *i)
	}
	return issues
}

// AllFines returns a snapshot of the fine ledger. Used by the in-memory
// report repository.
func (r *MemoryRepository) AllFines() []Fine {
	r.mu.Lock()
	defer r.mu.Unlock()

	fines := make([]Fine, len(r.fines))
	copy(fines, r.fines)
	return fines
}
