package circulation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"library-service/internal/book"
	"library-service/internal/member"
	"library-service/internal/policy"
)

var (
	ErrIssueNotFound      = errors.New("issue record not found")
	ErrAlreadyReturned    = errors.New("book already returned")
	ErrInvalidInput       = errors.New("invalid input")
	ErrBorrowLimitReached = errors.New("student has reached the borrow limit")
)

// Publisher sends circulation events to the message broker. Implemented by
// messaging.Producer; a nil Publisher disables publishing.
type Publisher interface {
	SendMessage(value interface{}) error
}

type BookStore interface {
	GetByID(ctx context.Context, id int) (*book.Book, error)
}

type MemberStore interface {
	GetByID(ctx context.Context, id int) (*member.Member, error)
}

type PolicyStore interface {
	GetPolicy(ctx context.Context) (*policy.Policy, error)
}

type IssueRequest struct {
	BookID    int       `json:"book_id"`
	MemberID  int       `json:"student_id"`
	IssueDate time.Time `json:"-"`
}

type Service interface {
	IssueBook(ctx context.Context, req IssueRequest) (*Issue, error)
	ReturnBook(ctx context.Context, issueID int, returnDate time.Time) (*Issue, error)
	GetAllIssues(ctx context.Context) ([]IssueDetail, error)
}

type service struct {
	repo      Repository
	books     BookStore
	members   MemberStore
	policies  PolicyStore
	publisher Publisher
	logger    *slog.Logger
}

func NewService(repo Repository, books BookStore, members MemberStore, policies PolicyStore, publisher Publisher, logger *slog.Logger) Service {
	return &service{
		repo:      repo,
		books:     books,
		members:   members,
		policies:  policies,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *service) IssueBook(ctx context.Context, req IssueRequest) (*Issue, error) {
	if req.BookID <= 0 || req.MemberID <= 0 {
		return nil, ErrInvalidInput
	}

	// Existence checks up front give precise errors; the transactional
	// conditional decrement in the repository is the real availability guard.
	b, err := s.books.GetByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if b.Copies <= 0 {
		return nil, book.ErrNoCopies
	}
	if _, err := s.members.GetByID(ctx, req.MemberID); err != nil {
		return nil, err
	}

	p, err := s.policies.GetPolicy(ctx)
	if err != nil {
		return nil, err
	}
	if p.MaxBorrowLimit > 0 {
		open, err := s.repo.CountOpenForMember(ctx, req.MemberID)
		if err != nil {
			return nil, err
		}
		if open >= p.MaxBorrowLimit {
			return nil, ErrBorrowLimitReached
		}
	}

	issueDate := req.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	issue := &Issue{
		BookID:    req.BookID,
		MemberID:  req.MemberID,
		IssueDate: issueDate,
		DueDate:   issueDate.AddDate(0, 0, p.BorrowDurationDays),
	}
	if err := s.repo.Issue(ctx, issue); err != nil {
		return nil, err
	}

	s.publish(ctx, Event{
		Type:      EventBookIssued,
		IssueID:   issue.ID,
		BookID:    issue.BookID,
		MemberID:  issue.MemberID,
		Timestamp: issue.IssueDate,
	})
	return issue, nil
}

func (s *service) ReturnBook(ctx context.Context, issueID int, returnDate time.Time) (*Issue, error) {
	if issueID <= 0 {
		return nil, ErrInvalidInput
	}
	if returnDate.IsZero() {
		returnDate = time.Now()
	}

	p, err := s.policies.GetPolicy(ctx)
	if err != nil {
		return nil, err
	}

	issue, err := s.repo.Return(ctx, issueID, returnDate, p.FinePerDay)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, Event{
		Type:      EventBookReturned,
		IssueID:   issue.ID,
		BookID:    issue.BookID,
		MemberID:  issue.MemberID,
		Timestamp: returnDate,
	})
	return issue, nil
}

func (s *service) GetAllIssues(ctx context.Context) ([]IssueDetail, error) {
	return s.repo.GetAll(ctx)
}

// publish is best effort: a broker outage never fails the request.
func (s *service) publish(ctx context.Context, event Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.SendMessage(event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish circulation event", "type", event.Type, "error", err)
	}
}
