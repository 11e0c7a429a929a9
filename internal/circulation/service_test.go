package circulation

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"library-service/internal/book"
	"library-service/internal/member"
	"library-service/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *capturePublisher) SendMessage(value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, value.(Event))
	return nil
}

type testEnv struct {
	books     *book.MemoryRepository
	members   *member.MemoryRepository
	circ      *MemoryRepository
	policies  policy.Service
	publisher *capturePublisher
	service   Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	books := book.NewMemoryRepository()
	members := member.NewMemoryRepository()
	circ := NewMemoryRepository(books, members)
	policies := policy.NewService(policy.NewMemoryRepository())
	publisher := &capturePublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		books:     books,
		members:   members,
		circ:      circ,
		policies:  policies,
		publisher: publisher,
		service:   NewService(circ, books, members, policies, publisher, logger),
	}
}

func (e *testEnv) addBook(t *testing.T, isbn string, copies int) *book.Book {
	t.Helper()
	b, err := e.books.Create(context.Background(), &book.Book{ISBN: isbn, Title: "Title " + isbn, Copies: copies})
	require.NoError(t, err)
	return b
}

func (e *testEnv) addMember(t *testing.T, roll string) *member.Member {
	t.Helper()
	m, err := e.members.Create(context.Background(), &member.Member{Name: "Student " + roll, RollNumber: roll})
	require.NoError(t, err)
	return m
}

func TestIssueAndReturnLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b := env.addBook(t, "111", 1)
	m := env.addMember(t, "R-001")

	issue, err := env.service.IssueBook(ctx, IssueRequest{BookID: b.ID, MemberID: m.ID})
	require.NoError(t, err)
	assert.Equal(t, StatusIssued, issue.Status)
	assert.Equal(t, b.ID, issue.BookID)
	assert.Equal(t, m.ID, issue.MemberID)
	assert.Equal(t, issue.IssueDate.AddDate(0, 0, policy.DefaultBorrowDurationDays), issue.DueDate)

	// Last copy went out, so the book flips to Not Available.
	got, err := env.books.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Copies)
	assert.Equal(t, book.StatusNotAvailable, got.Status)

	details, err := env.service.GetAllIssues(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Title 111", details[0].BookTitle)
	assert.Equal(t, "111", details[0].BookISBN)
	assert.Equal(t, "R-001", details[0].RollNumber)

	returned, err := env.service.ReturnBook(ctx, issue.ID, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, StatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnDate)

	got, err = env.books.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Copies)
	assert.Equal(t, book.StatusAvailable, got.Status)
}

func TestIssueBookWithoutCopies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b := env.addBook(t, "222", 0)
	m := env.addMember(t, "R-002")

	_, err := env.service.IssueBook(ctx, IssueRequest{BookID: b.ID, MemberID: m.ID})
	assert.ErrorIs(t, err, book.ErrNoCopies)

	// The failed issue must not touch the counter or leave a record behind.
	got, err := env.books.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Copies)

	details, err := env.service.GetAllIssues(ctx)
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestIssueUnknownBookOrStudent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	m := env.addMember(t, "R-003")
	_, err := env.service.IssueBook(ctx, IssueRequest{BookID: 99, MemberID: m.ID})
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	b := env.addBook(t, "333", 1)
	_, err = env.service.IssueBook(ctx, IssueRequest{BookID: b.ID, MemberID: 99})
	assert.ErrorIs(t, err, member.ErrMemberNotFound)

	_, err = env.service.IssueBook(ctx, IssueRequest{BookID: 0, MemberID: m.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReturnBookTwice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b := env.addBook(t, "444", 1)
	m := env.addMember(t, "R-004")

	issue, err := env.service.IssueBook(ctx, IssueRequest{BookID: b.ID, MemberID: m.ID})
	require.NoError(t, err)

	_, err = env.service.ReturnBook(ctx, issue.ID, time.Time{})
	require.NoError(t, err)

	_, err = env.service.ReturnBook(ctx, issue.ID, time.Time{})
	assert.ErrorIs(t, err, ErrAlreadyReturned)

	// The second return must not increment the counter again.
	got, err := env.books.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Copies)
}

func TestReturnUnknownIssue(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.ReturnBook(context.Background(), 42, time.Time{})
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

func TestBorrowLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b := env.addBook(t, "555", 10)
	m := env.addMember(t, "R-005")

	for i := 0; i < policy.DefaultMaxBorrowLimit; i++ {
		_, err := env.service.IssueBook(ctx, IssueRequest{BookID: b.ID, MemberID: m.ID})
		require.NoError(t, err)
	}

	_, err := env.service.IssueBook(ctx, IssueRequest{BookID: b.ID, MemberID: m.ID})
	assert.ErrorIs(t, err, ErrBorrowLimitReached)

	// Returning one book frees a slot again.
	details, err := env.service.GetAllIssues(ctx)
	require.NoError(t, err)
	_, err = env.service.ReturnBook(ctx, details[0].ID, time.Time{})
	require.NoError(t, err)

	_, err = env.service.IssueBook(ctx, IssueRequest{BookID: b.ID, MemberID: m.ID})
	assert.NoError(t, err)
}

func TestOverdueReturnRecordsFine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b := env.addBook(t, "666", 1)
	m := env.addMember(t, "R-006")

	issueDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	issue, err := env.service.IssueBook(ctx, IssueRequest{BookID: b.ID, MemberID: m.ID, IssueDate: issueDate})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), issue.DueDate)

	// Five days past the due date at the default fine of 1 per day.
	returnDate := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	_, err = env.service.ReturnBook(ctx, issue.ID, returnDate)
	require.NoError(t, err)

	fines := env.circ.AllFines()
	require.Len(t, fines, 1)
	assert.Equal(t, issue.ID, fines[0].IssueID)
	assert.Equal(t, 5.0, fines[0].Amount)
}

func TestOnTimeReturnRecordsNoFine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b := env.addBook(t, "777", 1)
	m := env.addMember(t, "R-007")

	issueDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	issue, err := env.service.IssueBook(ctx, IssueRequest{BookID: b.ID, MemberID: m.ID, IssueDate: issueDate})
	require.NoError(t, err)

	_, err = env.service.ReturnBook(ctx, issue.ID, issue.DueDate)
	require.NoError(t, err)

	assert.Empty(t, env.circ.AllFines())
}

func TestConcurrentIssueOfLastCopy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b := env.addBook(t, "888", 1)

	const workers = 8
	members := make([]*member.Member, workers)
	for i := range members {
		m, err := env.members.Create(ctx, &member.Member{Name: "S", RollNumber: "C-" + string(rune('A'+i))})
		require.NoError(t, err)
		members[i] = m
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.service.IssueBook(ctx, IssueRequest{BookID: b.ID, MemberID: members[i].ID})
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, book.ErrNoCopies)
		}
	}
	assert.Equal(t, 1, succeeded)

	got, err := env.books.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Copies)
	assert.Equal(t, book.StatusNotAvailable, got.Status)
}

func TestCirculationEventsPublished(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b := env.addBook(t, "999", 1)
	m := env.addMember(t, "R-009")

	issue, err := env.service.IssueBook(ctx, IssueRequest{BookID: b.ID, MemberID: m.ID})
	require.NoError(t, err)
	_, err = env.service.ReturnBook(ctx, issue.ID, time.Time{})
	require.NoError(t, err)

	require.Len(t, env.publisher.events, 2)
	assert.Equal(t, EventBookIssued, env.publisher.events[0].Type)
	assert.Equal(t, EventBookReturned, env.publisher.events[1].Type)
	assert.Equal(t, issue.ID, env.publisher.events[1].IssueID)
}
