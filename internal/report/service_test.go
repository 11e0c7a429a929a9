package report

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"library-service/internal/book"
	"library-service/internal/circulation"
	"library-service/internal/member"
	"library-service/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportEnv struct {
	books   *book.MemoryRepository
	members *member.MemoryRepository
	circ    circulation.Service
	service Service
}

func newReportEnv(t *testing.T) *reportEnv {
	t.Helper()

	books := book.NewMemoryRepository()
	members := member.NewMemoryRepository()
	circRepo := circulation.NewMemoryRepository(books, members)
	policies := policy.NewService(policy.NewMemoryRepository())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &reportEnv{
		books:   books,
		members: members,
		circ:    circulation.NewService(circRepo, books, members, policies, nil, logger),
		service: NewService(NewMemoryRepository(books, members, circRepo)),
	}
}

func (e *reportEnv) seed(t *testing.T) (*book.Book, *member.Member) {
	t.Helper()
	ctx := context.Background()
	b, err := e.books.Create(ctx, &book.Book{ISBN: "900-1", Title: "Seed", Copies: 5})
	require.NoError(t, err)
	m, err := e.members.Create(ctx, &member.Member{Name: "Ana", RollNumber: "CS-01"})
	require.NoError(t, err)
	return b, m
}

func TestDailyReport(t *testing.T) {
	env := newReportEnv(t)
	ctx := context.Background()
	b, m := env.seed(t)

	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	nextDay := day.AddDate(0, 0, 1)

	issue, err := env.circ.IssueBook(ctx, circulation.IssueRequest{BookID: b.ID, MemberID: m.ID, IssueDate: day})
	require.NoError(t, err)
	_, err = env.circ.ReturnBook(ctx, issue.ID, day)
	require.NoError(t, err)

	// Activity on the following day must not leak into the report.
	_, err = env.circ.IssueBook(ctx, circulation.IssueRequest{BookID: b.ID, MemberID: m.ID, IssueDate: nextDay})
	require.NoError(t, err)

	rep, err := env.service.DailyReport(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", rep.Date)
	assert.Equal(t, 1, rep.Issued)
	assert.Equal(t, 1, rep.Returned)

	rep, err = env.service.DailyReport(ctx, nextDay)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Issued)
	assert.Equal(t, 0, rep.Returned)
}

func TestFineReport(t *testing.T) {
	env := newReportEnv(t)
	ctx := context.Background()
	b, m := env.seed(t)

	// Due on Jan 15, returned five days late at the default fine of 1 per day.
	issueDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	returnDate := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	issue, err := env.circ.IssueBook(ctx, circulation.IssueRequest{BookID: b.ID, MemberID: m.ID, IssueDate: issueDate})
	require.NoError(t, err)
	_, err = env.circ.ReturnBook(ctx, issue.ID, returnDate)
	require.NoError(t, err)

	rep, err := env.service.FineReport(ctx, issueDate, returnDate)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", rep.From)
	assert.Equal(t, "2024-01-20", rep.To)
	assert.Equal(t, 5.0, rep.Total)

	// The fine day itself is included even when "to" equals the payment day.
	rep, err = env.service.FineReport(ctx, returnDate, returnDate)
	require.NoError(t, err)
	assert.Equal(t, 5.0, rep.Total)

	// A range before the payment sees nothing.
	rep, err = env.service.FineReport(ctx, issueDate, issueDate.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, 0.0, rep.Total)
}

func TestStats(t *testing.T) {
	env := newReportEnv(t)
	ctx := context.Background()
	b, m := env.seed(t)

	_, err := env.books.Create(ctx, &book.Book{ISBN: "900-2", Title: "Empty", Copies: 0})
	require.NoError(t, err)

	_, err = env.circ.IssueBook(ctx, circulation.IssueRequest{BookID: b.ID, MemberID: m.ID})
	require.NoError(t, err)

	stats, err := env.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBooks)
	assert.Equal(t, 1, stats.AvailableBooks)
	assert.Equal(t, 1, stats.TotalStudents)
	assert.Equal(t, 1, stats.IssuedBooks)
}
