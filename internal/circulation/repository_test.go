package circulation

import (
	"context"
	"testing"
	"time"

	"library-service/internal/book"
	"library-service/internal/member"
	"library-service/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	pgContainer := testdb.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.RunMigrations(t,
		(*book.Book)(nil),
		(*member.Member)(nil),
		(*Issue)(nil),
		(*Fine)(nil),
	)

	db := pgContainer.DB
	repo := NewRepository(db)
	ctx := context.Background()

	seed := func(t *testing.T, copies int) (*book.Book, *member.Member) {
		t.Helper()
		testdb.CleanupTables(t, db, "books", "students", "issues", "fines")

		b := &book.Book{ISBN: "111", Title: "Go", Copies: copies, Status: book.StatusFor(copies)}
		_, err := db.NewInsert().Model(b).Exec(ctx)
		require.NoError(t, err)

		m := &member.Member{Name: "Ana", RollNumber: "CS-01"}
		_, err = db.NewInsert().Model(m).Exec(ctx)
		require.NoError(t, err)
		return b, m
	}

	newIssue := func(b *book.Book, m *member.Member, issueDate time.Time) *Issue {
		return &Issue{
			BookID:    b.ID,
			MemberID:  m.ID,
			IssueDate: issueDate,
			DueDate:   issueDate.AddDate(0, 0, 14),
		}
	}

	t.Run("IssueDecrementsCopies", func(t *testing.T) {
		b, m := seed(t, 1)

		issue := newIssue(b, m, time.Now())
		require.NoError(t, repo.Issue(ctx, issue))
		assert.NotZero(t, issue.ID)
		assert.Equal(t, StatusIssued, issue.Status)

		var got book.Book
		require.NoError(t, db.NewSelect().Model(&got).Where("id = ?", b.ID).Scan(ctx))
		assert.Equal(t, 0, got.Copies)
		assert.Equal(t, book.StatusNotAvailable, got.Status)

		open, err := repo.HasOpenIssueForBook(ctx, b.ID)
		require.NoError(t, err)
		assert.True(t, open)
	})

	t.Run("IssueFailsWithoutCopies", func(t *testing.T) {
		b, m := seed(t, 1)

		require.NoError(t, repo.Issue(ctx, newIssue(b, m, time.Now())))
		err := repo.Issue(ctx, newIssue(b, m, time.Now()))
		assert.ErrorIs(t, err, book.ErrNoCopies)

		// The failed transaction rolled back, so exactly one issue row exists.
		count, err := db.NewSelect().Model((*Issue)(nil)).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("ReturnRestoresCopiesAndWritesFine", func(t *testing.T) {
		b, m := seed(t, 1)

		issueDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		issue := newIssue(b, m, issueDate)
		require.NoError(t, repo.Issue(ctx, issue))

		// Five days past the due date of Jan 15.
		returnDate := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
		returned, err := repo.Return(ctx, issue.ID, returnDate, 2)
		require.NoError(t, err)
		assert.Equal(t, StatusReturned, returned.Status)
		require.NotNil(t, returned.ReturnDate)

		var got book.Book
		require.NoError(t, db.NewSelect().Model(&got).Where("id = ?", b.ID).Scan(ctx))
		assert.Equal(t, 1, got.Copies)
		assert.Equal(t, book.StatusAvailable, got.Status)

		var fines []Fine
		require.NoError(t, db.NewSelect().Model(&fines).Scan(ctx))
		require.Len(t, fines, 1)
		assert.Equal(t, 10.0, fines[0].Amount)
	})

	t.Run("ReturnTwiceFails", func(t *testing.T) {
		b, m := seed(t, 1)

		issue := newIssue(b, m, time.Now())
		require.NoError(t, repo.Issue(ctx, issue))

		_, err := repo.Return(ctx, issue.ID, time.Now(), 0)
		require.NoError(t, err)

		_, err = repo.Return(ctx, issue.ID, time.Now(), 0)
		assert.ErrorIs(t, err, ErrAlreadyReturned)

		var got book.Book
		require.NoError(t, db.NewSelect().Model(&got).Where("id = ?", b.ID).Scan(ctx))
		assert.Equal(t, 1, got.Copies)
	})

	t.Run("ReturnUnknownIssue", func(t *testing.T) {
		seed(t, 1)

		_, err := repo.Return(ctx, 42, time.Now(), 0)
		assert.ErrorIs(t, err, ErrIssueNotFound)
	})

	t.Run("GetAllJoinsBookAndStudent", func(t *testing.T) {
		b, m := seed(t, 2)

		require.NoError(t, repo.Issue(ctx, newIssue(b, m, time.Now())))

		details, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, "Go", details[0].BookTitle)
		assert.Equal(t, "111", details[0].BookISBN)
		assert.Equal(t, "Ana", details[0].StudentName)
		assert.Equal(t, "CS-01", details[0].RollNumber)
	})

	t.Run("CountOpenForMember", func(t *testing.T) {
		b, m := seed(t, 3)

		for i := 0; i < 2; i++ {
			require.NoError(t, repo.Issue(ctx, newIssue(b, m, time.Now())))
		}

		count, err := repo.CountOpenForMember(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}
