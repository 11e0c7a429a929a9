package circulation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"library-service/internal/book"

	"github.com/uptrace/bun"
)

type Repository interface {
	// Issue decrements the book's copy counter and inserts the issue row in
	// one transaction. Fails with book.ErrNoCopies when no copy is left.
	Issue(ctx context.Context, issue *Issue) error
	// Return marks the issue returned, restores the copy counter and, when
	// finePerDay > 0 and the book is late, writes a fine row. All in one
	// transaction.
	Return(ctx context.Context, issueID int, returnDate time.Time, finePerDay float64) (*Issue, error)
	GetAll(ctx context.Context) ([]IssueDetail, error)
	CountOpenForMember(ctx context.Context, memberID int) (int, error)
	HasOpenIssueForBook(ctx context.Context, bookID int) (bool, error)
	HasOpenIssueForMember(ctx context.Context, memberID int) (bool, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(database *bun.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Issue(ctx context.Context, issue *Issue) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// Conditional decrement: the WHERE clause is the availability guard,
		// so concurrent issues of the last copy cannot both succeed.
		result, err := tx.NewUpdate().
			Model((*book.Book)(nil)).
			Set("copies = copies - 1").
			Set("status = CASE WHEN copies - 1 > 0 THEN ? ELSE ? END", book.StatusAvailable, book.StatusNotAvailable).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", issue.BookID).
			Where("copies > 0").
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
			return book.ErrNoCopies
		}

		issue.Status = StatusIssued
		_, err = tx.NewInsert().Model(issue).Returning("*").Exec(ctx)
		return err
	})
}

func (r *repository) Return(ctx context.Context, issueID int, returnDate time.Time, finePerDay float64) (*Issue, error) {
	issue := new(Issue)
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(issue).
			Where("id = ?", issueID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrIssueNotFound
			}
			return err
		}
		if issue.Status != StatusIssued {
			return ErrAlreadyReturned
		}

		issue.ReturnDate = &returnDate
		issue.Status = StatusReturned
		if _, err := tx.NewUpdate().
			Model(issue).
			Column("return_date", "status").
			WherePK().
			Exec(ctx); err != nil {
			return err
		}

		if _, err := tx.NewUpdate().
			Model((*book.Book)(nil)).
			Set("copies = copies + 1").
			Set("status = ?", book.StatusAvailable).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", issue.BookID).
			Exec(ctx); err != nil {
			return err
		}

		if late := daysLate(issue.DueDate, returnDate); late > 0 && finePerDay > 0 {
			fine := &Fine{
				IssueID: issue.ID,
				BookID:  issue.BookID,
				Amount:  float64(late) * finePerDay,
				PaidAt:  returnDate,
			}
			if _, err := tx.NewInsert().Model(fine).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

func (r *repository) GetAll(ctx context.Context) ([]IssueDetail, error) {
	var details []IssueDetail
	err := r.db.NewSelect().
		Model(&details).
		ColumnExpr("i.*").
		ColumnExpr("b.title AS book_title").
		ColumnExpr("b.isbn AS book_isbn").
		ColumnExpr("s.name AS student_name").
		ColumnExpr("s.roll_number AS roll_number").
		Join("JOIN books AS b ON b.id = i.book_id").
		Join("JOIN students AS s ON s.id = i.student_id").
		Order("i.issue_date DESC").
		Scan(ctx)
	return details, err
}

func (r *repository) CountOpenForMember(ctx context.Context, memberID int) (int, error) {
	return r.db.NewSelect().
		Model((*Issue)(nil)).
		Where("student_id = ?", memberID).
		Where("status = ?", StatusIssued).
		Count(ctx)
}

func (r *repository) HasOpenIssueForBook(ctx context.Context, bookID int) (bool, error) {
	return r.db.NewSelect().
		Model((*Issue)(nil)).
		Where("book_id = ?", bookID).
		Where("status = ?", StatusIssued).
		Exists(ctx)
}

func (r *repository) HasOpenIssueForMember(ctx context.Context, memberID int) (bool, error) {
	return r.db.NewSelect().
		Model((*Issue)(nil)).
		Where("student_id = ?", memberID).
		Where("status = ?", StatusIssued).
		Exists(ctx)
}

// daysLate counts whole days between the due date and the return date,
// on date granularity.
func daysLate(due, returned time.Time) int {
	d := truncateToDay(due)
	r := truncateToDay(returned)
	if !r.After(d) {
		return 0
	}
	return int(r.Sub(d).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
