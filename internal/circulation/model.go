package circulation

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	StatusIssued   = "Issued"
	StatusReturned = "Returned"
)

// Issue is one lending of a book copy to a student. It transitions from
// Issued to Returned exactly once.
type Issue struct {
	bun.BaseModel `bun:"table:issues,alias:i"`

	ID         int        `bun:"id,pk,autoincrement" json:"id"`
	BookID     int        `bun:"book_id,notnull" json:"book_id"`
	MemberID   int        `bun:"student_id,notnull" json:"student_id"`
	IssueDate  time.Time  `bun:"issue_date,notnull" json:"issue_date"`
	DueDate    time.Time  `bun:"due_date,notnull" json:"due_date"`
	ReturnDate *time.Time `bun:"return_date,nullzero" json:"return_date,omitempty"`
	Status     string     `bun:"status,notnull,default:'Issued'" json:"status"`
	CreatedAt  time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// IssueDetail is an issue row joined with book and student columns for
// listing.
type IssueDetail struct {
	Issue `bun:",extend"`

	BookTitle   string `bun:"book_title,scanonly" json:"book_title"`
	BookISBN    string `bun:"book_isbn,scanonly" json:"isbn_number"`
	StudentName string `bun:"student_name,scanonly" json:"student_name"`
	RollNumber  string `bun:"roll_number,scanonly" json:"roll_number"`
}

// Fine is an independent ledger row, written when a book comes back past
// its due date.
type Fine struct {
	bun.BaseModel `bun:"table:fines,alias:f"`

	ID      int       `bun:"id,pk,autoincrement" json:"id"`
	IssueID int       `bun:"issue_id,notnull" json:"issue_id"`
	BookID  int       `bun:"book_id,notnull" json:"book_id"`
	Amount  float64   `bun:"amount,notnull" json:"amount"`
	PaidAt  time.Time `bun:"paid_at,notnull" json:"paid_at"`
}

// Event is published to the message broker after a successful issue or
// return.
type Event struct {
	Type      string    `json:"type"`
	IssueID   int       `json:"issue_id"`
	BookID    int       `json:"book_id"`
	MemberID  int       `json:"student_id"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventBookIssued   = "BookIssued"
	EventBookReturned = "BookReturned"
)
