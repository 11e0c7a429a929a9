package reservation

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Reservation struct {
	bun.BaseModel `bun:"table:reservations,alias:r"`

	ID          int        `bun:"id,pk,autoincrement" json:"id"`
	MemberID    int        `bun:"student_id,notnull" json:"student_id" validate:"required"`
	BookID      int        `bun:"book_id,notnull" json:"book_id" validate:"required"`
	Status      string     `bun:"status,notnull,default:'pending'" json:"status"`
	Reason      string     `bun:"processed_reason" json:"reason,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	ProcessedAt *time.Time `bun:"processed_at,nullzero" json:"processed_at,omitempty"`
}
