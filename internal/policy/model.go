package policy

import (
	"time"

	"github.com/uptrace/bun"
)

// Defaults applied when a field is absent from the upsert, and returned
// before any policy row has been written.
const (
	DefaultMaxBorrowLimit     = 3
	DefaultBorrowDurationDays = 14
	DefaultFinePerDay         = 1
)

// Policy is a single-row table; the row id is fixed at 1.
type Policy struct {
	bun.BaseModel `bun:"table:library_policy,alias:p"`

	ID                 int       `bun:"id,pk" json:"-"`
	MaxBorrowLimit     int       `bun:"max_borrow_limit,notnull" json:"max_borrow_limit" validate:"min=0"`
	BorrowDurationDays int       `bun:"borrow_duration_days,notnull" json:"borrow_duration_days" validate:"min=0"`
	FinePerDay         float64   `bun:"fine_per_day,notnull" json:"fine_per_day" validate:"min=0"`
	UpdatedAt          time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Default returns the policy used before one is persisted.
func Default() *Policy {
	return &Policy{
		ID:                 1,
		MaxBorrowLimit:     DefaultMaxBorrowLimit,
		BorrowDurationDays: DefaultBorrowDurationDays,
		FinePerDay:         DefaultFinePerDay,
	}
}

// applyDefaults fills unset (zero) fields before the upsert.
func (p *Policy) applyDefaults() {
	p.ID = 1
	if p.MaxBorrowLimit == 0 {
		p.MaxBorrowLimit = DefaultMaxBorrowLimit
	}
	if p.BorrowDurationDays == 0 {
		p.BorrowDurationDays = DefaultBorrowDurationDays
	}
	if p.FinePerDay == 0 {
		p.FinePerDay = DefaultFinePerDay
	}
}
