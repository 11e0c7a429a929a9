package book

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	StatusAvailable    = "Available"
	StatusNotAvailable = "Not Available"
)

// StatusFor derives the availability status from a copy count.
// A book is Available iff it has at least one copy on the shelf.
func StatusFor(copies int) string {
	if copies > 0 {
		return StatusAvailable
	}
	return StatusNotAvailable
}

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	ISBN      string    `bun:"isbn,unique,notnull" json:"isbn" validate:"required"`
	Title     string    `bun:"title,notnull" json:"title" validate:"required"`
	Author    string    `bun:"author" json:"author"`
	Category  string    `bun:"category" json:"category"`
	Copies    int       `bun:"copies,notnull,default:0" json:"copies" validate:"min=0"`
	Status    string    `bun:"status,notnull,default:'Not Available'" json:"status"`
	Archived  bool      `bun:"archived,notnull,default:false" json:"-"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// ImportResult reports the outcome of one row of a bulk import.
type ImportResult struct {
	ISBN    string `json:"isbn"`
	ID      int    `json:"id,omitempty"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
