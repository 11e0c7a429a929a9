package member

import (
	"time"

	"github.com/uptrace/bun"
)

type Member struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID         int       `bun:"id,pk,autoincrement" json:"id"`
	Name       string    `bun:"name,notnull" json:"name" validate:"required"`
	RollNumber string    `bun:"roll_number,unique,notnull" json:"roll_number" validate:"required"`
	Email      string    `bun:"email" json:"email" validate:"omitempty,email"`
	Phone      string    `bun:"phone" json:"phone"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
