package auth

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// User is a librarian/clerk account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	FullName  string    `bun:"full_name,notnull" json:"full_name"`
	Email     string    `bun:"email,unique,notnull" json:"email"`
	Username  string    `bun:"username,unique,notnull" json:"username"`
	Password  string    `bun:"password,notnull" json:"-"` // Never expose password in JSON
	Phone     string    `bun:"phone" json:"phone,omitempty"`
	Address   string    `bun:"address" json:"address,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}

// RefreshToken stores refresh tokens in database
type RefreshToken struct {
	bun.BaseModel `bun:"table:refresh_tokens,alias:rt"`

	ID        int       `bun:"id,pk,autoincrement"`
	UserID    int       `bun:"user_id,notnull"`
	Token     string    `bun:"token,unique,notnull"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// RegisterRequest is the request body for registration
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the request body for login; username also accepts an email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the request body for token refresh and logout
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse is the response for successful authentication
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         *Profile `json:"user"`
}

// Profile is the member-facing view of an account.
type Profile struct {
	ID             int    `json:"id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	MemberID       string `json:"member_id"`
	MembershipDate string `json:"membership_date"`
	BooksBorrowed  int    `json:"books_borrowed"`
	BooksReturned  int    `json:"books_returned"`
	CurrentBooks   int    `json:"current_books"`
}

// UpdateProfileRequest is the request body for profile updates
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// NewProfile builds the profile view of a user.
// TODO: wire borrow counters to circulation once accounts are linked to
// student records.
func NewProfile(u *User) *Profile {
	return &Profile{
		ID:             u.ID,
		FullName:       u.FullName,
		Email:          u.Email,
		Username:       u.Username,
		Phone:          u.Phone,
		Address:        u.Address,
		MemberID:       fmt.Sprintf("LIB%06d", u.ID),
		MembershipDate: u.CreatedAt.Format("2006-01-02"),
	}
}
