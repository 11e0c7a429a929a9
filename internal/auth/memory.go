package auth

import (
	"context"
	"database/sql"
	"sync"
	"time"
)

// MemoryRepository backs unit tests and standalone mode.
type MemoryRepository struct {
	mu     sync.Mutex
	users  map[int]*User
	tokens map[string]*RefreshToken
	nextID int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:  make(map[int]*User),
		tokens: make(map[string]*RefreshToken),
		nextID: 1,
	}
}

func (r *MemoryRepository) CreateUser(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, ErrUserExists
		}
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()

	stored := *user
	r.users[user.ID] = &stored
	return user, nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id int) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copy := *u
	return &copy, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.findUser(func(u *User) bool { return u.Email == email })
}

func (r *MemoryRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return r.findUser(func(u *User) bool { return u.Username == username })
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, login string) (*User, error) {
	return r.findUser(func(u *User) bool { return u.Username == login || u.Email == login })
}

func (r *MemoryRepository) findUser(match func(*User) bool) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if match(u) {
			copy := *u
			return &copy, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryRepository) UpdateProfile(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return ErrUserNotFound
	}
	for _, u := range r.users {
		if u.ID != user.ID && u.Email == user.Email {
			return ErrEmailExists
		}
	}

	existing.FullName = user.FullName
	existing.Email = user.Email
	existing.Phone = user.Phone
	existing.Address = user.Address
	return nil
}

func (r *MemoryRepository) CreateRefreshToken(ctx context.Context, userID int, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = &RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *MemoryRepository) GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rt, ok := r.tokens[token]
	if !ok || rt.ExpiresAt.Before(time.Now()) {
		return nil, sql.ErrNoRows
	}
	copy := *rt
	return &copy, nil
}

func (r *MemoryRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, token)
	return nil
}

func (r *MemoryRepository) DeleteExpiredTokens(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, rt := range r.tokens {
		if rt.ExpiresAt.Before(time.Now()) {
			delete(r.tokens, token)
		}
	}
	return nil
}
