package book

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository keeps the catalog in process memory. It backs the unit
// tests and standalone mode, where no database is configured.
type MemoryRepository struct {
	mu     sync.Mutex
	books  map[int]*Book
	nextID int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		books:  make(map[int]*Book),
		nextID: 1,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, book *Book) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The ISBN is unique across archived rows too, matching the SQL
	// constraint.
	for _, b := range r.books {
		if b.ISBN == book.ISBN {
			return nil, ErrISBNExists
		}
	}

	book.ID = r.nextID
	r.nextID++
	book.Status = StatusFor(book.Copies)
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt

	stored := *book
	r.books[book.ID] = &stored
	return book, nil
}

func (r *MemoryRepository) GetAll(ctx context.Context) ([]Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books := make([]Book, 0, len(r.books))
	for _, b := range r.books {
		if !b.Archived {
			books = append(books, *b)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID > books[j].ID })
	return books, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok || b.Archived {
		return nil, ErrBookNotFound
	}
	copy := *b
	return &copy, nil
}

func (r *MemoryRepository) Update(ctx context.Context, book *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.books[book.ID]
	if !ok || existing.Archived {
		return ErrBookNotFound
	}
	for _, b := range r.books {
		if b.ID != book.ID && b.ISBN == book.ISBN {
			return ErrISBNExists
		}
	}

	existing.ISBN = book.ISBN
	existing.Title = book.Title
	existing.Author = book.Author
	existing.Category = book.Category
	existing.Copies = book.Copies
	existing.Status = StatusFor(book.Copies)
	existing.UpdatedAt = time.Now()
	book.Status = existing.Status
	return nil
}

func (r *MemoryRepository) Archive(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok || b.Archived {
		return ErrBookNotFound
	}
	b.Archived = true
	b.UpdatedAt = time.Now()
	return nil
}

// AdjustCopies atomically changes a book's copy count and recomputes its
// status. A decrement below zero fails with ErrNoCopies and leaves the
// counter untouched. Used by the in-memory circulation repository, mirroring
// the conditional UPDATE the SQL implementation runs.
func (r *MemoryRepository) AdjustCopies(ctx context.Context, id, delta int) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok || b.Archived {
		return nil, ErrBookNotFound
	}
	if b.Copies+delta < 0 {
		return nil, ErrNoCopies
	}
	b.Copies += delta
	b.Status = StatusFor(b.Copies)
	b.UpdatedAt = time.Now()
	copy := *b
	return &copy, nil
}
