package book

import (
	"context"
	"errors"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrISBNExists   = errors.New("book with this ISBN already exists")
	ErrBookIssued   = errors.New("book is currently issued to students")
	ErrNoCopies     = errors.New("no copies available")
)

// IssueChecker answers whether a book currently has an open issue record.
// Implemented by the circulation repository.
type IssueChecker interface {
	HasOpenIssueForBook(ctx context.Context, bookID int) (bool, error)
}

type Service interface {
	CreateBook(ctx context.Context, book *Book) (*Book, error)
	ImportBooks(ctx context.Context, books []Book) []ImportResult
	GetAllBooks(ctx context.Context) ([]Book, error)
	GetBookByID(ctx context.Context, id int) (*Book, error)
	UpdateBook(ctx context.Context, book *Book) error
	ArchiveBook(ctx context.Context, id int) error
}

type service struct {
	repo   Repository
	issues IssueChecker
}

func NewService(repo Repository, issues IssueChecker) Service {
	return &service{
		repo:   repo,
		issues: issues,
	}
}

func (s *service) CreateBook(ctx context.Context, book *Book) (*Book, error) {
	if book.ISBN == "" || book.Title == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.Create(ctx, book)
}

func (s *service) ImportBooks(ctx context.Context, books []Book) []ImportResult {
	results := make([]ImportResult, 0, len(books))
	for i := range books {
		b := books[i]
		created, err := s.CreateBook(ctx, &b)
		if err != nil {
			results = append(results, ImportResult{ISBN: b.ISBN, Success: false, Message: err.Error()})
			continue
		}
		results = append(results, ImportResult{ISBN: created.ISBN, ID: created.ID, Success: true})
	}
	return results
}

func (s *service) GetAllBooks(ctx context.Context) ([]Book, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetBookByID(ctx context.Context, id int) (*Book, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateBook(ctx context.Context, book *Book) error {
	if book.ID <= 0 {
		return ErrInvalidInput
	}
	if book.ISBN == "" || book.Title == "" {
		return ErrInvalidInput
	}
	return s.repo.Update(ctx, book)
}

func (s *service) ArchiveBook(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	issued, err := s.issues.HasOpenIssueForBook(ctx, id)
	if err != nil {
		return err
	}
	if issued {
		return ErrBookIssued
	}
	return s.repo.Archive(ctx, id)
}
