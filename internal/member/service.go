package member

import (
	"context"
	"errors"
)

var (
	ErrMemberNotFound   = errors.New("student not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrRollNumberExists = errors.New("student with this roll number already exists")
	ErrHasIssuedBooks   = errors.New("student has issued books that need to be returned first")
)

// IssueChecker answers whether a member currently has an open issue record.
// Implemented by the circulation repository.
type IssueChecker interface {
	HasOpenIssueForMember(ctx context.Context, memberID int) (bool, error)
}

type Service interface {
	CreateMember(ctx context.Context, member *Member) (*Member, error)
	GetAllMembers(ctx context.Context) ([]Member, error)
	GetMemberByID(ctx context.Context, id int) (*Member, error)
	UpdateMember(ctx context.Context, member *Member) error
	DeleteMember(ctx context.Context, id int) error
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

func (s *service) CreateMember(ctx context.Context, member *Member) (*Member, error) {
	if member.Name == "" || member.RollNumber == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.Create(ctx, member)
}

func (s *service) GetAllMembers(ctx context.Context) ([]Member, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetMemberByID(ctx context.Context, id int) (*Member, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateMember(ctx context.Context, member *Member) error {
	if member.ID <= 0 {
		return ErrInvalidInput
	}
	if member.Name == "" || member.RollNumber == "" {
		return ErrInvalidInput
	}
	return s.repo.Update(ctx, member)
}

func (s *service) DeleteMember(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	issued, err := s.issues.HasOpenIssueForMember(ctx, id)
	if err != nil {
		return err
	}
	if issued {
		return ErrHasIssuedBooks
	}
	return s.repo.Delete(ctx, id)
}
