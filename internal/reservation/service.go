package reservation

import (
	"context"
	"errors"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrAlreadyProcessed    = errors.New("reservation has already been processed")
	ErrInvalidInput        = errors.New("invalid input")
)

type Service interface {
	CreateReservation(ctx context.Context, reservation *Reservation) (*Reservation, error)
	GetAllReservations(ctx context.Context) ([]Reservation, error)
	ApproveReservation(ctx context.Context, id int) error
	RejectReservation(ctx context.Context, id int, reason string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateReservation(ctx context.Context, reservation *Reservation) (*Reservation, error) {
	if reservation.BookID <= 0 || reservation.MemberID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.Create(ctx, reservation)
}

func (s *service) GetAllReservations(ctx context.Context) ([]Reservation, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) ApproveReservation(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Process(ctx, id, StatusApproved, "")
}

func (s *service) RejectReservation(ctx context.Context, id int, reason string) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Process(ctx, id, StatusRejected, reason)
}
