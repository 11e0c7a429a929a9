package policy

import (
	"context"
)

type Service interface {
	SetPolicy(ctx context.Context, policy *Policy) (*Policy, error)
	GetPolicy(ctx context.Context) (*Policy, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetPolicy(ctx context.Context, policy *Policy) (*Policy, error) {
	policy.applyDefaults()
	if err := s.repo.Upsert(ctx, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

func (s *service) GetPolicy(ctx context.Context) (*Policy, error) {
	return s.repo.Get(ctx)
}
