package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPolicyBeforeAnySet(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	p, err := svc.GetPolicy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxBorrowLimit, p.MaxBorrowLimit)
	assert.Equal(t, DefaultBorrowDurationDays, p.BorrowDurationDays)
	assert.Equal(t, float64(DefaultFinePerDay), p.FinePerDay)
}

func TestSetPolicy(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	set, err := svc.SetPolicy(ctx, &Policy{MaxBorrowLimit: 5, BorrowDurationDays: 7, FinePerDay: 2.5})
	require.NoError(t, err)
	assert.Equal(t, 1, set.ID)

	got, err := svc.GetPolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, got.MaxBorrowLimit)
	assert.Equal(t, 7, got.BorrowDurationDays)
	assert.Equal(t, 2.5, got.FinePerDay)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSetPolicyFillsUnsetFields(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.SetPolicy(ctx, &Policy{MaxBorrowLimit: 10})
	require.NoError(t, err)

	got, err := svc.GetPolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, got.MaxBorrowLimit)
	assert.Equal(t, DefaultBorrowDurationDays, got.BorrowDurationDays)
	assert.Equal(t, float64(DefaultFinePerDay), got.FinePerDay)
}

func TestSetPolicyOverwritesPrevious(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.SetPolicy(ctx, &Policy{MaxBorrowLimit: 10, BorrowDurationDays: 30, FinePerDay: 5})
	require.NoError(t, err)
	_, err = svc.SetPolicy(ctx, &Policy{MaxBorrowLimit: 2, BorrowDurationDays: 7, FinePerDay: 0.5})
	require.NoError(t, err)

	got, err := svc.GetPolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MaxBorrowLimit)
	assert.Equal(t, 7, got.BorrowDurationDays)
	assert.Equal(t, 0.5, got.FinePerDay)
}
