package member

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIssueChecker struct {
	issued bool
}

func (s *stubIssueChecker) HasOpenIssueForMember(ctx context.Context, memberID int) (bool, error) {
	return s.issued, nil
}

func newTestService(t *testing.T) (Service, *stubIssueChecker) {
	t.Helper()
	issues := &stubIssueChecker{}
	return NewService(NewMemoryRepository(), issues), issues
}

func TestCreateMember(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateMember(ctx, &Member{Name: "Ana", RollNumber: "CS-01", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := svc.CreateMember(ctx, &Member{RollNumber: "CS-02"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.CreateMember(ctx, &Member{Name: "No Roll"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects duplicate roll number", func(t *testing.T) {
		_, err := svc.CreateMember(ctx, &Member{Name: "Ben", RollNumber: "CS-01"})
		assert.ErrorIs(t, err, ErrRollNumberExists)
	})
}

func TestUpdateMember(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateMember(ctx, &Member{Name: "Ana", RollNumber: "CS-01"})
	require.NoError(t, err)
	second, err := svc.CreateMember(ctx, &Member{Name: "Ben", RollNumber: "CS-02"})
	require.NoError(t, err)

	second.RollNumber = first.RollNumber
	err = svc.UpdateMember(ctx, second)
	assert.ErrorIs(t, err, ErrRollNumberExists)

	second.RollNumber = "CS-03"
	second.Phone = "12345"
	require.NoError(t, svc.UpdateMember(ctx, second))

	got, err := svc.GetMemberByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "CS-03", got.RollNumber)
	assert.Equal(t, "12345", got.Phone)
}

func TestDeleteMember(t *testing.T) {
	svc, issues := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateMember(ctx, &Member{Name: "Ana", RollNumber: "CS-01"})
	require.NoError(t, err)

	t.Run("blocked with open issues", func(t *testing.T) {
		issues.issued = true
		err := svc.DeleteMember(ctx, created.ID)
		assert.ErrorIs(t, err, ErrHasIssuedBooks)
	})

	t.Run("succeeds after books are returned", func(t *testing.T) {
		issues.issued = false
		require.NoError(t, svc.DeleteMember(ctx, created.ID))

		_, err := svc.GetMemberByID(ctx, created.ID)
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})

	t.Run("unknown member", func(t *testing.T) {
		err := svc.DeleteMember(ctx, 99)
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})
}
