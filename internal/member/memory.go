package member

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository backs unit tests and standalone mode.
type MemoryRepository struct {
	mu      sync.Mutex
	members map[int]*Member
	nextID  int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		members: make(map[int]*Member),
		nextID:  1,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, member *Member) (*Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.members {
		if m.RollNumber == member.RollNumber {
			return nil, ErrRollNumberExists
		}
	}

	member.ID = r.nextID
	r.nextID++
	member.CreatedAt = time.Now()

	stored := *member
	r.members[member.ID] = &stored
	return member, nil
}

func (r *MemoryRepository) GetAll(ctx context.Context) ([]Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		members = append(members, *m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int) (*Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	copy := *m
	return &copy, nil
}

func (r *MemoryRepository) Update(ctx context.Context, member *Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.members[member.ID]
	if !ok {
		return ErrMemberNotFound
	}
	for _, m := range r.members {
		if m.ID != member.ID && m.RollNumber == member.RollNumber {
			return ErrRollNumberExists
		}
	}

	existing.Name = member.Name
	existing.RollNumber = member.RollNumber
	existing.Email = member.Email
	existing.Phone = member.Phone
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; !ok {
		return ErrMemberNotFound
	}
	delete(r.members, id)
	return nil
}
