package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/clockwise-hr/attendance-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

type userRepository struct {
	mu      sync.RWMutex
	byID    map[string]user.User
	byEmail map[string]string
	byCode  map[string]string
}

func NewUserRepository() user.Repository {
	return &userRepository{
		byID:    make(map[string]user.User),
		byEmail: make(map[string]string),
		byCode:  make(map[string]string),
	}
}

func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return user.User{}, user.ErrEmailExists
	}
	if _, exists := r.byCode[u.EmployeeCode]; exists {
		return user.User{}, user.ErrEmployeeCodeExists
	}

	now := time.Now()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	r.byCode[u.EmployeeCode] = u.ID

	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return r.byID[id], nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, nil
}

func (r *userRepository) FindAllEmployees(ctx context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []user.User
	for _, u := range r.byID {
		if u.Role == user.RoleEmployee {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, nil
}

func (r *userRepository) CountEmployees(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, u := range r.byID {
		if u.Role == user.RoleEmployee {
			count++
		}
	}
	return count, nil
}
