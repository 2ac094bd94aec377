package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/api-sage/core-banking-ledger/src/internal/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.UserDetails
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.UserDetails)}
}

func (r *UserRepository) Create(_ context.Context, user domain.UserDetails) (domain.UserDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return domain.UserDetails{}, domain.ErrUsernameTaken
	}
	r.users[user.Username] = user
	return user, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (domain.UserDetails, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return domain.UserDetails{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) All(_ context.Context) ([]domain.UserDetails, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.UserDetails, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *UserRepository) ReplaceAll(_ context.Context, users []domain.UserDetails) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[string]domain.UserDetails, len(users))
	for _, user := range users {
		r.users[user.Username] = user
	}
	return nil
}
