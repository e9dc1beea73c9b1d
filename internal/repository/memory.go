package repository

import (
	"context"
	"sync"
	"time"

	"exercisetracker/internal/model"
)

// InMemoryUserRepository keeps users in insertion order for local development and tests.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users []model.User
	index map[string]int
}

// NewInMemoryUserRepository returns an empty repository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{index: make(map[string]int)}
}

// Create implements UserRepository.
func (r *InMemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.EnsureID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.index[user.ID] = len(r.users)
	r.users = append(r.users, *user)
	return nil
}

// FindByID implements UserRepository.
func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := r.users[i]
	return &user, nil
}

// List implements UserRepository.
func (r *InMemoryUserRepository) List(ctx context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.User, len(r.users))
	copy(users, r.users)
	return users, nil
}

// InMemoryExerciseRepository keeps exercise entries in insertion order.
type InMemoryExerciseRepository struct {
	mu        sync.RWMutex
	exercises []model.Exercise
}

// NewInMemoryExerciseRepository returns an empty repository.
func NewInMemoryExerciseRepository() *InMemoryExerciseRepository {
	return &InMemoryExerciseRepository{}
}

// Create implements ExerciseRepository.
func (r *InMemoryExerciseRepository) Create(ctx context.Context, exercise *model.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prepareExercise(exercise)
	r.exercises = append(r.exercises, *exercise)
	return nil
}

// CreateBatch implements ExerciseRepository.
func (r *InMemoryExerciseRepository) CreateBatch(ctx context.Context, exercises []model.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range exercises {
		prepareExercise(&exercises[i])
		r.exercises = append(r.exercises, exercises[i])
	}
	return nil
}

// Find implements ExerciseRepository.
func (r *InMemoryExerciseRepository) Find(ctx context.Context, filter LogFilter) ([]model.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Exercise{}
	for _, e := range r.exercises {
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}
