package repository

import (
	"context"
	"errors"
	"time"

	"exercisetracker/internal/model"
)

// ErrNotFound is returned by every backend when a lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// ExerciseRepository defines exercise log persistence operations.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *model.Exercise) error
	CreateBatch(ctx context.Context, exercises []model.Exercise) error
	Find(ctx context.Context, filter LogFilter) ([]model.Exercise, error)
}

// LogFilter selects a user's exercises. From and To are inclusive and
// independently optional; Limit <= 0 means no limit.
type LogFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
}

// Matches reports whether e satisfies the filter, ignoring Limit.
func (f LogFilter) Matches(e model.Exercise) bool {
	if e.UserID != f.UserID {
		return false
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	return true
}
