package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"exercisetracker/internal/model"
	"exercisetracker/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.EnsureID()
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockExerciseRepository is a mock implementation of ExerciseRepository.
type MockExerciseRepository struct {
	mock.Mock
}

func (m *MockExerciseRepository) Create(ctx context.Context, exercise *model.Exercise) error {
	args := m.Called(ctx, exercise)
	return args.Error(0)
}

func (m *MockExerciseRepository) CreateBatch(ctx context.Context, exercises []model.Exercise) error {
	args := m.Called(ctx, exercises)
	return args.Error(0)
}

func (m *MockExerciseRepository) Find(ctx context.Context, filter repository.LogFilter) ([]model.Exercise, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Exercise), args.Error(1)
}
