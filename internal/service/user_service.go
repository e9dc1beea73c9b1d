package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"exercisetracker/internal/cache"
	apperrors "exercisetracker/internal/errors"
	"exercisetracker/internal/metrics"
	"exercisetracker/internal/model"
	"exercisetracker/internal/repository"
)

// DefaultUserCacheTTL applies when NewUserService is given a non-positive TTL.
const DefaultUserCacheTTL = 5 * time.Minute

// UserService exposes the user directory.
type UserService interface {
	CreateUser(ctx context.Context, username string) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo    repository.UserRepository
	cache   *cache.Client
	ttl     time.Duration
	metrics *metrics.Recorder
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client, ttl time.Duration, rec *metrics.Recorder) UserService {
	if ttl <= 0 {
		ttl = DefaultUserCacheTTL
	}
	return &userService{repo: repo, cache: cache, ttl: ttl, metrics: rec}
}

func (s *userService) cacheKey(id string) string {
	return "user:" + id
}

// CreateUser stores username as given. No trimming or uniqueness check.
func (s *userService) CreateUser(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{Username: username}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	// users are immutable, so the fresh record can be cached right away
	_ = s.cache.SetJSON(ctx, s.cacheKey(user.ID), user, s.ttl)
	s.metrics.UserCreated()
	return user, nil
}

// GetUser returns apperrors.ErrUserNotFound when id matches nothing.
func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	_ = s.cache.SetJSON(ctx, s.cacheKey(id), user, s.ttl)
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}
