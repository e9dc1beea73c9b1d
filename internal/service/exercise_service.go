package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "exercisetracker/internal/errors"
	"exercisetracker/internal/metrics"
	"exercisetracker/internal/model"
	"exercisetracker/internal/repository"
)

// AddEntryInput is a request to append to a user's log. An empty Date means today.
type AddEntryInput struct {
	UserID      string
	Description string
	Duration    int
	Date        string
}

// LogEntryView is returned after appending an entry.
type LogEntryView struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"id"`
}

// LogItem is one entry of a LogView.
type LogItem struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogView is a user's filtered exercise log. Count is len(Log).
type LogView struct {
	Username string    `json:"username"`
	Count    int       `json:"count"`
	ID       string    `json:"id"`
	Log      []LogItem `json:"log"`
}

// LogQuery holds the optional log filters. From and To are date strings;
// Limit <= 0 means no limit.
type LogQuery struct {
	From  string
	To    string
	Limit int
}

// ExerciseService exposes the exercise log.
type ExerciseService interface {
	AddEntry(ctx context.Context, in AddEntryInput) (*LogEntryView, error)
	GetLogs(ctx context.Context, userID string, q LogQuery) (*LogView, error)
	ImportEntries(ctx context.Context, userID string, entries []AddEntryInput) (int, error)
}

type exerciseService struct {
	users   UserService
	repo    repository.ExerciseRepository
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewExerciseService creates a new exercise service.
func NewExerciseService(users UserService, repo repository.ExerciseRepository, rec *metrics.Recorder) ExerciseService {
	return &exerciseService{
		users:   users,
		repo:    repo,
		metrics: rec,
		now:     time.Now,
	}
}

// AddEntry appends an entry to the user's log.
func (s *exerciseService) AddEntry(ctx context.Context, in AddEntryInput) (*LogEntryView, error) {
	user, err := s.users.GetUser(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.metrics.UserNotFound("add_entry")
		}
		return nil, err
	}

	exercise, err := s.newExercise(user.ID, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, exercise); err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	s.metrics.EntriesAdded(1)

	return &LogEntryView{
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        model.FormatDate(exercise.Date),
		ID:          user.ID,
	}, nil
}

// GetLogs returns the user's entries filtered by q.
func (s *exerciseService) GetLogs(ctx context.Context, userID string, q LogQuery) (*LogView, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.metrics.UserNotFound("get_logs")
		}
		return nil, err
	}

	filter := repository.LogFilter{UserID: user.ID, Limit: q.Limit}
	if filter.From, err = parseBound(q.From); err != nil {
		return nil, err
	}
	if filter.To, err = parseBound(q.To); err != nil {
		return nil, err
	}

	exercises, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find exercises: %w", err)
	}

	log := make([]LogItem, 0, len(exercises))
	for _, e := range exercises {
		log = append(log, LogItem{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        model.FormatDate(e.Date),
		})
	}
	s.metrics.LogServed(len(log))

	return &LogView{
		Username: user.Username,
		Count:    len(log),
		ID:       user.ID,
		Log:      log,
	}, nil
}

// ImportEntries appends entries for one user in a single batch.
func (s *exerciseService) ImportEntries(ctx context.Context, userID string, entries []AddEntryInput) (int, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	exercises := make([]model.Exercise, 0, len(entries))
	for _, in := range entries {
		exercise, err := s.newExercise(user.ID, in)
		if err != nil {
			return 0, err
		}
		exercises = append(exercises, *exercise)
	}
	if err := s.repo.CreateBatch(ctx, exercises); err != nil {
		return 0, fmt.Errorf("import exercises for %s: %w", user.ID, err)
	}
	s.metrics.EntriesAdded(len(exercises))
	return len(exercises), nil
}

func (s *exerciseService) newExercise(userID string, in AddEntryInput) (*model.Exercise, error) {
	date := model.CalendarDay(s.now())
	if in.Date != "" {
		parsed, err := model.ParseDate(in.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}
	return &model.Exercise{
		UserID:      userID,
		Description: in.Description,
		Duration:    in.Duration,
		Date:        date,
	}, nil
}

func parseBound(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := model.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
