package repository

import (
	"context"

	"gorm.io/gorm"

	"exercisetracker/internal/model"
)

const exerciseBatchSize = 100

type exerciseRepository struct {
	db *gorm.DB
}

// NewExerciseRepository creates a GORM-backed exercise repository.
func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

// Create appends a single entry.
func (r *exerciseRepository) Create(ctx context.Context, exercise *model.Exercise) error {
	return r.db.WithContext(ctx).Create(exercise).Error
}

// CreateBatch appends entries in batches.
func (r *exerciseRepository) CreateBatch(ctx context.Context, exercises []model.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(exercises, exerciseBatchSize).Error
}

// Find returns the entries matching filter in store order.
func (r *exerciseRepository) Find(ctx context.Context, filter LogFilter) ([]model.Exercise, error) {
	var exercises []model.Exercise
	if err := r.db.WithContext(ctx).Scopes(logFilterScope(filter)).Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}

func logFilterScope(filter LogFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", filter.UserID)
		if filter.From != nil {
			db = db.Where("date >= ?", *filter.From)
		}
		if filter.To != nil {
			db = db.Where("date <= ?", *filter.To)
		}
		if filter.Limit > 0 {
			db = db.Limit(filter.Limit)
		}
		return db
	}
}
