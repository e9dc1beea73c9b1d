package db

import (
	"context"
	"fmt"

	"exercisetracker/internal/config"
	"exercisetracker/internal/model"
	"exercisetracker/internal/repository"
)

// Store is the process-wide storage handle. It is opened once at startup,
// shared by every request and released with Close at shutdown.
type Store struct {
	Users     repository.UserRepository
	Exercises repository.ExerciseRepository
	Driver    string

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Open connects to the backend selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		return openMySQL(cfg)
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	case config.DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// NewMemoryStore returns a Store that keeps everything in process memory.
func NewMemoryStore() *Store {
	return &Store{
		Users:     repository.NewInMemoryUserRepository(),
		Exercises: repository.NewInMemoryExerciseRepository(),
		Driver:    config.DriverMemory,
	}
}

func openMySQL(cfg *config.Config) (*Store, error) {
	gormDB, err := NewMySQL(cfg.MySQLDSN, LogLevel(cfg.DBLogLevel))
	if err != nil {
		return nil, err
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Exercise{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("mysql handle: %w", err)
	}
	return &Store{
		Users:     repository.NewUserRepository(gormDB),
		Exercises: repository.NewExerciseRepository(gormDB),
		Driver:    config.DriverMySQL,
		ping:      sqlDB.PingContext,
		close: func(context.Context) error {
			return sqlDB.Close()
		},
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config) (*Store, error) {
	client, database, err := NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, err
	}
	if err := repository.EnsureMongoIndexes(ctx, database); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Store{
		Users:     repository.NewMongoUserRepository(database),
		Exercises: repository.NewMongoExerciseRepository(database),
		Driver:    config.DriverMongo,
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		close: client.Disconnect,
	}, nil
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}
