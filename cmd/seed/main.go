package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"exercisetracker/internal/cache"
	"exercisetracker/internal/config"
	"exercisetracker/internal/db"
	"exercisetracker/internal/service"
)

// SeedExercise is one exercise entry in the fixture file.
type SeedExercise struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// SeedUser is one user and their exercise log in the fixture file.
type SeedUser struct {
	Username  string         `json:"username"`
	Exercises []SeedExercise `json:"exercises"`
}

func main() {
	file := flag.String("file", "fixtures.json", "path to a JSON array of users with their exercises")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close(context.Background())
	log.Printf("Connected to %s store", store.Driver)

	users, err := readFixtures(*file)
	if err != nil {
		log.Fatalf("Failed to read fixtures: %v", err)
	}
	log.Printf("Loaded %d users from %s", len(users), *file)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	userService := service.NewUserService(store.Users, cacheClient, cfg.UserCacheTTL, nil)
	exerciseService := service.NewExerciseService(userService, store.Exercises, nil)

	created, entries, err := seed(ctx, userService, exerciseService, users)
	if err != nil {
		log.Fatalf("Seed failed after %d users: %v", created, err)
	}
	log.Printf("Seed completed: %d users, %d exercise entries", created, entries)
}

func readFixtures(path string) ([]SeedUser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var users []SeedUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return users, nil
}

func seed(ctx context.Context, users service.UserService, exercises service.ExerciseService, fixtures []SeedUser) (int, int, error) {
	created, entries := 0, 0
	for _, fixture := range fixtures {
		user, err := users.CreateUser(ctx, fixture.Username)
		if err != nil {
			return created, entries, err
		}
		created++

		inputs := make([]service.AddEntryInput, 0, len(fixture.Exercises))
		for _, ex := range fixture.Exercises {
			inputs = append(inputs, service.AddEntryInput{
				UserID:      user.ID,
				Description: ex.Description,
				Duration:    ex.Duration,
				Date:        ex.Date,
			})
		}
		n, err := exercises.ImportEntries(ctx, user.ID, inputs)
		if err != nil {
			return created, entries, fmt.Errorf("user %s: %w", fixture.Username, err)
		}
		entries += n
	}
	return created, entries, nil
}
