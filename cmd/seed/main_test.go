package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exercisetracker/internal/db"
	"exercisetracker/internal/service"
)

const fixture = `[
  {"username": "alice", "exercises": [
    {"description": "run", "duration": 30, "date": "2023-01-15"},
    {"description": "swim", "duration": 45, "date": "2023-01-20"}
  ]},
  {"username": "bob", "exercises": []}
]`

func TestReadFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	users, err := readFixtures(path)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Len(t, users[0].Exercises, 2)
}

func TestReadFixtures_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username":`), 0o600))

	_, err := readFixtures(path)
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fixtures.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))
	fixtures, err := readFixtures(path)
	require.NoError(t, err)

	store := db.NewMemoryStore()
	users := service.NewUserService(store.Users, nil, 0, nil)
	exercises := service.NewExerciseService(users, store.Exercises, nil)

	created, entries, err := seed(ctx, users, exercises, fixtures)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, entries)

	listed, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	view, err := exercises.GetLogs(ctx, listed[0].ID, service.LogQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "Sun Jan 15 2023", view.Log[0].Date)
}

func TestSeed_BadDateStops(t *testing.T) {
	store := db.NewMemoryStore()
	users := service.NewUserService(store.Users, nil, 0, nil)
	exercises := service.NewExerciseService(users, store.Exercises, nil)

	_, entries, err := seed(context.Background(), users, exercises, []SeedUser{
		{Username: "alice", Exercises: []SeedExercise{{Description: "run", Duration: 30, Date: "whenever"}}},
	})
	assert.Error(t, err)
	assert.Zero(t, entries)
}
