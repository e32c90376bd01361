package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/habitkit/habitkit/internal/db"
	"github.com/habitkit/habitkit/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a private in-memory database with the real migrations
// applied. One connection keeps the memory database alive for the test.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", "file::memory:?_time_format=sqlite", 1)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func createTestUser(t *testing.T, database *sqlx.DB) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     "user-" + uuid.New().String()[:8],
		Email:        uuid.New().String()[:8] + "@example.com",
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, NewUserRepository(database).Create(user))
	return user
}

func createTestHabit(t *testing.T, database *sqlx.DB, userID string) *model.Habit {
	t.Helper()

	habit := &model.Habit{
		UserID:         userID,
		Name:           "Read",
		Category:       "learning",
		StreakTracking: true,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, NewHabitRepository(database).Create(habit))
	return habit
}
