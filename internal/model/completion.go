package model

import (
	"time"
)

// Completion is the single per-day progress record for a habit.
// At most one row exists per (habit, user, calendar day).
type Completion struct {
	ID             int64     `db:"id"`
	HabitID        int64     `db:"habit_id"`
	UserID         string    `db:"user_id"`
	CompletionTime time.Time `db:"completion_time"`
	Progress       int       `db:"progress"`
	IsCompleted    bool      `db:"is_completed"`
	Notes          *string   `db:"notes"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Day returns the UTC calendar day (YYYY-MM-DD) this completion belongs to.
func (c *Completion) Day() string {
	return c.CompletionTime.UTC().Format("2006-01-02")
}
