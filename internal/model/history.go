package model

import (
	"time"
)

const (
	ActionCompleted = "COMPLETED"
	ActionUndone    = "UNDONE"
)

// HistoryEntry is an append-only audit fact. Rows are never updated or
// deleted, and they are not the source of truth for streak computation.
type HistoryEntry struct {
	ID        int64     `db:"id"`
	HabitID   int64     `db:"habit_id"`
	UserID    string    `db:"user_id"`
	Action    string    `db:"action"`
	Timestamp time.Time `db:"timestamp"`
}
