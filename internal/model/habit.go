package model

import (
	"time"
)

const (
	ScheduleDaily  = "daily"
	ScheduleWeekly = "weekly"
	ScheduleCustom = "custom"
)

type Habit struct {
	ID             int64     `db:"id"`
	UserID         string    `db:"user_id"`
	Name           string    `db:"name"`
	Description    *string   `db:"description"`
	Category       string    `db:"category"`
	StreakTracking bool      `db:"streak_tracking"`
	AutoComplete   bool      `db:"auto_complete"`
	Streak         int       `db:"streak"`
	CreatedAt      time.Time `db:"created_at"`

	// Loaded separately (not columns on the habits table)
	Schedule  *Schedule `db:"-"`
	Reminders []string  `db:"-"`
}

type Schedule struct {
	HabitID     int64  `db:"habit_id"`
	Type        string `db:"type"`
	TimesPerDay int    `db:"times_per_day"`
}

type Reminder struct {
	HabitID      int64  `db:"habit_id"`
	ReminderTime string `db:"reminder_time"`
}
