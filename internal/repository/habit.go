package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/habitkit/habitkit/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	// ErrHabitNotFound covers both a missing habit and a habit owned by
	// someone else, so existence is never leaked to non-owners.
	ErrHabitNotFound = errors.New("habit not found")
)

type HabitRepository interface {
	Create(habit *model.Habit) error
	ByID(habitID int64, userID string) (*model.Habit, error)
	Habits(userID string) ([]*model.Habit, error)
	UpdateStreak(habitID int64, userID string, streak int) error
}

type habitRepository struct {
	db *sqlx.DB
}

func NewHabitRepository(db *sqlx.DB) HabitRepository {
	return &habitRepository{db: db}
}

// Create persists the habit plus its optional schedule and reminders in a
// single transaction. Any failure rolls back the whole creation.
func (r *habitRepository) Create(habit *model.Habit) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO habits (user_id, name, description, category, streak_tracking, auto_complete, streak, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`

	var habitID int64
	err = tx.Get(&habitID, query,
		habit.UserID,
		habit.Name,
		habit.Description,
		habit.Category,
		habit.StreakTracking,
		habit.AutoComplete,
		habit.Streak,
		habit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}
	if habitID == 0 {
		return errors.New("habit insert returned no id")
	}

	if habit.Schedule != nil {
		scheduleQuery := `INSERT INTO schedules (habit_id, type, times_per_day) VALUES ($1, $2, $3)`
		_, err = tx.Exec(scheduleQuery, habitID, habit.Schedule.Type, habit.Schedule.TimesPerDay)
		if err != nil {
			return fmt.Errorf("failed to insert schedule: %w", err)
		}
	}

	for _, reminder := range habit.Reminders {
		reminderQuery := `INSERT INTO reminders (habit_id, reminder_time) VALUES ($1, $2)`
		_, err = tx.Exec(reminderQuery, habitID, reminder)
		if err != nil {
			return fmt.Errorf("failed to insert reminder: %w", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return err
	}

	habit.ID = habitID
	if habit.Schedule != nil {
		habit.Schedule.HabitID = habitID
	}

	return nil
}

func (r *habitRepository) ByID(habitID int64, userID string) (*model.Habit, error) {
	habit := &model.Habit{}
	query := `SELECT * FROM habits WHERE id = $1 AND user_id = $2`

	err := r.db.Get(habit, query, habitID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}

	err = r.loadDetails(habit)
	if err != nil {
		return nil, err
	}

	return habit, nil
}

func (r *habitRepository) Habits(userID string) ([]*model.Habit, error) {
	var habits []*model.Habit
	query := `SELECT * FROM habits WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&habits, query, userID)
	if err != nil {
		return nil, err
	}

	for _, habit := range habits {
		err = r.loadDetails(habit)
		if err != nil {
			return nil, err
		}
	}

	return habits, nil
}

// loadDetails attaches the schedule and reminder rows that live in their own
// tables.
func (r *habitRepository) loadDetails(habit *model.Habit) error {
	schedule := &model.Schedule{}
	err := r.db.Get(schedule, `SELECT * FROM schedules WHERE habit_id = $1`, habit.ID)
	if err == nil {
		habit.Schedule = schedule
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("failed to load schedule: %w", err)
	}

	var reminders []string
	err = r.db.Select(&reminders, `SELECT reminder_time FROM reminders WHERE habit_id = $1 ORDER BY reminder_time`, habit.ID)
	if err != nil {
		return fmt.Errorf("failed to load reminders: %w", err)
	}
	habit.Reminders = reminders

	return nil
}

// UpdateStreak writes the denormalized streak cache, scoped to the owner.
func (r *habitRepository) UpdateStreak(habitID int64, userID string, streak int) error {
	query := `UPDATE habits SET streak = $1 WHERE id = $2 AND user_id = $3`

	result, err := r.db.Exec(query, streak, habitID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrHabitNotFound
	}

	return nil
}
