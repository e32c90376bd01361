package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/habitkit/habitkit/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrCompletionNotFound = errors.New("habit entry not found")
)

type CompletionRepository interface {
	// Upsert records progress for the habit's current day. It returns the
	// resulting record and whether a new row was created (first completion
	// of the day) as opposed to accumulated onto an existing one.
	Upsert(habitID int64, userID string, progress, target int, notes *string, now time.Time) (*model.Completion, bool, error)
	// DeleteLatest removes the single most recent completion for the habit,
	// regardless of which day it was recorded for.
	DeleteLatest(habitID int64, userID string) error
	// CompletedByHabit returns completed records newest-first, for the
	// streak walk.
	CompletedByHabit(habitID int64, userID string) ([]*model.Completion, error)
}

type completionRepository struct {
	db *sqlx.DB
}

func NewCompletionRepository(db *sqlx.DB) CompletionRepository {
	return &completionRepository{db: db}
}

// Days are UTC calendar days. Insert-or-accumulate runs as one atomic
// statement keyed on the unique day index, so concurrent same-day
// completions serialize inside the database instead of racing a
// read-modify-write. The conflict target must stay spelled exactly like the
// index expression in the migrations.
func (r *completionRepository) Upsert(habitID int64, userID string, progress, target int, notes *string, now time.Time) (*model.Completion, bool, error) {
	// Second precision keeps the stored text in a form sqlite's date()
	// understands for the unique day index.
	now = now.UTC().Truncate(time.Second)

	record := &model.Completion{}
	query := `INSERT INTO habit_completions (habit_id, user_id, completion_time, progress, is_completed, notes, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (habit_id, user_id, date(completion_time)) DO UPDATE SET
	              progress = habit_completions.progress + excluded.progress,
	              is_completed = habit_completions.progress + excluded.progress >= $8,
	              notes = COALESCE(excluded.notes, habit_completions.notes),
	              updated_at = excluded.updated_at
	          RETURNING *`

	err := r.db.Get(record, query,
		habitID,
		userID,
		now,
		progress,
		progress >= target,
		notes,
		now,
		target,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to record habit entry: %w", err)
	}
	if record.ID == 0 {
		return nil, false, errors.New("habit entry returned no id")
	}

	// progress is at least 1 on every row, so an accumulated row always
	// reports more than this request supplied on its own.
	created := record.Progress == progress

	return record, created, nil
}

// DeleteLatest removes the newest entry in one atomic statement; no
// concurrent mutation can slip between finding the row and deleting it.
func (r *completionRepository) DeleteLatest(habitID int64, userID string) error {
	query := `DELETE FROM habit_completions WHERE id = (
	              SELECT id FROM habit_completions
	              WHERE habit_id = $1 AND user_id = $2
	              ORDER BY completion_time DESC, id DESC LIMIT 1)`

	result, err := r.db.Exec(query, habitID, userID)
	if err != nil {
		return fmt.Errorf("failed to undo habit entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCompletionNotFound
	}

	return nil
}

func (r *completionRepository) CompletedByHabit(habitID int64, userID string) ([]*model.Completion, error) {
	var completions []*model.Completion
	query := `SELECT * FROM habit_completions WHERE habit_id = $1 AND user_id = $2 AND is_completed = $3 ORDER BY completion_time DESC`

	err := r.db.Select(&completions, query, habitID, userID, true)
	if err != nil {
		return nil, err
	}

	return completions, nil
}
