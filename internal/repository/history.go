package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/habitkit/habitkit/internal/model"
	"github.com/jmoiron/sqlx"
)

type HistoryRepository interface {
	// Insert appends one audit entry in its own transaction, independent of
	// the ledger mutation it follows.
	Insert(habitID int64, userID, action string, timestamp time.Time) error
	ByUser(userID string) ([]*model.HistoryEntry, error)
}

type historyRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Insert(habitID int64, userID, action string, timestamp time.Time) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO habit_history (habit_id, user_id, action, timestamp) VALUES ($1, $2, $3, $4) RETURNING id`

	var id int64
	err = tx.Get(&id, query, habitID, userID, action, timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	if id == 0 {
		return errors.New("history insert returned no id")
	}

	return tx.Commit()
}

func (r *historyRepository) ByUser(userID string) ([]*model.HistoryEntry, error) {
	var entries []*model.HistoryEntry
	query := `SELECT * FROM habit_history WHERE user_id = $1 ORDER BY timestamp DESC, id DESC`

	err := r.db.Select(&entries, query, userID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
