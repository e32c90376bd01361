package service

import (
	"log/slog"
	"time"

	"github.com/habitkit/habitkit/internal/model"
	"github.com/habitkit/habitkit/internal/repository"
)

type HistoryService struct {
	repo repository.HistoryRepository
}

func NewHistoryService(repo repository.HistoryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// LogAction appends a COMPLETED/UNDONE audit entry. It fails closed: all
// three fields must be set or nothing is written. The caller decides whether
// a false return fails the overall request.
func (s *HistoryService) LogAction(habitID int64, userID, action string) bool {
	if habitID == 0 || userID == "" || action == "" {
		slog.Warn("missing required fields for history log",
			"habit_id", habitID,
			"user_id", userID,
			"action", action,
		)
		return false
	}

	err := s.repo.Insert(habitID, userID, action, time.Now().UTC())
	if err != nil {
		slog.Error("failed to log habit action",
			"error", err,
			"habit_id", habitID,
			"user_id", userID,
			"action", action,
		)
		return false
	}

	return true
}

// History returns the user's audit trail newest-first. The read path is
// best-effort: any internal failure yields an empty list, not an error.
func (s *HistoryService) History(userID string) []*model.HistoryEntry {
	entries, err := s.repo.ByUser(userID)
	if err != nil {
		slog.Error("failed to fetch habit history", "error", err, "user_id", userID)
		return []*model.HistoryEntry{}
	}

	if entries == nil {
		entries = []*model.HistoryEntry{}
	}

	return entries
}
