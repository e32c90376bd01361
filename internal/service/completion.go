package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/habitkit/habitkit/internal/model"
	"github.com/habitkit/habitkit/internal/repository"
)

// CompletionService is the ledger for per-day habit progress. Each mutation
// runs as commit, then streak recompute, then history write, strictly in
// that order. The streak and history steps happen after the ledger's own
// commit: when one of them fails the request is reported as failed even
// though the entry itself stays committed, and the message says so.
type CompletionService struct {
	habitRepo      repository.HabitRepository
	completionRepo repository.CompletionRepository
	streakService  *StreakService
	historyService *HistoryService

	now func() time.Time
}

func NewCompletionService(
	habitRepo repository.HabitRepository,
	completionRepo repository.CompletionRepository,
	streakService *StreakService,
	historyService *HistoryService,
) *CompletionService {
	return &CompletionService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		streakService:  streakService,
		historyService: historyService,
		now:            time.Now,
	}
}

// MarkComplete records progress for the habit's current day. The first call
// of a day inserts a record (status "completed"); later calls the same day
// accumulate progress onto it (status "updated").
func (s *CompletionService) MarkComplete(habitID int64, userID string, progress, target int, notes *string) Result {
	if userID == "" {
		return failure(StatusError, "Missing user")
	}

	habit, err := s.habitRepo.ByID(habitID, userID)
	if errors.Is(err, repository.ErrHabitNotFound) {
		return failure(StatusNotFound, "Habit not found")
	}
	if err != nil {
		slog.Error("failed to load habit for completion", "error", err, "habit_id", habitID, "user_id", userID)
		return failure(StatusError, "Failed to complete habit")
	}

	record, created, err := s.completionRepo.Upsert(habitID, userID, progress, target, notes, s.now())
	if err != nil {
		slog.Error("failed to record habit completion", "error", err, "habit_id", habitID, "user_id", userID)
		return failure(StatusError, "Failed to complete habit")
	}

	status := StatusUpdated
	message := fmt.Sprintf("Habit progress updated to %d for today", record.Progress)
	if created {
		status = StatusCompleted
		message = fmt.Sprintf("Habit progress recorded: %d for today", record.Progress)
	}

	if done := s.finishMutation(habit, model.ActionCompleted); !done.IsSuccess {
		return done
	}

	return Result{IsSuccess: true, Status: status, Message: message, Habit: habit, Entry: record}
}

// Undo removes the single most recent completion entry, whichever day it
// belongs to. Callers cannot target an arbitrary past day.
func (s *CompletionService) Undo(habitID int64, userID string) Result {
	if userID == "" {
		return failure(StatusError, "Missing user")
	}

	habit, err := s.habitRepo.ByID(habitID, userID)
	if errors.Is(err, repository.ErrHabitNotFound) {
		return failure(StatusNotFound, "Habit not found")
	}
	if err != nil {
		slog.Error("failed to load habit for undo", "error", err, "habit_id", habitID, "user_id", userID)
		return failure(StatusError, "Failed to undo habit entry")
	}

	err = s.completionRepo.DeleteLatest(habitID, userID)
	if errors.Is(err, repository.ErrCompletionNotFound) {
		return failure(StatusNotFound, "No habit entry to undo")
	}
	if err != nil {
		slog.Error("failed to undo habit entry", "error", err, "habit_id", habitID, "user_id", userID)
		return failure(StatusError, "Failed to undo habit entry")
	}

	if done := s.finishMutation(habit, model.ActionUndone); !done.IsSuccess {
		return done
	}

	return Result{IsSuccess: true, Status: StatusUndone, Message: "Habit entry undone", Habit: habit}
}

// finishMutation runs the post-commit steps shared by MarkComplete and Undo:
// streak recompute and persist, then the audit log write. The ledger commit
// is never rolled back here; failures are surfaced with a message that makes
// the committed state explicit.
func (s *CompletionService) finishMutation(habit *model.Habit, action string) Result {
	streak, err := s.streakService.Refresh(habit.ID, habit.UserID)
	if err != nil {
		slog.Error("failed to refresh streak after ledger mutation",
			"error", err, "habit_id", habit.ID, "user_id", habit.UserID, "action", action)
		return failure(StatusError, "Habit entry saved but streak update failed")
	}
	habit.Streak = streak

	if !s.historyService.LogAction(habit.ID, habit.UserID, action) {
		return failure(StatusError, "Habit entry saved but history log failed")
	}

	return Result{IsSuccess: true}
}
