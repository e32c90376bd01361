package service

import (
	"errors"
	"testing"
	"time"

	"github.com/habitkit/habitkit/internal/model"
	"github.com/stretchr/testify/require"
)

type completionFixture struct {
	habitRepo      *fakeHabitRepo
	completionRepo *fakeCompletionRepo
	historyRepo    *fakeHistoryRepo
	history        *HistoryService
	service        *CompletionService
	habit          *model.Habit
	clock          time.Time
}

func newCompletionFixture() *completionFixture {
	f := &completionFixture{
		habitRepo:      newFakeHabitRepo(),
		completionRepo: &fakeCompletionRepo{},
		historyRepo:    &fakeHistoryRepo{},
		clock:          time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}
	f.habit = f.habitRepo.add(&model.Habit{UserID: "user-1", Name: "Read", Category: "learning", StreakTracking: true})
	f.history = NewHistoryService(f.historyRepo)
	f.service = NewCompletionService(
		f.habitRepo,
		f.completionRepo,
		NewStreakService(f.completionRepo, f.habitRepo),
		f.history,
	)
	f.service.now = func() time.Time { return f.clock }
	return f
}

func (f *completionFixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func TestMarkCompleteFirstEntryOfDay(t *testing.T) {
	f := newCompletionFixture()

	result := f.service.MarkComplete(f.habit.ID, "user-1", 1, 3, nil)

	require.True(t, result.IsSuccess)
	require.Equal(t, StatusCompleted, result.Status)
	require.Equal(t, "Habit progress recorded: 1 for today", result.Message)
	require.NotNil(t, result.Entry)
	require.Equal(t, 1, result.Entry.Progress)
	require.False(t, result.Entry.IsCompleted)

	// Progress short of the target does not count toward the streak.
	require.Equal(t, 0, result.Habit.Streak)
	require.Len(t, f.completionRepo.records, 1)

	entries := f.history.History("user-1")
	require.Len(t, entries, 1)
	require.Equal(t, model.ActionCompleted, entries[0].Action)
}

func TestMarkCompleteAccumulatesSameDay(t *testing.T) {
	f := newCompletionFixture()

	first := f.service.MarkComplete(f.habit.ID, "user-1", 1, 3, nil)
	second := f.service.MarkComplete(f.habit.ID, "user-1", 1, 3, nil)
	third := f.service.MarkComplete(f.habit.ID, "user-1", 1, 3, nil)

	require.Equal(t, StatusCompleted, first.Status)
	require.Equal(t, StatusUpdated, second.Status)
	require.Equal(t, "Habit progress updated to 2 for today", second.Message)
	require.Equal(t, StatusUpdated, third.Status)

	require.Equal(t, 3, third.Entry.Progress)
	require.True(t, third.Entry.IsCompleted)
	require.Equal(t, 1, third.Habit.Streak)

	// Still one row for the day, not three.
	require.Len(t, f.completionRepo.records, 1)
}

func TestMarkCompleteReachingTargetStartsStreak(t *testing.T) {
	f := newCompletionFixture()

	result := f.service.MarkComplete(f.habit.ID, "user-1", 1, 1, nil)

	require.True(t, result.IsSuccess)
	require.True(t, result.Entry.IsCompleted)
	require.Equal(t, 1, result.Habit.Streak)
	require.Equal(t, 1, f.habitRepo.habits[f.habit.ID].Streak)
}

func TestMarkCompleteConsecutiveDaysExtendStreak(t *testing.T) {
	f := newCompletionFixture()

	f.service.MarkComplete(f.habit.ID, "user-1", 1, 1, nil)
	f.advance(24 * time.Hour)
	result := f.service.MarkComplete(f.habit.ID, "user-1", 1, 1, nil)

	require.True(t, result.IsSuccess)
	require.Equal(t, 2, result.Habit.Streak)
	require.Len(t, f.completionRepo.records, 2)
}

func TestMarkCompleteUnknownHabit(t *testing.T) {
	f := newCompletionFixture()

	result := f.service.MarkComplete(999, "user-1", 1, 1, nil)

	require.False(t, result.IsSuccess)
	require.Equal(t, StatusNotFound, result.Status)
	require.Equal(t, "Habit not found", result.Message)
	require.Empty(t, f.completionRepo.records)
	require.Empty(t, f.historyRepo.entries)
}

func TestMarkCompleteOtherUsersHabit(t *testing.T) {
	f := newCompletionFixture()

	result := f.service.MarkComplete(f.habit.ID, "user-2", 1, 1, nil)

	require.False(t, result.IsSuccess)
	require.Equal(t, StatusNotFound, result.Status)
	require.Empty(t, f.completionRepo.records)
}

func TestMarkCompleteMissingUser(t *testing.T) {
	f := newCompletionFixture()

	result := f.service.MarkComplete(f.habit.ID, "", 1, 1, nil)

	require.False(t, result.IsSuccess)
	require.Equal(t, StatusError, result.Status)
}

func TestMarkCompleteNotesReplacedOnlyWhenProvided(t *testing.T) {
	f := newCompletionFixture()
	early := "morning session"
	late := "evening session"

	f.service.MarkComplete(f.habit.ID, "user-1", 1, 3, &early)
	second := f.service.MarkComplete(f.habit.ID, "user-1", 1, 3, nil)
	require.NotNil(t, second.Entry.Notes)
	require.Equal(t, early, *second.Entry.Notes)

	third := f.service.MarkComplete(f.habit.ID, "user-1", 1, 3, &late)
	require.NotNil(t, third.Entry.Notes)
	require.Equal(t, late, *third.Entry.Notes)
}

func TestMarkCompleteStreakUpdateFailure(t *testing.T) {
	f := newCompletionFixture()
	f.habitRepo.updateStreakErr = errors.New("boom")

	result := f.service.MarkComplete(f.habit.ID, "user-1", 1, 1, nil)

	require.False(t, result.IsSuccess)
	require.Equal(t, StatusError, result.Status)
	require.Equal(t, "Habit entry saved but streak update failed", result.Message)

	// The ledger write is never rolled back by post-commit failures.
	require.Len(t, f.completionRepo.records, 1)
	require.Empty(t, f.historyRepo.entries)
}

func TestMarkCompleteHistoryLogFailure(t *testing.T) {
	f := newCompletionFixture()
	f.historyRepo.insertErr = errors.New("boom")

	result := f.service.MarkComplete(f.habit.ID, "user-1", 1, 1, nil)

	require.False(t, result.IsSuccess)
	require.Equal(t, StatusError, result.Status)
	require.Equal(t, "Habit entry saved but history log failed", result.Message)
	require.Len(t, f.completionRepo.records, 1)
}

func TestUndoRemovesNewestEntryFirst(t *testing.T) {
	f := newCompletionFixture()

	f.service.MarkComplete(f.habit.ID, "user-1", 1, 1, nil)
	firstDay := f.clock.Format("2006-01-02")
	f.advance(24 * time.Hour)
	f.service.MarkComplete(f.habit.ID, "user-1", 1, 1, nil)

	result := f.service.Undo(f.habit.ID, "user-1")
	require.True(t, result.IsSuccess)
	require.Equal(t, StatusUndone, result.Status)
	require.Equal(t, "Habit entry undone", result.Message)

	require.Len(t, f.completionRepo.records, 1)
	require.Equal(t, firstDay, f.completionRepo.records[0].Day())
	require.Equal(t, 1, result.Habit.Streak)

	result = f.service.Undo(f.habit.ID, "user-1")
	require.True(t, result.IsSuccess)
	require.Empty(t, f.completionRepo.records)
	require.Equal(t, 0, result.Habit.Streak)
}

func TestUndoNothingToUndo(t *testing.T) {
	f := newCompletionFixture()

	result := f.service.Undo(f.habit.ID, "user-1")

	require.False(t, result.IsSuccess)
	require.Equal(t, StatusNotFound, result.Status)
	require.Equal(t, "No habit entry to undo", result.Message)
	require.Empty(t, f.historyRepo.entries)
}

func TestUndoUnknownHabit(t *testing.T) {
	f := newCompletionFixture()

	result := f.service.Undo(999, "user-1")

	require.False(t, result.IsSuccess)
	require.Equal(t, StatusNotFound, result.Status)
}

func TestMutationsAppendHistoryNewestFirst(t *testing.T) {
	f := newCompletionFixture()

	f.service.MarkComplete(f.habit.ID, "user-1", 1, 1, nil)
	f.service.Undo(f.habit.ID, "user-1")

	entries := f.history.History("user-1")
	require.Len(t, entries, 2)
	require.Equal(t, model.ActionUndone, entries[0].Action)
	require.Equal(t, model.ActionCompleted, entries[1].Action)
}
