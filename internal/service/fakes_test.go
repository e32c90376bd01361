package service

import (
	"sort"
	"time"

	"github.com/habitkit/habitkit/internal/model"
	"github.com/habitkit/habitkit/internal/repository"
)

// In-memory repository doubles mirroring the contracts of the sqlx
// implementations, so the services under test see the same semantics
// without a database.

type fakeHabitRepo struct {
	habits          map[int64]*model.Habit
	nextID          int64
	created         []*model.Habit
	createErr       error
	updateStreakErr error
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{habits: map[int64]*model.Habit{}}
}

func (f *fakeHabitRepo) add(habit *model.Habit) *model.Habit {
	f.nextID++
	habit.ID = f.nextID
	f.habits[habit.ID] = habit
	return habit
}

func (f *fakeHabitRepo) Create(habit *model.Habit) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(habit)
	f.created = append(f.created, habit)
	return nil
}

func (f *fakeHabitRepo) ByID(habitID int64, userID string) (*model.Habit, error) {
	habit, ok := f.habits[habitID]
	if !ok || habit.UserID != userID {
		return nil, repository.ErrHabitNotFound
	}
	copied := *habit
	return &copied, nil
}

func (f *fakeHabitRepo) Habits(userID string) ([]*model.Habit, error) {
	var habits []*model.Habit
	for _, habit := range f.habits {
		if habit.UserID == userID {
			copied := *habit
			habits = append(habits, &copied)
		}
	}
	sort.Slice(habits, func(i, j int) bool { return habits[i].ID < habits[j].ID })
	return habits, nil
}

func (f *fakeHabitRepo) UpdateStreak(habitID int64, userID string, streak int) error {
	if f.updateStreakErr != nil {
		return f.updateStreakErr
	}
	habit, ok := f.habits[habitID]
	if !ok || habit.UserID != userID {
		return repository.ErrHabitNotFound
	}
	habit.Streak = streak
	return nil
}

type fakeCompletionRepo struct {
	records   []*model.Completion
	nextID    int64
	upsertErr error
	deleteErr error
	listErr   error
}

func (f *fakeCompletionRepo) Upsert(habitID int64, userID string, progress, target int, notes *string, now time.Time) (*model.Completion, bool, error) {
	if f.upsertErr != nil {
		return nil, false, f.upsertErr
	}

	now = now.UTC().Truncate(time.Second)
	day := now.Format("2006-01-02")

	for _, record := range f.records {
		if record.HabitID != habitID || record.UserID != userID || record.Day() != day {
			continue
		}
		record.Progress += progress
		record.IsCompleted = record.Progress >= target
		if notes != nil {
			record.Notes = notes
		}
		record.UpdatedAt = now
		copied := *record
		return &copied, false, nil
	}

	f.nextID++
	record := &model.Completion{
		ID:             f.nextID,
		HabitID:        habitID,
		UserID:         userID,
		CompletionTime: now,
		Progress:       progress,
		IsCompleted:    progress >= target,
		Notes:          notes,
		UpdatedAt:      now,
	}
	f.records = append(f.records, record)
	copied := *record
	return &copied, true, nil
}

func (f *fakeCompletionRepo) DeleteLatest(habitID int64, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}

	latest := -1
	for i, record := range f.records {
		if record.HabitID != habitID || record.UserID != userID {
			continue
		}
		if latest == -1 {
			latest = i
			continue
		}
		best := f.records[latest]
		if record.CompletionTime.After(best.CompletionTime) ||
			(record.CompletionTime.Equal(best.CompletionTime) && record.ID > best.ID) {
			latest = i
		}
	}
	if latest == -1 {
		return repository.ErrCompletionNotFound
	}

	f.records = append(f.records[:latest], f.records[latest+1:]...)
	return nil
}

func (f *fakeCompletionRepo) CompletedByHabit(habitID int64, userID string) ([]*model.Completion, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	var completions []*model.Completion
	for _, record := range f.records {
		if record.HabitID == habitID && record.UserID == userID && record.IsCompleted {
			copied := *record
			completions = append(completions, &copied)
		}
	}
	sort.Slice(completions, func(i, j int) bool {
		if !completions[i].CompletionTime.Equal(completions[j].CompletionTime) {
			return completions[i].CompletionTime.After(completions[j].CompletionTime)
		}
		return completions[i].ID > completions[j].ID
	})
	return completions, nil
}

type fakeHistoryRepo struct {
	entries   []*model.HistoryEntry
	nextID    int64
	insertErr error
	listErr   error
}

func (f *fakeHistoryRepo) Insert(habitID int64, userID, action string, timestamp time.Time) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.nextID++
	f.entries = append(f.entries, &model.HistoryEntry{
		ID:        f.nextID,
		HabitID:   habitID,
		UserID:    userID,
		Action:    action,
		Timestamp: timestamp,
	})
	return nil
}

func (f *fakeHistoryRepo) ByUser(userID string) ([]*model.HistoryEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var entries []*model.HistoryEntry
	for _, entry := range f.entries {
		if entry.UserID == userID {
			copied := *entry
			entries = append(entries, &copied)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}
