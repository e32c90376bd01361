package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/habitkit/habitkit/internal/model"
	"github.com/habitkit/habitkit/internal/repository"
	"github.com/habitkit/habitkit/internal/validation"
)

var (
	ErrMissingHabitFields = errors.New("missing required fields: userID, name, or category")
	ErrInvalidSchedule    = errors.New("invalid schedule data")
	ErrInvalidReminder    = errors.New("invalid reminder format, expected HH:MM")
)

type CreateHabitInput struct {
	UserID         string
	Name           string
	Description    *string
	Category       string
	StreakTracking bool
	AutoComplete   bool
	Schedule       *model.Schedule
	Reminders      []string
}

type HabitService struct {
	repo repository.HabitRepository
}

func NewHabitService(repo repository.HabitRepository) *HabitService {
	return &HabitService{repo: repo}
}

// Create validates the habit and persists it together with its optional
// schedule and reminders. Creation is all-or-nothing: one bad reminder or an
// invalid schedule means no rows are written at all.
func (s *HabitService) Create(input CreateHabitInput) (*model.Habit, error) {
	if input.UserID == "" || input.Name == "" || input.Category == "" {
		return nil, ErrMissingHabitFields
	}

	if input.Schedule != nil {
		if !validScheduleType(input.Schedule.Type) || input.Schedule.TimesPerDay <= 0 {
			return nil, ErrInvalidSchedule
		}
	}

	for _, reminder := range input.Reminders {
		if err := validation.ValidateReminderTime(reminder); err != nil {
			return nil, ErrInvalidReminder
		}
	}

	habit := &model.Habit{
		UserID:         input.UserID,
		Name:           input.Name,
		Description:    input.Description,
		Category:       input.Category,
		StreakTracking: input.StreakTracking,
		AutoComplete:   input.AutoComplete,
		Streak:         0,
		CreatedAt:      time.Now().UTC(),
		Schedule:       input.Schedule,
		Reminders:      input.Reminders,
	}

	err := s.repo.Create(habit)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return habit, nil
}

func (s *HabitService) ByID(habitID int64, userID string) (*model.Habit, error) {
	return s.repo.ByID(habitID, userID)
}

func (s *HabitService) Habits(userID string) ([]*model.Habit, error) {
	return s.repo.Habits(userID)
}

func validScheduleType(scheduleType string) bool {
	switch scheduleType {
	case model.ScheduleDaily, model.ScheduleWeekly, model.ScheduleCustom:
		return true
	}
	return false
}
