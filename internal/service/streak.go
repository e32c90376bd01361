package service

import (
	"math"
	"time"

	"github.com/habitkit/habitkit/internal/repository"
)

type StreakService struct {
	completionRepo repository.CompletionRepository
	habitRepo      repository.HabitRepository
}

func NewStreakService(completionRepo repository.CompletionRepository, habitRepo repository.HabitRepository) *StreakService {
	return &StreakService{
		completionRepo: completionRepo,
		habitRepo:      habitRepo,
	}
}

// Calculate derives the current consecutive-day streak from completed
// records only. The newest completed entry seeds the streak; each older
// entry extends it when the whole-day gap to the previous one is exactly 1,
// and any other gap ends the walk. Days with progress but is_completed =
// false never enter the walk at all.
func (s *StreakService) Calculate(habitID int64, userID string) (int, error) {
	completions, err := s.completionRepo.CompletedByHabit(habitID, userID)
	if err != nil {
		return 0, err
	}

	if len(completions) == 0 {
		return 0, nil
	}

	streak := 1
	prev := completions[0]
	for _, completion := range completions[1:] {
		gap := wholeDayGap(prev.CompletionTime, completion.CompletionTime)
		if gap != 1 {
			break
		}
		streak++
		prev = completion
	}

	return streak, nil
}

// Refresh recomputes the streak and persists it onto the habit's
// denormalized streak field, scoped to the owning user.
func (s *StreakService) Refresh(habitID int64, userID string) (int, error) {
	streak, err := s.Calculate(habitID, userID)
	if err != nil {
		return 0, err
	}

	err = s.habitRepo.UpdateStreak(habitID, userID, streak)
	if err != nil {
		return 0, err
	}

	return streak, nil
}

// wholeDayGap is the ceiling of the elapsed time between two entries
// divided by one day, newer first.
func wholeDayGap(newer, older time.Time) int {
	return int(math.Ceil(newer.Sub(older).Hours() / 24))
}
