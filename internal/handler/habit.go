package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/habitkit/habitkit/internal/ctxkeys"
	"github.com/habitkit/habitkit/internal/model"
	"github.com/habitkit/habitkit/internal/service"
)

type HabitHandler struct {
	habitService      *service.HabitService
	completionService *service.CompletionService
}

func NewHabitHandler(habitService *service.HabitService, completionService *service.CompletionService) *HabitHandler {
	return &HabitHandler{
		habitService:      habitService,
		completionService: completionService,
	}
}

type scheduleRequest struct {
	Type        string `json:"type"`
	TimesPerDay int    `json:"timesPerDay"`
}

type createHabitRequest struct {
	Name           string           `json:"name"`
	Description    *string          `json:"description"`
	Category       string           `json:"category"`
	StreakTracking bool             `json:"streakTracking"`
	AutoComplete   bool             `json:"autoComplete"`
	Schedule       *scheduleRequest `json:"schedule"`
	Reminders      []string         `json:"reminders"`
}

type completeHabitRequest struct {
	Progress         *int    `json:"progress"`
	CompletionTarget *int    `json:"completionTarget"`
	Notes            *string `json:"notes"`
}

type scheduleResponse struct {
	Type        string `json:"type"`
	TimesPerDay int    `json:"timesPerDay"`
}

type habitResponse struct {
	ID             int64             `json:"id"`
	UserID         string            `json:"userID"`
	Name           string            `json:"name"`
	Description    *string           `json:"description"`
	Category       string            `json:"category"`
	StreakTracking bool              `json:"streakTracking"`
	AutoComplete   bool              `json:"autoComplete"`
	Streak         int               `json:"streak"`
	Schedule       *scheduleResponse `json:"schedule,omitempty"`
	Reminders      []string          `json:"reminders,omitempty"`
}

type entryResponse struct {
	Progress    int     `json:"progress"`
	IsCompleted bool    `json:"isCompleted"`
	Notes       *string `json:"notes"`
}

type completionResponse struct {
	IsSuccess bool           `json:"isSuccess"`
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	Habit     *habitResponse `json:"habit,omitempty"`
	Entry     *entryResponse `json:"entry,omitempty"`
}

func toHabitResponse(habit *model.Habit) *habitResponse {
	if habit == nil {
		return nil
	}

	resp := &habitResponse{
		ID:             habit.ID,
		UserID:         habit.UserID,
		Name:           habit.Name,
		Description:    habit.Description,
		Category:       habit.Category,
		StreakTracking: habit.StreakTracking,
		AutoComplete:   habit.AutoComplete,
		Streak:         habit.Streak,
		Reminders:      habit.Reminders,
	}
	if habit.Schedule != nil {
		resp.Schedule = &scheduleResponse{
			Type:        habit.Schedule.Type,
			TimesPerDay: habit.Schedule.TimesPerDay,
		}
	}

	return resp
}

func toCompletionResponse(result service.Result) completionResponse {
	resp := completionResponse{
		IsSuccess: result.IsSuccess,
		Status:    result.Status,
		Message:   result.Message,
		Habit:     toHabitResponse(result.Habit),
	}
	if result.Entry != nil {
		resp.Entry = &entryResponse{
			Progress:    result.Entry.Progress,
			IsCompleted: result.Entry.IsCompleted,
			Notes:       result.Entry.Notes,
		}
	}

	return resp
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createHabitRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid habit data")
		return
	}

	input := service.CreateHabitInput{
		UserID:         user.ID,
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		StreakTracking: req.StreakTracking,
		AutoComplete:   req.AutoComplete,
		Reminders:      req.Reminders,
	}
	if req.Schedule != nil {
		input.Schedule = &model.Schedule{
			Type:        req.Schedule.Type,
			TimesPerDay: req.Schedule.TimesPerDay,
		}
	}

	habit, err := h.habitService.Create(input)
	if errors.Is(err, service.ErrMissingHabitFields) ||
		errors.Is(err, service.ErrInvalidSchedule) ||
		errors.Is(err, service.ErrInvalidReminder) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to create habit", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to create habit")
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{
		"message": "Habit \"" + habit.Name + "\" created successfully",
		"habit":   toHabitResponse(habit),
	})
}

func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	habits, err := h.habitService.Habits(user.ID)
	if err != nil {
		slog.Error("failed to list habits", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to load habits")
		return
	}

	resp := make([]*habitResponse, 0, len(habits))
	for _, habit := range habits {
		resp = append(resp, toHabitResponse(habit))
	}

	respondSuccess(w, http.StatusOK, map[string]any{"habits": resp})
}

// Complete marks progress on a habit for the current day.
func (h *HabitHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	habitID, err := strconv.ParseInt(r.PathValue("habitId"), 10, 64)
	if err != nil || habitID < 1 {
		respondError(w, http.StatusBadRequest, "Habit ID must be a positive integer")
		return
	}

	var req completeHabitRequest
	if r.Body != nil && r.ContentLength != 0 {
		err = json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid habit completion data")
			return
		}
	}

	progress := 1
	if req.Progress != nil {
		progress = *req.Progress
	}
	target := 1
	if req.CompletionTarget != nil {
		target = *req.CompletionTarget
	}

	if progress < 1 {
		respondError(w, http.StatusBadRequest, "Progress must be a positive integer")
		return
	}
	if target < 1 {
		respondError(w, http.StatusBadRequest, "Completion target must be a positive integer")
		return
	}

	result := h.completionService.MarkComplete(habitID, user.ID, progress, target, req.Notes)
	if !result.IsSuccess {
		respondError(w, httpStatus(result), result.Message)
		return
	}

	respondSuccess(w, httpStatus(result), toCompletionResponse(result))
}

// Undo removes the most recent completion entry for a habit.
func (h *HabitHandler) Undo(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	habitID, err := strconv.ParseInt(r.PathValue("habitId"), 10, 64)
	if err != nil || habitID < 1 {
		respondError(w, http.StatusBadRequest, "Habit ID must be a positive integer")
		return
	}

	result := h.completionService.Undo(habitID, user.ID)
	if !result.IsSuccess {
		respondError(w, httpStatus(result), result.Message)
		return
	}

	respondSuccess(w, httpStatus(result), toCompletionResponse(result))
}
