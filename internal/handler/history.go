package handler

import (
	"net/http"
	"time"

	"github.com/habitkit/habitkit/internal/ctxkeys"
	"github.com/habitkit/habitkit/internal/service"
)

type HistoryHandler struct {
	historyService *service.HistoryService
}

func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

type historyEntryResponse struct {
	ID        int64     `json:"id"`
	HabitID   int64     `json:"habitId"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// List returns the user's audit trail newest-first. The service degrades to
// an empty list on internal failure, so this endpoint always answers 200.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	entries := h.historyService.History(user.ID)

	resp := make([]historyEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, historyEntryResponse{
			ID:        entry.ID,
			HabitID:   entry.HabitID,
			Action:    entry.Action,
			Timestamp: entry.Timestamp,
		})
	}

	respondSuccess(w, http.StatusOK, map[string]any{"history": resp})
}
