package service

import (
	"github.com/habitkit/habitkit/internal/model"
)

const (
	StatusCreated   = "created"
	StatusUpdated   = "updated"
	StatusCompleted = "completed"
	StatusUndone    = "undone"
	StatusNotFound  = "not_found"
	StatusConflict  = "conflict"
	StatusError     = "error"
)

// Result is the uniform outcome shape returned by the completion engine.
// Status drives the HTTP mapping at the handler layer; Message carries a
// short human-readable reason and never raw driver errors.
type Result struct {
	IsSuccess bool
	Status    string
	Message   string
	Habit     *model.Habit
	Entry     *model.Completion
}

func failure(status, message string) Result {
	return Result{Status: status, Message: message}
}
