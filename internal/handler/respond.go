package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/habitkit/habitkit/internal/service"
)

type errorBody struct {
	Message string `json:"message"`
}

// envelope is the uniform wire shape: success carries data and a null
// error, failure carries an error and null data.
type envelope struct {
	Status string     `json:"status"`
	Data   any        `json:"data"`
	Error  *errorBody `json:"error"`
}

func respondSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, envelope{Status: "success", Data: data})
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, envelope{Status: "error", Error: &errorBody{Message: message}})
}

func writeJSON(w http.ResponseWriter, statusCode int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// httpStatus maps a core result status to its HTTP status code.
func httpStatus(result service.Result) int {
	switch result.Status {
	case service.StatusNotFound:
		return http.StatusNotFound
	case service.StatusConflict:
		return http.StatusConflict
	case service.StatusCreated:
		return http.StatusCreated
	case service.StatusError:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
