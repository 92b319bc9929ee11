package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"studenthub/repository"
)

// ApiResponse is the JSON envelope for mutations and errors.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ApiResponse{Success: false, Message: message})
}

// writeRepoError maps repository sentinels to their HTTP statuses; anything
// unexpected is logged and hidden behind a generic 500.
func writeRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Record not found")
	case errors.Is(err, repository.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "User with this email already exists")
	case errors.Is(err, repository.ErrProfileExists):
		writeError(w, http.StatusBadRequest, "Education profile already exists. Use update instead.")
	default:
		log.Printf("repository error: %v", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// parsePagination reads page/limit query params with sane bounds.
func parsePagination(r *http.Request, defaultLimit int64) (page, limit int64) {
	page = 1
	limit = defaultLimit

	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return page, limit
}

func totalPages(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
