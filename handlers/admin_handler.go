package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"studenthub/auth"
	"studenthub/models"
	"studenthub/repository"
)

type AdminHandler struct {
	Users     repository.UserRepository
	Education repository.EducationRepository
	Posts     repository.PostRepository
}

// Stats serves the dashboard summary counters.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Users.Stats()
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ListUsers pages through all users with optional status and search filters.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r, 10)
	q := r.URL.Query()

	users, total, err := h.Users.ListUsers(repository.UserQuery{
		Status: q.Get("status"),
		Search: q.Get("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users":       users,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"totalUsers":  total,
	})
}

// PendingUsers pages through users awaiting approval.
func (h *AdminHandler) PendingUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r, 10)

	users, total, err := h.Users.ListUsers(repository.UserQuery{
		Status: models.StatusPending,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users":        users,
		"totalPages":   totalPages(total, limit),
		"currentPage":  page,
		"totalPending": total,
	})
}

// UserDetails returns one user together with their education profile.
func (h *AdminHandler) UserDetails(w http.ResponseWriter, r *http.Request, userID string) {
	user, err := h.Users.GetUserByID(userID)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	education, err := h.Education.GetEducationByUser(userID)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":      user,
		"education": education,
	})
}

// Approve marks a user approved.
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request, userID string) {
	user, err := h.Users.UpdateStatus(userID, models.StatusApproved, "")
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "User approved successfully",
		Data:    user,
	})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Reject marks a user rejected, recording the reason.
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request, userID string) {
	var req rejectRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Reason == "" {
		req.Reason = "No reason provided"
	}

	user, err := h.Users.UpdateStatus(userID, models.StatusRejected, req.Reason)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "User rejected successfully",
		Data:    user,
	})
}

type roleRequest struct {
	Role string `json:"role"`
}

// UpdateRole promotes or demotes a user. An admin cannot demote themselves;
// that guard runs before the role check would otherwise allow the mutation.
func (h *AdminHandler) UpdateRole(w http.ResponseWriter, r *http.Request, userID string) {
	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		writeError(w, http.StatusBadRequest, "Invalid role. Must be USER or ADMIN")
		return
	}

	me := auth.FromContext(r)
	if userID == me.ID && req.Role == models.RoleUser {
		writeError(w, http.StatusBadRequest, "You cannot demote yourself")
		return
	}

	user, err := h.Users.UpdateRole(userID, req.Role)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: fmt.Sprintf("User role updated to %s successfully", req.Role),
		Data:    user,
	})
}

// DeleteUser removes a user and their owned records (education profile and
// posts). Self-deletion is blocked.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request, userID string) {
	me := auth.FromContext(r)
	if userID == me.ID {
		writeError(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	user, err := h.Users.GetUserByID(userID)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := h.Education.DeleteEducationByUser(userID); err != nil &&
		err != repository.ErrNotFound {
		writeRepoError(w, err)
		return
	}
	if err := h.Posts.DeletePostsByUser(userID); err != nil {
		writeRepoError(w, err)
		return
	}
	if err := h.Users.DeleteUser(userID); err != nil {
		writeRepoError(w, err)
		return
	}

	log.Printf("admin %s deleted user %s", me.ID, userID)
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "User and associated data deleted successfully",
	})
}

type bulkRequest struct {
	UserIDs []string `json:"userIds"`
	Reason  string   `json:"reason"`
}

// BulkApprove approves a batch of users in a single multi-record update.
// Ids that match nothing are skipped silently.
func (h *AdminHandler) BulkApprove(w http.ResponseWriter, r *http.Request) {
	h.bulkUpdate(w, r, models.StatusApproved)
}

// BulkReject rejects a batch of users in a single multi-record update.
func (h *AdminHandler) BulkReject(w http.ResponseWriter, r *http.Request) {
	h.bulkUpdate(w, r, models.StatusRejected)
}

func (h *AdminHandler) bulkUpdate(w http.ResponseWriter, r *http.Request, status string) {
	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(req.UserIDs) == 0 {
		writeError(w, http.StatusBadRequest, "User IDs array is required")
		return
	}
	reason := req.Reason
	if status == models.StatusRejected && reason == "" {
		reason = "No reason provided"
	}

	modified, err := h.Users.BulkUpdateStatus(req.UserIDs, status, reason)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	verb := "approved"
	if status == models.StatusRejected {
		verb = "rejected"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       fmt.Sprintf("%d users %s successfully", modified, verb),
		"modifiedCount": modified,
	})
}
