package handlers

import (
	"encoding/json"
	"net/http"

	"studenthub/auth"
	"studenthub/models"
	"studenthub/repository"
)

type EducationHandler struct {
	Repo repository.EducationRepository
}

type educationRequest struct {
	Degree               string  `json:"degree"`
	DOB                  string  `json:"dob"`
	Department           string  `json:"department"`
	BatchYear            string  `json:"batchYear"`
	EndDate              string  `json:"endDate"`
	CurrentCollege       string  `json:"currentCollege"`
	Description          string  `json:"description"`
	Percentage10th       float64 `json:"percentage_10th"`
	Percentage12th       float64 `json:"percentage_12th"`
	GraduationPercentage float64 `json:"graduationPercentage"`
}

func (req *educationRequest) toModel() *models.Education {
	return &models.Education{
		Degree:               req.Degree,
		DOB:                  req.DOB,
		Department:           req.Department,
		BatchYear:            req.BatchYear,
		EndDate:              req.EndDate,
		CurrentCollege:       req.CurrentCollege,
		Description:          req.Description,
		Percentage10th:       req.Percentage10th,
		Percentage12th:       req.Percentage12th,
		GraduationPercentage: req.GraduationPercentage,
	}
}

// Create adds the caller's education profile. The owner reference comes from
// the session, never from the request body, and each user gets at most one
// profile.
func (h *EducationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req educationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Degree == "" || req.Department == "" || req.CurrentCollege == "" {
		writeError(w, http.StatusBadRequest, "Degree, department, and current college are required")
		return
	}

	edu := req.toModel()
	edu.UserID = auth.FromContext(r).ID
	if err := h.Repo.CreateEducation(edu); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Education profile created successfully",
		Data:    edu,
	})
}

// Update rewrites the caller's education profile. The owner reference is
// immutable; only the education fields change.
func (h *EducationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req educationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	edu, err := h.Repo.UpdateEducationByUser(auth.FromContext(r).ID, req.toModel())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Education profile updated successfully",
		Data:    edu,
	})
}

// Me returns the caller's own education profile.
func (h *EducationHandler) Me(w http.ResponseWriter, r *http.Request) {
	h.byUser(w, auth.FromContext(r).ID)
}

// ByUser returns the education profile owned by the given user.
func (h *EducationHandler) ByUser(w http.ResponseWriter, r *http.Request, userID string) {
	h.byUser(w, userID)
}

func (h *EducationHandler) byUser(w http.ResponseWriter, userID string) {
	edu, err := h.Repo.GetEducationByUser(userID)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if edu == nil {
		writeError(w, http.StatusNotFound, "Education profile not found")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: edu})
}

// Delete removes the caller's education profile.
func (h *EducationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.DeleteEducationByUser(auth.FromContext(r).ID); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Education profile deleted successfully",
	})
}

// Browse lists education profiles of approved users, filtered by department,
// degree (substring, case-insensitive) and batch year (exact).
func (h *EducationHandler) Browse(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r, 10)
	q := r.URL.Query()

	educations, total, err := h.Repo.ListEducations(repository.EducationQuery{
		Department:   q.Get("department"),
		Degree:       q.Get("degree"),
		BatchYear:    q.Get("batchYear"),
		ApprovedOnly: true,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if educations == nil {
		educations = []*models.Education{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"educations":  educations,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// Stats serves the admin dashboard's education aggregation.
func (h *EducationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Repo.Stats()
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
