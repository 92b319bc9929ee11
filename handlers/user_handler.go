package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"studenthub/auth"
	"studenthub/models"
	"studenthub/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserHandler struct {
	Repo       repository.UserRepository
	Uploads    Uploader
	Secret     []byte
	Production bool
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new user. Accounts start out pending until an admin
// approves them.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		writeError(w, http.StatusBadRequest, "Please provide a valid email address")
		return
	}
	if len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
	}
	if err := h.Repo.CreateUser(user); err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Account created successfully! Your account is pending admin approval.",
		Data:    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and sets the session cookie. Approval status
// does not gate login; pending and rejected users can still sign in and see
// their own state.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.Repo.GetUserByEmail(req.Email)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	// same message for unknown email and wrong password
	if user == nil || !auth.VerifyPassword(user.Password, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.IssueToken(user.ID, h.Secret, auth.TokenTTL)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	http.SetCookie(w, auth.SessionCookie(token, h.Production))
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Login successful",
		Data:    user,
	})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; there is no server-side revocation.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ExpiredSessionCookie(h.Production))
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Logged out"})
}

// Profile returns the caller's own record.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: auth.FromContext(r)})
}

// ProfileByID returns another user's public profile.
func (h *UserHandler) ProfileByID(w http.ResponseWriter, r *http.Request, userID string) {
	user, err := h.Repo.GetUserByID(userID)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: user.Public()})
}

type updateProfileRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// UpdateProfile changes the caller's display name and bio.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	user, err := h.Repo.UpdateProfile(auth.FromContext(r).ID, req.Name, req.Bio)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Profile updated successfully",
		Data:    user,
	})
}

// UploadProfileImage stores a new profile photo in object storage and points
// the user record at it.
func (h *UserHandler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := readImageUpload(r, "image")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	me := auth.FromContext(r)
	key := fmt.Sprintf("profiles/%s_%d%s", me.ID, time.Now().Unix(), extFor(contentType))
	url, err := h.Uploads.Upload(data, key, contentType)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	user, err := h.Repo.UpdateProfileImage(me.ID, url)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Profile photo updated",
		Data:    user,
	})
}

// ApprovedUsers lists approved users for the explore page. Email addresses
// are stripped from the listing.
func (h *UserHandler) ApprovedUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r, 20)

	users, total, err := h.Repo.ListUsers(repository.UserQuery{
		PublicOnly: true,
		Search:     r.URL.Query().Get("search"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}

	public := make([]models.User, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users":       public,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"totalUsers":  total,
	})
}

const maxUploadBytes = 10 << 20

// readImageUpload pulls a single image file out of a multipart form and
// sniffs its content type.
func readImageUpload(r *http.Request, field string) ([]byte, string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "", errors.New("invalid multipart form")
	}
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, "", errors.New("image file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, "", errors.New("could not read uploaded file")
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", errors.New("only image uploads are allowed")
	}
	return data, contentType, nil
}

func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
