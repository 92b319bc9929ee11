package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"studenthub/models"
	"studenthub/repository"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

type contextKey struct{}

var userKey contextKey

// Authenticator gates routes behind a valid session cookie. On success it
// re-resolves the full user record from the store so role and status changes
// take effect on the very next request, at the cost of one lookup per
// authenticated request.
type Authenticator struct {
	Repo   repository.UserRepository
	Secret []byte
}

func NewAuthenticator(repo repository.UserRepository, secret string) *Authenticator {
	return &Authenticator{Repo: repo, Secret: []byte(secret)}
}

// RequireAuth rejects the request with 401 unless the session cookie holds a
// valid token for an existing user. The resolved user is attached to the
// request context for handlers to read via FromContext.
func (a *Authenticator) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		if err != nil {
			denyJSON(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

// RequireAdmin is RequireAuth plus a role check. Non-admins get 403, which is
// deliberately distinct from the 401 of a failed authentication.
func (a *Authenticator) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return a.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user := FromContext(r)
		if user == nil || !user.IsAdmin() {
			denyJSON(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	})
}

func (a *Authenticator) authenticate(r *http.Request) (*models.User, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrTokenMissing
	}

	userID, err := VerifyToken(cookie.Value, a.Secret)
	if err != nil {
		return nil, err
	}

	user, err := a.Repo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// token outlived the account
		return nil, ErrTokenInvalid
	}
	return user, nil
}

// FromContext returns the authenticated user attached by RequireAuth, or nil
// on unauthenticated requests.
func FromContext(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

// WithUser attaches a user to a request context; exported for handler tests.
func WithUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userKey, user))
}

// SessionCookie builds the HTTP-only cookie carrying a freshly issued token.
// Secure is set only in production so local development over plain HTTP works.
func SessionCookie(token string, production bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie clears the session cookie on logout.
func ExpiredSessionCookie(production bool) *http.Cookie {
	c := SessionCookie("", production)
	c.MaxAge = -1
	return c
}

func denyJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
