package routes

import (
	"net/http"
	"strings"

	"studenthub/auth"
	"studenthub/handlers"
)

// withCORS reflects the configured frontend origin. Credentials must be
// allowed because the session rides in a cookie.
func withCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Cookie")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SetupRoutes builds the full route table. All handlers and middleware come
// in as arguments; nothing is registered on the default mux.
func SetupRoutes(
	authn *auth.Authenticator,
	userHandler *handlers.UserHandler,
	educationHandler *handlers.EducationHandler,
	postHandler *handlers.PostHandler,
	adminHandler *handlers.AdminHandler,
	pdfHandler *handlers.PDFHandler,
	corsOrigin string,
) http.Handler {
	if corsOrigin == "" {
		corsOrigin = "http://localhost:5173"
	}

	mux := http.NewServeMux()

	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, http.HandlerFunc(handlers.RecoverWrapper(h)))
	}
	post := func(h http.HandlerFunc) http.HandlerFunc {
		return requireMethod(http.MethodPost, h)
	}
	get := func(h http.HandlerFunc) http.HandlerFunc {
		return requireMethod(http.MethodGet, h)
	}
	put := func(h http.HandlerFunc) http.HandlerFunc {
		return requireMethod(http.MethodPut, h)
	}

	handle("/health", get(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))

	// User routes
	handle("/user/signup", post(userHandler.Signup))
	handle("/user/signin", post(userHandler.Login))
	handle("/user/logout", post(userHandler.Logout))
	handle("/user/approved", get(userHandler.ApprovedUsers))
	handle("/user/profile-image", post(authn.RequireAuth(userHandler.UploadProfileImage)))

	handle("/user/profile", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authn.RequireAuth(userHandler.Profile)(w, r)
		case http.MethodPut:
			authn.RequireAuth(userHandler.UpdateProfile)(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	// Public profile view by id
	handle("/user/profile/", get(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/user/profile/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		userHandler.ProfileByID(w, r, id)
	}))

	// Education routes
	handle("/education", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			authn.RequireAuth(educationHandler.Create)(w, r)
		case http.MethodPut:
			authn.RequireAuth(educationHandler.Update)(w, r)
		case http.MethodDelete:
			authn.RequireAuth(educationHandler.Delete)(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	handle("/education/me", get(authn.RequireAuth(educationHandler.Me)))
	handle("/education/browse", get(educationHandler.Browse))
	handle("/education/export", get(authn.RequireAuth(pdfHandler.ExportProfile)))
	handle("/education/admin/stats", get(authn.RequireAdmin(educationHandler.Stats)))

	// Education profile by owner id
	handle("/education/", get(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/education/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		educationHandler.ByUser(w, r, id)
	}))

	// Post routes
	handle("/posts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			authn.RequireAuth(postHandler.Create)(w, r)
		case http.MethodGet:
			postHandler.List(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	handle("/posts/my-posts", get(authn.RequireAuth(postHandler.Mine)))

	handle("/posts/user/", get(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/posts/user/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		postHandler.ByUser(w, r, id)
	}))

	handle("/posts/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/posts/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			postHandler.ByID(w, r, id)
		case http.MethodPut:
			authn.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
				postHandler.Update(w, r, id)
			})(w, r)
		case http.MethodDelete:
			authn.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
				postHandler.Delete(w, r, id)
			})(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	// Admin routes
	handle("/admin/stats", get(authn.RequireAdmin(adminHandler.Stats)))
	handle("/admin/users", get(authn.RequireAdmin(adminHandler.ListUsers)))
	handle("/admin/users/pending", get(authn.RequireAdmin(adminHandler.PendingUsers)))
	handle("/admin/users/bulk/approve", put(authn.RequireAdmin(adminHandler.BulkApprove)))
	handle("/admin/users/bulk/reject", put(authn.RequireAdmin(adminHandler.BulkReject)))

	handle("/admin/users/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/admin/users/")
		id, action, _ := strings.Cut(rest, "/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		switch {
		case action == "" && r.Method == http.MethodGet:
			authn.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
				adminHandler.UserDetails(w, r, id)
			})(w, r)
		case action == "" && r.Method == http.MethodDelete:
			authn.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
				adminHandler.DeleteUser(w, r, id)
			})(w, r)
		case action == "approve" && r.Method == http.MethodPut:
			authn.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
				adminHandler.Approve(w, r, id)
			})(w, r)
		case action == "reject" && r.Method == http.MethodPut:
			authn.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
				adminHandler.Reject(w, r, id)
			})(w, r)
		case action == "role" && r.Method == http.MethodPut:
			authn.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
				adminHandler.UpdateRole(w, r, id)
			})(w, r)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	return withCORS(corsOrigin, mux)
}

func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
