// Package middleware provides HTTP middleware for authentication,
// security headers, rate limiting, and request context handling.
package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/workadmin/workadmin-go/internal/model"
	"github.com/workadmin/workadmin-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request-scoped data.
const (
	ContextKeyAdmin       ContextKey = "admin"
	ContextKeyRequestPath ContextKey = "request_path"
)

// SessionKeyAdminID is the session key holding the signed-in admin's ID.
const SessionKeyAdminID = "admin_id"

// Auth creates middleware that requires an authenticated session and
// redirects to the login page otherwise.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sm.GetString(r.Context(), SessionKeyAdminID) == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoadAdmin creates middleware that loads the signed-in admin into the
// request context. A session pointing at a deleted admin account is
// destroyed and the request redirected to login. Use after Auth.
func LoadAdmin(sm *scs.SessionManager, db *store.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			adminID := sm.GetString(r.Context(), SessionKeyAdminID)
			if adminID == "" {
				next.ServeHTTP(w, r)
				return
			}

			admin, err := queries.GetAdminByID(r.Context(), adminID)
			if err != nil {
				_ = sm.Destroy(r.Context())
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdmin, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin retrieves the current admin from the request context.
// Returns nil if no admin is in context.
func GetAdmin(r *http.Request) *model.Admin {
	admin, ok := r.Context().Value(ContextKeyAdmin).(model.Admin)
	if !ok {
		return nil
	}
	return &admin
}

// GetAdminID returns the current admin's ID from context, or empty
// string if not found. Safe to use in logging.
func GetAdminID(r *http.Request) string {
	if admin := GetAdmin(r); admin != nil {
		return admin.ID
	}
	return ""
}

// RequestPath creates middleware that stores the request path in the
// context. The event log handler includes it in persisted records.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}

// GetClientIP extracts the client IP from the request, preferring
// reverse proxy headers over the raw remote address.
func GetClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	// X-Forwarded-For can contain multiple IPs; the first is the client
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
