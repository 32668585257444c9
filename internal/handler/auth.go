package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/workadmin/workadmin-go/internal/auth"
	"github.com/workadmin/workadmin-go/internal/middleware"
	"github.com/workadmin/workadmin-go/internal/render"
	"github.com/workadmin/workadmin-go/internal/service"
	"github.com/workadmin/workadmin-go/internal/store"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
	authLogs        *service.AuthLogService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *store.DB, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection, authLogs *service.AuthLogService) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
		authLogs:        authLogs,
	}
}

// LoginForm renders the login page. Already-authenticated admins go
// straight to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if adminID := h.sessionManager.GetString(r.Context(), middleware.SessionKeyAdminID); adminID != "" {
		http.Redirect(w, r, redirectDashboard, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: "Sign In",
	}); err != nil {
		logAndInternalError(w, "rendering login page", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, redirectLogin, "Invalid form data")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "Email and password are required")
		return
	}

	clientIP := middleware.GetClientIP(r)
	userAgent := r.UserAgent()

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			slog.Warn("login attempt on locked account", "category", "auth", "email", email, "ip", clientIP)
			flashError(w, r, h.renderer, redirectLogin,
				fmt.Sprintf("Account temporarily locked. Try again in %s.", formatDuration(remaining)))
			return
		}
	}

	admin, err := h.queries.GetAdminByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.Warn("login failed: account not found", "category", "auth", "email", email, "ip", clientIP)
		} else {
			slog.Error("database error during login", "error", err)
		}
		h.recordLoginFailure(w, r, email, clientIP, userAgent)
		return
	}

	valid, err := auth.CheckPassword(password, admin.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		flashError(w, r, h.renderer, redirectLogin, "Invalid email or password")
		return
	}

	if !valid {
		slog.Warn("login failed: invalid password", "category", "auth", "email", email, "ip", clientIP)
		h.recordLoginFailure(w, r, email, clientIP, userAgent)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	// Re-hash the password if stored with outdated parameters
	if auth.NeedsRehash(admin.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateAdminPassword(r.Context(), admin.ID, newHash); err != nil {
				slog.Error("failed to re-hash password", "error", err, "admin_id", admin.ID)
			}
		}
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	h.sessionManager.Put(r.Context(), middleware.SessionKeyAdminID, admin.ID)

	if err := h.authLogs.RecordLogin(r.Context(), email, clientIP, userAgent, true, admin.ID); err != nil {
		slog.Error("failed to record login", "error", err)
	}

	slog.Info("admin signed in", "admin_id", admin.ID, "email", admin.Email)

	h.renderer.SetFlash(r, "Welcome back, "+admin.Name, "success")
	http.Redirect(w, r, redirectDashboard, http.StatusSeeOther)
}

// recordLoginFailure logs the failed attempt, updates lockout tracking
// and redirects with a deliberately vague error message.
func (h *AuthHandler) recordLoginFailure(w http.ResponseWriter, r *http.Request, email, clientIP, userAgent string) {
	if err := h.authLogs.RecordLogin(r.Context(), email, clientIP, userAgent, false, ""); err != nil {
		slog.Error("failed to record login attempt", "error", err)
	}

	if h.loginProtection != nil {
		if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
			flashError(w, r, h.renderer, redirectLogin,
				fmt.Sprintf("Too many failed attempts. Account locked for %s.", formatDuration(lockDuration)))
			return
		}
		remaining := h.loginProtection.GetRemainingAttempts(email)
		if remaining <= 3 && remaining > 0 {
			flashError(w, r, h.renderer, redirectLogin,
				fmt.Sprintf("Invalid email or password. %d attempts remaining.", remaining))
			return
		}
	}

	flashError(w, r, h.renderer, redirectLogin, "Invalid email or password")
}

// Logout handles admin logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	adminID := h.sessionManager.GetString(r.Context(), middleware.SessionKeyAdminID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	slog.Info("admin signed out", "admin_id", adminID)

	flashAndRedirect(w, r, h.renderer, redirectLogin, "You have been signed out", "info")
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
