package handler

import (
	"net/http"

	"github.com/workadmin/workadmin-go/internal/model"
	"github.com/workadmin/workadmin-go/internal/render"
	"github.com/workadmin/workadmin-go/internal/service"
)

// LogsHandler renders the sign-in and registration activity pages.
type LogsHandler struct {
	authLogs *service.AuthLogService
	renderer *render.Renderer
}

// NewLogsHandler creates a new LogsHandler.
func NewLogsHandler(authLogs *service.AuthLogService, renderer *render.Renderer) *LogsHandler {
	return &LogsHandler{
		authLogs: authLogs,
		renderer: renderer,
	}
}

// logsView is the data behind the auth logs template.
type logsView struct {
	Signups []model.SignupLog
	Logins  []model.LoginLog
}

// Logs handles GET /admin/logs.
func (h *LogsHandler) Logs(w http.ResponseWriter, r *http.Request) {
	signups, err := h.authLogs.RecentSignups(r.Context())
	if err != nil {
		logAndInternalError(w, "listing signup logs", "error", err)
		return
	}

	logins, err := h.authLogs.RecentLogins(r.Context())
	if err != nil {
		logAndInternalError(w, "listing login logs", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/logs", render.TemplateData{
		Title: "Auth Logs",
		Data:  logsView{Signups: signups, Logins: logins},
	}); err != nil {
		logAndInternalError(w, "rendering logs", "error", err)
	}
}
