package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workadmin/workadmin-go/internal/filter"
	"github.com/workadmin/workadmin-go/internal/middleware"
	"github.com/workadmin/workadmin-go/internal/model"
	"github.com/workadmin/workadmin-go/internal/notify"
	"github.com/workadmin/workadmin-go/internal/render"
	"github.com/workadmin/workadmin-go/internal/service"
	"github.com/workadmin/workadmin-go/internal/store"
)

// DashboardHandler renders the dashboard and handles review decisions.
type DashboardHandler struct {
	dashboard *service.DashboardService
	stats     *service.StatsService
	review    *service.ReviewService
	renderer  *render.Renderer
	hub       *NotificationHub
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService, stats *service.StatsService, review *service.ReviewService, renderer *render.Renderer, hub *NotificationHub) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		stats:     stats,
		review:    review,
		renderer:  renderer,
		hub:       hub,
	}
}

// dashboardView is the data behind the dashboard template.
type dashboardView struct {
	Stats   *service.Stats
	Summary filter.Summary
	Pending []model.Profile
}

// Dashboard handles GET /admin/dashboard.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboard.FetchAll(r.Context())
	if err != nil {
		logAndInternalError(w, "loading dashboard", "error", err)
		return
	}

	stats, err := h.stats.Overview(r.Context())
	if err != nil {
		logAndInternalError(w, "loading stats", "error", err)
		return
	}

	view := dashboardView{
		Stats:   stats,
		Summary: filter.Summarize(data.Users, data.Seekers),
		Pending: data.Pending,
	}

	if err := h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title: "Dashboard",
		Data:  view,
	}); err != nil {
		logAndInternalError(w, "rendering dashboard", "error", err)
	}
}

// Approve handles POST /admin/users/{id}/approve.
func (h *DashboardHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "approve")
}

// Reject handles POST /admin/users/{id}/reject.
func (h *DashboardHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "reject")
}

func (h *DashboardHandler) decide(w http.ResponseWriter, r *http.Request, decision string) {
	id := chi.URLParam(r, "id")
	adminID := middleware.GetAdminID(r)
	center := h.hub.Center(r)

	var err error
	if decision == "approve" {
		err = h.review.Approve(r.Context(), id, adminID)
	} else {
		err = h.review.Reject(r.Context(), id, adminID)
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		center.Show(notify.KindError, "Registration no longer exists")
		h.respondDecision(w, r, "Registration no longer exists", "error")
	case errors.Is(err, service.ErrNotPending):
		center.Show(notify.KindError, "Registration was already reviewed")
		h.respondDecision(w, r, "Registration was already reviewed", "error")
	case err != nil:
		slog.Error("review decision failed", "error", err, "profile_id", id)
		center.Show(notify.KindError, "Something went wrong, please try again")
		h.respondDecision(w, r, "Something went wrong, please try again", "error")
	default:
		msg := "Registration approved"
		if decision == "reject" {
			msg = "Registration rejected"
		}
		center.Show(notify.KindSuccess, msg)
		h.respondDecision(w, r, msg, "success")
	}
}

// respondDecision answers a review decision. htmx requests get a
// refresh trigger so the pending list reloads in place; full page
// posts get the usual flash and redirect.
func (h *DashboardHandler) respondDecision(w http.ResponseWriter, r *http.Request, message, kind string) {
	if isHTMX(r) {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusOK)
		return
	}
	flashAndRedirect(w, r, h.renderer, redirectDashboard, message, kind)
}
