package handler

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/workadmin/workadmin-go/internal/notify"
)

// NotificationHub holds one toast center per session. Centers are
// created lazily and dropped when the hub is asked to forget a session.
type NotificationHub struct {
	sm      *scs.SessionManager
	mu      sync.Mutex
	centers map[string]*notify.Center
}

// NewNotificationHub creates an empty hub.
func NewNotificationHub(sm *scs.SessionManager) *NotificationHub {
	return &NotificationHub{
		sm:      sm,
		centers: make(map[string]*notify.Center),
	}
}

// Center returns the toast center for the request's session.
func (hub *NotificationHub) Center(r *http.Request) *notify.Center {
	token := hub.sm.Token(r.Context())

	hub.mu.Lock()
	defer hub.mu.Unlock()

	c, ok := hub.centers[token]
	if !ok {
		c = notify.NewCenter()
		hub.centers[token] = c
	}
	return c
}

// Forget drops the center for a session, typically on logout.
func (hub *NotificationHub) Forget(token string) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if c, ok := hub.centers[token]; ok {
		c.Clear()
		delete(hub.centers, token)
	}
}

// NotificationHandler serves the toast polling endpoint.
type NotificationHandler struct {
	hub *NotificationHub
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(hub *NotificationHub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// List handles GET /admin/notifications and returns the active toasts
// for the current session.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	toasts := h.hub.Center(r).Active()
	writeJSON(w, http.StatusOK, map[string]any{"toasts": toasts})
}

// Dismiss handles POST /admin/notifications/{id}/dismiss.
func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	h.hub.Center(r).Dismiss(id)
	w.WriteHeader(http.StatusNoContent)
}
