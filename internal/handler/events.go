package handler

import (
	"net/http"
	"strconv"

	"github.com/workadmin/workadmin-go/internal/model"
	"github.com/workadmin/workadmin-go/internal/render"
	"github.com/workadmin/workadmin-go/internal/store"
)

// eventsPerPage is how many event log rows one page shows.
const eventsPerPage = 50

// EventsHandler renders the persisted event log.
type EventsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(db *store.DB, renderer *render.Renderer) *EventsHandler {
	return &EventsHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// eventsView is the data behind the events template.
type eventsView struct {
	Events     []model.Event
	Page       int
	TotalPages int
}

// Events handles GET /admin/events with simple page-based pagination.
func (h *EventsHandler) Events(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	total, err := h.queries.CountEvents(r.Context())
	if err != nil {
		logAndInternalError(w, "counting events", "error", err)
		return
	}

	totalPages := int((total + eventsPerPage - 1) / eventsPerPage)
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	events, err := h.queries.ListEvents(r.Context(), eventsPerPage, int64(page-1)*eventsPerPage)
	if err != nil {
		logAndInternalError(w, "listing events", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/events", render.TemplateData{
		Title: "Events",
		Data:  eventsView{Events: events, Page: page, TotalPages: totalPages},
	}); err != nil {
		logAndInternalError(w, "rendering events", "error", err)
	}
}
