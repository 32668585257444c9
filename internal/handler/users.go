package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/workadmin/workadmin-go/internal/filter"
	"github.com/workadmin/workadmin-go/internal/model"
	"github.com/workadmin/workadmin-go/internal/render"
	"github.com/workadmin/workadmin-go/internal/service"
	"github.com/workadmin/workadmin-go/internal/store"
	"github.com/workadmin/workadmin-go/internal/util"
)

// timeNow is swapped in tests that exercise date range filters.
var timeNow = time.Now

// UsersHandler renders the account listings and detail pages.
type UsersHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(db *store.DB, renderer *render.Renderer) *UsersHandler {
	return &UsersHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// usersView is the data behind the users listing template.
type usersView struct {
	Users []model.Profile
	Query string
}

// Users handles GET /admin/users. An optional q parameter narrows the
// listing by name or email; clearing it restores the full list.
func (h *UsersHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListProfilesByType(r.Context(), model.UserTypeUser)
	if err != nil {
		logAndInternalError(w, "listing users", "error", err)
		return
	}

	query := r.URL.Query().Get("q")
	view := usersView{
		Users: filter.SearchProfiles(users, query),
		Query: query,
	}

	if err := h.renderer.Render(w, r, "admin/users", render.TemplateData{
		Title: "Users",
		Data:  view,
	}); err != nil {
		logAndInternalError(w, "rendering users", "error", err)
	}
}

// seekersView is the data behind the job seekers listing template.
type seekersView struct {
	Seekers []model.JobSeekerWithProfile
	Query   string
	Filters filter.SeekerFilters
}

// Seekers handles GET /admin/seekers. Search and the structured
// filters combine conjunctively.
func (h *UsersHandler) Seekers(w http.ResponseWriter, r *http.Request) {
	seekers, err := h.queries.ListJobSeekers(r.Context())
	if err != nil {
		logAndInternalError(w, "listing job seekers", "error", err)
		return
	}

	q := r.URL.Query()
	filters := filter.SeekerFilters{
		JobType:    q.Get("job_type"),
		MinCharges: util.ParseNullInt64Positive(q.Get("min_charges")),
		MaxCharges: util.ParseNullInt64Positive(q.Get("max_charges")),
		Documents:  q.Get("documents"),
		DateRange:  q.Get("date_range"),
	}

	result := filter.SearchSeekers(seekers, q.Get("q"))
	result = filter.ApplySeekerFilters(result, filters, timeNow())

	view := seekersView{
		Seekers: result,
		Query:   q.Get("q"),
		Filters: filters,
	}

	if err := h.renderer.Render(w, r, "admin/seekers", render.TemplateData{
		Title: "Job Seekers",
		Data:  view,
	}); err != nil {
		logAndInternalError(w, "rendering job seekers", "error", err)
	}
}

// userDetailView is the data behind the user detail template.
type userDetailView struct {
	Profile model.Profile
	Posts   []model.EnrichedPost
}

// UserDetail handles GET /admin/users/{id}.
func (h *UsersHandler) UserDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	profile, err := h.queries.GetProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			flashError(w, r, h.renderer, redirectUsers, "User not found")
			return
		}
		logAndInternalError(w, "loading user", "error", err, "profile_id", id)
		return
	}

	posts, err := h.postsByUser(r, profile)
	if err != nil {
		logAndInternalError(w, "loading user posts", "error", err, "profile_id", id)
		return
	}

	if err := h.renderer.Render(w, r, "admin/user_detail", render.TemplateData{
		Title: profile.Name,
		Data:  userDetailView{Profile: profile, Posts: posts},
	}); err != nil {
		logAndInternalError(w, "rendering user detail", "error", err)
	}
}

// seekerDetailView is the data behind the seeker detail template.
type seekerDetailView struct {
	Profile model.Profile
	Seeker  model.JobSeeker
}

// SeekerDetail handles GET /admin/seekers/{id}. The id is the profile
// ID, matching the links on the listing page.
func (h *UsersHandler) SeekerDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	profile, err := h.queries.GetProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			flashError(w, r, h.renderer, "/admin"+RouteSeekers, "Job seeker not found")
			return
		}
		logAndInternalError(w, "loading seeker profile", "error", err, "profile_id", id)
		return
	}

	seeker, err := h.queries.GetJobSeekerByProfileID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			flashError(w, r, h.renderer, "/admin"+RouteSeekers, "Job seeker not found")
			return
		}
		logAndInternalError(w, "loading seeker", "error", err, "profile_id", id)
		return
	}

	if err := h.renderer.Render(w, r, "admin/seeker_detail", render.TemplateData{
		Title: profile.Name,
		Data:  seekerDetailView{Profile: profile, Seeker: seeker},
	}); err != nil {
		logAndInternalError(w, "rendering seeker detail", "error", err)
	}
}

// postsByUser returns the enriched posts authored by the given profile.
func (h *UsersHandler) postsByUser(r *http.Request, profile model.Profile) ([]model.EnrichedPost, error) {
	posts, err := h.queries.ListJobPosts(r.Context())
	if err != nil {
		return nil, err
	}

	var own []model.JobPost
	for _, p := range posts {
		if p.UserID == profile.ID {
			own = append(own, p)
		}
	}
	return service.JoinPosts(own, []model.Profile{profile}), nil
}
