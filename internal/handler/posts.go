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

// PostsHandler renders the job post listing and handles deletions.
type PostsHandler struct {
	queries   *store.Queries
	dashboard *service.DashboardService
	stats     *service.StatsService
	renderer  *render.Renderer
	hub       *NotificationHub
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(db *store.DB, dashboard *service.DashboardService, stats *service.StatsService, renderer *render.Renderer, hub *NotificationHub) *PostsHandler {
	return &PostsHandler{
		queries:   store.New(db),
		dashboard: dashboard,
		stats:     stats,
		renderer:  renderer,
		hub:       hub,
	}
}

// postsView is the data behind the posts listing template.
type postsView struct {
	Posts []model.EnrichedPost
	Query string
}

// Posts handles GET /admin/posts. The q parameter searches title,
// author, location and job type together.
func (h *PostsHandler) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.dashboard.Posts(r.Context())
	if err != nil {
		logAndInternalError(w, "listing posts", "error", err)
		return
	}

	query := r.URL.Query().Get("q")
	view := postsView{
		Posts: filter.SearchPosts(posts, query),
		Query: query,
	}

	if err := h.renderer.Render(w, r, "admin/posts", render.TemplateData{
		Title: "Job Posts",
		Data:  view,
	}); err != nil {
		logAndInternalError(w, "rendering posts", "error", err)
	}
}

// PostDetail handles GET /admin/posts/{id}.
func (h *PostsHandler) PostDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.dashboard.Post(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			flashError(w, r, h.renderer, redirectPosts, "Post not found")
			return
		}
		logAndInternalError(w, "loading post", "error", err, "post_id", id)
		return
	}

	if err := h.renderer.Render(w, r, "admin/post_detail", render.TemplateData{
		Title: post.JobTitle,
		Data:  post,
	}); err != nil {
		logAndInternalError(w, "rendering post detail", "error", err)
	}
}

// DeletePost handles POST /admin/posts/{id}/delete. htmx rows are
// removed in place; full page posts redirect back to the listing.
func (h *PostsHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	center := h.hub.Center(r)

	rows, err := h.queries.DeleteJobPost(r.Context(), id)
	if err != nil {
		slog.Error("deleting post", "error", err, "post_id", id)
		center.Show(notify.KindError, "Could not delete the post")
		h.respondDelete(w, r, "Could not delete the post", "error")
		return
	}
	if rows == 0 {
		center.Show(notify.KindError, "Post no longer exists")
		h.respondDelete(w, r, "Post no longer exists", "error")
		return
	}

	slog.Info("job post deleted",
		"category", "post",
		"post_id", id,
		"admin_id", middleware.GetAdminID(r),
	)
	h.stats.Invalidate(r.Context())

	center.Show(notify.KindSuccess, "Post deleted")
	h.respondDelete(w, r, "Post deleted", "success")
}

func (h *PostsHandler) respondDelete(w http.ResponseWriter, r *http.Request, message, kind string) {
	if isHTMX(r) {
		// An empty body removes the swapped row
		w.WriteHeader(http.StatusOK)
		return
	}
	flashAndRedirect(w, r, h.renderer, redirectPosts, message, kind)
}
