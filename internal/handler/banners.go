package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workadmin/workadmin-go/internal/model"
	"github.com/workadmin/workadmin-go/internal/notify"
	"github.com/workadmin/workadmin-go/internal/render"
	"github.com/workadmin/workadmin-go/internal/service"
	"github.com/workadmin/workadmin-go/internal/store"
)

// MaxBannerUploadSize caps banner upload request bodies.
const MaxBannerUploadSize = 10 * 1024 * 1024 // 10MB

// BannersHandler renders the banner page and handles uploads.
type BannersHandler struct {
	banners  *service.BannerService
	renderer *render.Renderer
	hub      *NotificationHub
}

// NewBannersHandler creates a new BannersHandler.
func NewBannersHandler(banners *service.BannerService, renderer *render.Renderer, hub *NotificationHub) *BannersHandler {
	return &BannersHandler{
		banners:  banners,
		renderer: renderer,
		hub:      hub,
	}
}

// bannersView is the data behind the banners template.
type bannersView struct {
	Banners []model.Banner
}

// Banners handles GET /admin/banners.
func (h *BannersHandler) Banners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.banners.List(r.Context())
	if err != nil {
		logAndInternalError(w, "listing banners", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/banners", render.TemplateData{
		Title: "Banners",
		Data:  bannersView{Banners: banners},
	}); err != nil {
		logAndInternalError(w, "rendering banners", "error", err)
	}
}

// Upload handles POST /admin/banners. The uploaded image is validated,
// normalized and optionally activated immediately.
func (h *BannersHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBannerUploadSize)

	if err := r.ParseMultipartForm(MaxBannerUploadSize); err != nil {
		flashError(w, r, h.renderer, redirectBanners, "Upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		flashError(w, r, h.renderer, redirectBanners, "Please choose an image to upload")
		return
	}
	defer file.Close()

	activate := r.FormValue("activate") == "on" || r.FormValue("activate") == "true"

	center := h.hub.Center(r)
	loadingID := center.ShowFor(notify.KindLoading, "Uploading banner...", 0)
	defer center.Dismiss(loadingID)

	if _, err := h.banners.Upload(r.Context(), file, header.Filename, activate); err != nil {
		slog.Error("banner upload failed", "error", err)
		center.Show(notify.KindError, "Banner upload failed")
		flashError(w, r, h.renderer, redirectBanners, "Banner upload failed: the file must be a JPEG, PNG, GIF or WebP image")
		return
	}

	center.Show(notify.KindSuccess, "Banner uploaded")
	flashSuccess(w, r, h.renderer, redirectBanners, "Banner uploaded")
}

// Activate handles POST /admin/banners/{id}/activate. Any previously
// active banner is deactivated in the same transaction.
func (h *BannersHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	center := h.hub.Center(r)

	if err := h.banners.SetActive(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			center.Show(notify.KindError, "Banner no longer exists")
			flashError(w, r, h.renderer, redirectBanners, "Banner no longer exists")
			return
		}
		slog.Error("banner activation failed", "error", err, "banner_id", id)
		center.Show(notify.KindError, "Could not activate the banner")
		flashError(w, r, h.renderer, redirectBanners, "Could not activate the banner")
		return
	}

	center.Show(notify.KindSuccess, "Banner activated")
	flashSuccess(w, r, h.renderer, redirectBanners, "Banner activated")
}

// Delete handles POST /admin/banners/{id}/delete.
func (h *BannersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	center := h.hub.Center(r)

	if err := h.banners.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			center.Show(notify.KindError, "Banner no longer exists")
			flashError(w, r, h.renderer, redirectBanners, "Banner no longer exists")
			return
		}
		slog.Error("banner deletion failed", "error", err, "banner_id", id)
		center.Show(notify.KindError, "Could not delete the banner")
		flashError(w, r, h.renderer, redirectBanners, "Could not delete the banner")
		return
	}

	center.Show(notify.KindSuccess, "Banner deleted")
	flashSuccess(w, r, h.renderer, redirectBanners, "Banner deleted")
}
