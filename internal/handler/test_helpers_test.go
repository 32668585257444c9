package handler

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/workadmin/workadmin-go/internal/auth"
	"github.com/workadmin/workadmin-go/internal/cache"
	"github.com/workadmin/workadmin-go/internal/model"
	"github.com/workadmin/workadmin-go/internal/render"
	"github.com/workadmin/workadmin-go/internal/service"
	"github.com/workadmin/workadmin-go/internal/storage"
	"github.com/workadmin/workadmin-go/internal/store"
	"github.com/workadmin/workadmin-go/internal/util"
	"github.com/workadmin/workadmin-go/web"
)

// testEnv bundles the pieces most handler tests need.
type testEnv struct {
	db       *store.DB
	queries  *store.Queries
	sm       *scs.SessionManager
	renderer *render.Renderer
	hub      *NotificationHub
}

// newTestEnv creates a migrated temp database, an in-memory session
// manager and a renderer backed by the embedded templates.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	f, err := os.CreateTemp("", "workadmin-handler-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := store.Open(store.DriverSQLite, dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("Open: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	sm := scs.New()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("sub FS: %v", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sm,
		IsDev:          true,
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	return &testEnv{
		db:       db,
		queries:  store.New(db),
		sm:       sm,
		renderer: renderer,
		hub:      NewNotificationHub(sm),
	}
}

// newRequest builds a request with a loaded session, so handlers can
// read and write session data without the LoadAndSave middleware.
func (env *testEnv) newRequest(t *testing.T, method, target string, body string) *http.Request {
	t.Helper()

	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}

	ctx, err := env.sm.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	return r.WithContext(ctx)
}

// withURLParam attaches a chi route parameter to the request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// createAdmin inserts an admin with a real argon2id hash.
func (env *testEnv) createAdmin(t *testing.T, email, password string) model.Admin {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	admin, err := env.queries.CreateAdmin(context.Background(), store.CreateAdminParams{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test Admin",
	})
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	return admin
}

// createProfile inserts a profile row. An empty status stores NULL.
func (env *testEnv) createProfile(t *testing.T, name, email, userType, status string) model.Profile {
	t.Helper()

	p, err := env.queries.CreateProfile(context.Background(), store.CreateProfileParams{
		Name:     name,
		Email:    email,
		UserType: userType,
		Status:   util.NullStringFromValue(status),
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	return p
}

// statsService builds a stats service over an in-memory cache.
func (env *testEnv) statsService(t *testing.T) *service.StatsService {
	t.Helper()
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { c.Close() })
	return service.NewStatsService(env.db, c, time.Minute)
}

// bannerService builds a banner service storing files under a temp dir.
func (env *testEnv) bannerService(t *testing.T) *service.BannerService {
	t.Helper()
	files, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	return service.NewBannerService(env.db, files)
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("status = %d, want %d", got, want)
	}
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	assertStatus(t, w.Code, http.StatusSeeOther)
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}
