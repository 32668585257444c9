package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/workadmin/workadmin-go/internal/cache"
	"github.com/workadmin/workadmin-go/internal/config"
	"github.com/workadmin/workadmin-go/internal/geoip"
	"github.com/workadmin/workadmin-go/internal/handler"
	"github.com/workadmin/workadmin-go/internal/logging"
	"github.com/workadmin/workadmin-go/internal/middleware"
	"github.com/workadmin/workadmin-go/internal/render"
	"github.com/workadmin/workadmin-go/internal/scheduler"
	"github.com/workadmin/workadmin-go/internal/service"
	"github.com/workadmin/workadmin-go/internal/session"
	"github.com/workadmin/workadmin-go/internal/storage"
	"github.com/workadmin/workadmin-go/internal/store"
	"github.com/workadmin/workadmin-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "WorkAdmin - Job Marketplace Admin Dashboard\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WORKADMIN_SESSION_SECRET     Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WORKADMIN_DB_DRIVER          Database driver: sqlite|postgres|mysql (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WORKADMIN_DB_DSN             Database DSN (default: ./data/workadmin.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WORKADMIN_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WORKADMIN_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WORKADMIN_UPLOADS_DIR        Banner upload directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WORKADMIN_REDIS_URL          Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WORKADMIN_GEOIP_DB_PATH      GeoLite2-Country.mmdb path (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  WORKADMIN_DO_SEED            Seed demo marketplace data (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("workadmin %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists for the sqlite default
	if cfg.DBDriver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBDSN), 0o750); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	slog.Info("initializing database", "driver", cfg.DBDriver)
	db, err := store.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger so WARN and ERROR records also land in the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if cfg.DoSeed {
		if err := store.SeedDemo(ctx, db); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
	}

	sessionManager, err := session.New(db, cfg.IsDevelopment())
	if err != nil {
		return fmt.Errorf("initializing session manager: %w", err)
	}
	slog.Info("session manager initialized")

	// Cache backend for the statistics service
	statsCache := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	})
	defer func() {
		if err := statsCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	// Banner upload storage
	files, err := storage.NewLocal(cfg.UploadsDir)
	if err != nil {
		return fmt.Errorf("initializing upload storage: %w", err)
	}

	// GeoIP lookup for auth log enrichment; disabled when unconfigured
	geo := geoip.NewLookup()
	if err := geo.Init(cfg.GeoIPDBPath); err != nil {
		slog.Warn("geoip disabled", "error", err)
	}
	defer func() { _ = geo.Close() }()
	if geo.IsEnabled() {
		slog.Info("geoip lookups enabled", "db", cfg.GeoIPDBPath)
	}

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Services
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	statsService := service.NewStatsService(db, statsCache, cacheTTL)
	dashboardService := service.NewDashboardService(db)
	reviewService := service.NewReviewService(db, statsService)
	bannerService := service.NewBannerService(db, files)
	authLogService := service.NewAuthLogService(db, geo)

	// Recurring jobs: nightly log retention, geoip reload, stats warming
	sched := scheduler.New(db, geo, statsService, cfg.AuthLogRetentionDays, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Login abuse protection
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	publicRateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)

	// Handlers
	hub := handler.NewNotificationHub(sessionManager)
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection, authLogService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, statsService, reviewService, renderer, hub)
	usersHandler := handler.NewUsersHandler(db, renderer)
	postsHandler := handler.NewPostsHandler(db, dashboardService, statsService, renderer, hub)
	bannersHandler := handler.NewBannersHandler(bannerService, renderer, hub)
	logsHandler := handler.NewLogsHandler(authLogService, renderer)
	eventsHandler := handler.NewEventsHandler(db, renderer)
	notificationHandler := handler.NewNotificationHandler(hub)
	healthHandler := handler.NewHealthHandler(db, sessionManager, cfg.UploadsDir)

	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))

	r.Use(middleware.RequestPath)
	r.Use(sessionManager.LoadAndSave)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()))

	// Health check routes (public, detail for authenticated callers)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// Auth routes
	r.Group(func(r chi.Router) {
		r.Use(publicRateLimiter.Middleware())
		r.Use(csrfMiddleware)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Post(handler.RouteLogout, authHandler.Logout)
	})

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.Auth(sessionManager))
		r.Use(middleware.LoadAdmin(sessionManager, db))

		r.Get(handler.RouteDashboard, dashboardHandler.Dashboard)

		r.Get(handler.RouteUsers, usersHandler.Users)
		r.Get(handler.RouteUsers+handler.RouteParamID, usersHandler.UserDetail)
		r.Post(handler.RouteUsers+handler.RouteParamID+"/approve", dashboardHandler.Approve)
		r.Post(handler.RouteUsers+handler.RouteParamID+"/reject", dashboardHandler.Reject)

		r.Get(handler.RouteSeekers, usersHandler.Seekers)
		r.Get(handler.RouteSeekers+handler.RouteParamID, usersHandler.SeekerDetail)

		r.Get(handler.RoutePosts, postsHandler.Posts)
		r.Get(handler.RoutePosts+handler.RouteParamID, postsHandler.PostDetail)
		r.Post(handler.RoutePosts+handler.RouteParamID+"/delete", postsHandler.DeletePost)

		r.Get(handler.RouteBanners, bannersHandler.Banners)
		r.Post(handler.RouteBanners, bannersHandler.Upload)
		r.Post(handler.RouteBanners+handler.RouteParamID+"/activate", bannersHandler.Activate)
		r.Post(handler.RouteBanners+handler.RouteParamID+"/delete", bannersHandler.Delete)

		r.Get(handler.RouteLogs, logsHandler.Logs)
		r.Get(handler.RouteEvents, eventsHandler.Events)

		r.Get(handler.RouteNotifications, notificationHandler.List)
		r.Post(handler.RouteNotifications+handler.RouteParamID+"/dismiss", notificationHandler.Dismiss)
	})

	// Root redirects to the dashboard; Auth bounces anonymous visitors
	r.Get(handler.RouteRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/admin"+handler.RouteDashboard, http.StatusSeeOther)
	})

	// Static assets from the embedded filesystem
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Uploaded banners from disk
	r.Handle(storage.PublicPrefix+"/*", http.StripPrefix(storage.PublicPrefix+"/", http.FileServer(http.Dir(files.BaseDir()))))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
