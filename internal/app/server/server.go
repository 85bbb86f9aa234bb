package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"staffsync/internal/domain/activity"
	"staffsync/internal/domain/auth"
	"staffsync/internal/domain/dashboard"
	"staffsync/internal/domain/employees"
	"staffsync/internal/domain/leads"
	"staffsync/internal/domain/leave"
	"staffsync/internal/domain/notifications"
	"staffsync/internal/domain/payroll"
	"staffsync/internal/domain/session"
	"staffsync/internal/domain/tasks"
	"staffsync/internal/platform/cache"
	"staffsync/internal/platform/config"
	"staffsync/internal/platform/crypto"
	"staffsync/internal/platform/db"
	"staffsync/internal/platform/docstore"
	"staffsync/internal/platform/email"
	"staffsync/internal/platform/jobs"
	"staffsync/internal/platform/metrics"
	"staffsync/internal/transport/http/api"
	authhandler "staffsync/internal/transport/http/handlers/auth"
	dashboardhandler "staffsync/internal/transport/http/handlers/dashboard"
	employeeshandler "staffsync/internal/transport/http/handlers/employees"
	leadshandler "staffsync/internal/transport/http/handlers/leads"
	leavehandler "staffsync/internal/transport/http/handlers/leave"
	notificationshandler "staffsync/internal/transport/http/handlers/notifications"
	payrollhandler "staffsync/internal/transport/http/handlers/payroll"
	taskshandler "staffsync/internal/transport/http/handlers/tasks"
	"staffsync/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Router  http.Handler
	Store   docstore.Store
	Jobs    *jobs.Service
	Metrics *metrics.Collector

	closers []func(context.Context) error
}

func Run() {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("server shutdown failed", "err", err)
		}
	}()

	slog.Info("StaffSync server listening", "addr", cfg.Addr, "driver", cfg.DocstoreDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}

// New wires the document store, services and router for cfg. Background
// workers run until Close.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	app := &App{Config: cfg, Metrics: metrics.New()}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Store = store
	app.closers = append(app.closers, store.Close)

	sealer, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("encryption key: %w", err)
	}

	sessions, err := app.openSessions(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		slog.Warn("JWT_SECRET not set; using an ephemeral signing key")
	}

	loc := cfg.Location()
	links := employees.LinkBuilder{BaseURL: cfg.AppBaseURL, QRCodeURL: cfg.QRCodeBaseURL}
	employeesSvc := employees.NewService(employees.NewStore(store, sealer), links)
	tasksSvc := tasks.NewService(tasks.NewStore(store))
	leaveSvc := leave.NewService(leave.NewStore(store))
	leadsSvc := leads.NewService(leads.NewStore(store))
	notificationsSvc := notifications.New(notifications.NewStore(store), email.New(cfg), cfg.EmailFrom, links.EmployeeLogin())
	activitySvc := activity.NewService(tasksSvc, loc)
	payrollSvc := payroll.NewService(employeesSvc, loc)
	dashboardSvc := dashboard.NewService(dashboard.Sources{
		Employees:     employeesSvc,
		Tasks:         tasksSvc,
		Leads:         leadsSvc,
		Leave:         leaveSvc,
		Notifications: notificationsSvc,
		Activity:      activitySvc,
	})
	authSvc := auth.NewService(auth.NewStore(store), employeesSvc, sessions, secret, cfg.TokenTTL)
	perms := auth.NewStaticPermissions()

	if cfg.RunSeed {
		if err := db.Seed(ctx, authSvc, cfg); err != nil {
			app.Close()
			return nil, err
		}
	}

	app.Jobs = jobs.New(cfg.JobQueueSize)
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	app.Jobs.Start(jobCtx)
	app.closers = append(app.closers, func(context.Context) error {
		cancelJobs()
		app.Jobs.Wait()
		return nil
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Auth(secret))
	router.Use(middleware.Logger)
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Metrics(app.Metrics))
	router.Use(middleware.Session(sessions))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.WriteJSON(w, http.StatusOK, app.Metrics.Snapshot())
		})
	}

	employeesHandler := employeeshandler.NewHandler(employeesSvc, perms, app.Metrics)
	notificationsHandler := notificationshandler.NewHandler(notificationsSvc, perms, app.Metrics)

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authSvc).RegisterRoutes(r)
		employeesHandler.RegisterRoutes(r)
		taskshandler.NewHandler(tasksSvc, employeesSvc, leadsSvc, notificationsSvc, activitySvc, app.Jobs, app.Metrics, perms, loc).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, employeesSvc, notificationsSvc, perms, loc).RegisterRoutes(r)
		leadshandler.NewHandler(leadsSvc, perms).RegisterRoutes(r)
		notificationsHandler.RegisterRoutes(r)
		dashboardhandler.NewHandler(dashboardSvc, activitySvc, perms).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollSvc, perms).RegisterRoutes(r)
	})

	router.Route("/api", func(r chi.Router) {
		employeesHandler.RegisterLegacyRoutes(r)
		notificationsHandler.RegisterLegacyRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	app.Router = router
	return app, nil
}

// Close stops background workers and releases connections in reverse
// order of acquisition.
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			slog.Warn("close failed", "err", err)
		}
	}
	a.closers = nil
}

func openStore(ctx context.Context, cfg config.Config) (docstore.Store, error) {
	switch cfg.DocstoreDriver {
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		return docstore.NewPostgres(pool), nil
	case config.DriverMongo:
		store, err := docstore.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		return store, nil
	default:
		return docstore.NewMemory(), nil
	}
}

func (a *App) openSessions(ctx context.Context, cfg config.Config) (session.Store, error) {
	if cfg.RedisAddr == "" {
		return session.NewMemoryStore(cfg.SessionTTL), nil
	}
	client, err := cache.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	return session.NewRedisStore(client, cfg.SessionTTL), nil
}

func logLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
