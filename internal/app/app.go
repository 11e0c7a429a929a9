package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"library-service/internal/auth"
	"library-service/internal/book"
	"library-service/internal/circulation"
	"library-service/internal/config"
	"library-service/internal/db"
	"library-service/internal/health"
	"library-service/internal/httputil"
	"library-service/internal/logger"
	"library-service/internal/member"
	"library-service/internal/messaging"
	"library-service/internal/middleware"
	"library-service/internal/policy"
	"library-service/internal/report"
	"library-service/internal/reservation"

	"github.com/go-chi/chi/v5"
)

type App struct {
	config *config.Config
	router chi.Router
	server *http.Server
	logger *slog.Logger
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses JSON format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	var (
		bookRepo        book.Repository
		memberRepo      member.Repository
		circRepo        circulation.Repository
		policyRepo      policy.Repository
		reservationRepo reservation.Repository
		authRepo        auth.Repository
		reportRepo      report.Repository
	)

	if cfg.Database.Disabled {
		// Standalone mode: the whole API runs on in-memory repositories.
		slogLogger.Warn("database disabled, running on in-memory repositories")
		books := book.NewMemoryRepository()
		members := member.NewMemoryRepository()
		circ := circulation.NewMemoryRepository(books, members)
		bookRepo = books
		memberRepo = members
		circRepo = circ
		policyRepo = policy.NewMemoryRepository()
		reservationRepo = reservation.NewMemoryRepository()
		authRepo = auth.NewMemoryRepository()
		reportRepo = report.NewMemoryRepository(books, members, circ)
	} else {
		database := db.New(cfg.Database)

		ctx := context.Background()
		if err := db.RunMigrations(ctx, database,
			(*book.Book)(nil),
			(*member.Member)(nil),
			(*circulation.Issue)(nil),
			(*circulation.Fine)(nil),
			(*policy.Policy)(nil),
			(*reservation.Reservation)(nil),
			(*auth.User)(nil),
			(*auth.RefreshToken)(nil),
		); err != nil {
			log.Fatal("failed to run migrations:", err)
		}

		bookRepo = book.NewRepository(database)
		memberRepo = member.NewRepository(database)
		circRepo = circulation.NewRepository(database)
		policyRepo = policy.NewRepository(database)
		reservationRepo = reservation.NewRepository(database)
		authRepo = auth.NewRepository(database)
		reportRepo = report.NewRepository(database)
	}

	// Apply CORS middleware globally
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health endpoints (no auth required)
	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	// Auth setup
	authService := auth.NewService(authRepo, cfg.Auth.JWTSecret)
	authHandler := auth.NewHandler(authService, slogLogger)
	authHandler.RegisterRoutes(app.router)

	// NATS producer for circulation events (optional)
	var publisher circulation.Publisher
	if cfg.NATS.URL != "" {
		producer, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize NATS producer", "error", err)
		} else {
			slogLogger.Info("NATS producer initialized successfully")
			publisher = producer
		}
	}

	policyService := policy.NewService(policyRepo)
	bookService := book.NewService(bookRepo, circRepo)
	memberService := member.NewService(memberRepo, circRepo)
	circulationService := circulation.NewService(circRepo, bookRepo, memberRepo, policyService, publisher, slogLogger)
	reportService := report.NewService(reportRepo)
	reservationService := reservation.NewService(reservationRepo)

	bookHandler := book.NewHandler(bookService, slogLogger)
	memberHandler := member.NewHandler(memberService, slogLogger)
	circulationHandler := circulation.NewHandler(circulationService, slogLogger)
	reportHandler := report.NewHandler(reportService, slogLogger)
	policyHandler := policy.NewHandler(policyService, slogLogger)
	reservationHandler := reservation.NewHandler(reservationService, slogLogger)

	// Create protected routes group for /api endpoints
	app.router.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Auth.JWTSecret, cfg.Auth.Disabled, slogLogger))
		bookHandler.RegisterRoutes(r)
		memberHandler.RegisterRoutes(r)
		circulationHandler.RegisterRoutes(r)
		reportHandler.RegisterRoutes(r)
		policyHandler.RegisterRoutes(r)
		reservationHandler.RegisterRoutes(r)
		authHandler.RegisterProfileRoutes(r)
	})

	app.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondWithError(w, http.StatusNotFound, "not found")
	})

	slogLogger.Info("application initialized successfully")

	return app
}

func (a *App) Run() error {
	port := a.config.Server.Port
	if port == "" {
		port = "8080"
	}
	a.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: a.router,
	}

	a.logger.Info("server starting", "port", port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	return a.server.Shutdown(ctx)
}
