package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"skymentor/internal/config"
	"skymentor/internal/handlers"
	"skymentor/internal/middleware"
	"skymentor/internal/model"
	"skymentor/internal/repository"
	"skymentor/internal/seed"
	"skymentor/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Temporary logger until the config decides level and format.
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := repository.AutoMigrate(db); err != nil {
		slog.Error("Error running migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Dependency injection.
	userRepo := repository.NewGormUserRepository()
	availabilityRepo := repository.NewGormAvailabilityRepository()
	sessionRepo := repository.NewGormSessionBlockRepository()
	attendanceRepo := repository.NewGormAttendanceRepository()
	assignmentRepo := repository.NewGormAssignmentRepository()
	progressionRepo := repository.NewGormProgressionRepository()
	badgeRepo := repository.NewGormBadgeRepository()
	jumpLogRepo := repository.NewGormJumpLogRepository()
	preferenceRepo := repository.NewGormPreferenceRepository()
	auditRepo := repository.NewGormAuditRepository()

	if config.Cfg.App.SeedCatalogs {
		if err := seed.Run(context.Background(), db, progressionRepo, badgeRepo, logger); err != nil {
			slog.Error("Error seeding catalogs", slog.Any("error", err))
			os.Exit(1)
		}
	}

	authService := service.NewAuthService(db, userRepo, auditRepo, &config.Cfg)
	userService := service.NewUserService(db, userRepo)
	availabilityService := service.NewAvailabilityService(db, availabilityRepo, userRepo)
	sessionService := service.NewSessionService(db, sessionRepo, assignmentRepo, attendanceRepo, userRepo, auditRepo)
	attendanceService := service.NewAttendanceService(db, attendanceRepo, assignmentRepo, sessionRepo, userRepo, auditRepo)
	assignmentService := service.NewAssignmentService(db, assignmentRepo, attendanceRepo, auditRepo)
	progressionService := service.NewProgressionService(db, progressionRepo, badgeRepo, userRepo, auditRepo)
	jumpLogService := service.NewJumpLogService(db, jumpLogRepo, userRepo)
	preferenceService := service.NewPreferenceService(db, preferenceRepo, userRepo)
	dashboardService := service.NewDashboardService(db, sessionService, sessionRepo, assignmentRepo, progressionRepo, badgeRepo, jumpLogRepo, userRepo, auditRepo, &config.Cfg)

	authHandler := handlers.NewAuthHandler(authService, &config.Cfg)
	userHandler := handlers.NewUserHandler(userService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	progressionHandler := handlers.NewProgressionHandler(progressionService)
	jumpLogHandler := handlers.NewJumpLogHandler(jumpLogService)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Router.
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		// Public routes.
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		// Protected routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuthMiddleware(&config.Cfg))

			r.Get("/auth/me", authHandler.Me)

			r.Route("/availability", func(r chi.Router) {
				r.Post("/", availabilityHandler.Create)
				r.Get("/", availabilityHandler.List)
				r.Delete("/{id}", availabilityHandler.Delete)
			})

			r.Route("/session-blocks", func(r chi.Router) {
				r.Get("/", sessionHandler.List)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(model.RoleMentor, model.RoleAdmin))
					r.Post("/", sessionHandler.Create)
					r.Put("/{id}", sessionHandler.Update)
					r.Delete("/{id}", sessionHandler.Delete)
				})
			})

			r.With(middleware.RequireRole(model.RoleMentee)).Post("/attendance", attendanceHandler.Create)

			r.Route("/assignments", func(r chi.Router) {
				r.Get("/", assignmentHandler.List)
				r.Patch("/{id}/status", assignmentHandler.UpdateStatus)
				r.With(middleware.RequireRole(model.RoleMentor, model.RoleAdmin)).Post("/{id}/confirm", assignmentHandler.Confirm)
				r.With(middleware.RequireRole(model.RoleMentor, model.RoleAdmin)).Post("/{id}/decline", assignmentHandler.Decline)
			})

			r.Get("/progression-steps", progressionHandler.ListSteps)
			r.With(middleware.RequireRole(model.RoleMentor, model.RoleAdmin)).Post("/step-completions", progressionHandler.CreateCompletion)
			r.Get("/step-completions", progressionHandler.ListCompletions)
			r.Get("/step-completions/{userId}", progressionHandler.ListCompletions)
			r.Get("/badges", progressionHandler.ListBadges)
			r.Get("/awards/{userId}", progressionHandler.ListAwards)
			r.With(middleware.RequireRole(model.RoleMentor, model.RoleAdmin)).Post("/suggested-exercises", progressionHandler.SuggestExercises)

			r.Route("/jump-logs", func(r chi.Router) {
				r.Post("/", jumpLogHandler.Create)
				r.Get("/", jumpLogHandler.List)
				r.Put("/{id}", jumpLogHandler.Update)
				r.Delete("/{id}", jumpLogHandler.Delete)
			})

			r.Route("/preferences", func(r chi.Router) {
				r.Get("/", preferenceHandler.Get)
				r.With(middleware.RequireRole(model.RoleMentee)).Put("/", preferenceHandler.Upsert)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.With(middleware.RequireRole(model.RoleMentor, model.RoleAdmin)).Get("/mentor", dashboardHandler.Mentor)
				r.With(middleware.RequireRole(model.RoleMentee)).Get("/mentee", dashboardHandler.Mentee)
				r.With(middleware.RequireRole(model.RoleAdmin)).Get("/admin", dashboardHandler.Admin)
			})

			r.With(middleware.RequireRole(model.RoleAdmin)).Get("/users", userHandler.ListAll)
			r.With(middleware.RequireRole(model.RoleAdmin)).Get("/users/{id}", userHandler.Get)
			r.With(middleware.RequireRole(model.RoleAdmin)).Delete("/users/{id}", userHandler.Deactivate)
			r.With(middleware.RequireRole(model.RoleMentee, model.RoleAdmin)).Get("/mentors", userHandler.ListMentors)
			r.With(middleware.RequireRole(model.RoleMentor, model.RoleAdmin)).Get("/mentees", userHandler.ListMentees)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
