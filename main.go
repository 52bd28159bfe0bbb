package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"timeclock/config"
	"timeclock/core"
	"timeclock/database"
	"timeclock/handlers"
	"timeclock/middleware"
	"timeclock/models"
	"timeclock/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL, logger); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	// Wire the engine onto its stores
	engineCfg := core.Config{
		Geofence: core.GeofenceConfig{
			Latitude:     cfg.GeofenceLat,
			Longitude:    cfg.GeofenceLon,
			RadiusMeters: cfg.GeofenceRadiusM,
		},
		DailyPunchCap:         cfg.DailyPunchCap,
		LunchDeductionMinutes: cfg.LunchDeductionMin,
	}

	recordStore := store.NewRecordStore(database.GetDB(), logger)
	adjustmentStore := store.NewAdjustmentStore(database.GetDB(), logger)

	engine := core.NewClockEngine(recordStore, engineCfg, logger)
	summaries := core.NewSummaryAggregator(recordStore, engineCfg)
	workflow := core.NewAdjustmentWorkflow(adjustmentStore, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, logger)
	clockHandler := handlers.NewClockHandler(engine, summaries, recordStore, logger)
	adjustmentHandler := handlers.NewAdjustmentHandler(workflow, logger)
	hrHandler := handlers.NewHRHandler(summaries, logger)
	adminHandler := handlers.NewAdminHandler(cfg, logger)
	eventHandler := handlers.NewEventHandler(logger)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Post("/api/auth/login", authHandler.Login)
	router.Post("/api/auth/register", authHandler.Register)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		// Password change is reachable even while a change is required
		r.Post("/api/auth/change-password", authHandler.ChangePassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePasswordChange)

			r.Get("/api/profile", authHandler.Profile)

			// Punch clock
			r.Post("/api/records", clockHandler.CreateRecord)
			r.Get("/api/records", clockHandler.ListRecords)
			r.Get("/api/records/today", clockHandler.Today)
			r.Get("/api/records/daily", clockHandler.DailySummaries)

			// Adjustment workflow
			r.Post("/api/adjustments", adjustmentHandler.Create)
			r.Get("/api/adjustments", adjustmentHandler.ListMine)

			// Calendar events
			r.Get("/api/events", eventHandler.List)

			// Reviewer routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleHR, models.RoleManager))
				r.Get("/api/adjustments/pending", adjustmentHandler.ListPending)
				r.Post("/api/adjustments/{id}/decide", adjustmentHandler.Decide)
			})

			// HR and admin routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleHR))
				r.Get("/api/hr/summary", hrHandler.Summary)
				r.Get("/api/hr/summary/csv", hrHandler.SummaryCSV)
				r.Get("/api/collaborators", adminHandler.ListCollaborators)
				r.Post("/api/collaborators", adminHandler.CreateCollaborator)
				r.Post("/api/events", eventHandler.Create)
			})

			// Admin only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Get("/api/users", adminHandler.ListUsers)
				r.Post("/api/users/{id}/unlock", adminHandler.UnlockUser)
				r.Post("/api/invites", adminHandler.CreateInvite)
			})
		})
	})

	logger.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := http.ListenAndServe(":"+cfg.ServerPort, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
