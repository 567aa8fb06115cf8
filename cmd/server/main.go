package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/careaxis/hospital-admin-api/internal/cache"
	"github.com/careaxis/hospital-admin-api/internal/config"
	"github.com/careaxis/hospital-admin-api/internal/database"
	"github.com/careaxis/hospital-admin-api/internal/handlers"
	"github.com/careaxis/hospital-admin-api/internal/middleware"
	"github.com/careaxis/hospital-admin-api/internal/repository"
	"github.com/careaxis/hospital-admin-api/internal/services"
	"github.com/careaxis/hospital-admin-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Hospital Admin API")

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	// Initialize cache
	var cacheImpl cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Type == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		redisCache, err := cache.NewRedisCache(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisCache.Close()
		cacheImpl = redisCache
		log.Info().Msg("Redis cache initialized")
	} else {
		memCache := cache.NewMemoryCache()
		defer memCache.Close()
		cacheImpl = memCache
		log.Info().Msg("Memory cache initialized")
	}

	// Initialize repositories
	wardRepo := repository.NewWardRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	teamRepo := repository.NewTeamRepository(db)

	// Initialize services
	wardService := services.NewWardService(db, wardRepo, patientRepo, cacheImpl)
	doctorService := services.NewDoctorService(db, doctorRepo)
	patientService := services.NewPatientService(db, patientRepo, wardRepo, teamRepo, cacheImpl)
	teamService := services.NewTeamService(db, teamRepo, doctorRepo, patientRepo)
	admissionService := services.NewAdmissionService(db, patientRepo, wardRepo, teamRepo, cacheImpl, cfg.Cache.TTL)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	wardHandler := handlers.NewWardHandler(wardService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	patientHandler := handlers.NewPatientHandler(patientService)
	teamHandler := handlers.NewTeamHandler(teamService)
	admissionHandler := handlers.NewAdmissionHandler(admissionService)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Management API
	r.Route("/api", func(r chi.Router) {
		r.Route("/wards", func(r chi.Router) {
			r.Get("/", wardHandler.List)
			r.Post("/", wardHandler.Create)
			r.Get("/{wardID}", wardHandler.Get)
			r.Patch("/{wardID}", wardHandler.Update)
			r.Delete("/{wardID}", wardHandler.Delete)
		})

		r.Route("/doctors", func(r chi.Router) {
			r.Get("/", doctorHandler.List)
			r.Post("/", doctorHandler.Create)
			r.Get("/{doctorID}", doctorHandler.Get)
			r.Patch("/{doctorID}", doctorHandler.Update)
			r.Delete("/{doctorID}", doctorHandler.Delete)
		})

		r.Route("/patients", func(r chi.Router) {
			r.Get("/", patientHandler.List)
			r.Post("/", patientHandler.Create)
			r.Get("/{patientID}", patientHandler.Get)
			r.Patch("/{patientID}", patientHandler.Update)
			r.Delete("/{patientID}", patientHandler.Delete)
		})

		r.Route("/doctor-teams", func(r chi.Router) {
			r.Get("/", teamHandler.List)
			r.Post("/", teamHandler.Create)
			r.Get("/{teamID}", teamHandler.Get)
			r.Patch("/{teamID}", teamHandler.Update)
			r.Delete("/{teamID}", teamHandler.Delete)
			r.Post("/{teamID}/doctors", teamHandler.AddDoctor)
			r.Delete("/{teamID}/doctors/{doctorID}", teamHandler.RemoveDoctor)
		})

		r.Route("/patient-ward", func(r chi.Router) {
			r.Post("/assign", admissionHandler.Assign)
			r.Post("/transfer", admissionHandler.Transfer)
			r.Post("/discharge", admissionHandler.Discharge)
			r.Get("/ward/{wardID}/patients", admissionHandler.WardPatients)
			r.Get("/ward/{wardID}/occupancy", admissionHandler.WardOccupancy)
			r.Get("/patient/{patientID}/history", admissionHandler.PatientHistory)
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
