package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/lib/pq"

	httpapi "madalto-backend/internal/api/http"
	"madalto-backend/internal/config"
	"madalto-backend/internal/identity"
	"madalto-backend/internal/logger"
	"madalto-backend/internal/otp"
	"madalto-backend/internal/repository/postgres"
	"madalto-backend/internal/security"
	"madalto-backend/internal/service"
	"madalto-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Madalto Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Identity provider", "provider", cfg.Identity.Provider)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Redis (OTP store)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Error("Failed to ping redis", "error", err)
		log.Fatalf("Failed to ping redis: %v", err)
	}
	defer redisClient.Close()
	otpStore := otp.NewRedisStore(redisClient, cfg.Redis.MaxRetries)

	// Initialize Identity Provider
	var provider identity.Provider
	switch cfg.Identity.Provider {
	case "firebase":
		provider, err = identity.NewFirebaseProvider(context.Background(), cfg.Identity.CredentialsFile, cfg.Identity.WebAPIKey)
		if err != nil {
			logger.Error("Failed to initialize firebase provider", "error", err)
			log.Fatalf("Failed to initialize firebase provider: %v", err)
		}
	default:
		tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
		provider = identity.NewLocalProvider(store.UserRepository, tokenManager)
	}

	// Initialize Document Storage
	blobs, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize document storage", "error", err)
		log.Fatalf("Failed to initialize document storage: %v", err)
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	authSvc := service.NewAuthService(provider, otpStore, emailSvc, store.ApplicantRepository, store.AdminRepository, cfg.Redis.OTPExpiry, cfg.Redis.OTPLength)
	identitySvc := service.NewIdentityService(store.ApplicantRepository, store.AdminRepository)
	applicationSvc := service.NewApplicationService(
		store,
		store.ApplicationRepository,
		store.DocumentRepository,
		store.AppointmentRepository,
		cfg.Eligibility.RenewalWindowDays,
		cfg.Eligibility.AllowRenewalWithoutExpiry,
	)
	adminSvc := service.NewAdminService(
		store,
		store.ApplicationRepository,
		store.ApplicantRepository,
		store.AdminRepository,
		emailSvc,
	)
	documentSvc := service.NewDocumentService(store.DocumentRepository, store.ApplicationRepository, blobs)
	appointmentSvc := service.NewAppointmentService(store.AppointmentRepository, store.ApplicationRepository, store.ReferenceRepository)
	applicantSvc := service.NewApplicantService(store.ApplicantRepository, store.DonationRepository)
	referenceSvc := service.NewReferenceService(store.ReferenceRepository)

	// Initialize HTTP API
	api := httpapi.NewAPI(
		authSvc,
		identitySvc,
		applicationSvc,
		adminSvc,
		documentSvc,
		appointmentSvc,
		applicantSvc,
		referenceSvc,
	)

	server := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
