package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plogging-ethiopia/volunteer-ledger/internal/config"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/database"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/handler"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/render"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/repository"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/service"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/utils"
)

// @title           Volunteer Ledger API
// @version         1.0
// @description     Backend server for the Plogging Ethiopia volunteer ledger: volunteers, events, certificates and badges.

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// ── Database ─────────────────────────────────────────
	db := database.Connect(&cfg.Database)
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	log.Printf("Running migrations from: %s", migrationsPath)
	if err := database.RunMigrations(db, migrationsPath); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seeder := database.NewSeeder(db)
	if err := seeder.SeedAdminUser(context.Background()); err != nil {
		log.Printf("Warning: seed failed: %v", err)
	}

	// ── Storage (MinIO) ──────────────────────────────────
	storage, err := utils.NewStorageService(&cfg.MinIO)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}
	log.Println("MinIO connected successfully")

	// ── Renderers ────────────────────────────────────────
	fonts := render.NewFontSet(cfg.Artifact.FontDirs)
	var imageTokens render.TokenProvider
	if cfg.Artifact.ImageToken != "" {
		imageTokens = render.StaticToken(cfg.Artifact.ImageToken)
	}
	fetcher := render.NewImageFetcher(cfg.Artifact.ImageBaseURL, imageTokens)
	certRenderer := render.NewCertificateRenderer(cfg.Artifact.OrgName, cfg.Artifact.OrgTagline, cfg.Artifact.FrontendURL)
	badgeRenderer := render.NewBadgeRenderer(cfg.Artifact.OrgName, cfg.Artifact.FrontendURL, fetcher, fonts)

	// ── Repositories ─────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	volunteerRepo := repository.NewVolunteerRepository(db)
	eventRepo := repository.NewEventRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)

	// ── Services ─────────────────────────────────────────
	authService := service.NewAuthService(userRepo, cfg)
	volunteerService := service.NewVolunteerService(volunteerRepo, storage)
	eventService := service.NewEventService(eventRepo, volunteerRepo)
	certificateService := service.NewCertificateService(certificateRepo, volunteerRepo, eventRepo, certRenderer, storage)
	badgeService := service.NewBadgeService(badgeRepo, volunteerRepo, badgeRenderer)

	// ── Handlers ─────────────────────────────────────────
	authHandler := handler.NewAuthHandler(authService)
	volunteerHandler := handler.NewVolunteerHandler(volunteerService)
	eventHandler := handler.NewEventHandler(eventService)
	certificateHandler := handler.NewCertificateHandler(certificateService)
	badgeHandler := handler.NewBadgeHandler(badgeService)

	// ── Router ───────────────────────────────────────────
	router := handler.NewRouter(
		authHandler,
		volunteerHandler,
		eventHandler,
		certificateHandler,
		badgeHandler,
		cfg.JWT.Secret,
	)

	// ── HTTP Server ──────────────────────────────────────
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.App.Port),
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server running on port %s (mode: %s)", cfg.App.Port, cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
