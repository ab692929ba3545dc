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

	"github.com/gracechapel/church-admin-api/internal/config"
	"github.com/gracechapel/church-admin-api/internal/database"
	"github.com/gracechapel/church-admin-api/internal/handlers"
	authmw "github.com/gracechapel/church-admin-api/internal/middleware"
	"github.com/gracechapel/church-admin-api/internal/models"
	"github.com/gracechapel/church-admin-api/internal/obs"
	"github.com/gracechapel/church-admin-api/internal/services"
	"github.com/gracechapel/church-admin-api/internal/sse"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	profileService := services.NewProfileService(db)
	tokenService := services.NewTokenService(db)
	adminService := services.NewAdminService(db, tokenService)
	wordService := services.NewWordService(db)
	devotionalService := services.NewDevotionalService(db)
	sermonService := services.NewSermonService(db)
	audioService := services.NewAudioService(db)
	outlineService := services.NewOutlineService(db)
	emailService := services.NewEmailService(cfg.SMTP)

	storageService, err := services.NewStorageService(cfg.StorageDir, cfg.BaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	hub := sse.NewHub()
	go hub.Run()

	authHandler := handlers.NewAuthHandler(cfg, profileService, tokenService, jwtService)
	profileHandler := handlers.NewProfileHandler(profileService, storageService, hub)
	adminHandler := handlers.NewAdminHandler(cfg, adminService, profileService, emailService, hub)
	overviewHandler := handlers.NewOverviewHandler(profileService, devotionalService, sermonService, audioService, outlineService)
	wordHandler := handlers.NewWordHandler(wordService)
	devotionalHandler := handlers.NewDevotionalHandler(devotionalService, storageService)
	sermonHandler := handlers.NewSermonHandler(sermonService)
	audioHandler := handlers.NewAudioHandler(audioService)
	outlineHandler := handlers.NewOutlineHandler(outlineService, storageService)
	eventsHandler := handlers.NewEventsHandler(hub)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/:provider/consent", authHandler.GetConsentURL)
	auth.Get("/:provider/callback", authHandler.Callback)
	auth.Post("/exchange", authHandler.ExchangeCode)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	// First super admin promotion for a fresh deployment, gated by a shared
	// secret rather than a session.
	api.Get("/admin/bootstrap", adminHandler.Bootstrap)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)
	protected.Get("/auth/session", authHandler.Session)

	admin := api.Group("")
	admin.Use(authmw.Auth(jwtService))
	admin.Use(authmw.RequireAdmin())

	admin.Get("/overview", overviewHandler.Get)

	admin.Get("/profiles", profileHandler.List)
	admin.Post("/profiles", profileHandler.Create)
	admin.Get("/profiles/:profileId", profileHandler.Get)
	admin.Patch("/profiles/:profileId", profileHandler.Update)
	admin.Delete("/profiles/:profileId", profileHandler.Delete)
	admin.Post("/profiles/:profileId/image", profileHandler.UploadImage)

	admin.Get("/word-entries", wordHandler.List)
	admin.Post("/word-entries", wordHandler.Create)
	admin.Get("/word-entries/:wordId", wordHandler.Get)
	admin.Patch("/word-entries/:wordId", wordHandler.Update)
	admin.Delete("/word-entries/:wordId", wordHandler.Delete)

	admin.Get("/devotionals", devotionalHandler.List)
	admin.Post("/devotionals", devotionalHandler.Create)
	admin.Get("/devotionals/:devotionalId", devotionalHandler.Get)
	admin.Patch("/devotionals/:devotionalId", devotionalHandler.Update)
	admin.Post("/devotionals/:devotionalId/document", devotionalHandler.UploadDocument)
	admin.Delete("/devotionals/:devotionalId", devotionalHandler.Delete)

	admin.Get("/sermons", sermonHandler.List)
	admin.Post("/sermons", sermonHandler.Create)
	admin.Get("/sermons/:sermonId", sermonHandler.Get)
	admin.Patch("/sermons/:sermonId", sermonHandler.Update)
	admin.Delete("/sermons/:sermonId", sermonHandler.Delete)

	admin.Get("/audio-messages", audioHandler.List)
	admin.Post("/audio-messages", audioHandler.Create)
	admin.Get("/audio-messages/:audioId", audioHandler.Get)
	admin.Patch("/audio-messages/:audioId", audioHandler.Update)
	admin.Delete("/audio-messages/:audioId", audioHandler.Delete)

	admin.Get("/outlines", outlineHandler.List)
	admin.Post("/outlines", outlineHandler.Create)
	admin.Get("/outlines/:outlineId", outlineHandler.Get)
	admin.Delete("/outlines/:outlineId", outlineHandler.Delete)

	superAdmin := api.Group("")
	superAdmin.Use(authmw.Auth(jwtService))
	superAdmin.Use(authmw.RequireRole(models.RoleSuperAdmin))

	superAdmin.Post("/admin/roles", adminHandler.ManageRole)
	superAdmin.Get("/events", eventsHandler.Stream)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	obs.Init()

	mux := http.NewServeMux()
	mux.Handle("/files/", http.StripPrefix("/files/", http.FileServer(http.Dir(storageService.Root()))))
	mux.Handle("/metrics", obs.Handler())
	mux.Handle("/", app)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: obs.Instrument(mux),
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
