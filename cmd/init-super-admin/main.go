package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gracechapel/church-admin-api/internal/config"
	"github.com/gracechapel/church-admin-api/internal/database"
	"github.com/gracechapel/church-admin-api/internal/services"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: init-super-admin <email>")
		os.Exit(1)
	}

	email := os.Args[1]

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

	tokenService := services.NewTokenService(db)
	adminService := services.NewAdminService(db, tokenService)

	profile, err := adminService.BootstrapSuperAdmin(ctx, email)
	if err != nil {
		log.Fatalf("Failed to promote profile: %v", err)
	}

	fmt.Printf("Successfully promoted %s to super admin\n", profile.Email)
}
