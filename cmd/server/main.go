package main

import (
	"fmt"
	"log"
	"os"

	"linkdao-marketplace-api/internal/auth"
	"linkdao-marketplace-api/internal/config"
	"linkdao-marketplace-api/internal/database"
	"linkdao-marketplace-api/internal/pricing"
	"linkdao-marketplace-api/internal/profiles"
	"linkdao-marketplace-api/internal/routes"
)

func main() {
	// Load config (optional file; defaults otherwise)
	cfgPath := os.Getenv("LINKDAO_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg := config.Default()
	if _, err := os.Stat(cfgPath); err == nil {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			log.Fatal("Failed to load config: ", err)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config: ", err)
	}

	// Init database
	database.InitDB(cfg.Database.Path)

	// Build the cache-backed services; the TTL caches live for the whole
	// process and are torn down with it.
	profileTTL, _ := cfg.GetProfileTTL()
	tierTTL, _ := cfg.GetTierTTL()
	nonceTTL, _ := cfg.GetNonceTTL()

	deps := routes.Deps{
		Profiles: profiles.NewService(database.GetDB(), profileTTL),
		Pricing:  pricing.NewService(database.GetDB(), tierTTL),
		Nonces:   auth.NewNonceStore(nonceTTL),
	}

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes(deps)

	// Start server
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server starting on port %s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/auth/nonce")
	log.Println("  POST   /api/auth/login")
	log.Println("  GET    /api/profiles/:address")
	log.Println("  GET    /api/products")
	log.Println("  GET    /api/products/:id")
	log.Println("  GET    /api/feed")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
