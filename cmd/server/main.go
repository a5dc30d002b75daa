package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/ecosnap/ecosnap/internal/config"
	"github.com/ecosnap/ecosnap/internal/database"
	"github.com/ecosnap/ecosnap/internal/handlers"
	appmiddleware "github.com/ecosnap/ecosnap/internal/middleware"
	"github.com/ecosnap/ecosnap/internal/routes"
	"github.com/ecosnap/ecosnap/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Redis is optional; without it the leaderboard is computed on every request
	if cfg.RedisURI != "" {
		log.Printf("Connecting to Redis...")
		if err := database.ConnectRedis(cfg.RedisURI); err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v", err)
			log.Println("Leaderboard caching will not be available")
		} else {
			defer database.DisconnectRedis()
		}
	}

	// Initialize Cloudinary image offload
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		if err := handlers.InitCloudinaryService(cfg); err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Images will only be stored inline")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Cloudinary credentials not found. Images will only be stored inline")
	}

	// Seed achievements once on an empty collection
	if err := services.SeedAchievements(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to seed achievements: %v", err)
	}

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(appmiddleware.RequestLog)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /login")
	log.Println("  GET  /users")
	log.Println("  PUT  /users")
	log.Println("  POST /upload-image")
	log.Println("  POST /recycling-data")
	log.Println("  GET  /images")
	log.Println("  GET  /leaderboard")
	log.Println("  GET  /achievements")

	log.Printf("🚀 EcoSnap backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
