package routes

import (
	"github.com/ecosnap/ecosnap/internal/handlers"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux) {
	// Auth / user routes
	r.Post("/login", handlers.Login)
	r.Get("/users", handlers.GetUser)
	r.Put("/users", handlers.UpdateUser)

	// Scan record routes
	r.Post("/upload-image", handlers.UploadImage)
	r.Post("/recycling-data", handlers.RecyclingData)
	r.Get("/images", handlers.GetImages)

	// Aggregate routes
	r.Get("/leaderboard", handlers.GetLeaderboard)
	r.Get("/achievements", handlers.GetAchievements)
}
