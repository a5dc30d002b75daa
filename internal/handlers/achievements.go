package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/ecosnap/ecosnap/internal/database"
	"github.com/ecosnap/ecosnap/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// GetAchievements handles GET /achievements. Achievements are seeded in
// storage; there is no write endpoint.
func GetAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection(database.AchievementsCollection).Find(ctx, bson.M{})
	if err != nil {
		log.Printf("GetAchievements: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"message": "Internal server error"})
		return
	}

	achievements := make([]models.Achievement, 0)
	if err := cursor.All(ctx, &achievements); err != nil {
		log.Printf("GetAchievements: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"message": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, achievements)
}
