package services

import (
	"context"
	"log"
	"time"

	"github.com/ecosnap/ecosnap/internal/database"
	"github.com/ecosnap/ecosnap/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// defaultAchievements are written once into an empty achievements collection.
// There is no write endpoint for achievements; they are managed in storage.
var defaultAchievements = []models.Achievement{
	{Title: "First Steps", Description: "Scan your first recyclable item", Type: models.AchievementTypeItems, Goal: 1},
	{Title: "Getting Sorted", Description: "Scan 10 recyclable items", Type: models.AchievementTypeItems, Goal: 10},
	{Title: "Bin There, Done That", Description: "Scan 50 recyclable items", Type: models.AchievementTypeItems, Goal: 50},
	{Title: "Point Collector", Description: "Earn 25 recycling points", Type: models.AchievementTypePoints, Goal: 25},
	{Title: "Impact Maker", Description: "Earn 100 recycling points", Type: models.AchievementTypePoints, Goal: 100},
	{Title: "Planet Hero", Description: "Earn 500 recycling points", Type: models.AchievementTypePoints, Goal: 500},
}

// SeedAchievements inserts the default achievements if the collection is
// empty. Called on startup from main after Mongo has connected.
func SeedAchievements(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	col := database.DB.Collection(database.AchievementsCollection)

	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	docs := make([]interface{}, len(defaultAchievements))
	for i, a := range defaultAchievements {
		docs[i] = a
	}
	if _, err := col.InsertMany(ctx, docs); err != nil {
		return err
	}

	log.Printf("Seeded %d achievements", len(docs))
	return nil
}
