package services

import (
	"context"
	"time"

	"github.com/ecosnap/ecosnap/internal/database"
	"github.com/ecosnap/ecosnap/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// LeaderboardEntry is one user's aggregated totals. Ordering is the user read
// order; clients re-sort by whichever metric they display.
type LeaderboardEntry struct {
	Name            string `json:"name"`
	Username        string `json:"username"`
	TotalRecyclable int    `json:"totalRecyclable"`
	TotalPoints     int    `json:"totalPoints"`
}

// ComputeLeaderboard folds both collections into per-user totals in a single
// pass: one owner→accumulator map instead of a query per user.
//
// Points are summed over every record regardless of recyclability; only the
// recyclable count is gated. Records whose owner matches no user are skipped.
func ComputeLeaderboard(users []models.User, records []models.ScanRecord) []LeaderboardEntry {
	type totals struct {
		recyclable int
		points     int
	}

	byOwner := make(map[string]*totals, len(users))
	entries := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = LeaderboardEntry{Name: u.Name, Username: u.Username}
		if _, ok := byOwner[u.Email]; !ok {
			byOwner[u.Email] = &totals{}
		}
	}

	for _, rec := range records {
		t, ok := byOwner[rec.Owner]
		if !ok {
			continue // orphaned record, contributes to nobody
		}
		t.points += rec.APIResponse.Points
		if rec.APIResponse.Recyclable {
			t.recyclable++
		}
	}

	for i, u := range users {
		t := byOwner[u.Email]
		entries[i].TotalRecyclable = t.recyclable
		entries[i].TotalPoints = t.points
	}

	return entries
}

// LoadLeaderboard reads both collections and aggregates them. There is no
// transactional guarantee across the two reads; a concurrent upload may or
// may not be reflected.
func LoadLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	userCursor, err := database.DB.Collection(database.UsersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := userCursor.All(ctx, &users); err != nil {
		return nil, err
	}

	imageCursor, err := database.DB.Collection(database.ImagesCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var records []models.ScanRecord
	if err := imageCursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return ComputeLeaderboard(users, records), nil
}
