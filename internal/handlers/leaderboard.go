package handlers

import (
	"log"
	"net/http"

	"github.com/ecosnap/ecosnap/internal/services"
)

// GetLeaderboard handles GET /leaderboard: per-user totals over all scan
// records, cached briefly in Redis when available.
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var cached []services.LeaderboardEntry
	if hit, err := services.Cache.Get(ctx, services.LeaderboardCacheKey, &cached); err == nil && hit {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	entries, err := services.LoadLeaderboard(ctx)
	if err != nil {
		log.Printf("GetLeaderboard: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"message": "Internal server error"})
		return
	}

	if err := services.Cache.Set(ctx, services.LeaderboardCacheKey, entries, services.LeaderboardCacheTTL); err != nil {
		log.Printf("GetLeaderboard: failed to cache: %v", err)
	}

	writeJSON(w, http.StatusOK, entries)
}
