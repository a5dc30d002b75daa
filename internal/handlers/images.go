package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/ecosnap/ecosnap/internal/config"
	"github.com/ecosnap/ecosnap/internal/models"
	"github.com/ecosnap/ecosnap/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

var cloudinaryService *services.CloudinaryService

// InitCloudinaryService enables image offload to Cloudinary. Optional: when
// not initialized, images are stored inline only.
func InitCloudinaryService(cfg *config.Config) error {
	service, err := services.NewCloudinaryService(
		cfg.CloudinaryName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

// UploadImageRequest is the JSON body for POST /upload-image.
type UploadImageRequest struct {
	Email       string                `json:"email"`
	Base64Image string                `json:"base64Image"`
	APIResponse models.Classification `json:"apiResponse"`

	// RequestID de-duplicates retried submits. Optional; submits without it
	// keep at-least-once semantics and may create duplicates.
	RequestID string `json:"requestId,omitempty"`
}

// UploadImageResponse echoes the stored record.
type UploadImageResponse struct {
	Message string            `json:"message"`
	Image   models.ScanRecord `json:"image"`
}

// UploadImage handles POST /upload-image: inserts one immutable scan record.
func UploadImage(w http.ResponseWriter, r *http.Request) {
	var req UploadImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": "Invalid request body"})
		return
	}
	if req.Email == "" || req.Base64Image == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": "Email and base64Image are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Replay of an already-stored submit returns the stored record instead
	// of inserting a second one.
	if req.RequestID != "" {
		existing, err := imageStore.FindByRequestID(ctx, req.RequestID)
		if err == nil {
			writeJSON(w, http.StatusOK, UploadImageResponse{Message: "duplicate", Image: existing})
			return
		}
		if err != mongo.ErrNoDocuments {
			log.Printf("UploadImage: request id lookup failed: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"message": "Internal server error"})
			return
		}
	}

	record := models.ScanRecord{
		Owner:       req.Email,
		Image:       req.Base64Image,
		RequestID:   req.RequestID,
		APIResponse: req.APIResponse,
		CreatedAt:   time.Now().UTC(),
	}

	if cloudinaryService != nil {
		url, err := cloudinaryService.UploadDataURI(ctx, req.Base64Image, "ecosnap")
		if err != nil {
			// Offload is best-effort; the inline copy is authoritative.
			log.Printf("UploadImage: Cloudinary offload failed: %v", err)
		} else {
			record.ImageURL = url
		}
	}

	if err := imageStore.Insert(ctx, record); err != nil {
		log.Printf("UploadImage: insert failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"message": "Internal server error"})
		return
	}

	// A new record invalidates the cached leaderboard.
	if err := services.Cache.Delete(ctx, services.LeaderboardCacheKey); err != nil {
		log.Printf("UploadImage: failed to invalidate leaderboard cache: %v", err)
	}

	writeJSON(w, http.StatusCreated, UploadImageResponse{Message: "Image uploaded successfully", Image: record})
}

// GetImages handles GET /images: the whole collection, unfiltered. Clients
// self-filter by owner.
func GetImages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := imageStore.FindAll(ctx)
	if err != nil {
		log.Printf("GetImages: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"message": "Internal server error"})
		return
	}
	if records == nil {
		records = []models.ScanRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

// RecyclingDataRequest is the JSON body for POST /recycling-data.
type RecyclingDataRequest struct {
	Email string `json:"email"`
}

// RecyclingData handles POST /recycling-data: all records for one owner.
// An owner with no records gets a 404, which clients treat as "no data yet".
func RecyclingData(w http.ResponseWriter, r *http.Request) {
	var req RecyclingDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": "Invalid request body"})
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": "Email is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := imageStore.FindByOwner(ctx, req.Email)
	if err != nil {
		log.Printf("RecyclingData: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"message": "Internal server error"})
		return
	}

	if len(records) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"message": "No data found for this email"})
		return
	}

	writeJSON(w, http.StatusOK, records)
}
