package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ecosnap/ecosnap/internal/models"
	"github.com/ecosnap/ecosnap/pkg/utils"
	"go.mongodb.org/mongo-driver/mongo"
)

// LoginRequest carries the identity obtained from the external provider.
// The backend never validates it; it only upserts by email.
type LoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResponse reports whether the user was created or already existed.
type LoginResponse struct {
	Message string      `json:"message"` // "new" or "existing"
	User    models.User `json:"user"`
}

// Login handles POST /login. First call with an email inserts the user and
// returns "new"; every later call returns "existing" and leaves the stored
// user untouched.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": "Invalid request body"})
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": "Email is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, err := userStore.FindByEmail(ctx, req.Email)
	if err == nil {
		writeJSON(w, http.StatusOK, LoginResponse{Message: "existing", User: existing})
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("Login: failed to look up user: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"message": "Internal server error"})
		return
	}

	newUser := models.User{
		Email:     req.Email,
		Name:      req.Name,
		Username:  localPart(req.Email),
		Following: "",
		CreatedAt: time.Now().UTC(),
	}
	if err := userStore.Insert(ctx, newUser); err != nil {
		log.Printf("Login: failed to insert user: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"message": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, LoginResponse{Message: "new", User: newUser})
}

// GetUser handles GET /users?email=. Unknown emails get a 404, never a
// default user object.
func GetUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": "Email is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := userStore.FindByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{"message": "User not found"})
		} else {
			log.Printf("GetUser: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"message": "Internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateUserRequest is the JSON body for PUT /users.
type UpdateUserRequest struct {
	Email    string `json:"email"`
	NewEmail string `json:"newEmail"`
	Username string `json:"username"`
}

// UpdateUser handles PUT /users: updates email and username matched on the
// current email. 404 when nothing matched or nothing changed.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": "Invalid request body"})
		return
	}
	if req.Email == "" || req.NewEmail == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": "Email and newEmail are required"})
		return
	}
	if err := utils.ValidateUsername(req.Username); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	modified, err := userStore.UpdateEmailUsername(ctx, req.Email, req.NewEmail, utils.NormalizeUsername(req.Username))
	if err != nil {
		log.Printf("UpdateUser: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"message": "Internal server error"})
		return
	}

	if modified > 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "User updated successfully"})
	} else {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"message": "User not found or no changes made"})
	}
}

// localPart returns the default username derived from an email.
func localPart(email string) string {
	if idx := strings.Index(email, "@"); idx != -1 {
		return email[:idx]
	}
	return email
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
