package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecosnap/ecosnap/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, nil)
	require.NoError(t, err)
	return client
}

func TestSubmitAttachesRequestID(t *testing.T) {
	var gotBody map[string]any

	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload-image", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "Image uploaded successfully",
			"image": models.ScanRecord{
				Owner: gotBody["email"].(string),
				Image: gotBody["base64Image"].(string),
			},
		})
	}))

	result := models.Classification{Item: "glass jar", Recyclable: true, Points: 6}
	sub := NewSubmission("a@example.com", "data:image/png;base64,AAAA", result)
	rec, err := client.Submit(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, "a@example.com", rec.Owner)
	assert.Equal(t, "a@example.com", gotBody["email"])

	// Every submission carries a well-formed request id.
	reqID, ok := gotBody["requestId"].(string)
	require.True(t, ok, "requestId must be sent")
	_, err = uuid.Parse(reqID)
	assert.NoError(t, err)
	assert.Equal(t, sub.RequestID, reqID)
}

// A retried submit of the same logical capture must present the same request
// id, otherwise the backend's de-duplication can never match it.
func TestSubmitRetryReusesRequestID(t *testing.T) {
	var gotIDs []string

	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotIDs = append(gotIDs, body["requestId"].(string))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Image uploaded successfully", "image": models.ScanRecord{}})
	}))

	sub := NewSubmission("a@example.com", "data:image/png;base64,AAAA", models.Classification{Item: "can"})

	_, err := client.Submit(context.Background(), sub)
	require.NoError(t, err)
	_, err = client.Submit(context.Background(), sub)
	require.NoError(t, err)

	require.Len(t, gotIDs, 2)
	assert.Equal(t, gotIDs[0], gotIDs[1])
}

func TestNewSubmissionMintsDistinctIDs(t *testing.T) {
	result := models.Classification{Item: "can"}
	first := NewSubmission("a@example.com", "data:...", result)
	second := NewSubmission("a@example.com", "data:...", result)

	assert.NotEqual(t, first.RequestID, second.RequestID)
}

func TestSubmitBackendError(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message": "Internal server error"}`))
	}))

	_, err := client.Submit(context.Background(), NewSubmission("a@example.com", "data:...", models.Classification{}))
	require.Error(t, err)

	var berr *BackendError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, http.StatusInternalServerError, berr.StatusCode)
}

func TestFetchForOwner(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recycling-data", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@example.com", body["email"])

		_ = json.NewEncoder(w).Encode([]models.ScanRecord{
			{Owner: "a@example.com", APIResponse: models.Classification{Item: "can", Recyclable: true, Points: 4}},
		})
	}))

	records, err := client.FetchForOwner(context.Background(), "a@example.com")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "can", records[0].APIResponse.Item)
}

func TestFetchForOwnerNoData(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "No data found for this email"}`))
	}))

	// 404 means "no scans yet", not a failure.
	records, err := client.FetchForOwner(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLogin(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "new",
			"user":    models.User{Email: "a@example.com", Name: "Ada", Username: "a"},
		})
	}))

	status, user, err := client.Login(context.Background(), "a@example.com", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "new", status)
	assert.Equal(t, "a", user.Username)
}

func TestLeaderboard(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/leaderboard", r.URL.Path)
		_, _ = w.Write([]byte(`[{"name":"Ada","username":"ada","totalRecyclable":1,"totalPoints":8}]`))
	}))

	entries, err := client.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ada", entries[0].Username)
	assert.Equal(t, 8, entries[0].TotalPoints)
	assert.Equal(t, 1, entries[0].TotalRecyclable)
}

func TestAchievements(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/achievements", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]models.Achievement{
			{Title: "First Steps", Type: "items", Goal: 1},
		})
	}))

	achievements, err := client.Achievements(context.Background())
	require.NoError(t, err)
	require.Len(t, achievements, 1)
	assert.Equal(t, "First Steps", achievements[0].Title)
}

func TestAllImages(t *testing.T) {
	client := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/images", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]models.ScanRecord{
			{Owner: "a@example.com", APIResponse: models.Classification{Item: "can", Recyclable: true, Points: 4}},
			{Owner: "b@example.com", APIResponse: models.Classification{Item: "bag", Recyclable: false, Points: 1}},
		})
	}))

	records, err := client.AllImages(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b@example.com", records[1].Owner)
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient("://not-a-url", nil)
	assert.Error(t, err)
}
