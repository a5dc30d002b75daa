// Package gateway is the HTTP client for the EcoSnap backend.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ecosnap/ecosnap/internal/models"
	"github.com/ecosnap/ecosnap/internal/services"
	"github.com/google/uuid"
)

// BackendError is any non-2xx reply from the backend.
type BackendError struct {
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("gateway: backend responded %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL *url.URL
	client  *http.Client
}

// NewClient creates a backend client. A nil http.Client falls back to
// http.DefaultClient.
func NewClient(rawURL string, client *http.Client) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid url: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{baseURL: u, client: client}, nil
}

// Login upserts the user by email and reports "new" or "existing".
func (c *Client) Login(ctx context.Context, email, name string) (string, models.User, error) {
	var resp struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	body := map[string]string{"email": email, "name": name}
	if err := c.post(ctx, "/login", body, &resp); err != nil {
		return "", models.User{}, err
	}
	return resp.Message, resp.User, nil
}

// Submission is one logical submit. The request id is minted once, at
// construction: retrying the same Submission after a timeout presents the
// same id, which is what lets the backend de-duplicate it. A new Submission
// is a new logical capture and gets a new id.
type Submission struct {
	RequestID string
	Owner     string
	Image     string
	Result    models.Classification
}

// NewSubmission builds a Submission for one confirmed capture.
func NewSubmission(owner, encodedImage string, result models.Classification) Submission {
	return Submission{
		RequestID: uuid.NewString(),
		Owner:     owner,
		Image:     encodedImage,
		Result:    result,
	}
}

// Submit inserts the scan record described by the Submission. Safe to call
// again with the same Submission: the backend answers the replay with the
// already-stored record instead of inserting a second one.
func (c *Client) Submit(ctx context.Context, sub Submission) (models.ScanRecord, error) {
	body := map[string]any{
		"email":       sub.Owner,
		"base64Image": sub.Image,
		"apiResponse": sub.Result,
		"requestId":   sub.RequestID,
	}
	var resp struct {
		Message string            `json:"message"`
		Image   models.ScanRecord `json:"image"`
	}
	if err := c.post(ctx, "/upload-image", body, &resp); err != nil {
		return models.ScanRecord{}, err
	}
	return resp.Image, nil
}

// FetchForOwner returns every scan record owned by the email. The backend
// answers 404 for an owner with no records; that is mapped to an empty
// slice, not an error.
func (c *Client) FetchForOwner(ctx context.Context, email string) ([]models.ScanRecord, error) {
	var records []models.ScanRecord
	err := c.post(ctx, "/recycling-data", map[string]string{"email": email}, &records)
	if err != nil {
		var berr *BackendError
		if errors.As(err, &berr) && berr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}

// Leaderboard returns the aggregated per-user totals.
func (c *Client) Leaderboard(ctx context.Context) ([]services.LeaderboardEntry, error) {
	var entries []services.LeaderboardEntry
	if err := c.get(ctx, "/leaderboard", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Achievements returns all seeded achievements.
func (c *Client) Achievements(ctx context.Context) ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := c.get(ctx, "/achievements", &achievements); err != nil {
		return nil, err
	}
	return achievements, nil
}

// AllImages returns every stored record across all owners.
func (c *Client) AllImages(ctx context.Context) ([]models.ScanRecord, error) {
	var records []models.ScanRecord
	if err := c.get(ctx, "/images", &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("gateway: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.JoinPath(path).String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("gateway: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.JoinPath(path).String(), nil)
	if err != nil {
		return fmt.Errorf("gateway: create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &BackendError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: decode response: %w", err)
	}
	return nil
}
