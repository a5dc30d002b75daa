// Package vision classifies captured images through a multimodal chat
// completions API.
package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ecosnap/ecosnap/internal/models"
)

// Failure kinds. Both are terminal for the current capture attempt: no
// retry, nothing persisted.
var (
	ErrTransport         = errors.New("vision: transport error")
	ErrMalformedResponse = errors.New("vision: malformed response")
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

// Config configures the vision client.
type Config struct {
	APIKey   string
	Model    string // defaults to gpt-4o-mini
	Endpoint string // defaults to the OpenAI chat completions endpoint
}

// Client submits images for classification.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	endpoint   string
}

// NewClient creates a vision client. The API key is required.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("vision: API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Classify submits one base64 data-URI image plus the fixed instruction as a
// single user turn and parses the first choice strictly as JSON.
func (c *Client) Classify(ctx context.Context, imageDataURI string) (models.Classification, error) {
	requestBody := map[string]any{
		"model": c.model,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{
						"type": "text",
						"text": classifyPrompt,
					},
					{
						"type": "image_url",
						"image_url": map[string]any{
							"url": imageDataURI,
						},
					},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return models.Classification{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(string(jsonBody)))
	if err != nil {
		return models.Classification{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Classification{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Classification{}, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		return models.Classification{}, fmt.Errorf("%w: API error (status %d): %s", ErrTransport, resp.StatusCode, string(body))
	}

	var response completionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.Classification{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(response.Choices) == 0 {
		return models.Classification{}, fmt.Errorf("%w: no completion choices returned", ErrMalformedResponse)
	}

	return parseClassification(response.Choices[0].Message.Content)
}

// parseClassification parses the completion text strictly as JSON. The
// instruction mandates JSON-only output; if the model still wrapped it, fail
// rather than guess (beyond stripping a markdown fence). Every field of the
// mandated shape must be present; a reply that omits one is malformed, not a
// zero-valued classification.
func parseClassification(content string) (models.Classification, error) {
	content = cleanMarkdownWrapper(content)

	var fields struct {
		Item        *string           `json:"item"`
		Recyclable  *bool             `json:"recyclable"`
		Materials   []models.Material `json:"materials"`
		Description *string           `json:"description"`
		Points      *int              `json:"points"`
	}
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return models.Classification{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	switch {
	case fields.Item == nil || *fields.Item == "":
		return models.Classification{}, fmt.Errorf("%w: no item in response", ErrMalformedResponse)
	case fields.Recyclable == nil:
		return models.Classification{}, fmt.Errorf("%w: no recyclable flag in response", ErrMalformedResponse)
	case fields.Description == nil:
		return models.Classification{}, fmt.Errorf("%w: no description in response", ErrMalformedResponse)
	case fields.Points == nil:
		return models.Classification{}, fmt.Errorf("%w: no points in response", ErrMalformedResponse)
	}

	// materials may legitimately be empty for single-material items.
	return models.Classification{
		Item:        *fields.Item,
		Recyclable:  *fields.Recyclable,
		Materials:   fields.Materials,
		Description: *fields.Description,
		Points:      *fields.Points,
	}, nil
}

// cleanMarkdownWrapper strips a ```json fence if the model added one.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}

// completionResponse is the subset of the chat completions reply we read.
type completionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}
