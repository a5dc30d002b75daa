package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResult = `{
	"item": "metal bottle",
	"recyclable": true,
	"materials": [{"material": "aluminum"}, {"material": "steel"}],
	"description": "Empty and clean before recycling.",
	"points": 7
}`

func completionReply(content string) string {
	reply := map[string]any{
		"id":    "chatcmpl-123",
		"model": "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
	b, _ := json.Marshal(reply)
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{APIKey: "test-key", Endpoint: srv.URL})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionReply(validResult)))
	})

	result, err := client.Classify(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)

	assert.Equal(t, "metal bottle", result.Item)
	assert.True(t, result.Recyclable)
	require.Len(t, result.Materials, 2)
	assert.Equal(t, "aluminum", result.Materials[0].Material)
	assert.Equal(t, 7, result.Points)
	assert.NotEmpty(t, result.Description)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])

	// The image travels as a single user turn: prompt text plus image_url.
	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 1)
	turn := messages[0].(map[string]any)
	assert.Equal(t, "user", turn["role"])
	content := turn["content"].([]any)
	require.Len(t, content, 2)
}

func TestClassifyStripsMarkdownFence(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionReply("```json\n" + validResult + "\n```")))
	})

	result, err := client.Classify(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "metal bottle", result.Item)
}

func TestClassifyMalformedContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "prose instead of JSON", content: "I think this is a metal bottle, it's recyclable!"},
		{name: "prose wrapping JSON", content: "Sure! Here is the result: " + validResult},
		{name: "empty content", content: ""},
		{name: "missing item field", content: `{"recyclable": true, "description": "ok", "points": 3}`},
		{name: "missing recyclable field", content: `{"item": "bottle", "description": "ok", "points": 3}`},
		{name: "missing description field", content: `{"item": "bottle", "recyclable": true, "points": 3}`},
		{name: "missing points field", content: `{"item": "bottle", "recyclable": true, "description": "ok"}`},
		{name: "item only", content: `{"item": "bottle"}`},
		{name: "wrong materials type", content: `{"item": "bottle", "recyclable": true, "materials": "plastic", "description": "ok", "points": 3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(completionReply(tt.content)))
			})

			_, err := client.Classify(context.Background(), "data:image/png;base64,AAAA")
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestClassifyMaterialsOptional(t *testing.T) {
	// Single-material items sometimes come back without a materials array.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionReply(`{"item": "napkin", "recyclable": false, "description": "Soiled paper.", "points": 1}`)))
	})

	result, err := client.Classify(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "napkin", result.Item)
	assert.False(t, result.Recyclable)
	assert.Empty(t, result.Materials)
	assert.Equal(t, 1, result.Points)
}

func TestClassifyNoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "chatcmpl-123", "choices": []}`))
	})

	_, err := client.Classify(context.Background(), "data:image/png;base64,AAAA")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestClassifyHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	})

	_, err := client.Classify(context.Background(), "data:image/png;base64,AAAA")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestClassifyUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	client, err := NewClient(Config{APIKey: "test-key", Endpoint: srv.URL})
	require.NoError(t, err)

	_, err = client.Classify(context.Background(), "data:image/png;base64,AAAA")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"a": 1}`, want: `{"a": 1}`},
		{name: "json fence", in: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "bare fence", in: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "surrounding whitespace", in: "  {\"a\": 1}\n", want: `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.in))
		})
	}
}
