package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"yatra/config"
	"yatra/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *gateway {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := NewGateway(&config.ChatGatewayConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "test-model",
	})

	return g.(*gateway)
}

func TestComplete_ReturnsAssistantReply(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.False(t, req.Stream)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Visit the Taj Mahal at sunrise."}},
			},
		})
	})

	reply, err := g.Complete(context.Background(), []entity.ChatMessage{
		{Role: entity.RoleUser, Content: "What should I see in Agra?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Visit the Taj Mahal at sunrise.", reply)
}

func TestComplete_NoChoicesFails(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := g.Complete(context.Background(), []entity.ChatMessage{{Role: entity.RoleUser, Content: "hi"}})
	assert.Error(t, err)
}

func TestStreamCompletion_ForwardsDeltasUntilDone(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(`data: {"choices":[{"delta":{"content":"Jaipur "}}]}` + "\n\n"))
		_, _ = w.Write([]byte(`data: {"choices":[{"delta":{"content":"is the Pink City."}}]}` + "\n\n"))
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	})

	chunks, err := g.StreamCompletion(context.Background(), []entity.ChatMessage{
		{Role: entity.RoleUser, Content: "Tell me about Jaipur"},
	})
	require.NoError(t, err)

	var content string
	var sawDone bool
	for chunk := range chunks {
		require.Empty(t, chunk.Err)
		content += chunk.Content
		if chunk.Done {
			sawDone = true
		}
	}
	assert.True(t, sawDone)
	assert.Equal(t, "Jaipur is the Pink City.", content)
}

func TestStreamCompletion_MalformedChunkSurfacesError(t *testing.T) {
	g := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: {not json}\n\n"))
	})

	chunks, err := g.StreamCompletion(context.Background(), []entity.ChatMessage{
		{Role: entity.RoleUser, Content: "hi"},
	})
	require.NoError(t, err)

	var last entity.ChatChunk
	for chunk := range chunks {
		last = chunk
	}
	assert.True(t, last.Done)
	assert.NotEmpty(t, last.Err)
}

func TestStreamCompletion_ContextCancelStopsStream(t *testing.T) {
	release := make(chan struct{})
	g := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(`data: {"choices":[{"delta":{"content":"partial"}}]}` + "\n\n"))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	chunks, err := g.StreamCompletion(ctx, []entity.ChatMessage{{Role: entity.RoleUser, Content: "hi"}})
	require.NoError(t, err)

	first := <-chunks
	assert.Equal(t, "partial", first.Content)
	cancel()

	select {
	case _, open := <-chunks:
		if open {
			// One buffered chunk may still be in flight; the channel
			// must close right after.
			_, open = <-chunks
			assert.False(t, open)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not shut down after cancel")
	}
}

func TestStreamCompletion_UnconfiguredGatewayFails(t *testing.T) {
	g := NewGateway(nil)

	_, err := g.StreamCompletion(context.Background(), []entity.ChatMessage{{Role: entity.RoleUser, Content: "hi"}})
	assert.Error(t, err)
}
