// Package llm implements the assistant chat gateway over an
// OpenAI-compatible chat completions API.
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"yatra/config"
	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"
	"yatra/internal/errors"
)

const (
	defaultModel   = "gpt-4o-mini"
	streamDoneMark = "[DONE]"
)

type gateway struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGateway creates a chat gateway against an OpenAI-compatible endpoint.
func NewGateway(cfg *config.ChatGatewayConfig) service.ChatGateway {
	g := &gateway{
		model:      defaultModel,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	if cfg != nil {
		g.baseURL = strings.TrimRight(cfg.BaseURL, "/")
		g.apiKey = cfg.APIKey
		if cfg.Model != "" {
			g.model = cfg.Model
		}
	}

	return g
}

type chatRequest struct {
	Model    string       `json:"model"`
	Messages []apiMessage `json:"messages"`
	Stream   bool         `json:"stream"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message apiMessage `json:"message"`
	} `json:"choices"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// StreamCompletion opens a streaming completion and forwards delta
// fragments on the returned channel. The channel is closed after the
// terminal chunk.
func (g *gateway) StreamCompletion(ctx context.Context, messages []entity.ChatMessage) (<-chan entity.ChatChunk, error) {
	resp, err := g.send(ctx, messages, true)
	if err != nil {
		return nil, err
	}

	chunks := make(chan entity.ChatChunk, 16)
	go g.consumeStream(ctx, resp.Body, chunks)

	return chunks, nil
}

// Complete returns the full reply in one shot.
func (g *gateway) Complete(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	resp, err := g.send(ctx, messages, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.Wrap(err, "failed to decode completion response")
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

func (g *gateway) send(ctx context.Context, messages []entity.ChatMessage, stream bool) (*http.Response, error) {
	if g.baseURL == "" {
		return nil, errors.New("chat gateway is not configured")
	}

	apiMessages := make([]apiMessage, 0, len(messages))
	for _, m := range messages {
		apiMessages = append(apiMessages, apiMessage{Role: string(m.Role), Content: m.Content})
	}

	payload, err := json.Marshal(chatRequest{
		Model:    g.model,
		Messages: apiMessages,
		Stream:   stream,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "chat request failed")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, errors.Errorf("chat gateway error (%d): %s", resp.StatusCode, string(body))
	}

	return resp, nil
}

// consumeStream reads SSE events off the response body and forwards the
// content deltas. It always emits a terminal chunk and closes the channel.
func (g *gateway) consumeStream(ctx context.Context, body io.ReadCloser, chunks chan<- entity.ChatChunk) {
	defer close(chunks)
	defer body.Close()

	emit := func(chunk entity.ChatChunk) bool {
		select {
		case chunks <- chunk:
			return true
		case <-ctx.Done():
			return false
		}
	}

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == streamDoneMark {
			emit(entity.ChatChunk{Done: true})
			return
		}

		var parsed streamChunk
		if err := json.Unmarshal([]byte(data), &parsed); err != nil {
			emit(entity.ChatChunk{Err: "malformed stream chunk", Done: true})
			return
		}
		if len(parsed.Choices) == 0 {
			continue
		}
		if content := parsed.Choices[0].Delta.Content; content != "" {
			if !emit(entity.ChatChunk{Content: content}) {
				return
			}
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		emit(entity.ChatChunk{Err: err.Error(), Done: true})
		return
	}

	emit(entity.ChatChunk{Done: true})
}
