package service

import (
	"context"

	"yatra/internal/domain/entity"
)

// ChatGateway streams completions from an LLM provider.
type ChatGateway interface {
	// StreamCompletion sends the conversation and returns a channel of
	// reply fragments. The channel is closed after the terminal chunk
	// (Done or Err set). Cancelling ctx aborts the stream.
	StreamCompletion(ctx context.Context, messages []entity.ChatMessage) (<-chan entity.ChatChunk, error)

	// Complete sends the conversation and returns the whole reply at once.
	Complete(ctx context.Context, messages []entity.ChatMessage) (string, error)
}
