package usecase

import (
	"context"

	"yatra/internal/domain/entity"
)

// ChatUsecase defines the interface for the travel-assistant chat use cases
type ChatUsecase interface {
	// StreamReply streams an assistant reply for the conversation so far.
	// The returned channel closes after the final chunk.
	StreamReply(ctx context.Context, messages []entity.ChatMessage) (<-chan entity.ChatChunk, error)

	// Reply returns a complete assistant reply in one shot.
	Reply(ctx context.Context, messages []entity.ChatMessage) (string, error)
}
