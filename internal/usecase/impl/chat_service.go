package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"yatra/internal/catalog"
	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"
	"yatra/internal/usecase"
)

const assistantPrompt = "You are Yatra, a travel assistant for trips across India. " +
	"Answer concisely and ground recommendations in real destinations. " +
	"When asked about bookings, explain that flights, hotels and cabs can be " +
	"booked through the app."

type chatService struct {
	gateway service.ChatGateway
	logger  *slog.Logger
}

// NewChatService creates the travel-assistant chat use case.
func NewChatService(gateway service.ChatGateway, logger *slog.Logger) usecase.ChatUsecase {
	return &chatService{
		gateway: gateway,
		logger:  logger,
	}
}

// StreamReply streams an assistant reply, falling back to a catalog-grounded
// canned answer when the gateway is unreachable.
func (s *chatService) StreamReply(ctx context.Context, messages []entity.ChatMessage) (<-chan entity.ChatChunk, error) {
	chunks, err := s.gateway.StreamCompletion(ctx, withSystemPrompt(messages))
	if err == nil {
		return chunks, nil
	}

	s.logger.Warn("chat gateway unavailable, serving catalog reply", slog.Any("error", err))

	fallback := make(chan entity.ChatChunk, 2)
	fallback <- entity.ChatChunk{Content: s.catalogReply(messages)}
	fallback <- entity.ChatChunk{Done: true}
	close(fallback)

	return fallback, nil
}

// Reply returns a complete assistant reply in one shot.
func (s *chatService) Reply(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	reply, err := s.gateway.Complete(ctx, withSystemPrompt(messages))
	if err == nil {
		return reply, nil
	}

	s.logger.Warn("chat gateway unavailable, serving catalog reply", slog.Any("error", err))

	return s.catalogReply(messages), nil
}

// withSystemPrompt prepends the assistant persona unless the conversation
// already opens with a system message. Destinations the question mentions
// are injected so the model grounds its answer in places the app serves.
func withSystemPrompt(messages []entity.ChatMessage) []entity.ChatMessage {
	if len(messages) > 0 && messages[0].Role == entity.RoleSystem {
		return messages
	}

	prompt := assistantPrompt
	if grounding := catalogContext(lastUserMessage(messages)); grounding != "" {
		prompt += " " + grounding
	}

	out := make([]entity.ChatMessage, 0, len(messages)+1)
	out = append(out, entity.ChatMessage{Role: entity.RoleSystem, Content: prompt})
	out = append(out, messages...)

	return out
}

// catalogContext describes the catalogued destinations mentioned in the
// question, up to three.
func catalogContext(question string) string {
	if question == "" {
		return ""
	}
	lower := strings.ToLower(question)

	var parts []string
	for _, p := range catalog.All() {
		if !strings.Contains(lower, strings.ToLower(p.Name)) &&
			!strings.Contains(lower, strings.ToLower(p.City)) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s in %s: %s", p.Name, p.City, p.Description))
		if len(parts) == 3 {
			break
		}
	}
	if len(parts) == 0 {
		return ""
	}

	return "Relevant destinations: " + strings.Join(parts, " ")
}

// catalogReply answers from the built-in catalog when no gateway is
// available. It matches the last user message against catalogued cities and
// destinations.
func (s *chatService) catalogReply(messages []entity.ChatMessage) string {
	question := lastUserMessage(messages)
	if question == "" {
		return "Namaste! Ask me about destinations, and I can help you plan flights, hotels and cabs across India."
	}

	lower := strings.ToLower(question)

	cities := map[string]bool{}
	for _, place := range catalog.All() {
		cities[place.City] = true
	}
	for city := range cities {
		if !strings.Contains(lower, strings.ToLower(city)) {
			continue
		}
		places := catalog.ByCity(city)
		names := make([]string, 0, len(places))
		for _, p := range places {
			names = append(names, p.Name)
		}
		return fmt.Sprintf("In %s you could visit %s. I can also help with flights, hotels and cabs there.",
			city, strings.Join(names, ", "))
	}

	for _, place := range catalog.All() {
		if strings.Contains(lower, strings.ToLower(place.Name)) {
			return fmt.Sprintf("%s: %s It is in %s.", place.Name, place.Description, place.City)
		}
	}

	return "I can help with destinations like Delhi, Agra, Jaipur, Mumbai and Varanasi, " +
		"and with booking flights, hotels and cabs. Which city are you thinking of?"
}

func lastUserMessage(messages []entity.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == entity.RoleUser {
			return strings.TrimSpace(messages[i].Content)
		}
	}

	return ""
}
