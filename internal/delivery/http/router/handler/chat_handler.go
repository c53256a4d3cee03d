package handler

import (
	"log/slog"
	"net/http"

	"yatra/internal/delivery/http/response"
	"yatra/internal/domain/entity"
	"yatra/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ChatHandler exposes the travel assistant over HTTP and WebSocket.
type ChatHandler struct {
	uc       usecase.ChatUsecase
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewChatHandler is the constructor for ChatHandler, injected by Fx.
func NewChatHandler(uc usecase.ChatUsecase, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		uc:     uc,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

type chatRequest struct {
	Messages []entity.ChatMessage `json:"messages"`
}

// Reply returns a complete assistant reply in one shot.
func (h *ChatHandler) Reply(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid chat input")
	}

	reply, err := h.uc.Reply(c.Request().Context(), req.Messages)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"reply": reply}, "Reply generated successfully")
}

// Stream upgrades to WebSocket. Each received message is a chat request;
// the reply is streamed back as JSON chunks.
func (h *ChatHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Wrap(err, "failed to upgrade to websocket")
	}
	defer conn.Close()

	ctx := c.Request().Context()

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("chat websocket closed unexpectedly", slog.Any("error", err))
			}
			return nil
		}

		chunks, err := h.uc.StreamReply(ctx, req.Messages)
		if err != nil {
			if writeErr := conn.WriteJSON(entity.ChatChunk{Err: err.Error(), Done: true}); writeErr != nil {
				return nil
			}
			continue
		}

		for chunk := range chunks {
			if err := conn.WriteJSON(chunk); err != nil {
				// The client went away mid-stream; drain the channel so the
				// producer goroutine can finish.
				for range chunks {
				}
				return nil
			}
		}
	}
}
