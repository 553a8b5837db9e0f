package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"skillbarter/internal/adapter/api/middleware"
	ws "skillbarter/internal/infrastructure/websocket"
	"skillbarter/internal/usecase"
	"skillbarter/pkg/errors"
	"skillbarter/pkg/logger"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	chatUseCase    *usecase.ChatUseCase
	cookieName     string
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

func NewWebSocketHandler(
	wsManager *ws.Manager,
	authMiddleware *middleware.AuthMiddleware,
	chatUseCase *usecase.ChatUseCase,
	cookieName string,
) *WebSocketHandler {
	h := &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		chatUseCase:    chatUseCase,
		cookieName:     cookieName,
	}

	wsManager.OnMessage = h.dispatch

	return h
}

// HandleWebSocket authenticates via the session cookie, upgrades the
// connection, and hands it to the manager's pumps.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	cookie, err := c.Cookie(h.cookieName)
	if err != nil || cookie.Value == "" {
		return errors.Unauthorized("Authentication required", err)
	}

	userID, err := h.authMiddleware.GetUserIDFromToken(c.Request().Context(), cookie.Value)
	if err != nil {
		return errors.Unauthorized("Invalid or expired session", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}

// dispatch routes a single client frame. Anything that fails produces
// an error event back on the same connection and never tears it down.
func (h *WebSocketHandler) dispatch(client *ws.Client, raw []byte) {
	var event ws.ClientEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		h.sendError(client, "Invalid event payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch event.Type {
	case ws.EventPing:
		h.send(client, ws.ServerEvent{Type: ws.EventPong})

	case ws.EventJoinChat:
		if err := h.chatUseCase.VerifyParticipant(ctx, client.UserID, event.ChatID); err != nil {
			h.sendError(client, "Cannot join chat")
			return
		}
		h.wsManager.JoinRoom(event.ChatID, client.UserID)
		client.ActiveChat = event.ChatID

	case ws.EventLeaveChat:
		h.wsManager.LeaveRoom(event.ChatID, client.UserID)
		if client.ActiveChat == event.ChatID {
			client.ActiveChat = ""
		}

	case ws.EventSendMessage:
		_, err := h.chatUseCase.SendMessage(ctx, client.UserID, usecase.SendMessageInput{
			ChatID:          event.ChatID,
			Text:            event.Text,
			IsTradeProposal: event.IsTradeProposal,
		})
		if err != nil {
			h.sendError(client, errorMessage(err))
		}

	case ws.EventRespondToTrade:
		_, err := h.chatUseCase.ResolveProposal(ctx, client.UserID, event.ChatID, event.MessageID, event.Action)
		if err != nil {
			h.sendError(client, errorMessage(err))
		}

	default:
		h.sendError(client, "Unknown event type: "+event.Type)
	}
}

func (h *WebSocketHandler) send(client *ws.Client, event ws.ServerEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal event for %s: %v", client.UserID, err)
		return
	}

	h.wsManager.SendToUser(client.UserID, payload)
}

func (h *WebSocketHandler) sendError(client *ws.Client, message string) {
	h.send(client, ws.ServerEvent{
		Type: ws.EventError,
		Data: map[string]string{"message": message},
	})
}

func errorMessage(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong"
}
