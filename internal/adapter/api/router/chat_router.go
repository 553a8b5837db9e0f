package router

import (
	"skillbarter/internal/adapter/api/handler"
	"skillbarter/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.POST("/create-chat", chatHandler.CreateChat)
	chats.GET("", chatHandler.ListChats)
	chats.GET("/:id/messages", chatHandler.ListMessages)
	chats.POST("/:id/send-message", chatHandler.SendMessage)
}
