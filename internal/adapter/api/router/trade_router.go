package router

import (
	"skillbarter/internal/adapter/api/handler"
	"skillbarter/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupTradeRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	tradeHandler := handler.GetTradeHandler()

	trades := e.Group("/trades")
	trades.Use(authMiddleware.Authenticate)

	trades.POST("/send-request", tradeHandler.SendRequest)
	trades.PUT("/respond/:id", tradeHandler.Respond)
	trades.PUT("/complete/:id", tradeHandler.Complete)
	trades.GET("/my-trades", tradeHandler.MyTrades)
	trades.GET("/incoming", tradeHandler.Incoming)
}
