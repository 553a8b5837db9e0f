package router

import (
	"skillbarter/internal/adapter/api/handler"
	"skillbarter/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	reviews := e.Group("/reviews")
	reviews.Use(authMiddleware.Authenticate)

	reviews.POST("/add-review", reviewHandler.AddReview)
	reviews.GET("/:userId", reviewHandler.ListForUser)
}
