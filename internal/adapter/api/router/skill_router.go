package router

import (
	"skillbarter/internal/adapter/api/handler"
	"skillbarter/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupSkillRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	skillHandler := handler.GetSkillHandler()

	skills := e.Group("/skills")
	skills.Use(authMiddleware.Authenticate)

	skills.POST("", skillHandler.CreateSkill)
	skills.GET("", skillHandler.ListSkills)
	skills.GET("/user/:id", skillHandler.ListUserSkills)
	skills.GET("/:id", skillHandler.GetSkill)
	skills.DELETE("/:id", skillHandler.DeleteSkill)
}
