package handler

import (
	"github.com/labstack/echo/v4"

	"skillbarter/internal/usecase"
	"skillbarter/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Address       string   `json:"address"`
	About         string   `json:"about"`
	ProfileImg    string   `json:"profile_img"`
	SkillsOffered []string `json:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted"`
}

// GetProfile returns the authenticated user's profile with their
// received reviews and chats attached.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := c.Get("uid").(string)

	profile, err := h.userUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		Name:          req.Name,
		Email:         req.Email,
		Address:       req.Address,
		About:         req.About,
		ProfileImg:    req.ProfileImg,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
