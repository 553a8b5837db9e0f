package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"skillbarter/internal/usecase"
	"skillbarter/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
	cookieName  string
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase, cookieName string) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		cookieName:  cookieName,
	}
}

type registerRequest struct {
	Name          string   `json:"name" validate:"required,min=2"`
	Email         string   `json:"email" validate:"required,email"`
	Password      string   `json:"password" validate:"required,min=8"`
	ProfileImg    string   `json:"profile_img"`
	Address       string   `json:"address"`
	About         string   `json:"about"`
	SkillsOffered []string `json:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		ProfileImg:    req.ProfileImg,
		Address:       req.Address,
		About:         req.About,
		SkillsOffered: req.SkillsOffered,
		SkillsWanted:  req.SkillsWanted,
	})
	if err != nil {
		return response.Error(c, err)
	}

	h.setSessionCookie(c, result.Token, result.ExpiresAt)

	return response.Created(c, result.User)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	h.setSessionCookie(c, result.Token, result.ExpiresAt)

	return response.Success(c, result.User)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	// Clearing the cookie is the whole logout; tokens are stateless.
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return response.Success(c, map[string]string{
		"message": "Successfully logged out",
	})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
