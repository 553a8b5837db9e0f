package handler

import (
	"github.com/labstack/echo/v4"

	"skillbarter/internal/usecase"
	"skillbarter/pkg/response"
	"skillbarter/pkg/utils"
)

type SkillHandler struct {
	skillUseCase *usecase.SkillUseCase
}

func NewSkillHandler(skillUseCase *usecase.SkillUseCase) *SkillHandler {
	return &SkillHandler{
		skillUseCase: skillUseCase,
	}
}

type createSkillRequest struct {
	Title        string `json:"title" validate:"required,min=3"`
	Category     string `json:"category" validate:"required"`
	Description  string `json:"description" validate:"required"`
	SkillOffered string `json:"skill_offered" validate:"required"`
	SkillWanted  string `json:"skill_wanted" validate:"required"`
}

func (h *SkillHandler) CreateSkill(c echo.Context) error {
	var req createSkillRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	skill, err := h.skillUseCase.CreateSkill(c.Request().Context(), userID, usecase.CreateSkillInput{
		Title:        req.Title,
		Category:     req.Category,
		Description:  req.Description,
		SkillOffered: req.SkillOffered,
		SkillWanted:  req.SkillWanted,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, skill)
}

// ListSkills returns the catalog, optionally filtered by category via
// query parameter. "all" and an absent parameter mean no filter.
func (h *SkillHandler) ListSkills(c echo.Context) error {
	category := c.QueryParam("category")

	skills, err := h.skillUseCase.ListByCategory(c.Request().Context(), category)
	if err != nil {
		return response.Error(c, err)
	}

	start, end := utils.GetPaginationParams(c).Slice(len(skills))
	return response.Success(c, skills[start:end])
}

func (h *SkillHandler) GetSkill(c echo.Context) error {
	skill, err := h.skillUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, skill)
}

func (h *SkillHandler) ListUserSkills(c echo.Context) error {
	skills, err := h.skillUseCase.ListByOwner(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, skills)
}

func (h *SkillHandler) DeleteSkill(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.skillUseCase.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Skill deleted",
	})
}
