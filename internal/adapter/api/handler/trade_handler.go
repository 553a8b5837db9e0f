package handler

import (
	"github.com/labstack/echo/v4"

	"skillbarter/internal/usecase"
	"skillbarter/pkg/response"
)

type TradeHandler struct {
	tradeUseCase *usecase.TradeUseCase
}

func NewTradeHandler(tradeUseCase *usecase.TradeUseCase) *TradeHandler {
	return &TradeHandler{
		tradeUseCase: tradeUseCase,
	}
}

type sendRequestRequest struct {
	ToUserID       string `json:"to_user_id" validate:"required"`
	SkillOfferedID string `json:"skill_offered_id" validate:"required"`
	SkillWantedID  string `json:"skill_wanted_id" validate:"required"`
}

type respondRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

func (h *TradeHandler) SendRequest(c echo.Context) error {
	var req sendRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	trade, err := h.tradeUseCase.SendRequest(c.Request().Context(), userID, usecase.SendRequestInput{
		ToUserID:       req.ToUserID,
		SkillOfferedID: req.SkillOfferedID,
		SkillWantedID:  req.SkillWantedID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, trade)
}

func (h *TradeHandler) Respond(c echo.Context) error {
	var req respondRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	trade, err := h.tradeUseCase.Respond(c.Request().Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, trade)
}

func (h *TradeHandler) Complete(c echo.Context) error {
	userID := c.Get("uid").(string)

	trade, err := h.tradeUseCase.Complete(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, trade)
}

func (h *TradeHandler) MyTrades(c echo.Context) error {
	userID := c.Get("uid").(string)

	trades, err := h.tradeUseCase.MyTrades(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, trades)
}

func (h *TradeHandler) Incoming(c echo.Context) error {
	userID := c.Get("uid").(string)

	trades, err := h.tradeUseCase.Incoming(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, trades)
}
