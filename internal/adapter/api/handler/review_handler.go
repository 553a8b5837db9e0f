package handler

import (
	"github.com/labstack/echo/v4"

	"skillbarter/internal/usecase"
	"skillbarter/pkg/response"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type addReviewRequest struct {
	ReviewedUser string `json:"reviewedUser" validate:"required"`
	TradeID      string `json:"tradeId" validate:"required"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback     string `json:"feedback" validate:"required"`
}

func (h *ReviewHandler) AddReview(c echo.Context) error {
	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	review, err := h.reviewUseCase.AddReview(c.Request().Context(), userID, usecase.AddReviewInput{
		ReviewedUserID: req.ReviewedUser,
		TradeID:        req.TradeID,
		Rating:         req.Rating,
		Feedback:       req.Feedback,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) ListForUser(c echo.Context) error {
	reviews, err := h.reviewUseCase.ListForUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reviews)
}
