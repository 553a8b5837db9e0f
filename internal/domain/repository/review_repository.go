package repository

import (
	"context"

	"skillbarter/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByTradeAndReviewer(ctx context.Context, tradeID, reviewerID string) (*entity.Review, error)
	// ListByReviewedUser returns reviews in insertion order.
	ListByReviewedUser(ctx context.Context, userID string) ([]*entity.Review, error)
}
