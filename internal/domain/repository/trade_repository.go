package repository

import (
	"context"

	"skillbarter/internal/domain/entity"
)

type TradeRepository interface {
	Create(ctx context.Context, trade *entity.Trade) error
	GetByID(ctx context.Context, id string) (*entity.Trade, error)
	// UpdateStatus transitions the trade from fromStatus to toStatus as an
	// atomic check-and-set: it fails with a conflict if the stored status
	// is no longer fromStatus, so concurrent responders cannot both win.
	UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (*entity.Trade, error)
	SetChatID(ctx context.Context, id, chatID string) error
	// ListByParticipant returns trades where the user is on either side,
	// optionally filtered by status.
	ListByParticipant(ctx context.Context, userID, status string) ([]*entity.Trade, error)
	// ListIncoming returns trades addressed to the user with the given status.
	ListIncoming(ctx context.Context, toUserID, status string) ([]*entity.Trade, error)
}
