package repository

import (
	"context"

	"skillbarter/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	GetByTradeID(ctx context.Context, tradeID string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error)
	Update(ctx context.Context, chat *entity.Chat) error

	// Message methods. Each message is its own document in a per-chat
	// subcollection, so concurrent appends never clobber each other.
	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessageByID(ctx context.Context, chatID, messageID string) (*entity.Message, error)
	ListMessages(ctx context.Context, chatID string) ([]*entity.Message, error)
	// UpdateMessageTradeStatus resolves a proposal message from fromStatus
	// to toStatus atomically; conflicts if the stored sub-state changed.
	UpdateMessageTradeStatus(ctx context.Context, chatID, messageID, fromStatus, toStatus string) (*entity.Message, error)
}
