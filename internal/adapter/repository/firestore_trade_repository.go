package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"skillbarter/internal/domain/entity"
	"skillbarter/internal/domain/repository"
	"skillbarter/pkg/errors"

	"github.com/google/uuid"
)

type firestoreTradeRepository struct {
	client *firestore.Client
}

func NewFirestoreTradeRepository(client *firestore.Client) repository.TradeRepository {
	return &firestoreTradeRepository{
		client: client,
	}
}

func (r *firestoreTradeRepository) Create(ctx context.Context, trade *entity.Trade) error {
	if trade.ID == "" {
		trade.ID = uuid.New().String()
	}

	now := time.Now()
	trade.CreatedAt = now
	trade.UpdatedAt = now

	_, err := r.client.Collection("trades").Doc(trade.ID).Set(ctx, trade)
	if err != nil {
		return errors.Internal("Failed to create trade", err)
	}

	return nil
}

func (r *firestoreTradeRepository) GetByID(ctx context.Context, id string) (*entity.Trade, error) {
	doc, err := r.client.Collection("trades").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Trade", err)
		}
		return nil, errors.Internal("Failed to get trade", err)
	}

	var trade entity.Trade
	if err := doc.DataTo(&trade); err != nil {
		return nil, errors.Internal("Failed to parse trade data", err)
	}

	return &trade, nil
}

// UpdateStatus performs the transition inside a Firestore transaction so
// the check on the current status and the write are atomic. Two
// concurrent responders on the same pending trade cannot both succeed.
func (r *firestoreTradeRepository) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (*entity.Trade, error) {
	var updated entity.Trade

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("trades").Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Trade", err)
			}
			return errors.Internal("Failed to get trade", err)
		}

		var trade entity.Trade
		if err := doc.DataTo(&trade); err != nil {
			return errors.Internal("Failed to parse trade data", err)
		}

		if trade.Status != fromStatus {
			return errors.Conflict("Trade is not " + fromStatus)
		}

		trade.Status = toStatus
		trade.UpdatedAt = time.Now()
		updated = trade

		return tx.Set(docRef, &trade)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *firestoreTradeRepository) SetChatID(ctx context.Context, id, chatID string) error {
	_, err := r.client.Collection("trades").Doc(id).Update(ctx, []firestore.Update{
		{Path: "chatId", Value: chatID},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to set trade chat", err)
	}

	return nil
}

func (r *firestoreTradeRepository) ListByParticipant(ctx context.Context, userID, tradeStatus string) ([]*entity.Trade, error) {
	// Firestore has no OR query across fields, so both directions are
	// fetched separately and merged.
	sent, err := r.collectTrades(ctx, r.sideQuery("fromUserId", userID, tradeStatus))
	if err != nil {
		return nil, err
	}

	received, err := r.collectTrades(ctx, r.sideQuery("toUserId", userID, tradeStatus))
	if err != nil {
		return nil, err
	}

	return append(sent, received...), nil
}

func (r *firestoreTradeRepository) ListIncoming(ctx context.Context, toUserID, tradeStatus string) ([]*entity.Trade, error) {
	return r.collectTrades(ctx, r.sideQuery("toUserId", toUserID, tradeStatus))
}

func (r *firestoreTradeRepository) sideQuery(field, userID, tradeStatus string) firestore.Query {
	query := r.client.Collection("trades").Where(field, "==", userID)
	if tradeStatus != "" {
		query = query.Where("status", "==", tradeStatus)
	}
	return query.OrderBy("createdAt", firestore.Desc)
}

func (r *firestoreTradeRepository) collectTrades(ctx context.Context, query firestore.Query) ([]*entity.Trade, error) {
	iter := query.Documents(ctx)
	var trades []*entity.Trade

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate trades", err)
		}

		var trade entity.Trade
		if err := doc.DataTo(&trade); err != nil {
			return nil, errors.Internal("Failed to parse trade data", err)
		}

		trades = append(trades, &trade)
	}

	return trades, nil
}
