package entity

import "time"

// Proposal sub-states carried on trade-proposal messages. Distinct from
// the Trade status enum: a proposal message is only ever pending,
// completed or rejected, and is kept in sync with the trade by the chat
// use case when a proposal is resolved.
const (
	ProposalStatusPending   = "pending"
	ProposalStatusCompleted = "completed"
	ProposalStatusRejected  = "rejected"
)

type Message struct {
	ID              string    `json:"id" firestore:"id"`
	ChatID          string    `json:"chat_id" firestore:"chatId"`
	SenderID        string    `json:"sender_id" firestore:"senderId"`
	Text            string    `json:"text" firestore:"text"`
	IsTradeProposal bool      `json:"is_trade_proposal" firestore:"isTradeProposal"`
	TradeStatus     string    `json:"trade_status,omitempty" firestore:"tradeStatus,omitempty"`
	SystemMessage   bool      `json:"system_message" firestore:"systemMessage"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
}
