package entity

import "time"

const (
	TradeStatusPending   = "pending"
	TradeStatusAccepted  = "accepted"
	TradeStatusRejected  = "rejected"
	TradeStatusCompleted = "completed"
)

// Trade is a barter proposal between two users. Status moves along
// pending -> accepted|rejected and accepted -> completed; rejected and
// completed are terminal.
type Trade struct {
	ID             string    `json:"id" firestore:"id"`
	FromUserID     string    `json:"from_user_id" firestore:"fromUserId"`
	ToUserID       string    `json:"to_user_id" firestore:"toUserId"`
	SkillOfferedID string    `json:"skill_offered_id" firestore:"skillOfferedId"`
	SkillWantedID  string    `json:"skill_wanted_id" firestore:"skillWantedId"`
	Status         string    `json:"status" firestore:"status"`
	ChatID         string    `json:"chat_id,omitempty" firestore:"chatId,omitempty"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (t *Trade) IsParticipant(userID string) bool {
	return t.FromUserID == userID || t.ToUserID == userID
}

// Counterparty returns the other side of the trade relative to userID.
func (t *Trade) Counterparty(userID string) string {
	if t.FromUserID == userID {
		return t.ToUserID
	}
	return t.FromUserID
}
