package entity

import "time"

// Review is the single rating a participant may leave once the
// referenced trade has completed.
type Review struct {
	ID             string    `json:"id" firestore:"id"`
	ReviewerID     string    `json:"reviewer_id" firestore:"reviewerId"`
	ReviewedUserID string    `json:"reviewed_user_id" firestore:"reviewedUserId"`
	Rating         int       `json:"rating" firestore:"rating"`
	Feedback       string    `json:"feedback" firestore:"feedback"`
	TradeID        string    `json:"trade_id" firestore:"tradeId"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}
