package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"skillbarter/internal/domain/entity"
	"skillbarter/pkg/errors"
)

// In-memory repository fakes shared by the use case tests.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

type memSkillRepo struct {
	mu     sync.Mutex
	skills map[string]*entity.Skill
	order  []string
}

func newMemSkillRepo() *memSkillRepo {
	return &memSkillRepo{skills: make(map[string]*entity.Skill)}
}

func (r *memSkillRepo) Create(ctx context.Context, skill *entity.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if skill.ID == "" {
		skill.ID = uuid.New().String()
	}
	skill.CreatedAt = time.Now()
	skill.UpdatedAt = skill.CreatedAt
	r.skills[skill.ID] = skill
	r.order = append(r.order, skill.ID)
	return nil
}

func (r *memSkillRepo) GetByID(ctx context.Context, id string) (*entity.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	skill, ok := r.skills[id]
	if !ok {
		return nil, errors.NotFound("Skill", nil)
	}
	return skill, nil
}

func (r *memSkillRepo) ListByCategory(ctx context.Context, category string) ([]*entity.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Skill
	// Newest first.
	for i := len(r.order) - 1; i >= 0; i-- {
		skill, ok := r.skills[r.order[i]]
		if !ok {
			continue
		}
		if category == "" || skill.Category == category {
			out = append(out, skill)
		}
	}
	return out, nil
}

func (r *memSkillRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Skill
	for _, id := range r.order {
		skill, ok := r.skills[id]
		if ok && skill.OwnerID == ownerID {
			out = append(out, skill)
		}
	}
	return out, nil
}

func (r *memSkillRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.skills[id]; !ok {
		return errors.NotFound("Skill", nil)
	}
	delete(r.skills, id)
	return nil
}

type memTradeRepo struct {
	mu     sync.Mutex
	trades map[string]*entity.Trade
	order  []string
}

func newMemTradeRepo() *memTradeRepo {
	return &memTradeRepo{trades: make(map[string]*entity.Trade)}
}

func (r *memTradeRepo) Create(ctx context.Context, trade *entity.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if trade.ID == "" {
		trade.ID = uuid.New().String()
	}
	trade.CreatedAt = time.Now()
	trade.UpdatedAt = trade.CreatedAt
	r.trades[trade.ID] = trade
	r.order = append(r.order, trade.ID)
	return nil
}

func (r *memTradeRepo) GetByID(ctx context.Context, id string) (*entity.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trade, ok := r.trades[id]
	if !ok {
		return nil, errors.NotFound("Trade", nil)
	}
	copied := *trade
	return &copied, nil
}

func (r *memTradeRepo) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string) (*entity.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trade, ok := r.trades[id]
	if !ok {
		return nil, errors.NotFound("Trade", nil)
	}
	if trade.Status != fromStatus {
		return nil, errors.Conflict("Trade is not " + fromStatus)
	}
	trade.Status = toStatus
	trade.UpdatedAt = time.Now()
	copied := *trade
	return &copied, nil
}

func (r *memTradeRepo) SetChatID(ctx context.Context, id, chatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trade, ok := r.trades[id]
	if !ok {
		return errors.NotFound("Trade", nil)
	}
	trade.ChatID = chatID
	return nil
}

func (r *memTradeRepo) ListByParticipant(ctx context.Context, userID, status string) ([]*entity.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Trade
	for _, id := range r.order {
		trade := r.trades[id]
		if !trade.IsParticipant(userID) {
			continue
		}
		if status != "" && trade.Status != status {
			continue
		}
		out = append(out, trade)
	}
	return out, nil
}

func (r *memTradeRepo) ListIncoming(ctx context.Context, toUserID, status string) ([]*entity.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Trade
	for _, id := range r.order {
		trade := r.trades[id]
		if trade.ToUserID != toUserID {
			continue
		}
		if status != "" && trade.Status != status {
			continue
		}
		out = append(out, trade)
	}
	return out, nil
}

type memChatRepo struct {
	mu       sync.Mutex
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
	}
}

func (r *memChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	chat.CreatedAt = time.Now()
	chat.UpdatedAt = chat.CreatedAt
	r.chats[chat.ID] = chat
	return nil
}

func (r *memChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	return chat, nil
}

func (r *memChatRepo) GetByTradeID(ctx context.Context, tradeID string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, chat := range r.chats {
		if chat.TradeID == tradeID {
			return chat, nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *memChatRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Chat
	for _, chat := range r.chats {
		if chat.HasParticipant(userID) {
			out = append(out, chat)
		}
	}
	return out, nil
}

func (r *memChatRepo) Update(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.chats[chat.ID]; !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.UpdatedAt = time.Now()
	r.chats[chat.ID] = chat
	return nil
}

func (r *memChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	r.messages[message.ChatID] = append(r.messages[message.ChatID], message)
	return nil
}

func (r *memChatRepo) GetMessageByID(ctx context.Context, chatID, messageID string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, message := range r.messages[chatID] {
		if message.ID == messageID {
			return message, nil
		}
	}
	return nil, errors.NotFound("Message", nil)
}

func (r *memChatRepo) ListMessages(ctx context.Context, chatID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*entity.Message(nil), r.messages[chatID]...), nil
}

func (r *memChatRepo) UpdateMessageTradeStatus(ctx context.Context, chatID, messageID, fromStatus, toStatus string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, message := range r.messages[chatID] {
		if message.ID != messageID {
			continue
		}
		if !message.IsTradeProposal {
			return nil, errors.BadRequest("Message is not a trade proposal", nil)
		}
		if message.TradeStatus != fromStatus {
			return nil, errors.Conflict("Proposal is not " + fromStatus)
		}
		message.TradeStatus = toStatus
		copied := *message
		return &copied, nil
	}
	return nil, errors.NotFound("Message", nil)
}

type memReviewRepo struct {
	mu      sync.Mutex
	reviews []*entity.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{}
}

func (r *memReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *memReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, review := range r.reviews {
		if review.ID == id {
			return review, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *memReviewRepo) GetByTradeAndReviewer(ctx context.Context, tradeID, reviewerID string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, review := range r.reviews {
		if review.TradeID == tradeID && review.ReviewerID == reviewerID {
			return review, nil
		}
	}
	return nil, errors.NotFound("Review", nil)
}

func (r *memReviewRepo) ListByReviewedUser(ctx context.Context, userID string) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Review
	for _, review := range r.reviews {
		if review.ReviewedUserID == userID {
			out = append(out, review)
		}
	}
	return out, nil
}

// fakeMedia records uploads and destroys without any remote calls.
type fakeMedia struct {
	uploads   int
	destroyed []string
	failNext  bool
}

func (m *fakeMedia) Upload(ctx context.Context, dataURI string) (string, string, error) {
	if m.failNext {
		m.failNext = false
		return "", "", errors.Internal("upload failed", nil)
	}
	m.uploads++
	return "https://media.test/img.png", "public-id-" + uuid.New().String(), nil
}

func (m *fakeMedia) Destroy(ctx context.Context, publicID string) error {
	m.destroyed = append(m.destroyed, publicID)
	return nil
}
