package usecase

import (
	"context"
	"encoding/json"

	"skillbarter/internal/domain/entity"
	"skillbarter/internal/domain/repository"
	"skillbarter/internal/infrastructure/ratelimit"
	ws "skillbarter/internal/infrastructure/websocket"
	"skillbarter/pkg/errors"
	"skillbarter/pkg/logger"
)

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	tradeRepo   repository.TradeRepository
	wsManager   *ws.Manager
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	tradeRepo repository.TradeRepository,
	wsManager *ws.Manager,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		tradeRepo:   tradeRepo,
		wsManager:   wsManager,
		rateLimiter: rateLimiter,
	}
}

type CreateChatInput struct {
	Participants []string
	TradeID      string
}

type ChatResponse struct {
	*entity.Chat
	ParticipantInfo []entity.Profile `json:"participant_info,omitempty"`
	Trade           *entity.Trade    `json:"trade,omitempty"`
}

type MessageResponse struct {
	*entity.Message
	Sender *entity.Profile `json:"sender,omitempty"`
}

type SendMessageInput struct {
	ChatID          string
	Text            string
	IsTradeProposal bool
}

// CreateChat materializes the message thread for a trade. Exactly two
// distinct participants are required; a chat that already exists for
// the trade is reused rather than duplicated.
func (uc *ChatUseCase) CreateChat(ctx context.Context, creatorID string, input CreateChatInput) (*ChatResponse, error) {
	allowed, _ := uc.rateLimiter.Allow(creatorID, "create_chat")
	if !allowed {
		return nil, errors.TooManyRequests("Too many chats created, please wait")
	}

	return uc.createChat(ctx, creatorID, input)
}

// CreateTradeChat opens the chat for a freshly accepted trade. The
// creation is server-driven, so it is not charged against the
// accepter's chat rate budget.
func (uc *ChatUseCase) CreateTradeChat(ctx context.Context, creatorID string, input CreateChatInput) (*ChatResponse, error) {
	return uc.createChat(ctx, creatorID, input)
}

func (uc *ChatUseCase) createChat(ctx context.Context, creatorID string, input CreateChatInput) (*ChatResponse, error) {
	if len(input.Participants) != 2 || input.Participants[0] == input.Participants[1] {
		return nil, errors.BadRequest("A chat requires exactly two distinct participants", nil)
	}

	isParticipant := false
	for _, p := range input.Participants {
		if p == creatorID {
			isParticipant = true
		}
		if _, err := uc.userRepo.GetByID(ctx, p); err != nil {
			return nil, errors.NotFound("Participant", err)
		}
	}
	if !isParticipant {
		return nil, errors.Forbidden("You can only create chats you participate in", nil)
	}

	var trade *entity.Trade
	if input.TradeID != "" {
		var err error
		trade, err = uc.tradeRepo.GetByID(ctx, input.TradeID)
		if err != nil {
			return nil, err
		}

		existing, err := uc.chatRepo.GetByTradeID(ctx, input.TradeID)
		if err == nil && existing != nil {
			return &ChatResponse{Chat: existing, Trade: trade}, nil
		}
		if err != nil && !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
	}

	chat := &entity.Chat{
		Participants: input.Participants,
		TradeID:      input.TradeID,
	}

	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	return &ChatResponse{Chat: chat, Trade: trade}, nil
}

// ListForUser returns the user's chats, most recently active first,
// with participant display info and the originating trade resolved.
func (uc *ChatUseCase) ListForUser(ctx context.Context, userID string) ([]*ChatResponse, error) {
	chats, err := uc.chatRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*ChatResponse, 0, len(chats))
	for _, chat := range chats {
		resp := &ChatResponse{Chat: chat}

		for _, participantID := range chat.Participants {
			user, err := uc.userRepo.GetByID(ctx, participantID)
			if err != nil {
				continue
			}
			resp.ParticipantInfo = append(resp.ParticipantInfo, user.Profile())
		}

		if chat.TradeID != "" {
			if trade, err := uc.tradeRepo.GetByID(ctx, chat.TradeID); err == nil {
				resp.Trade = trade
			}
		}

		responses = append(responses, resp)
	}

	return responses, nil
}

// Messages returns the chat's message sequence in storage order.
func (uc *ChatUseCase) Messages(ctx context.Context, userID, chatID string) ([]*MessageResponse, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	messages, err := uc.chatRepo.ListMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}

	// Sender profiles are resolved once per sender, not per message.
	profiles := make(map[string]*entity.Profile)
	responses := make([]*MessageResponse, 0, len(messages))
	for _, message := range messages {
		sender, cached := profiles[message.SenderID]
		if !cached {
			if user, err := uc.userRepo.GetByID(ctx, message.SenderID); err == nil {
				p := user.Profile()
				sender = &p
			}
			profiles[message.SenderID] = sender
		}

		responses = append(responses, &MessageResponse{
			Message: message,
			Sender:  sender,
		})
	}

	return responses, nil
}

// VerifyParticipant checks that a user belongs to a chat.
func (uc *ChatUseCase) VerifyParticipant(ctx context.Context, userID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	if !chat.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant in this chat", nil)
	}

	return nil
}

// SendMessage appends a message and broadcasts it to the chat room. The
// broadcast is fire-and-forget; durability comes from the storage write
// that precedes it.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*MessageResponse, error) {
	allowed, _ := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		return nil, errors.TooManyRequests("You are sending messages too quickly")
	}

	chat, err := uc.chatRepo.GetByID(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	sender, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, errors.NotFound("Sender", err)
	}

	message := &entity.Message{
		ChatID:          input.ChatID,
		SenderID:        senderID,
		Text:            input.Text,
		IsTradeProposal: input.IsTradeProposal,
	}
	if input.IsTradeProposal {
		message.TradeStatus = entity.ProposalStatusPending
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	chat.LastMessage = input.Text
	chat.LastMessageAt = message.CreatedAt
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		logger.Warn("Failed to update chat %s with last message: %v", chat.ID, err)
	}

	senderProfile := sender.Profile()
	resp := &MessageResponse{
		Message: message,
		Sender:  &senderProfile,
	}

	uc.broadcast(input.ChatID, ws.ServerEvent{
		Type:   ws.EventNewMessage,
		ChatID: input.ChatID,
		Data:   resp,
	})

	return resp, nil
}

// ProposeCompletion posts the distinguished in-chat message asking the
// counterparty to finalize the trade.
func (uc *ChatUseCase) ProposeCompletion(ctx context.Context, senderID, chatID string) (*MessageResponse, error) {
	return uc.SendMessage(ctx, senderID, SendMessageInput{
		ChatID:          chatID,
		Text:            "Trade completion proposed",
		IsTradeProposal: true,
	})
}

// ResolveProposal accepts or rejects a pending completion proposal. On
// accept the trade itself is completed; the message sub-state is a
// projection of that outcome, not independent bookkeeping.
func (uc *ChatUseCase) ResolveProposal(ctx context.Context, responderID, chatID, messageID, action string) (*MessageResponse, error) {
	if action != "accept" && action != "reject" {
		return nil, errors.BadRequest("Action must be accept or reject", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(responderID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	message, err := uc.chatRepo.GetMessageByID(ctx, chatID, messageID)
	if err != nil {
		return nil, err
	}

	if !message.IsTradeProposal {
		return nil, errors.BadRequest("Message is not a trade proposal", nil)
	}
	if message.SenderID == responderID {
		return nil, errors.Forbidden("You cannot resolve your own proposal", nil)
	}
	if message.TradeStatus != entity.ProposalStatusPending {
		return nil, errors.Conflict("Proposal has already been resolved")
	}

	toStatus := entity.ProposalStatusRejected
	if action == "accept" {
		toStatus = entity.ProposalStatusCompleted
	}

	if action == "accept" && chat.TradeID != "" {
		if _, err := uc.tradeRepo.UpdateStatus(ctx, chat.TradeID, entity.TradeStatusAccepted, entity.TradeStatusCompleted); err != nil {
			// An earlier accept may have completed the trade and then
			// failed before updating the message. The trade being
			// completed is the outcome we want, so carry on and let the
			// message record catch up.
			trade, getErr := uc.tradeRepo.GetByID(ctx, chat.TradeID)
			if getErr != nil || trade.Status != entity.TradeStatusCompleted {
				return nil, err
			}
		}
	}

	updated, err := uc.chatRepo.UpdateMessageTradeStatus(ctx, chatID, messageID, entity.ProposalStatusPending, toStatus)
	if err != nil {
		return nil, err
	}

	uc.broadcast(chatID, ws.ServerEvent{
		Type:      ws.EventTradeStatusUpdated,
		ChatID:    chatID,
		MessageID: messageID,
		Status:    updated.TradeStatus,
	})

	return &MessageResponse{Message: updated}, nil
}

// SendSystemMessage posts a trade notification into a chat.
func (uc *ChatUseCase) SendSystemMessage(ctx context.Context, chatID, text string) (*entity.Message, error) {
	message := &entity.Message{
		ChatID:        chatID,
		SenderID:      "system",
		Text:          text,
		SystemMessage: true,
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	uc.broadcast(chatID, ws.ServerEvent{
		Type:   ws.EventNewMessage,
		ChatID: chatID,
		Data:   &MessageResponse{Message: message},
	})

	return message, nil
}

func (uc *ChatUseCase) broadcast(chatID string, event ws.ServerEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal broadcast for chat %s: %v", chatID, err)
		return
	}

	uc.wsManager.SendToChatRoom(chatID, payload, "")
}
