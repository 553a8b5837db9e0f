package usecase

import (
	"context"

	"skillbarter/internal/domain/entity"
	"skillbarter/internal/domain/repository"
	"skillbarter/pkg/errors"
	"skillbarter/pkg/logger"
)

type TradeUseCase struct {
	tradeRepo   repository.TradeRepository
	skillRepo   repository.SkillRepository
	userRepo    repository.UserRepository
	chatUseCase *ChatUseCase
}

func NewTradeUseCase(
	tradeRepo repository.TradeRepository,
	skillRepo repository.SkillRepository,
	userRepo repository.UserRepository,
	chatUseCase *ChatUseCase,
) *TradeUseCase {
	return &TradeUseCase{
		tradeRepo:   tradeRepo,
		skillRepo:   skillRepo,
		userRepo:    userRepo,
		chatUseCase: chatUseCase,
	}
}

type SendRequestInput struct {
	ToUserID       string
	SkillOfferedID string
	SkillWantedID  string
}

type TradeResponse struct {
	*entity.Trade
	FromUser     *entity.Profile `json:"from_user,omitempty"`
	ToUser       *entity.Profile `json:"to_user,omitempty"`
	SkillOffered *entity.Skill   `json:"skill_offered,omitempty"`
	SkillWanted  *entity.Skill   `json:"skill_wanted,omitempty"`
}

// SendRequest creates a pending trade. The wanted skill must belong to
// the recipient and the offered skill must not, so a trade always spans
// two different owners.
func (uc *TradeUseCase) SendRequest(ctx context.Context, fromUserID string, input SendRequestInput) (*TradeResponse, error) {
	if input.ToUserID == fromUserID {
		return nil, errors.BadRequest("You cannot send a trade request to yourself", nil)
	}

	toUser, err := uc.userRepo.GetByID(ctx, input.ToUserID)
	if err != nil {
		return nil, errors.NotFound("Recipient", err)
	}

	skillOffered, err := uc.skillRepo.GetByID(ctx, input.SkillOfferedID)
	if err != nil {
		return nil, errors.NotFound("Offered skill", err)
	}

	skillWanted, err := uc.skillRepo.GetByID(ctx, input.SkillWantedID)
	if err != nil {
		return nil, errors.NotFound("Wanted skill", err)
	}

	if skillWanted.OwnerID != input.ToUserID {
		return nil, errors.BadRequest("The wanted skill does not belong to the recipient", nil)
	}
	if skillOffered.OwnerID == skillWanted.OwnerID {
		return nil, errors.BadRequest("The offered skill belongs to the recipient", nil)
	}

	trade := &entity.Trade{
		FromUserID:     fromUserID,
		ToUserID:       input.ToUserID,
		SkillOfferedID: input.SkillOfferedID,
		SkillWantedID:  input.SkillWantedID,
		Status:         entity.TradeStatusPending,
	}

	if err := uc.tradeRepo.Create(ctx, trade); err != nil {
		return nil, err
	}

	toProfile := toUser.Profile()
	return &TradeResponse{
		Trade:        trade,
		ToUser:       &toProfile,
		SkillOffered: skillOffered,
		SkillWanted:  skillWanted,
	}, nil
}

// Respond lets the recipient accept or reject a pending trade. Accepting
// opens the chat between the two parties; the transition itself is a
// conditional update, so concurrent responses cannot both win.
func (uc *TradeUseCase) Respond(ctx context.Context, responderID, tradeID, status string) (*TradeResponse, error) {
	var toStatus string
	switch status {
	case entity.TradeStatusAccepted:
		toStatus = entity.TradeStatusAccepted
	case entity.TradeStatusRejected:
		toStatus = entity.TradeStatusRejected
	default:
		return nil, errors.BadRequest("Status must be accepted or rejected", nil)
	}

	trade, err := uc.tradeRepo.GetByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}

	if trade.ToUserID != responderID {
		return nil, errors.Forbidden("Only the recipient can respond to this trade", nil)
	}

	trade, err = uc.tradeRepo.UpdateStatus(ctx, tradeID, entity.TradeStatusPending, toStatus)
	if err != nil {
		return nil, err
	}

	if toStatus == entity.TradeStatusAccepted {
		chat, err := uc.chatUseCase.CreateTradeChat(ctx, responderID, CreateChatInput{
			Participants: []string{trade.FromUserID, trade.ToUserID},
			TradeID:      trade.ID,
		})
		if err != nil {
			logger.Error("Failed to create chat for accepted trade %s: %v", trade.ID, err)
		} else {
			if err := uc.tradeRepo.SetChatID(ctx, trade.ID, chat.Chat.ID); err != nil {
				logger.Warn("Failed to link chat %s to trade %s: %v", chat.Chat.ID, trade.ID, err)
			} else {
				trade.ChatID = chat.Chat.ID
			}

			if _, err := uc.chatUseCase.SendSystemMessage(ctx, chat.Chat.ID, "Trade accepted. You can now coordinate the exchange here."); err != nil {
				logger.Warn("Failed to post system message to chat %s: %v", chat.Chat.ID, err)
			}
		}
	}

	return uc.resolve(ctx, trade), nil
}

// Complete marks an accepted trade as finished. Either participant may
// complete; a second attempt conflicts on the status check, which keeps
// the operation effectively once-only.
func (uc *TradeUseCase) Complete(ctx context.Context, userID, tradeID string) (*TradeResponse, error) {
	trade, err := uc.tradeRepo.GetByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}

	if !trade.IsParticipant(userID) {
		return nil, errors.Forbidden("Only a trade participant can complete it", nil)
	}

	trade, err = uc.tradeRepo.UpdateStatus(ctx, tradeID, entity.TradeStatusAccepted, entity.TradeStatusCompleted)
	if err != nil {
		return nil, err
	}

	if trade.ChatID != "" {
		if _, err := uc.chatUseCase.SendSystemMessage(ctx, trade.ChatID, "Trade completed. You can now leave a review."); err != nil {
			logger.Warn("Failed to post system message to chat %s: %v", trade.ChatID, err)
		}
	}

	return uc.resolve(ctx, trade), nil
}

// MyTrades lists the user's accepted trades, in either role.
func (uc *TradeUseCase) MyTrades(ctx context.Context, userID string) ([]*TradeResponse, error) {
	trades, err := uc.tradeRepo.ListByParticipant(ctx, userID, entity.TradeStatusAccepted)
	if err != nil {
		return nil, err
	}

	return uc.resolveAll(ctx, trades), nil
}

// Incoming lists pending requests addressed to the user.
func (uc *TradeUseCase) Incoming(ctx context.Context, userID string) ([]*TradeResponse, error) {
	trades, err := uc.tradeRepo.ListIncoming(ctx, userID, entity.TradeStatusPending)
	if err != nil {
		return nil, err
	}

	return uc.resolveAll(ctx, trades), nil
}

func (uc *TradeUseCase) resolveAll(ctx context.Context, trades []*entity.Trade) []*TradeResponse {
	// Profiles and skills repeat heavily across a trade list, so both
	// lookups go through small per-call caches.
	profiles := make(map[string]*entity.Profile)
	skills := make(map[string]*entity.Skill)

	responses := make([]*TradeResponse, 0, len(trades))
	for _, trade := range trades {
		responses = append(responses, uc.resolveCached(ctx, trade, profiles, skills))
	}

	return responses
}

func (uc *TradeUseCase) resolve(ctx context.Context, trade *entity.Trade) *TradeResponse {
	return uc.resolveCached(ctx, trade, make(map[string]*entity.Profile), make(map[string]*entity.Skill))
}

func (uc *TradeUseCase) resolveCached(
	ctx context.Context,
	trade *entity.Trade,
	profiles map[string]*entity.Profile,
	skills map[string]*entity.Skill,
) *TradeResponse {
	resp := &TradeResponse{Trade: trade}
	resp.FromUser = uc.lookupProfile(ctx, trade.FromUserID, profiles)
	resp.ToUser = uc.lookupProfile(ctx, trade.ToUserID, profiles)
	resp.SkillOffered = uc.lookupSkill(ctx, trade.SkillOfferedID, skills)
	resp.SkillWanted = uc.lookupSkill(ctx, trade.SkillWantedID, skills)
	return resp
}

func (uc *TradeUseCase) lookupProfile(ctx context.Context, userID string, cache map[string]*entity.Profile) *entity.Profile {
	if p, ok := cache[userID]; ok {
		return p
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		cache[userID] = nil
		return nil
	}

	p := user.Profile()
	cache[userID] = &p
	return &p
}

func (uc *TradeUseCase) lookupSkill(ctx context.Context, skillID string, cache map[string]*entity.Skill) *entity.Skill {
	if s, ok := cache[skillID]; ok {
		return s
	}

	skill, err := uc.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		cache[skillID] = nil
		return nil
	}

	cache[skillID] = skill
	return skill
}
