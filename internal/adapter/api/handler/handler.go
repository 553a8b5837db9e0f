package handler

import (
	"skillbarter/internal/usecase"
)

var (
	authHandler   *AuthHandler
	userHandler   *UserHandler
	skillHandler  *SkillHandler
	tradeHandler  *TradeHandler
	chatHandler   *ChatHandler
	reviewHandler *ReviewHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	skillUseCase *usecase.SkillUseCase,
	tradeUseCase *usecase.TradeUseCase,
	chatUseCase *usecase.ChatUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	cookieName string,
) {
	authHandler = NewAuthHandler(authUseCase, cookieName)
	userHandler = NewUserHandler(userUseCase)
	skillHandler = NewSkillHandler(skillUseCase)
	tradeHandler = NewTradeHandler(tradeUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetSkillHandler() *SkillHandler {
	return skillHandler
}

func GetTradeHandler() *TradeHandler {
	return tradeHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}
