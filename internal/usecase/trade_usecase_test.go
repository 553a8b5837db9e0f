package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillbarter/internal/domain/entity"
	ws "skillbarter/internal/infrastructure/websocket"
	"skillbarter/pkg/errors"
)

type testEnv struct {
	users   *memUserRepo
	skills  *memSkillRepo
	trades  *memTradeRepo
	chats   *memChatRepo
	reviews *memReviewRepo

	chatUC  *ChatUseCase
	tradeUC *TradeUseCase

	alice *entity.User
	bob   *entity.User

	aliceSkill *entity.Skill
	bobSkill   *entity.Skill
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	env := &testEnv{
		users:   newMemUserRepo(),
		skills:  newMemSkillRepo(),
		trades:  newMemTradeRepo(),
		chats:   newMemChatRepo(),
		reviews: newMemReviewRepo(),
	}

	env.chatUC = NewChatUseCase(env.chats, env.users, env.trades, ws.NewManager())
	env.tradeUC = NewTradeUseCase(env.trades, env.skills, env.users, env.chatUC)

	env.alice = &entity.User{Name: "Alice", Email: "alice@example.com"}
	env.bob = &entity.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, env.users.Create(ctx, env.alice))
	require.NoError(t, env.users.Create(ctx, env.bob))

	env.aliceSkill = &entity.Skill{
		Title:        "Guitar lessons",
		Category:     "music",
		Description:  "Acoustic guitar for beginners",
		SkillOffered: "Guitar",
		SkillWanted:  "Go programming",
		OwnerID:      env.alice.ID,
	}
	env.bobSkill = &entity.Skill{
		Title:        "Go mentoring",
		Category:     "technology",
		Description:  "Backend development in Go",
		SkillOffered: "Go programming",
		SkillWanted:  "Guitar",
		OwnerID:      env.bob.ID,
	}
	require.NoError(t, env.skills.Create(ctx, env.aliceSkill))
	require.NoError(t, env.skills.Create(ctx, env.bobSkill))

	return env
}

// sendTrade creates alice→bob: alice offers her skill, wants bob's.
func (env *testEnv) sendTrade(t *testing.T) *TradeResponse {
	t.Helper()

	trade, err := env.tradeUC.SendRequest(context.Background(), env.alice.ID, SendRequestInput{
		ToUserID:       env.bob.ID,
		SkillOfferedID: env.aliceSkill.ID,
		SkillWantedID:  env.bobSkill.ID,
	})
	require.NoError(t, err)
	return trade
}

func (env *testEnv) acceptTrade(t *testing.T, tradeID string) *TradeResponse {
	t.Helper()

	trade, err := env.tradeUC.Respond(context.Background(), env.bob.ID, tradeID, entity.TradeStatusAccepted)
	require.NoError(t, err)
	return trade
}

func TestSendRequestCreatesPendingTrade(t *testing.T) {
	env := newTestEnv(t)

	trade := env.sendTrade(t)

	assert.Equal(t, entity.TradeStatusPending, trade.Status)
	assert.Equal(t, env.alice.ID, trade.FromUserID)
	assert.Equal(t, env.bob.ID, trade.ToUserID)
	assert.Equal(t, env.bobSkill.ID, trade.SkillWanted.ID)
}

func TestSendRequestRejectsSelfTrade(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tradeUC.SendRequest(context.Background(), env.alice.ID, SendRequestInput{
		ToUserID:       env.alice.ID,
		SkillOfferedID: env.aliceSkill.ID,
		SkillWantedID:  env.aliceSkill.ID,
	})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendRequestWantedSkillMustBelongToRecipient(t *testing.T) {
	env := newTestEnv(t)

	// Wanted skill belongs to alice, not bob.
	_, err := env.tradeUC.SendRequest(context.Background(), env.alice.ID, SendRequestInput{
		ToUserID:       env.bob.ID,
		SkillOfferedID: env.aliceSkill.ID,
		SkillWantedID:  env.aliceSkill.ID,
	})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendRequestOfferedSkillMustNotBelongToRecipient(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tradeUC.SendRequest(context.Background(), env.alice.ID, SendRequestInput{
		ToUserID:       env.bob.ID,
		SkillOfferedID: env.bobSkill.ID,
		SkillWantedID:  env.bobSkill.ID,
	})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRespondOnlyRecipientMay(t *testing.T) {
	env := newTestEnv(t)
	trade := env.sendTrade(t)

	_, err := env.tradeUC.Respond(context.Background(), env.alice.ID, trade.ID, entity.TradeStatusAccepted)

	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestRespondRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	trade := env.sendTrade(t)

	_, err := env.tradeUC.Respond(context.Background(), env.bob.ID, trade.ID, "completed")

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRespondAcceptOpensChat(t *testing.T) {
	env := newTestEnv(t)
	trade := env.sendTrade(t)

	accepted := env.acceptTrade(t, trade.ID)

	assert.Equal(t, entity.TradeStatusAccepted, accepted.Status)
	require.NotEmpty(t, accepted.ChatID)

	chat, err := env.chats.GetByID(context.Background(), accepted.ChatID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{env.alice.ID, env.bob.ID}, chat.Participants)
	assert.Equal(t, trade.ID, chat.TradeID)

	// Acceptance posts a system notice into the new chat.
	messages, err := env.chats.ListMessages(context.Background(), accepted.ChatID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].SystemMessage)
}

func TestRespondAcceptOpensChatPastRateLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Exhaust bob's chat creation budget through the user-facing path.
	for i := 0; i < 10; i++ {
		_, err := env.chatUC.CreateChat(ctx, env.bob.ID, CreateChatInput{
			Participants: []string{env.alice.ID, env.bob.ID},
		})
		require.NoError(t, err)
	}
	_, err := env.chatUC.CreateChat(ctx, env.bob.ID, CreateChatInput{
		Participants: []string{env.alice.ID, env.bob.ID},
	})
	require.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))

	// Accepting a trade still opens its chat; the creation is driven by
	// the server, not the responder.
	trade := env.sendTrade(t)
	accepted := env.acceptTrade(t, trade.ID)
	require.NotEmpty(t, accepted.ChatID)

	chat, err := env.chats.GetByID(ctx, accepted.ChatID)
	require.NoError(t, err)
	assert.Equal(t, trade.ID, chat.TradeID)
}

func TestRespondIsTerminalAfterDecision(t *testing.T) {
	env := newTestEnv(t)
	trade := env.sendTrade(t)

	_, err := env.tradeUC.Respond(context.Background(), env.bob.ID, trade.ID, entity.TradeStatusRejected)
	require.NoError(t, err)

	_, err = env.tradeUC.Respond(context.Background(), env.bob.ID, trade.ID, entity.TradeStatusAccepted)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestCompleteRequiresParticipant(t *testing.T) {
	env := newTestEnv(t)
	trade := env.sendTrade(t)
	env.acceptTrade(t, trade.ID)

	mallory := &entity.User{Name: "Mallory", Email: "mallory@example.com"}
	require.NoError(t, env.users.Create(context.Background(), mallory))

	_, err := env.tradeUC.Complete(context.Background(), mallory.ID, trade.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCompleteRequiresAcceptedStatus(t *testing.T) {
	env := newTestEnv(t)
	trade := env.sendTrade(t)

	_, err := env.tradeUC.Complete(context.Background(), env.alice.ID, trade.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestCompleteSecondCallConflicts(t *testing.T) {
	env := newTestEnv(t)
	trade := env.sendTrade(t)
	env.acceptTrade(t, trade.ID)

	completed, err := env.tradeUC.Complete(context.Background(), env.alice.ID, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TradeStatusCompleted, completed.Status)

	_, err = env.tradeUC.Complete(context.Background(), env.bob.ID, trade.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestMyTradesListsAcceptedBothDirections(t *testing.T) {
	env := newTestEnv(t)
	trade := env.sendTrade(t)
	env.acceptTrade(t, trade.ID)

	forAlice, err := env.tradeUC.MyTrades(context.Background(), env.alice.ID)
	require.NoError(t, err)
	forBob, err := env.tradeUC.MyTrades(context.Background(), env.bob.ID)
	require.NoError(t, err)

	require.Len(t, forAlice, 1)
	require.Len(t, forBob, 1)
	assert.Equal(t, "Bob", forAlice[0].ToUser.Name)
	assert.Equal(t, "Alice", forBob[0].FromUser.Name)
}

func TestIncomingListsPendingOnly(t *testing.T) {
	env := newTestEnv(t)
	env.sendTrade(t)

	incoming, err := env.tradeUC.Incoming(context.Background(), env.bob.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, entity.TradeStatusPending, incoming[0].Status)

	// Nothing pending for the sender.
	incoming, err = env.tradeUC.Incoming(context.Background(), env.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, incoming)
}
