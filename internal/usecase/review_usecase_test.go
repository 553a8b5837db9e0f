package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillbarter/internal/domain/entity"
	"skillbarter/pkg/errors"
)

func newReviewEnv(t *testing.T) (*testEnv, *ReviewUseCase, *TradeResponse) {
	t.Helper()

	env := newTestEnv(t)
	reviewUC := NewReviewUseCase(env.reviews, env.trades, env.users, env.skills)

	trade := env.sendTrade(t)
	env.acceptTrade(t, trade.ID)
	completed, err := env.tradeUC.Complete(context.Background(), env.alice.ID, trade.ID)
	require.NoError(t, err)

	return env, reviewUC, completed
}

func TestAddReviewHappyPath(t *testing.T) {
	env, reviewUC, trade := newReviewEnv(t)

	review, err := reviewUC.AddReview(context.Background(), env.alice.ID, AddReviewInput{
		ReviewedUserID: env.bob.ID,
		TradeID:        trade.ID,
		Rating:         5,
		Feedback:       "Great mentor, learned a lot",
	})
	require.NoError(t, err)

	assert.Equal(t, env.alice.ID, review.ReviewerID)
	assert.Equal(t, env.bob.ID, review.ReviewedUserID)
	require.NotNil(t, review.Reviewer)
	assert.Equal(t, "Alice", review.Reviewer.Name)
}

func TestAddReviewRequiresCompletedTrade(t *testing.T) {
	env := newTestEnv(t)
	reviewUC := NewReviewUseCase(env.reviews, env.trades, env.users, env.skills)

	trade := env.sendTrade(t)
	env.acceptTrade(t, trade.ID)

	_, err := reviewUC.AddReview(context.Background(), env.alice.ID, AddReviewInput{
		ReviewedUserID: env.bob.ID,
		TradeID:        trade.ID,
		Rating:         5,
		Feedback:       "too early",
	})
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestAddReviewRequiresParticipant(t *testing.T) {
	env, reviewUC, trade := newReviewEnv(t)

	mallory := &entity.User{Name: "Mallory", Email: "mallory@example.com"}
	require.NoError(t, env.users.Create(context.Background(), mallory))

	_, err := reviewUC.AddReview(context.Background(), mallory.ID, AddReviewInput{
		ReviewedUserID: env.bob.ID,
		TradeID:        trade.ID,
		Rating:         1,
		Feedback:       "drive-by",
	})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestAddReviewTargetMustBeCounterparty(t *testing.T) {
	env, reviewUC, trade := newReviewEnv(t)

	// Alice reviewing herself.
	_, err := reviewUC.AddReview(context.Background(), env.alice.ID, AddReviewInput{
		ReviewedUserID: env.alice.ID,
		TradeID:        trade.ID,
		Rating:         5,
		Feedback:       "I was great",
	})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestAddReviewDuplicateConflicts(t *testing.T) {
	env, reviewUC, trade := newReviewEnv(t)
	ctx := context.Background()

	_, err := reviewUC.AddReview(ctx, env.alice.ID, AddReviewInput{
		ReviewedUserID: env.bob.ID,
		TradeID:        trade.ID,
		Rating:         4,
		Feedback:       "Good",
	})
	require.NoError(t, err)

	_, err = reviewUC.AddReview(ctx, env.alice.ID, AddReviewInput{
		ReviewedUserID: env.bob.ID,
		TradeID:        trade.ID,
		Rating:         5,
		Feedback:       "Changed my mind",
	})
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestAddReviewBothPartiesMayReviewOnce(t *testing.T) {
	env, reviewUC, trade := newReviewEnv(t)
	ctx := context.Background()

	_, err := reviewUC.AddReview(ctx, env.alice.ID, AddReviewInput{
		ReviewedUserID: env.bob.ID,
		TradeID:        trade.ID,
		Rating:         4,
		Feedback:       "Good",
	})
	require.NoError(t, err)

	_, err = reviewUC.AddReview(ctx, env.bob.ID, AddReviewInput{
		ReviewedUserID: env.alice.ID,
		TradeID:        trade.ID,
		Rating:         5,
		Feedback:       "Great student",
	})
	require.NoError(t, err)
}

func TestAddReviewValidatesRatingAndFeedback(t *testing.T) {
	env, reviewUC, trade := newReviewEnv(t)
	ctx := context.Background()

	_, err := reviewUC.AddReview(ctx, env.alice.ID, AddReviewInput{
		ReviewedUserID: env.bob.ID,
		TradeID:        trade.ID,
		Rating:         6,
		Feedback:       "too high",
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = reviewUC.AddReview(ctx, env.alice.ID, AddReviewInput{
		ReviewedUserID: env.bob.ID,
		TradeID:        trade.ID,
		Rating:         3,
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestListForUserResolvesReviewerAndSkills(t *testing.T) {
	env, reviewUC, trade := newReviewEnv(t)
	ctx := context.Background()

	_, err := reviewUC.AddReview(ctx, env.alice.ID, AddReviewInput{
		ReviewedUserID: env.bob.ID,
		TradeID:        trade.ID,
		Rating:         5,
		Feedback:       "Excellent",
	})
	require.NoError(t, err)

	reviews, err := reviewUC.ListForUser(ctx, env.bob.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	assert.Equal(t, "Alice", reviews[0].Reviewer.Name)
	require.NotNil(t, reviews[0].SkillOffered)
	assert.Equal(t, env.aliceSkill.ID, reviews[0].SkillOffered.ID)

	// Unknown target is a not-found, not an empty list.
	_, err = reviewUC.ListForUser(ctx, "missing")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
