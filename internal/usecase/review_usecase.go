package usecase

import (
	"context"

	"skillbarter/internal/domain/entity"
	"skillbarter/internal/domain/repository"
	"skillbarter/pkg/errors"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	tradeRepo  repository.TradeRepository
	userRepo   repository.UserRepository
	skillRepo  repository.SkillRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	tradeRepo repository.TradeRepository,
	userRepo repository.UserRepository,
	skillRepo repository.SkillRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		tradeRepo:  tradeRepo,
		userRepo:   userRepo,
		skillRepo:  skillRepo,
	}
}

type AddReviewInput struct {
	ReviewedUserID string
	TradeID        string
	Rating         int
	Feedback       string
}

type ReviewResponse struct {
	*entity.Review
	Reviewer     *entity.Profile `json:"reviewer,omitempty"`
	SkillOffered *entity.Skill   `json:"skill_offered,omitempty"`
	SkillWanted  *entity.Skill   `json:"skill_wanted,omitempty"`
}

// AddReview records a rating for the counterparty of a completed trade.
// One review per participant per trade; the reviewed user is derived
// from the trade, never supplied by the caller.
func (uc *ReviewUseCase) AddReview(ctx context.Context, reviewerID string, input AddReviewInput) (*ReviewResponse, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}
	if input.Feedback == "" {
		return nil, errors.BadRequest("Feedback cannot be empty", nil)
	}

	trade, err := uc.tradeRepo.GetByID(ctx, input.TradeID)
	if err != nil {
		return nil, err
	}

	if !trade.IsParticipant(reviewerID) {
		return nil, errors.Forbidden("Only a trade participant can leave a review", nil)
	}
	if input.ReviewedUserID != trade.Counterparty(reviewerID) {
		return nil, errors.Forbidden("You can only review your trade counterparty", nil)
	}

	if trade.Status != entity.TradeStatusCompleted {
		return nil, errors.Conflict("Trade is not completed yet")
	}

	existing, err := uc.reviewRepo.GetByTradeAndReviewer(ctx, input.TradeID, reviewerID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("You have already reviewed this trade")
	}

	review := &entity.Review{
		ReviewerID:     reviewerID,
		ReviewedUserID: input.ReviewedUserID,
		Rating:         input.Rating,
		Feedback:       input.Feedback,
		TradeID:        input.TradeID,
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return uc.resolve(ctx, review), nil
}

// ListForUser returns the reviews received by a user, oldest first.
func (uc *ReviewUseCase) ListForUser(ctx context.Context, userID string) ([]*ReviewResponse, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, errors.NotFound("User", err)
	}

	reviews, err := uc.reviewRepo.ListByReviewedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, uc.resolve(ctx, review))
	}

	return responses, nil
}

func (uc *ReviewUseCase) resolve(ctx context.Context, review *entity.Review) *ReviewResponse {
	resp := &ReviewResponse{Review: review}

	if reviewer, err := uc.userRepo.GetByID(ctx, review.ReviewerID); err == nil {
		p := reviewer.Profile()
		resp.Reviewer = &p
	}

	if trade, err := uc.tradeRepo.GetByID(ctx, review.TradeID); err == nil {
		if skill, err := uc.skillRepo.GetByID(ctx, trade.SkillOfferedID); err == nil {
			resp.SkillOffered = skill
		}
		if skill, err := uc.skillRepo.GetByID(ctx, trade.SkillWantedID); err == nil {
			resp.SkillWanted = skill
		}
	}

	return resp
}
