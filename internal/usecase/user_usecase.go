package usecase

import (
	"context"
	"strings"

	"skillbarter/internal/domain/entity"
	"skillbarter/internal/domain/repository"
	"skillbarter/pkg/errors"
	"skillbarter/pkg/logger"
)

type UserUseCase struct {
	userRepo   repository.UserRepository
	reviewRepo repository.ReviewRepository
	chatRepo   repository.ChatRepository
	media      MediaUploader
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	reviewRepo repository.ReviewRepository,
	chatRepo repository.ChatRepository,
	media MediaUploader,
) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		chatRepo:   chatRepo,
		media:      media,
	}
}

// ProfileResponse carries the user plus the review and chat collections
// that reference them. Both are derived by foreign-key queries rather
// than stored back-reference arrays.
type ProfileResponse struct {
	*entity.User
	Reviews []*entity.Review `json:"reviews"`
	Chats   []*entity.Chat   `json:"chats"`
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reviews, err := uc.reviewRepo.ListByReviewedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	chats, err := uc.chatRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileResponse{
		User:    user,
		Reviews: reviews,
		Chats:   chats,
	}, nil
}

type UpdateProfileInput struct {
	Name          string
	Email         string
	Address       string
	About         string
	ProfileImg    string
	SkillsOffered []string
	SkillsWanted  []string
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(input.ProfileImg, "data:image") {
		// Replacing the image: the old one is removed best-effort; a
		// failed delete is logged and otherwise ignored.
		if user.ProfileImgPublicID != "" {
			if err := uc.media.Destroy(ctx, user.ProfileImgPublicID); err != nil {
				logger.Warn("Failed to delete previous profile image for user %s: %v", userID, err)
			}
		}

		url, publicID, err := uc.media.Upload(ctx, input.ProfileImg)
		if err != nil {
			return nil, errors.Internal("Failed to upload profile image", err)
		}
		user.ProfileImg = url
		user.ProfileImgPublicID = publicID
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Address != "" {
		user.Address = input.Address
	}
	if input.About != "" {
		user.About = input.About
	}
	if input.SkillsOffered != nil {
		user.SkillsOffered = input.SkillsOffered
	}
	if input.SkillsWanted != nil {
		user.SkillsWanted = input.SkillsWanted
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
