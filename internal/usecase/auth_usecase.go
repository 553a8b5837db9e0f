package usecase

import (
	"context"
	"strings"
	"time"

	"skillbarter/internal/domain/entity"
	"skillbarter/internal/domain/repository"
	"skillbarter/internal/infrastructure/auth"
	"skillbarter/pkg/errors"
	"skillbarter/pkg/logger"
)

type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	media    MediaUploader
}

func NewAuthUseCase(userRepo repository.UserRepository, tokens *auth.TokenManager, media MediaUploader) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		media:    media,
	}
}

type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	ProfileImg    string
	Address       string
	About         string
	SkillsOffered []string
	SkillsWanted  []string
}

type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	profileImg := ""
	profileImgPublicID := ""
	if strings.HasPrefix(input.ProfileImg, "data:image") {
		url, publicID, err := uc.media.Upload(ctx, input.ProfileImg)
		if err != nil {
			// Registration proceeds without an image; the upload failure
			// is surfaced only in the logs.
			logger.Warn("Profile image upload failed during registration: %v", err)
		} else {
			profileImg = url
			profileImgPublicID = publicID
		}
	}

	user := &entity.User{
		Name:               input.Name,
		Email:              input.Email,
		PasswordHash:       hash,
		ProfileImg:         profileImg,
		ProfileImgPublicID: profileImgPublicID,
		Address:            input.Address,
		About:              input.About,
		SkillsOffered:      input.SkillsOffered,
		SkillsWanted:       input.SkillsWanted,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, expiresAt, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, errors.Internal("Failed to generate session token", err)
	}

	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same answer for unknown email and wrong password.
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, errors.Unauthorized("Invalid email or password", nil)
	}

	token, expiresAt, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, errors.Internal("Failed to generate session token", err)
	}

	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
