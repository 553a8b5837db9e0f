package usecase

import (
	"context"

	"skillbarter/internal/domain/entity"
	"skillbarter/internal/domain/repository"
	"skillbarter/pkg/errors"
)

type SkillUseCase struct {
	skillRepo repository.SkillRepository
	userRepo  repository.UserRepository
}

func NewSkillUseCase(skillRepo repository.SkillRepository, userRepo repository.UserRepository) *SkillUseCase {
	return &SkillUseCase{
		skillRepo: skillRepo,
		userRepo:  userRepo,
	}
}

type CreateSkillInput struct {
	Title        string
	Category     string
	Description  string
	SkillOffered string
	SkillWanted  string
}

// SkillOwnerInfo is the owner projection attached to catalog listings.
type SkillOwnerInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ProfileImg   string   `json:"profile_img,omitempty"`
	Address      string   `json:"address,omitempty"`
	SkillsWanted []string `json:"skills_wanted,omitempty"`
}

type SkillResponse struct {
	*entity.Skill
	Owner *SkillOwnerInfo `json:"owner,omitempty"`
}

func (uc *SkillUseCase) CreateSkill(ctx context.Context, ownerID string, input CreateSkillInput) (*entity.Skill, error) {
	if !entity.IsValidSkillCategory(input.Category) {
		return nil, errors.BadRequest("Invalid skill category", nil)
	}

	skill := &entity.Skill{
		Title:        input.Title,
		Category:     input.Category,
		Description:  input.Description,
		SkillOffered: input.SkillOffered,
		SkillWanted:  input.SkillWanted,
		OwnerID:      ownerID,
	}

	if err := uc.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}

	return skill, nil
}

// ListByCategory returns listings newest first; "all" or empty returns
// the whole catalog.
func (uc *SkillUseCase) ListByCategory(ctx context.Context, category string) ([]*SkillResponse, error) {
	if category == "all" {
		category = ""
	}
	if category != "" && !entity.IsValidSkillCategory(category) {
		return nil, errors.BadRequest("Invalid skill category", nil)
	}

	skills, err := uc.skillRepo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	return uc.resolveOwners(ctx, skills), nil
}

func (uc *SkillUseCase) GetByID(ctx context.Context, id string) (*SkillResponse, error) {
	skill, err := uc.skillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resolved := uc.resolveOwners(ctx, []*entity.Skill{skill})
	return resolved[0], nil
}

func (uc *SkillUseCase) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Skill, error) {
	return uc.skillRepo.ListByOwner(ctx, ownerID)
}

// Delete is owner-gated: only the listing's owner may remove it.
func (uc *SkillUseCase) Delete(ctx context.Context, userID, skillID string) error {
	skill, err := uc.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return err
	}

	if skill.OwnerID != userID {
		return errors.Forbidden("Only the owner can delete this skill", nil)
	}

	return uc.skillRepo.Delete(ctx, skillID)
}

func (uc *SkillUseCase) resolveOwners(ctx context.Context, skills []*entity.Skill) []*SkillResponse {
	owners := make(map[string]*SkillOwnerInfo)
	responses := make([]*SkillResponse, 0, len(skills))

	for _, skill := range skills {
		owner, cached := owners[skill.OwnerID]
		if !cached {
			user, err := uc.userRepo.GetByID(ctx, skill.OwnerID)
			if err == nil {
				owner = &SkillOwnerInfo{
					ID:           user.ID,
					Name:         user.Name,
					ProfileImg:   user.ProfileImg,
					Address:      user.Address,
					SkillsWanted: user.SkillsWanted,
				}
			}
			owners[skill.OwnerID] = owner
		}

		responses = append(responses, &SkillResponse{
			Skill: skill,
			Owner: owner,
		})
	}

	return responses
}
