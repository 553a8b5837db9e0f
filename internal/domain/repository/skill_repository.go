package repository

import (
	"context"

	"skillbarter/internal/domain/entity"
)

type SkillRepository interface {
	Create(ctx context.Context, skill *entity.Skill) error
	GetByID(ctx context.Context, id string) (*entity.Skill, error)
	// ListByCategory returns all skills when category is empty, newest first.
	ListByCategory(ctx context.Context, category string) ([]*entity.Skill, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Skill, error)
	Delete(ctx context.Context, id string) error
}
