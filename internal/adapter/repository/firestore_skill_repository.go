package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"skillbarter/internal/domain/entity"
	"skillbarter/internal/domain/repository"
	"skillbarter/pkg/errors"

	"github.com/google/uuid"
)

type firestoreSkillRepository struct {
	client *firestore.Client
}

func NewFirestoreSkillRepository(client *firestore.Client) repository.SkillRepository {
	return &firestoreSkillRepository{
		client: client,
	}
}

func (r *firestoreSkillRepository) Create(ctx context.Context, skill *entity.Skill) error {
	if skill.ID == "" {
		skill.ID = uuid.New().String()
	}

	now := time.Now()
	skill.CreatedAt = now
	skill.UpdatedAt = now

	_, err := r.client.Collection("skills").Doc(skill.ID).Set(ctx, skill)
	if err != nil {
		return errors.Internal("Failed to create skill", err)
	}

	return nil
}

func (r *firestoreSkillRepository) GetByID(ctx context.Context, id string) (*entity.Skill, error) {
	doc, err := r.client.Collection("skills").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Skill", err)
		}
		return nil, errors.Internal("Failed to get skill", err)
	}

	var skill entity.Skill
	if err := doc.DataTo(&skill); err != nil {
		return nil, errors.Internal("Failed to parse skill data", err)
	}

	return &skill, nil
}

func (r *firestoreSkillRepository) ListByCategory(ctx context.Context, category string) ([]*entity.Skill, error) {
	query := r.client.Collection("skills").OrderBy("createdAt", firestore.Desc)
	if category != "" {
		query = r.client.Collection("skills").
			Where("category", "==", category).
			OrderBy("createdAt", firestore.Desc)
	}

	return r.collectSkills(ctx, query)
}

func (r *firestoreSkillRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Skill, error) {
	query := r.client.Collection("skills").
		Where("ownerId", "==", ownerID).
		OrderBy("createdAt", firestore.Desc)

	return r.collectSkills(ctx, query)
}

func (r *firestoreSkillRepository) collectSkills(ctx context.Context, query firestore.Query) ([]*entity.Skill, error) {
	iter := query.Documents(ctx)
	var skills []*entity.Skill

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate skills", err)
		}

		var skill entity.Skill
		if err := doc.DataTo(&skill); err != nil {
			return nil, errors.Internal("Failed to parse skill data", err)
		}

		skills = append(skills, &skill)
	}

	return skills, nil
}

func (r *firestoreSkillRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("skills").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete skill", err)
	}

	return nil
}
