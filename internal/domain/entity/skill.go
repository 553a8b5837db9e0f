package entity

import "time"

// Skill categories form a closed set; anything else is rejected at the
// API boundary.
var SkillCategories = []string{
	"technology",
	"design",
	"music",
	"performing_arts",
	"language",
	"business",
	"science",
	"health_fitness",
}

func IsValidSkillCategory(category string) bool {
	for _, c := range SkillCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Skill struct {
	ID           string    `json:"id" firestore:"id"`
	Title        string    `json:"title" firestore:"title"`
	Category     string    `json:"category" firestore:"category"`
	Description  string    `json:"description" firestore:"description"`
	SkillOffered string    `json:"skill_offered" firestore:"skillOffered"`
	SkillWanted  string    `json:"skill_wanted" firestore:"skillWanted"`
	OwnerID      string    `json:"owner_id" firestore:"ownerId"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}
