package entity

import (
	"time"
)

type User struct {
	ID           string `json:"id" firestore:"id"`
	Email        string `json:"email" firestore:"email"`
	PasswordHash string `json:"-" firestore:"passwordHash"`
	Name         string `json:"name" firestore:"name"`
	Address      string `json:"address,omitempty" firestore:"address,omitempty"`
	About        string `json:"about,omitempty" firestore:"about,omitempty"`

	ProfileImg         string `json:"profile_img,omitempty" firestore:"profileImg,omitempty"`
	ProfileImgPublicID string `json:"-" firestore:"profileImgPublicId,omitempty"`

	SkillsOffered []string `json:"skills_offered" firestore:"skillsOffered"`
	SkillsWanted  []string `json:"skills_wanted" firestore:"skillsWanted"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Profile is the public projection of a user, resolved into trade,
// chat and review responses at read time.
type Profile struct {
	ID         string `json:"id" firestore:"id"`
	Name       string `json:"name" firestore:"name"`
	ProfileImg string `json:"profile_img,omitempty" firestore:"profileImg,omitempty"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:         u.ID,
		Name:       u.Name,
		ProfileImg: u.ProfileImg,
	}
}
