package model

import (
	"gorm.io/gorm"
)

// Skill is immutable reference data, managed only through the admin
// catalog API.
type Skill struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex;type:varchar(128);not null" json:"name"`
	Category string `gorm:"type:varchar(128)" json:"category,omitempty"`
}

// UserSkill links a freelancer to a skill with a proficiency level.
// Matching reads these as the freelancer's skill set.
type UserSkill struct {
	gorm.Model
	UserID           uint             `gorm:"uniqueIndex:idx_user_skill;not null" json:"userId"`
	SkillID          uint             `gorm:"uniqueIndex:idx_user_skill;not null" json:"skillId"`
	ProficiencyLevel ProficiencyLevel `gorm:"type:varchar(16);not null" json:"proficiencyLevel"`

	Skill Skill `json:"skill,omitempty"`
}
