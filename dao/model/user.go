package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Optional profile fields for a user. Kept as a JSON column so the
// profile can grow without migrations.
type UserProfile struct {
	Title              string  `json:"title,omitempty"`
	Bio                string  `json:"bio,omitempty"`
	HourlyRate         float64 `json:"hourlyRate,omitempty"`
	LinkedinURL        *string `json:"linkedinUrl,omitempty"`
	GithubURL          *string `json:"githubUrl,omitempty"`
	ExperienceInMonths int     `json:"experienceInMonths,omitempty"`
}

// User is a client, freelancer or admin account. The core engines only
// read users; account management lives elsewhere.
type User struct {
	gorm.Model
	Email    string   `gorm:"uniqueIndex;type:varchar(256);not null" json:"email"`
	Password *string  `gorm:"type:varchar(256)" json:"-"`
	UserType UserType `gorm:"type:varchar(16);index;not null" json:"userType"`
	Name     string   `gorm:"type:varchar(128);not null" json:"name"`
	Rating   *float64 `gorm:"type:decimal(3,2)" json:"rating,omitempty"`

	Profile datatypes.JSONType[UserProfile] `json:"profile"`

	UserSkills []UserSkill `json:"userSkills,omitempty"`
}
