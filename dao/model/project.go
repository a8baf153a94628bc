package model

import (
	"time"

	"gorm.io/gorm"
)

// Project is posted by a client and collects applications from
// freelancers. BudgetMin <= BudgetMax is enforced at create/update time.
type Project struct {
	gorm.Model
	Title       string        `gorm:"type:varchar(100);not null" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	ClientID    uint          `gorm:"index;not null" json:"clientId"`
	BudgetMin   float64       `gorm:"type:decimal(10,2);not null" json:"budgetMin"`
	BudgetMax   float64       `gorm:"type:decimal(10,2);not null" json:"budgetMax"`
	Deadline    time.Time     `gorm:"not null" json:"deadline"`
	Status      ProjectStatus `gorm:"type:varchar(16);index;not null;default:published" json:"status"`

	// Denormalized count of applications ever created for the project.
	// Incremented in the same transaction as the insert, never recomputed.
	ApplicantsCount int `gorm:"not null;default:0" json:"applicantsCount"`

	Client User    `json:"client,omitempty"`
	Skills []Skill `gorm:"many2many:project_skills" json:"skills,omitempty"`
}
