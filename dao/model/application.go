package model

import (
	"time"

	"gorm.io/gorm"
)

// ProjectApplication is a freelancer's application to a project. At most
// one row exists per (project, freelancer) pair, backed by a composite
// unique index.
type ProjectApplication struct {
	gorm.Model
	ProjectID         uint              `gorm:"uniqueIndex:idx_project_freelancer;not null" json:"projectId"`
	FreelancerID      uint              `gorm:"uniqueIndex:idx_project_freelancer;not null" json:"freelancerId"`
	CoverLetter       string            `gorm:"type:text;not null" json:"coverLetter"`
	ProposedRate      float64           `gorm:"type:decimal(10,2);not null" json:"proposedRate"`
	EstimatedDuration int               `gorm:"not null" json:"estimatedDuration"`
	Status            ApplicationStatus `gorm:"type:varchar(32);index;not null;default:applied" json:"status"`

	ClientNotes      string `gorm:"type:text" json:"clientNotes,omitempty"`
	RejectionReason  string `gorm:"type:text" json:"rejectionReason,omitempty"`
	WithdrawalReason string `gorm:"type:text" json:"withdrawalReason,omitempty"`

	ClientRating      *int       `json:"clientRating,omitempty"`
	ClientReview      string     `gorm:"type:text" json:"clientReview,omitempty"`
	FreelancerRating  *int       `json:"freelancerRating,omitempty"`
	FreelancerReview  string     `gorm:"type:text" json:"freelancerReview,omitempty"`
	RatingSubmittedAt *time.Time `json:"ratingSubmittedAt,omitempty"`

	Project    Project `json:"project,omitempty"`
	Freelancer User    `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}

type transitionKey struct {
	from     ApplicationStatus
	byClient bool
}

// allowedTransitions is the complete status state machine, keyed by
// (current status, acting side). Statuses absent from the map are
// absorbing for that side: accepted, rejected, withdrawn and completed
// permit nothing for either party.
var allowedTransitions = map[transitionKey][]ApplicationStatus{
	{ApplicationApplied, true}:             {ApplicationMarkedForInterview, ApplicationAccepted, ApplicationRejected},
	{ApplicationApplied, false}:            {ApplicationWithdrawn},
	{ApplicationMarkedForInterview, true}:  {ApplicationAccepted, ApplicationRejected},
	{ApplicationMarkedForInterview, false}: {ApplicationWithdrawn},
}

// AllowedTransitions returns the statuses the given side may move an
// application to from the current status.
func AllowedTransitions(from ApplicationStatus, byClient bool) []ApplicationStatus {
	return allowedTransitions[transitionKey{from, byClient}]
}

// CanTransition reports whether the given side may move an application
// from one status to another.
func CanTransition(from, to ApplicationStatus, byClient bool) bool {
	for _, s := range AllowedTransitions(from, byClient) {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further party-initiated transition is
// permitted from s.
func (s ApplicationStatus) Terminal() bool {
	switch s {
	case ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn, ApplicationCompleted:
		return true
	}
	return false
}
