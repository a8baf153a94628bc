package model

// User account type
type UserType string

const (
	UserTypeClient     UserType = "client"
	UserTypeFreelancer UserType = "freelancer"
	UserTypeAdmin      UserType = "admin"
)

// Freelancer proficiency in a skill
type ProficiencyLevel string

const (
	ProficiencyBeginner     ProficiencyLevel = "beginner"
	ProficiencyIntermediate ProficiencyLevel = "intermediate"
	ProficiencyExpert       ProficiencyLevel = "expert"
)

// Project status
type ProjectStatus string

const (
	ProjectPublished  ProjectStatus = "published"   // Open for applications
	ProjectInProgress ProjectStatus = "in_progress" // An application was accepted
	ProjectCompleted  ProjectStatus = "completed"   // Closed by administrative action
	ProjectCancelled  ProjectStatus = "cancelled"   // Closed by administrative action
)

// Application status
type ApplicationStatus string

const (
	ApplicationApplied            ApplicationStatus = "applied"
	ApplicationMarkedForInterview ApplicationStatus = "marked_for_interview"
	ApplicationAccepted           ApplicationStatus = "accepted"
	ApplicationRejected           ApplicationStatus = "rejected"
	ApplicationWithdrawn          ApplicationStatus = "withdrawn"
	ApplicationCompleted          ApplicationStatus = "completed" // Set by an external process, never by this engine
)

// KnownApplicationStatus reports whether s is one of the defined
// application statuses. Used to reject garbage from the wire early.
func KnownApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationApplied, ApplicationMarkedForInterview, ApplicationAccepted,
		ApplicationRejected, ApplicationWithdrawn, ApplicationCompleted:
		return true
	}
	return false
}
