package domain

import "time"

// ApplicationStatus enumerates the closed set of application states. Any status
// may be set to any other by an authorized actor, including resetting
// ACCEPTED/REJECTED back to PENDING.
type ApplicationStatus string

const (
	ApplicationStatusPending      ApplicationStatus = "PENDING"
	ApplicationStatusInterviewing ApplicationStatus = "INTERVIEWING"
	ApplicationStatusAccepted     ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected     ApplicationStatus = "REJECTED"
)

// ParseApplicationStatus validates a status label.
func ParseApplicationStatus(value string) (ApplicationStatus, bool) {
	switch ApplicationStatus(value) {
	case ApplicationStatusPending, ApplicationStatusInterviewing,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return ApplicationStatus(value), true
	}
	return "", false
}

// Application links an applicant to a job posting. UserID and JobPostingID are
// immutable after creation; at most one application exists per (user, job) pair.
type Application struct {
	ID           string
	UserID       string
	JobPostingID string
	Status       ApplicationStatus
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
