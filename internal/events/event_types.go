package events

import (
	"time"

	"github.com/spec-kit/careers-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationCreated       EventType = "application_created"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventApplicationCancelled     EventType = "application_cancelled"
	EventJobCreated               EventType = "job_created"
	EventJobStatusChanged         EventType = "job_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	ActorID       string      `json:"actor_id"`
	ActorRole     domain.Role `json:"actor_role"`
	ApplicationID string      `json:"application_id,omitempty"`
	JobPostingID  string      `json:"job_posting_id,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// ApplicationCreatedPayload payload.
type ApplicationCreatedPayload struct {
	ApplicantID  string `json:"applicant_id"`
	JobTitle     string `json:"job_title"`
	JobCompany   string `json:"job_company"`
	JobOwnerID   string `json:"job_owner_id"`
	JobPostingID string `json:"job_posting_id"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	OldStatus domain.ApplicationStatus `json:"old_status"`
	NewStatus domain.ApplicationStatus `json:"new_status"`
	Notes     *string                  `json:"notes,omitempty"`
}

// JobStatusChangedPayload payload.
type JobStatusChangedPayload struct {
	OldStatus domain.JobStatus `json:"old_status"`
	NewStatus domain.JobStatus `json:"new_status"`
}
