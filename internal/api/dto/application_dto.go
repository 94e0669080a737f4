package dto

import (
	"time"

	"github.com/spec-kit/careers-portal/internal/domain"
)

// ApplyRequest payload.
type ApplyRequest struct {
	JobPostingID string `json:"jobPostingId"`
}

// ApplicationStatusRequest payload for status updates. Absent notes leave the
// stored notes untouched.
type ApplicationStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// CompatibilityResponse is the advisory match signal.
type CompatibilityResponse struct {
	Compatible bool                       `json:"compatible"`
	Reason     domain.CompatibilityReason `json:"reason"`
}

// ApplicationResponse echoes an application record.
type ApplicationResponse struct {
	ID           string                   `json:"id"`
	UserID       string                   `json:"user_id"`
	JobPostingID string                   `json:"job_posting_id"`
	Status       domain.ApplicationStatus `json:"status"`
	Notes        *string                  `json:"notes"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// ApplicationDetailResponse adds job and applicant context plus the advisory
// compatibility signal.
type ApplicationDetailResponse struct {
	ApplicationResponse
	Job           *JobResponse          `json:"job,omitempty"`
	Applicant     *ApplicantResponse    `json:"applicant,omitempty"`
	Compatibility CompatibilityResponse `json:"compatibility"`
}

// ApplicantResponse identifies the applicant to the decision-maker.
type ApplicantResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Name     string  `json:"name,omitempty"`
	MBTIType *string `json:"mbtiType"`
}
