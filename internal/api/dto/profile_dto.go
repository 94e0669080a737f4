package dto

import "time"

// ProfileUpdateRequest carries a partial profile edit. Absent fields leave
// the stored values untouched.
type ProfileUpdateRequest struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Phone          *string `json:"phone"`
	MBTIType       *string `json:"mbtiType"`
	MBTICompleted  *bool   `json:"mbtiCompleted"`
	ResumeURL      *string `json:"resumeUrl"`
	CertificateURL *string `json:"certificateUrl"`
}

// ProfileResponse echoes the stored profile.
type ProfileResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Phone          *string   `json:"phone"`
	MBTIType       *string   `json:"mbtiType"`
	MBTICompleted  bool      `json:"mbtiCompleted"`
	ResumeURL      *string   `json:"resumeUrl"`
	CertificateURL *string   `json:"certificateUrl"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
