package domain

import "time"

// Profile holds the applicant-facing attributes of a user. Optional fields are
// nullable rather than empty strings so document gating and the compatibility
// advisor stay unambiguous.
type Profile struct {
	ID             string
	UserID         string
	FirstName      string
	LastName       string
	Phone          *string
	MBTIType       *string
	MBTICompleted  bool
	ResumeURL      *string
	CertificateURL *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MissingDocuments returns the labels of required documents absent from the
// profile, in a stable order.
func (p *Profile) MissingDocuments() []string {
	var missing []string
	if p.ResumeURL == nil || *p.ResumeURL == "" {
		missing = append(missing, "resume")
	}
	if p.CertificateURL == nil || *p.CertificateURL == "" {
		missing = append(missing, "certificate")
	}
	return missing
}

// FullName joins the profile name fields.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
