package domain

import "time"

// JobStatus enumerates lifecycle states for job postings.
type JobStatus string

const (
	JobStatusActive   JobStatus = "ACTIVE"
	JobStatusInactive JobStatus = "INACTIVE"
)

// ParseJobStatus validates a job status label.
func ParseJobStatus(value string) (JobStatus, bool) {
	switch JobStatus(value) {
	case JobStatusActive, JobStatusInactive:
		return JobStatus(value), true
	}
	return "", false
}

// JobPosting is owned by the EMPLOYER (or ADMIN) who created it. Applications
// derive their authorization transitively through OwnerID.
type JobPosting struct {
	ID           string
	Title        string
	Company      string
	Location     string
	Description  string
	Requirements string
	Deadline     time.Time
	Status       JobStatus
	MBTITypes    *string
	OwnerID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Open reports whether the posting still accepts applications.
func (j *JobPosting) Open(now time.Time) bool {
	return j.Status == JobStatusActive && !j.Deadline.Before(now)
}
