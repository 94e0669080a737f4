package dto

import (
	"time"

	"github.com/spec-kit/careers-portal/internal/domain"
)

// JobCreateRequest payload.
type JobCreateRequest struct {
	Title        string  `json:"title"`
	Company      string  `json:"company"`
	Location     string  `json:"location"`
	Description  string  `json:"description"`
	Requirements string  `json:"requirements"`
	Deadline     string  `json:"deadline"`
	MBTITypes    *string `json:"mbtiTypes"`
}

// JobUpdateRequest carries a partial edit.
type JobUpdateRequest struct {
	Title        *string `json:"title"`
	Company      *string `json:"company"`
	Location     *string `json:"location"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Deadline     *string `json:"deadline"`
	MBTITypes    *string `json:"mbtiTypes"`
}

// JobStatusRequest toggles a posting.
type JobStatusRequest struct {
	Status string `json:"status"`
}

// JobResponse echoes a posting.
type JobResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Company      string           `json:"company"`
	Location     string           `json:"location"`
	Description  string           `json:"description"`
	Requirements string           `json:"requirements"`
	Deadline     time.Time        `json:"deadline"`
	Status       domain.JobStatus `json:"status"`
	MBTITypes    *string          `json:"mbtiTypes"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// JobSummary lists a posting with its application tally.
type JobSummary struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Company      string           `json:"company"`
	Location     string           `json:"location"`
	Deadline     time.Time        `json:"deadline"`
	Status       domain.JobStatus `json:"status"`
	Applications int              `json:"applications"`
}

// CountResponse carries a dashboard tally.
type CountResponse struct {
	Count int `json:"count"`
}
