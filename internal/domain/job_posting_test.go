package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJobPostingOpen(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		status   JobStatus
		deadline time.Time
		want     bool
	}{
		{"active before deadline", JobStatusActive, now.Add(24 * time.Hour), true},
		{"active at deadline", JobStatusActive, now, true},
		{"active past deadline", JobStatusActive, now.Add(-time.Second), false},
		{"inactive before deadline", JobStatusInactive, now.Add(24 * time.Hour), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			j := &JobPosting{Status: tc.status, Deadline: tc.deadline}
			assert.Equal(t, tc.want, j.Open(now))
		})
	}
}

func TestParsers(t *testing.T) {
	_, ok := ParseRole("STUDENT")
	assert.True(t, ok)
	_, ok = ParseRole("student")
	assert.False(t, ok)

	_, ok = ParseJobStatus("INACTIVE")
	assert.True(t, ok)
	_, ok = ParseJobStatus("CLOSED")
	assert.False(t, ok)

	_, ok = ParseApplicationStatus("INTERVIEWING")
	assert.True(t, ok)
	_, ok = ParseApplicationStatus("HIRED")
	assert.False(t, ok)
}
