package domain

import "strings"

// CompatibilityReason explains the advisory match outcome.
type CompatibilityReason string

const (
	CompatibilityMatch        CompatibilityReason = "MATCH"
	CompatibilityNoMatch      CompatibilityReason = "NO_MATCH"
	CompatibilityNoAssessment CompatibilityReason = "NO_ASSESSMENT"
	CompatibilityNoPreference CompatibilityReason = "NO_PREFERENCE_DECLARED"
)

// Compatibility is the advisory signal between an applicant's MBTI type and a
// job's declared preference list. It never gates a mutation.
type Compatibility struct {
	Compatible bool                `json:"compatible"`
	Reason     CompatibilityReason `json:"reason"`
}

// CheckCompatibility compares the applicant's MBTI type against the job's
// comma-delimited preference list. Tokens are whitespace-trimmed and matched
// case-sensitively.
func CheckCompatibility(applicantMBTI *string, jobMBTITypes *string) Compatibility {
	if applicantMBTI == nil || *applicantMBTI == "" {
		return Compatibility{Compatible: false, Reason: CompatibilityNoAssessment}
	}
	if jobMBTITypes == nil || strings.TrimSpace(*jobMBTITypes) == "" {
		return Compatibility{Compatible: false, Reason: CompatibilityNoPreference}
	}
	for _, token := range strings.Split(*jobMBTITypes, ",") {
		if strings.TrimSpace(token) == *applicantMBTI {
			return Compatibility{Compatible: true, Reason: CompatibilityMatch}
		}
	}
	return Compatibility{Compatible: false, Reason: CompatibilityNoMatch}
}
