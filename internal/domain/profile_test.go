package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingDocuments(t *testing.T) {
	tests := []struct {
		name        string
		resume      *string
		certificate *string
		want        []string
	}{
		{"both present", strPtr("https://cdn/r.pdf"), strPtr("https://cdn/c.pdf"), nil},
		{"both missing", nil, nil, []string{"resume", "certificate"}},
		{"resume missing", nil, strPtr("https://cdn/c.pdf"), []string{"resume"}},
		{"certificate missing", strPtr("https://cdn/r.pdf"), nil, []string{"certificate"}},
		{"empty strings count as missing", strPtr(""), strPtr(""), []string{"resume", "certificate"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &Profile{ResumeURL: tc.resume, CertificateURL: tc.certificate}
			assert.Equal(t, tc.want, p.MissingDocuments())
		})
	}
}

func TestFullName(t *testing.T) {
	p := &Profile{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", p.FullName())
}
