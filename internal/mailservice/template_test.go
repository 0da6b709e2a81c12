package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTemplate(t *testing.T) {
	template := &Template{}

	testCases := []struct {
		name         string
		templateName string
		data         any
		expectedErr  bool
	}{
		{
			name:         "contact email",
			templateName: "contact_email.html",
			data: ContactMessage{
				Name:    "Test User",
				Email:   "visitor@example.com",
				Subject: "Quote request",
				Message: "Hello there",
			},
			expectedErr: false,
		},
		{
			name:         "invalid template name",
			templateName: "invalid_template.html",
			data:         nil,
			expectedErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, p, h, err := template.ParseTemplate(tc.templateName, tc.data)
			assert.Equal(t, tc.expectedErr, err != nil)

			if err == nil {
				assert.Contains(t, s.String(), "Quote request")
				assert.Contains(t, p.String(), "visitor@example.com")
				assert.Contains(t, h.String(), "Test User")
			}
		})
	}
}
