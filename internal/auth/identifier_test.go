// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/steph2pro/millearnia/internal/auth"
)

/*
TestClassifyIdentifier checks the email-vs-phone routing rule.
*/
func TestClassifyIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected auth.IdentifierKind
	}{
		{"plain_email", "ana@example.com", auth.IdentifierEmail},
		{"e164_phone", "+15551234567", auth.IdentifierPhone},
		{"phone_without_plus", "237698123456", auth.IdentifierPhone},
		// Malformed emails still route to the email column, never to phone.
		{"at_sign_only", "a@b", auth.IdentifierEmail},
		{"at_sign_at_end", "weird@", auth.IdentifierEmail},
		{"empty_string", "", auth.IdentifierPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identifier := auth.ClassifyIdentifier(tt.raw)
			assert.Equal(t, tt.expected, identifier.Kind)
			assert.Equal(t, tt.raw, identifier.Value)
		})
	}
}
