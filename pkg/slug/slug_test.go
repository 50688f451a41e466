// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/steph2pro/millearnia/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Web Designer", "web-designer"},
		{"accents", "Développeur Web", "developpeur-web"},
		{"punctuation", "Data & AI: Engineer!", "data-ai-engineer"},
		{"multi_space", "Ingénieur   Réseaux", "ingenieur-reseaux"},
		{"already_slug", "cv-design", "cv-design"},
		{"leading_trailing", "  --Médecine--  ", "medecine"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}
