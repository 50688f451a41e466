// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

// Package template manages the catalog of CV templates members can pick from.
// Rendering happens client-side; the backend only serves the template
// definitions and their display options.
package template

import (
	"encoding/json"
	"time"
)

// Template is a CV layout a member can base their resume on. Options carries
// the client-defined settings (colors, fonts, section order) as opaque JSON.
type Template struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	PreviewImageURL string          `json:"preview_image_url,omitempty"`
	Options         json.RawMessage `json:"options,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Field identifiers for validation.
const (
	FieldName    = "name"
	FieldOptions = "options"
)
