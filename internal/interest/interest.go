// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

// Package interest manages the catalog of learning interests and their
// association with user accounts. Interests drive course discovery and
// profession recommendations.
package interest

import "time"

// Interest is a topic a member can follow (e.g. "web-development").
type Interest struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Field identifiers for validation.
const (
	FieldName      = "name"
	FieldInterests = "interests"
)
