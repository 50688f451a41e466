// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

// Package profession manages the career catalog: profession categories,
// professions tagged with interests, and interest-based recommendations.
package profession

import (
	"time"

	"github.com/steph2pro/millearnia/internal/interest"
)

// Category groups related professions (e.g. "Technology").
type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Profession is a career path a member can explore.
type Profession struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CategoryID  int       `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Interests are the topics that lead to this profession.
	Interests []*interest.Interest `json:"interests,omitempty"`
}

// Video is a career-discovery clip attached to a profession.
type Video struct {
	ID           int       `json:"id"`
	ProfessionID int       `json:"profession_id"`
	Title        string    `json:"title"`
	YoutubeID    string    `json:"youtube_id"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Comment is a member reaction on a profession video. ParentID is set when
// the comment replies to another comment on the same video.
type Comment struct {
	ID        int       `json:"id"`
	VideoID   int       `json:"video_id"`
	UserID    string    `json:"user_id"`
	ParentID  *int      `json:"parent_id,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Field identifiers for validation.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category_id"
	FieldInterests   = "interest_ids"
	FieldTitle       = "title"
	FieldYoutubeID   = "youtube_id"
	FieldContent     = "content"
	FieldParent      = "parent_id"
)
