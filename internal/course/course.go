// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

// Package course manages the learning catalog: courses, their interest
// associations, and per-user enrollment with progress tracking.
package course

import (
	"time"

	"github.com/steph2pro/millearnia/internal/interest"
)

// Course is a published learning unit in the catalog.
type Course struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	VideoURL     string    `json:"video_url,omitempty"`
	MentorID     string    `json:"mentor_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Interests are the topics this course is tagged with.
	Interests []*interest.Interest `json:"interests,omitempty"`
}

// EnrollmentStatus tracks where a member is in a course.
type EnrollmentStatus string

const (
	StatusEnrolled   EnrollmentStatus = "enrolled"
	StatusInProgress EnrollmentStatus = "in_progress"
	StatusCompleted  EnrollmentStatus = "completed"
)

// Enrollment links a member to a course with a completion percentage.
type Enrollment struct {
	UserID    string           `json:"user_id"`
	CourseID  int              `json:"course_id"`
	Progress  int              `json:"progress"` // 0-100
	Status    EnrollmentStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	Course *Course `json:"course,omitempty"`
}

// statusForProgress derives the enrollment status from a completion percentage.
func statusForProgress(progress int) EnrollmentStatus {
	switch {
	case progress >= 100:
		return StatusCompleted
	case progress > 0:
		return StatusInProgress
	default:
		return StatusEnrolled
	}
}

// Field identifiers for validation.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldInterests   = "interest_ids"
	FieldProgress    = "progress"
)
