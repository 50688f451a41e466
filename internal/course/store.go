// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package course

import (
	"context"

	"github.com/steph2pro/millearnia/pkg/pagination"
)

// Repository defines the data access contract for the course catalog.
type Repository interface {
	List(context context.Context, params pagination.Params, interestID int) ([]*Course, int, error)
	GetByID(context context.Context, id int) (*Course, error)
	GetBySlug(context context.Context, slug string) (*Course, error)
	Create(context context.Context, course *Course, interestIDs []int) error
	Update(context context.Context, course *Course, interestIDs []int) error
	Delete(context context.Context, id int) error
}

// EnrollmentRepository defines the data access contract for user enrollments.
type EnrollmentRepository interface {
	// Enroll inserts the link; an existing enrollment is left untouched.
	Enroll(context context.Context, userID string, courseID int) (*Enrollment, error)

	Get(context context.Context, userID string, courseID int) (*Enrollment, error)

	// ListByUser returns the user's enrollments with their courses hydrated.
	ListByUser(context context.Context, userID string) ([]*Enrollment, error)

	UpdateProgress(context context.Context, userID string, courseID, progress int, status EnrollmentStatus) error
}
