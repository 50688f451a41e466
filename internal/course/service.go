// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package course

import (
	"context"
	"log/slog"

	"github.com/steph2pro/millearnia/internal/interest"
	"github.com/steph2pro/millearnia/internal/platform/apperr"
	"github.com/steph2pro/millearnia/pkg/pagination"
	"github.com/steph2pro/millearnia/pkg/slice"
	"github.com/steph2pro/millearnia/pkg/slug"
)

type Service struct {
	repo         Repository
	enrollments  EnrollmentRepository
	interestRepo interest.Repository
	logger       *slog.Logger
}

func NewService(repo Repository, enrollments EnrollmentRepository, interestRepo interest.Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		enrollments:  enrollments,
		interestRepo: interestRepo,
		logger:       logger,
	}
}

// # Catalog

// CourseInput holds the mutable fields of a course.
type CourseInput struct {
	Title        string
	Description  string
	ThumbnailURL string
	VideoURL     string
	MentorID     string
	InterestIDs  []int
}

func (service *Service) List(context context.Context, params pagination.Params, interestID int) ([]*Course, pagination.Meta, error) {
	courses, total, err := service.repo.List(context, params, interestID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return courses, pagination.NewMeta(params.Page, params.Limit, total), nil
}

func (service *Service) Get(context context.Context, id int) (*Course, error) {
	return service.repo.GetByID(context, id)
}

func (service *Service) GetBySlug(context context.Context, courseSlug string) (*Course, error) {
	return service.repo.GetBySlug(context, courseSlug)
}

func (service *Service) Create(context context.Context, input CourseInput) (*Course, error) {
	interestIDs, err := service.checkInterests(context, input.InterestIDs)
	if err != nil {
		return nil, err
	}

	course := &Course{
		Title:        input.Title,
		Slug:         slug.From(input.Title),
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		VideoURL:     input.VideoURL,
		MentorID:     input.MentorID,
	}

	if err := service.repo.Create(context, course, interestIDs); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "course_created",
		slog.Int("id", course.ID),
		slog.String("slug", course.Slug),
	)

	return service.repo.GetByID(context, course.ID)
}

func (service *Service) Update(context context.Context, id int, input CourseInput) (*Course, error) {
	course, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	interestIDs, err := service.checkInterests(context, input.InterestIDs)
	if err != nil {
		return nil, err
	}

	course.Title = input.Title
	course.Slug = slug.From(input.Title)
	course.Description = input.Description
	course.ThumbnailURL = input.ThumbnailURL
	course.VideoURL = input.VideoURL
	course.MentorID = input.MentorID

	if err := service.repo.Update(context, course, interestIDs); err != nil {
		return nil, err
	}

	return service.repo.GetByID(context, id)
}

func (service *Service) Delete(context context.Context, id int) error {
	return service.repo.Delete(context, id)
}

// checkInterests deduplicates and verifies the tag list. An empty list is
// allowed: a course may be published before it is categorized.
func (service *Service) checkInterests(context context.Context, ids []int) ([]int, error) {
	unique := slice.Unique(ids)
	if len(unique) == 0 {
		return nil, nil
	}

	exists, err := service.interestRepo.ExistAll(context, unique)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Interest")
	}

	return unique, nil
}

// # Enrollment

func (service *Service) Enroll(context context.Context, userID string, courseID int) (*Enrollment, error) {
	// The course must exist before the link is created
	if _, err := service.repo.GetByID(context, courseID); err != nil {
		return nil, err
	}

	return service.enrollments.Enroll(context, userID, courseID)
}

func (service *Service) ListUserCourses(context context.Context, userID string) ([]*Enrollment, error) {
	return service.enrollments.ListByUser(context, userID)
}

// UpdateProgress records a member's completion percentage for a course and
// derives the enrollment status from it (0 = enrolled, 1-99 = in progress,
// 100 = completed).
func (service *Service) UpdateProgress(context context.Context, userID string, courseID, progress int) (*Enrollment, error) {
	if progress < 0 || progress > 100 {
		return nil, apperr.ValidationError("Progress must be between 0 and 100")
	}

	// Only enrolled members can report progress
	if _, err := service.enrollments.Get(context, userID, courseID); err != nil {
		return nil, err
	}

	status := statusForProgress(progress)
	if err := service.enrollments.UpdateProgress(context, userID, courseID, progress, status); err != nil {
		return nil, err
	}

	return service.enrollments.Get(context, userID, courseID)
}
