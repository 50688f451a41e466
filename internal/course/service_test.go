// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package course

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steph2pro/millearnia/internal/interest"
	"github.com/steph2pro/millearnia/internal/platform/apperr"
	"github.com/steph2pro/millearnia/pkg/pagination"
)

// # Fakes

type memoryRepository struct {
	nextID  int
	courses map[int]*Course
	links   map[int][]int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{nextID: 1, courses: map[int]*Course{}, links: map[int][]int{}}
}

func (repository *memoryRepository) List(_ context.Context, params pagination.Params, interestID int) ([]*Course, int, error) {
	var all []*Course
	for _, course := range repository.courses {
		if interestID > 0 && !containsInt(repository.links[course.ID], interestID) {
			continue
		}
		all = append(all, course)
	}
	return all, len(all), nil
}

func (repository *memoryRepository) GetByID(_ context.Context, id int) (*Course, error) {
	course, ok := repository.courses[id]
	if !ok {
		return nil, apperr.NotFound("Course")
	}
	copied := *course
	return &copied, nil
}

func (repository *memoryRepository) GetBySlug(_ context.Context, slug string) (*Course, error) {
	for _, course := range repository.courses {
		if course.Slug == slug {
			copied := *course
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Course")
}

func (repository *memoryRepository) Create(_ context.Context, course *Course, interestIDs []int) error {
	course.ID = repository.nextID
	repository.nextID++
	copied := *course
	repository.courses[course.ID] = &copied
	repository.links[course.ID] = interestIDs
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, course *Course, interestIDs []int) error {
	if _, ok := repository.courses[course.ID]; !ok {
		return apperr.NotFound("Course")
	}
	copied := *course
	repository.courses[course.ID] = &copied
	repository.links[course.ID] = interestIDs
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, id int) error {
	if _, ok := repository.courses[id]; !ok {
		return apperr.NotFound("Course")
	}
	delete(repository.courses, id)
	delete(repository.links, id)
	return nil
}

type enrollmentKey struct {
	userID   string
	courseID int
}

type memoryEnrollmentRepository struct {
	enrollments map[enrollmentKey]*Enrollment
}

func newMemoryEnrollmentRepository() *memoryEnrollmentRepository {
	return &memoryEnrollmentRepository{enrollments: map[enrollmentKey]*Enrollment{}}
}

func (repository *memoryEnrollmentRepository) Enroll(_ context.Context, userID string, courseID int) (*Enrollment, error) {
	key := enrollmentKey{userID, courseID}
	if existing, ok := repository.enrollments[key]; ok {
		copied := *existing
		return &copied, nil
	}
	enrollment := &Enrollment{
		UserID:    userID,
		CourseID:  courseID,
		Status:    StatusEnrolled,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	repository.enrollments[key] = enrollment
	copied := *enrollment
	return &copied, nil
}

func (repository *memoryEnrollmentRepository) Get(_ context.Context, userID string, courseID int) (*Enrollment, error) {
	enrollment, ok := repository.enrollments[enrollmentKey{userID, courseID}]
	if !ok {
		return nil, apperr.NotFound("Enrollment")
	}
	copied := *enrollment
	return &copied, nil
}

func (repository *memoryEnrollmentRepository) ListByUser(_ context.Context, userID string) ([]*Enrollment, error) {
	var result []*Enrollment
	for key, enrollment := range repository.enrollments {
		if key.userID == userID {
			copied := *enrollment
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (repository *memoryEnrollmentRepository) UpdateProgress(_ context.Context, userID string, courseID, progress int, status EnrollmentStatus) error {
	enrollment, ok := repository.enrollments[enrollmentKey{userID, courseID}]
	if !ok {
		return apperr.NotFound("Enrollment")
	}
	enrollment.Progress = progress
	enrollment.Status = status
	enrollment.UpdatedAt = time.Now()
	return nil
}

type memoryInterestRepository struct {
	known map[int]bool
}

func (repository *memoryInterestRepository) List(context.Context) ([]*interest.Interest, error) {
	return nil, nil
}

func (repository *memoryInterestRepository) GetByID(context.Context, int) (*interest.Interest, error) {
	return nil, apperr.NotFound("Interest")
}

func (repository *memoryInterestRepository) Create(context.Context, *interest.Interest) error { return nil }
func (repository *memoryInterestRepository) Update(context.Context, *interest.Interest) error { return nil }
func (repository *memoryInterestRepository) Delete(context.Context, int) error                { return nil }

func (repository *memoryInterestRepository) ExistAll(_ context.Context, ids []int) (bool, error) {
	for _, id := range ids {
		if !repository.known[id] {
			return false, nil
		}
	}
	return true, nil
}

func (repository *memoryInterestRepository) AttachToUser(context.Context, string, []int) error {
	return nil
}

func (repository *memoryInterestRepository) ListByUser(context.Context, string) ([]*interest.Interest, error) {
	return nil, nil
}

func containsInt(values []int, wanted int) bool {
	for _, value := range values {
		if value == wanted {
			return true
		}
	}
	return false
}

func newTestService() (*Service, *memoryRepository, *memoryEnrollmentRepository) {
	repo := newMemoryRepository()
	enrollments := newMemoryEnrollmentRepository()
	interests := &memoryInterestRepository{known: map[int]bool{1: true, 2: true}}
	service := NewService(repo, enrollments, interests, slog.Default())
	return service, repo, enrollments
}

// # Tests

func TestCreate_SlugsTitle(t *testing.T) {
	service, _, _ := newTestService()

	course, err := service.Create(context.Background(), CourseInput{
		Title:       "Introduction à Go",
		MentorID:    "mentor-1",
		InterestIDs: []int{1, 2, 1},
	})
	require.NoError(t, err)

	assert.Equal(t, "introduction-a-go", course.Slug)
	assert.NotZero(t, course.ID)
}

func TestCreate_UnknownInterestRejected(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Create(context.Background(), CourseInput{
		Title:       "Orphan",
		InterestIDs: []int{99},
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestEnroll_RequiresExistingCourse(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Enroll(context.Background(), "user-1", 42)
	require.Error(t, err)
}

func TestEnroll_IsIdempotent(t *testing.T) {
	service, _, _ := newTestService()

	course, err := service.Create(context.Background(), CourseInput{Title: "Go Basics"})
	require.NoError(t, err)

	first, err := service.Enroll(context.Background(), "user-1", course.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusEnrolled, first.Status)

	// Report some progress, then enroll again: progress must survive
	_, err = service.UpdateProgress(context.Background(), "user-1", course.ID, 40)
	require.NoError(t, err)

	again, err := service.Enroll(context.Background(), "user-1", course.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, again.Progress)
	assert.Equal(t, StatusInProgress, again.Status)
}

func TestUpdateProgress_DerivesStatus(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		want     EnrollmentStatus
	}{
		{"zero stays enrolled", 0, StatusEnrolled},
		{"partial is in progress", 55, StatusInProgress},
		{"full is completed", 100, StatusCompleted},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			service, _, _ := newTestService()

			course, err := service.Create(context.Background(), CourseInput{Title: "Go Basics"})
			require.NoError(t, err)
			_, err = service.Enroll(context.Background(), "user-1", course.ID)
			require.NoError(t, err)

			enrollment, err := service.UpdateProgress(context.Background(), "user-1", course.ID, test.progress)
			require.NoError(t, err)
			assert.Equal(t, test.want, enrollment.Status)
			assert.Equal(t, test.progress, enrollment.Progress)
		})
	}
}

func TestUpdateProgress_OutOfRange(t *testing.T) {
	service, _, _ := newTestService()

	course, err := service.Create(context.Background(), CourseInput{Title: "Go Basics"})
	require.NoError(t, err)
	_, err = service.Enroll(context.Background(), "user-1", course.ID)
	require.NoError(t, err)

	for _, progress := range []int{-1, 101} {
		_, err := service.UpdateProgress(context.Background(), "user-1", course.ID, progress)
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	}
}

func TestUpdateProgress_RequiresEnrollment(t *testing.T) {
	service, _, _ := newTestService()

	course, err := service.Create(context.Background(), CourseInput{Title: "Go Basics"})
	require.NoError(t, err)

	_, err = service.UpdateProgress(context.Background(), "user-1", course.ID, 10)
	require.Error(t, err)
}

func TestList_FiltersByInterest(t *testing.T) {
	service, _, _ := newTestService()

	tagged, err := service.Create(context.Background(), CourseInput{Title: "Tagged", InterestIDs: []int{1}})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), CourseInput{Title: "Untagged"})
	require.NoError(t, err)

	courses, meta, err := service.List(context.Background(), pagination.Params{Page: 1, Limit: 10}, 1)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, tagged.ID, courses[0].ID)
	assert.Equal(t, 1, meta.Total)
}
