// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package course

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/steph2pro/millearnia/internal/interest"
	"github.com/steph2pro/millearnia/internal/platform/apperr"
	"github.com/steph2pro/millearnia/internal/platform/dberr"
	"github.com/steph2pro/millearnia/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const courseColumns = "c.id, c.title, c.slug, c.description, c.thumbnailurl, c.videourl, c.mentorid, c.createdat, c.updatedat"

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, interestID int) ([]*Course, int, error) {
	var (
		countQuery = `SELECT COUNT(*) FROM core.course c`
		listQuery  = fmt.Sprintf(`SELECT %s FROM core.course c`, courseColumns)
		args       []any
	)

	// Optional interest filter narrows both queries identically
	if interestID > 0 {
		filter := ` JOIN core.course_interest ci ON ci.courseid = c.id AND ci.interestid = $1`
		countQuery += filter
		listQuery += filter
		args = append(args, interestID)
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_courses")
	}

	listQuery += fmt.Sprintf(" ORDER BY c.createdat DESC LIMIT %d OFFSET %d", params.Limit, params.Offset())

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_courses")
	}
	defer rows.Close()

	courses := make([]*Course, 0, params.Limit)
	for rows.Next() {
		course := &Course{}
		if err := scanCourse(rows, course); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_course")
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_courses")
	}

	if err := repository.hydrateInterests(context, courses); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int) (*Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM core.course c WHERE c.id = $1`, courseColumns)
	return repository.getOne(context, query, id)
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM core.course c WHERE c.slug = $1`, courseColumns)
	return repository.getOne(context, query, slug)
}

func (repository *PostgresRepository) getOne(context context.Context, query string, arg any) (*Course, error) {
	course := &Course{}
	row := repository.db.QueryRow(context, query, arg)
	if err := scanCourse(row, course); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Course")
		}
		return nil, dberr.Wrap(err, "get_course")
	}

	if err := repository.hydrateInterests(context, []*Course{course}); err != nil {
		return nil, err
	}

	return course, nil
}

func (repository *PostgresRepository) Create(context context.Context, course *Course, interestIDs []int) error {
	const query = `
		INSERT INTO core.course (title, slug, description, thumbnailurl, videourl, mentorid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id`

	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_course")
	}
	defer func() { _ = transaction.Rollback(context) }()

	err = transaction.QueryRow(context, query,
		course.Title, course.Slug, course.Description,
		course.ThumbnailURL, course.VideoURL, course.MentorID, now,
	).Scan(&course.ID)
	if err != nil {
		return dberr.Wrap(err, "create_course")
	}

	if err := replaceCourseInterests(context, transaction, course.ID, interestIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_course")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, course *Course, interestIDs []int) error {
	const query = `
		UPDATE core.course
		SET title = $2, slug = $3, description = $4, thumbnailurl = $5, videourl = $6, mentorid = $7, updatedat = $8
		WHERE id = $1`

	course.UpdatedAt = time.Now()

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_course")
	}
	defer func() { _ = transaction.Rollback(context) }()

	tag, err := transaction.Exec(context, query,
		course.ID, course.Title, course.Slug, course.Description,
		course.ThumbnailURL, course.VideoURL, course.MentorID, course.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_course")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Course")
	}

	if err := replaceCourseInterests(context, transaction, course.ID, interestIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_update_course")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	tag, err := repository.db.Exec(context, "DELETE FROM core.course WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "delete_course")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Course")
	}

	return nil
}

// replaceCourseInterests rewrites the course's interest links inside an open
// transaction.
func replaceCourseInterests(context context.Context, transaction pgx.Tx, courseID int, interestIDs []int) error {
	if _, err := transaction.Exec(context, "DELETE FROM core.course_interest WHERE courseid = $1", courseID); err != nil {
		return dberr.Wrap(err, "clear_course_interests")
	}

	if len(interestIDs) == 0 {
		return nil
	}

	const query = `
		INSERT INTO core.course_interest (courseid, interestid)
		SELECT $1, unnest($2::int[])`

	if _, err := transaction.Exec(context, query, courseID, interestIDs); err != nil {
		return dberr.Wrap(err, "insert_course_interests")
	}

	return nil
}

// hydrateInterests loads the tagged interests for a batch of courses in one
// query to avoid per-course round trips.
func (repository *PostgresRepository) hydrateInterests(context context.Context, courses []*Course) error {
	if len(courses) == 0 {
		return nil
	}

	courseIDs := make([]int, len(courses))
	byID := make(map[int]*Course, len(courses))
	for i, course := range courses {
		courseIDs[i] = course.ID
		byID[course.ID] = course
		course.Interests = make([]*interest.Interest, 0)
	}

	const query = `
		SELECT ci.courseid, i.id, i.name, i.slug, i.createdat
		FROM core.course_interest ci
		JOIN core.interest i ON i.id = ci.interestid
		WHERE ci.courseid = ANY($1)
		ORDER BY i.name ASC`

	rows, err := repository.db.Query(context, query, courseIDs)
	if err != nil {
		return dberr.Wrap(err, "hydrate_course_interests")
	}
	defer rows.Close()

	for rows.Next() {
		var courseID int
		tagged := &interest.Interest{}
		if err := rows.Scan(&courseID, &tagged.ID, &tagged.Name, &tagged.Slug, &tagged.CreatedAt); err != nil {
			return dberr.Wrap(err, "scan_course_interest")
		}
		if course, ok := byID[courseID]; ok {
			course.Interests = append(course.Interests, tagged)
		}
	}

	return rows.Err()
}

// scanCourse hydrates a course from any row-like scanner.
func scanCourse(row pgx.Row, course *Course) error {
	return row.Scan(
		&course.ID, &course.Title, &course.Slug, &course.Description,
		&course.ThumbnailURL, &course.VideoURL, &course.MentorID,
		&course.CreatedAt, &course.UpdatedAt,
	)
}

// # Enrollment Repository

type PostgresEnrollmentRepository struct {
	db      *pgxpool.Pool
	courses *PostgresRepository
}

func NewPostgresEnrollmentRepository(db *pgxpool.Pool, courses *PostgresRepository) *PostgresEnrollmentRepository {
	return &PostgresEnrollmentRepository{db: db, courses: courses}
}

const enrollmentColumns = "userid, courseid, progress, status, createdat, updatedat"

func (repository *PostgresEnrollmentRepository) Enroll(context context.Context, userID string, courseID int) (*Enrollment, error) {
	// Re-enrolling is a no-op; the existing row wins
	const query = `
		INSERT INTO core.user_course (userid, courseid, progress, status, createdat, updatedat)
		VALUES ($1, $2, 0, $3, $4, $4)
		ON CONFLICT (userid, courseid) DO NOTHING`

	if _, err := repository.db.Exec(context, query, userID, courseID, StatusEnrolled, time.Now()); err != nil {
		return nil, dberr.Wrap(err, "enroll_user")
	}

	return repository.Get(context, userID, courseID)
}

func (repository *PostgresEnrollmentRepository) Get(context context.Context, userID string, courseID int) (*Enrollment, error) {
	query := fmt.Sprintf(`SELECT %s FROM core.user_course WHERE userid = $1 AND courseid = $2`, enrollmentColumns)

	enrollment := &Enrollment{}
	err := repository.db.QueryRow(context, query, userID, courseID).Scan(
		&enrollment.UserID, &enrollment.CourseID, &enrollment.Progress,
		&enrollment.Status, &enrollment.CreatedAt, &enrollment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Enrollment")
		}
		return nil, dberr.Wrap(err, "get_enrollment")
	}

	return enrollment, nil
}

func (repository *PostgresEnrollmentRepository) ListByUser(context context.Context, userID string) ([]*Enrollment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM core.user_course
		WHERE userid = $1
		ORDER BY updatedat DESC`, enrollmentColumns)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_user_courses")
	}
	defer rows.Close()

	enrollments := make([]*Enrollment, 0)
	for rows.Next() {
		enrollment := &Enrollment{}
		err := rows.Scan(
			&enrollment.UserID, &enrollment.CourseID, &enrollment.Progress,
			&enrollment.Status, &enrollment.CreatedAt, &enrollment.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_enrollment")
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_user_courses")
	}

	// Hydrate the course of each enrollment
	for _, enrollment := range enrollments {
		course, err := repository.courses.GetByID(context, enrollment.CourseID)
		if err != nil {
			return nil, err
		}
		enrollment.Course = course
	}

	return enrollments, nil
}

func (repository *PostgresEnrollmentRepository) UpdateProgress(context context.Context, userID string, courseID, progress int, status EnrollmentStatus) error {
	const query = `
		UPDATE core.user_course
		SET progress = $3, status = $4, updatedat = $5
		WHERE userid = $1 AND courseid = $2`

	tag, err := repository.db.Exec(context, query, userID, courseID, progress, status, time.Now())
	if err != nil {
		return dberr.Wrap(err, "update_progress")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Enrollment")
	}

	return nil
}
