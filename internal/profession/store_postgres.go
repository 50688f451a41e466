// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package profession

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

// # Categories

type PostgresCategoryRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCategoryRepository(db *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (repository *PostgresCategoryRepository) List(context context.Context) ([]*Category, error) {
	rows, err := repository.db.Query(context,
		"SELECT id, name, slug, createdat FROM core.profession_category ORDER BY name ASC")
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (repository *PostgresCategoryRepository) GetByID(context context.Context, id int) (*Category, error) {
	category := &Category{}
	err := repository.db.QueryRow(context,
		"SELECT id, name, slug, createdat FROM core.profession_category WHERE id = $1", id,
	).Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Category")
		}
		return nil, dberr.Wrap(err, "get_category")
	}

	return category, nil
}

func (repository *PostgresCategoryRepository) Create(context context.Context, category *Category) error {
	category.CreatedAt = time.Now()

	err := repository.db.QueryRow(context,
		"INSERT INTO core.profession_category (name, slug, createdat) VALUES ($1, $2, $3) RETURNING id",
		category.Name, category.Slug, category.CreatedAt,
	).Scan(&category.ID)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A category with this name already exists")
		}
		return dberr.Wrap(err, "create_category")
	}

	return nil
}

// # Professions

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const professionColumns = "p.id, p.name, p.slug, p.description, p.imageurl, p.categoryid, p.createdat, p.updatedat"

func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]*Profession, int, error) {
	var total int
	if err := repository.db.QueryRow(context, "SELECT COUNT(*) FROM core.profession").Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_professions")
	}

	query := fmt.Sprintf(`
		SELECT %s FROM core.profession p
		ORDER BY p.name ASC
		LIMIT %d OFFSET %d`, professionColumns, params.Limit, params.Offset())

	professions, err := repository.queryMany(context, query)
	if err != nil {
		return nil, 0, err
	}

	return professions, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int) (*Profession, error) {
	query := fmt.Sprintf(`SELECT %s FROM core.profession p WHERE p.id = $1`, professionColumns)

	profession := &Profession{}
	if err := scanProfession(repository.db.QueryRow(context, query, id), profession); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Profession")
		}
		return nil, dberr.Wrap(err, "get_profession")
	}

	if err := repository.hydrateInterests(context, []*Profession{profession}); err != nil {
		return nil, err
	}

	return profession, nil
}

func (repository *PostgresRepository) ListByCategory(context context.Context, categoryID int) ([]*Profession, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM core.profession p
		WHERE p.categoryid = $1
		ORDER BY p.name ASC`, professionColumns)

	return repository.queryMany(context, query, categoryID)
}

func (repository *PostgresRepository) ListByInterests(context context.Context, interestIDs []int) ([]*Profession, error) {
	// Professions sharing more interests with the user rank higher
	query := fmt.Sprintf(`
		SELECT %s FROM core.profession p
		JOIN core.profession_interest pi ON pi.professionid = p.id
		WHERE pi.interestid = ANY($1)
		GROUP BY p.id
		ORDER BY COUNT(pi.interestid) DESC, p.name ASC`, professionColumns)

	return repository.queryMany(context, query, interestIDs)
}

func (repository *PostgresRepository) Create(context context.Context, profession *Profession, interestIDs []int) error {
	const query = `
		INSERT INTO core.profession (name, slug, description, imageurl, categoryid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id`

	now := time.Now()
	profession.CreatedAt = now
	profession.UpdatedAt = now

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_profession")
	}
	defer func() { _ = transaction.Rollback(context) }()

	err = transaction.QueryRow(context, query,
		profession.Name, profession.Slug, profession.Description,
		profession.ImageURL, profession.CategoryID, now,
	).Scan(&profession.ID)
	if err != nil {
		return dberr.Wrap(err, "create_profession")
	}

	if err := replaceProfessionInterests(context, transaction, profession.ID, interestIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_profession")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, profession *Profession, interestIDs []int) error {
	const query = `
		UPDATE core.profession
		SET name = $2, slug = $3, description = $4, imageurl = $5, categoryid = $6, updatedat = $7
		WHERE id = $1`

	profession.UpdatedAt = time.Now()

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_profession")
	}
	defer func() { _ = transaction.Rollback(context) }()

	tag, err := transaction.Exec(context, query,
		profession.ID, profession.Name, profession.Slug, profession.Description,
		profession.ImageURL, profession.CategoryID, profession.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_profession")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Profession")
	}

	if err := replaceProfessionInterests(context, transaction, profession.ID, interestIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_update_profession")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	tag, err := repository.db.Exec(context, "DELETE FROM core.profession WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "delete_profession")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Profession")
	}

	return nil
}

func (repository *PostgresRepository) queryMany(context context.Context, query string, args ...any) ([]*Profession, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_professions")
	}
	defer rows.Close()

	professions := make([]*Profession, 0)
	for rows.Next() {
		profession := &Profession{}
		if err := scanProfession(rows, profession); err != nil {
			return nil, dberr.Wrap(err, "scan_profession")
		}
		professions = append(professions, profession)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_professions")
	}

	if err := repository.hydrateInterests(context, professions); err != nil {
		return nil, err
	}

	return professions, nil
}

func replaceProfessionInterests(context context.Context, transaction pgx.Tx, professionID int, interestIDs []int) error {
	if _, err := transaction.Exec(context, "DELETE FROM core.profession_interest WHERE professionid = $1", professionID); err != nil {
		return dberr.Wrap(err, "clear_profession_interests")
	}

	if len(interestIDs) == 0 {
		return nil
	}

	const query = `
		INSERT INTO core.profession_interest (professionid, interestid)
		SELECT $1, unnest($2::int[])`

	if _, err := transaction.Exec(context, query, professionID, interestIDs); err != nil {
		return dberr.Wrap(err, "insert_profession_interests")
	}

	return nil
}

func (repository *PostgresRepository) hydrateInterests(context context.Context, professions []*Profession) error {
	if len(professions) == 0 {
		return nil
	}

	professionIDs := make([]int, len(professions))
	byID := make(map[int]*Profession, len(professions))
	for i, profession := range professions {
		professionIDs[i] = profession.ID
		byID[profession.ID] = profession
		profession.Interests = make([]*interest.Interest, 0)
	}

	const query = `
		SELECT pi.professionid, i.id, i.name, i.slug, i.createdat
		FROM core.profession_interest pi
		JOIN core.interest i ON i.id = pi.interestid
		WHERE pi.professionid = ANY($1)
		ORDER BY i.name ASC`

	rows, err := repository.db.Query(context, query, professionIDs)
	if err != nil {
		return dberr.Wrap(err, "hydrate_profession_interests")
	}
	defer rows.Close()

	for rows.Next() {
		var professionID int
		tagged := &interest.Interest{}
		if err := rows.Scan(&professionID, &tagged.ID, &tagged.Name, &tagged.Slug, &tagged.CreatedAt); err != nil {
			return dberr.Wrap(err, "scan_profession_interest")
		}
		if profession, ok := byID[professionID]; ok {
			profession.Interests = append(profession.Interests, tagged)
		}
	}

	return rows.Err()
}

// # Videos & Comments

type PostgresVideoRepository struct {
	db *pgxpool.Pool
}

func NewPostgresVideoRepository(db *pgxpool.Pool) *PostgresVideoRepository {
	return &PostgresVideoRepository{db: db}
}

const videoColumns = "id, professionid, title, youtubeid, thumbnailurl, createdat"

func (repository *PostgresVideoRepository) CreateVideo(context context.Context, video *Video) error {
	video.CreatedAt = time.Now()

	err := repository.db.QueryRow(context, `
		INSERT INTO core.profession_video (professionid, title, youtubeid, thumbnailurl, createdat)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		video.ProfessionID, video.Title, video.YoutubeID, video.ThumbnailURL, video.CreatedAt,
	).Scan(&video.ID)
	if err != nil {
		return dberr.Wrap(err, "create_profession_video")
	}

	return nil
}

func (repository *PostgresVideoRepository) GetVideoByID(context context.Context, id int) (*Video, error) {
	video := &Video{}
	err := repository.db.QueryRow(context,
		fmt.Sprintf("SELECT %s FROM core.profession_video WHERE id = $1", videoColumns), id,
	).Scan(&video.ID, &video.ProfessionID, &video.Title, &video.YoutubeID, &video.ThumbnailURL, &video.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Video")
		}
		return nil, dberr.Wrap(err, "get_profession_video")
	}

	return video, nil
}

func (repository *PostgresVideoRepository) ListVideosByProfession(context context.Context, professionID int) ([]*Video, error) {
	rows, err := repository.db.Query(context,
		fmt.Sprintf("SELECT %s FROM core.profession_video WHERE professionid = $1 ORDER BY createdat DESC", videoColumns),
		professionID,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "list_profession_videos")
	}
	defer rows.Close()

	videos := make([]*Video, 0)
	for rows.Next() {
		video := &Video{}
		if err := rows.Scan(&video.ID, &video.ProfessionID, &video.Title, &video.YoutubeID,
			&video.ThumbnailURL, &video.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_profession_video")
		}
		videos = append(videos, video)
	}

	return videos, rows.Err()
}

func (repository *PostgresVideoRepository) DeleteVideo(context context.Context, id int) error {
	tag, err := repository.db.Exec(context, "DELETE FROM core.profession_video WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "delete_profession_video")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Video")
	}

	return nil
}

const commentColumns = "id, videoid, userid, parentid, content, createdat"

func (repository *PostgresVideoRepository) CreateComment(context context.Context, comment *Comment) error {
	comment.CreatedAt = time.Now()

	err := repository.db.QueryRow(context, `
		INSERT INTO core.video_comment (videoid, userid, parentid, content, createdat)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		comment.VideoID, comment.UserID, comment.ParentID, comment.Content, comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return dberr.Wrap(err, "create_video_comment")
	}

	return nil
}

func (repository *PostgresVideoRepository) GetCommentByID(context context.Context, id int) (*Comment, error) {
	comment := &Comment{}
	err := repository.db.QueryRow(context,
		fmt.Sprintf("SELECT %s FROM core.video_comment WHERE id = $1", commentColumns), id,
	).Scan(&comment.ID, &comment.VideoID, &comment.UserID, &comment.ParentID, &comment.Content, &comment.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, dberr.Wrap(err, "get_video_comment")
	}

	return comment, nil
}

func (repository *PostgresVideoRepository) ListCommentsByVideo(context context.Context, videoID int) ([]*Comment, error) {
	rows, err := repository.db.Query(context,
		fmt.Sprintf("SELECT %s FROM core.video_comment WHERE videoid = $1 ORDER BY createdat ASC", commentColumns),
		videoID,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "list_video_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(&comment.ID, &comment.VideoID, &comment.UserID, &comment.ParentID,
			&comment.Content, &comment.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_video_comment")
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

func scanProfession(row pgx.Row, profession *Profession) error {
	return row.Scan(
		&profession.ID, &profession.Name, &profession.Slug, &profession.Description,
		&profession.ImageURL, &profession.CategoryID,
		&profession.CreatedAt, &profession.UpdatedAt,
	)
}
