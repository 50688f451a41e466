// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package interest

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/steph2pro/millearnia/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Interest, error) {
	const query = `
		SELECT id, name, slug, createdat
		FROM core.interest
		ORDER BY name ASC`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_interests")
	}
	defer rows.Close()

	interests := make([]*Interest, 0)
	for rows.Next() {
		interest := &Interest{}
		if err := rows.Scan(&interest.ID, &interest.Name, &interest.Slug, &interest.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_interest")
		}
		interests = append(interests, interest)
	}

	return interests, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, id int) (*Interest, error) {
	const query = `
		SELECT id, name, slug, createdat
		FROM core.interest
		WHERE id = $1`

	interest := &Interest{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&interest.ID, &interest.Name, &interest.Slug, &interest.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_interest_by_id")
	}

	return interest, nil
}

func (repository *PostgresRepository) Create(context context.Context, interest *Interest) error {
	const query = `
		INSERT INTO core.interest (name, slug, createdat)
		VALUES ($1, $2, $3)
		RETURNING id`

	interest.CreatedAt = time.Now()
	err := repository.db.QueryRow(context, query,
		interest.Name, interest.Slug, interest.CreatedAt,
	).Scan(&interest.ID)

	if err != nil {
		return dberr.Wrap(err, "create_interest")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, interest *Interest) error {
	const query = `
		UPDATE core.interest
		SET name = $2, slug = $3
		WHERE id = $1`

	tag, err := repository.db.Exec(context, query, interest.ID, interest.Name, interest.Slug)
	if err != nil {
		return dberr.Wrap(err, "update_interest")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	tag, err := repository.db.Exec(context, "DELETE FROM core.interest WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "delete_interest")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) ExistAll(context context.Context, ids []int) (bool, error) {
	const query = `SELECT COUNT(*) FROM core.interest WHERE id = ANY($1)`

	var count int
	if err := repository.db.QueryRow(context, query, ids).Scan(&count); err != nil {
		return false, dberr.Wrap(err, "count_interests")
	}

	return count == len(ids), nil
}

func (repository *PostgresRepository) AttachToUser(context context.Context, userID string, ids []int) error {
	// ON CONFLICT keeps the call idempotent for already-followed interests.
	const query = `
		INSERT INTO core.user_interest (userid, interestid)
		SELECT $1, unnest($2::int[])
		ON CONFLICT (userid, interestid) DO NOTHING`

	if _, err := repository.db.Exec(context, query, userID, ids); err != nil {
		return dberr.Wrap(err, "attach_interests_to_user")
	}

	return nil
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string) ([]*Interest, error) {
	const query = `
		SELECT i.id, i.name, i.slug, i.createdat
		FROM core.interest i
		JOIN core.user_interest ui ON ui.interestid = i.id
		WHERE ui.userid = $1
		ORDER BY i.name ASC`

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_user_interests")
	}
	defer rows.Close()

	interests := make([]*Interest, 0)
	for rows.Next() {
		interest := &Interest{}
		if err := rows.Scan(&interest.ID, &interest.Name, &interest.Slug, &interest.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_user_interest")
		}
		interests = append(interests, interest)
	}

	return interests, rows.Err()
}
