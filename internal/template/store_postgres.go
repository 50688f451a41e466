// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package template

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/steph2pro/millearnia/internal/platform/apperr"
	"github.com/steph2pro/millearnia/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const templateColumns = "id, name, previewimageurl, options, createdat, updatedat"

func (repository *PostgresRepository) List(context context.Context) ([]*Template, error) {
	rows, err := repository.db.Query(context,
		"SELECT "+templateColumns+" FROM core.template_cv ORDER BY name ASC")
	if err != nil {
		return nil, dberr.Wrap(err, "list_templates")
	}
	defer rows.Close()

	templates := make([]*Template, 0)
	for rows.Next() {
		template := &Template{}
		if err := scanTemplate(rows, template); err != nil {
			return nil, dberr.Wrap(err, "scan_template")
		}
		templates = append(templates, template)
	}

	return templates, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, id int) (*Template, error) {
	template := &Template{}
	row := repository.db.QueryRow(context,
		"SELECT "+templateColumns+" FROM core.template_cv WHERE id = $1", id)
	if err := scanTemplate(row, template); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Template")
		}
		return nil, dberr.Wrap(err, "get_template")
	}

	return template, nil
}

func (repository *PostgresRepository) Create(context context.Context, template *Template) error {
	const query = `
		INSERT INTO core.template_cv (name, previewimageurl, options, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id`

	now := time.Now()
	template.CreatedAt = now
	template.UpdatedAt = now

	err := repository.db.QueryRow(context, query,
		template.Name, template.PreviewImageURL, template.Options, now,
	).Scan(&template.ID)
	if err != nil {
		return dberr.Wrap(err, "create_template")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, template *Template) error {
	const query = `
		UPDATE core.template_cv
		SET name = $2, previewimageurl = $3, options = $4, updatedat = $5
		WHERE id = $1`

	template.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		template.ID, template.Name, template.PreviewImageURL, template.Options, template.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_template")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Template")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	tag, err := repository.db.Exec(context, "DELETE FROM core.template_cv WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "delete_template")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Template")
	}

	return nil
}

func scanTemplate(row pgx.Row, template *Template) error {
	return row.Scan(
		&template.ID, &template.Name, &template.PreviewImageURL,
		&template.Options, &template.CreatedAt, &template.UpdatedAt,
	)
}
