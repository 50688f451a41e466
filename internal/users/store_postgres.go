// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/steph2pro/millearnia/internal/platform/apperr"
	"github.com/steph2pro/millearnia/internal/platform/dberr"
	"github.com/steph2pro/millearnia/internal/platform/sec"
	"github.com/steph2pro/millearnia/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = "id, name, email, phone, profileurl, role, createdat, updatedat"

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, search string) ([]*Account, int, error) {
	var (
		countQuery = `SELECT COUNT(*) FROM users.account`
		listQuery  = fmt.Sprintf(`SELECT %s FROM users.account`, accountColumns)
		args       []any
	)

	if search != "" {
		filter := ` WHERE name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1`
		countQuery += filter
		listQuery += filter
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_accounts")
	}

	listQuery += fmt.Sprintf(" ORDER BY createdat DESC LIMIT %d OFFSET %d", params.Limit, params.Offset())

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_accounts")
	}
	defer rows.Close()

	accounts := make([]*Account, 0, params.Limit)
	for rows.Next() {
		account := &Account{}
		if err := scanAccount(rows, account); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_account")
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_accounts")
	}

	return accounts, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM users.account WHERE id = $1`, accountColumns)

	account := &Account{}
	if err := scanAccount(repository.db.QueryRow(context, query, id), account); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "get_account")
	}

	return account, nil
}

func (repository *PostgresRepository) UpdateRole(context context.Context, id string, role sec.UserRole) error {
	tag, err := repository.db.Exec(context,
		"UPDATE users.account SET role = $2, updatedat = $3 WHERE id = $1",
		id, role, time.Now(),
	)
	if err != nil {
		return dberr.Wrap(err, "update_role")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

func scanAccount(row pgx.Row, account *Account) error {
	return row.Scan(
		&account.ID, &account.Name, &account.Email, &account.Phone,
		&account.ProfileURL, &account.Role,
		&account.CreatedAt, &account.UpdatedAt,
	)
}
