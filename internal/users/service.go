// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package users

import (
	"context"
	"log/slog"
	"strings"

	"github.com/steph2pro/millearnia/internal/platform/apperr"
	"github.com/steph2pro/millearnia/internal/platform/sec"
	"github.com/steph2pro/millearnia/pkg/pagination"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) List(context context.Context, params pagination.Params, search string) ([]*Account, pagination.Meta, error) {
	accounts, total, err := service.repo.List(context, params, strings.TrimSpace(search))
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return accounts, pagination.NewMeta(params.Page, params.Limit, total), nil
}

func (service *Service) Get(context context.Context, id string) (*Account, error) {
	return service.repo.GetByID(context, id)
}

// ChangeRole promotes or demotes an account. An admin cannot change their own
// role: it prevents the last admin from locking everyone out.
func (service *Service) ChangeRole(context context.Context, actorID, targetID string, role sec.UserRole) (*Account, error) {
	if actorID == targetID {
		return nil, apperr.ValidationError("You cannot change your own role")
	}

	if _, err := service.repo.GetByID(context, targetID); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateRole(context, targetID, role); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "role_changed",
		slog.String("actor_id", actorID),
		slog.String("target_id", targetID),
		slog.String("role", string(role)),
	)

	return service.repo.GetByID(context, targetID)
}
