// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package interest

import (
	"context"
	"log/slog"

	"github.com/steph2pro/millearnia/internal/platform/apperr"
	"github.com/steph2pro/millearnia/pkg/slice"
	"github.com/steph2pro/millearnia/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) List(context context.Context) ([]*Interest, error) {
	return service.repo.List(context)
}

func (service *Service) Get(context context.Context, id int) (*Interest, error) {
	return service.repo.GetByID(context, id)
}

// Create adds a new interest to the catalog, deriving its slug from the name.
func (service *Service) Create(context context.Context, name string) (*Interest, error) {
	interest := &Interest{
		Name: name,
		Slug: slug.From(name),
	}

	if err := service.repo.Create(context, interest); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "interest_created",
		slog.Int("id", interest.ID),
		slog.String("slug", interest.Slug),
	)

	return interest, nil
}

func (service *Service) Update(context context.Context, id int, name string) (*Interest, error) {
	interest, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	interest.Name = name
	interest.Slug = slug.From(name)

	if err := service.repo.Update(context, interest); err != nil {
		return nil, err
	}

	return interest, nil
}

func (service *Service) Delete(context context.Context, id int) error {
	return service.repo.Delete(context, id)
}

// AddToUser links interests to a user's profile.
//
// Duplicate IDs in the input are collapsed, and IDs the user already follows
// are ignored by the store, so the call is idempotent.
func (service *Service) AddToUser(context context.Context, userID string, ids []int) ([]*Interest, error) {
	unique := slice.Unique(ids)
	if len(unique) == 0 {
		return nil, apperr.ValidationError("At least one interest is required")
	}

	exists, err := service.repo.ExistAll(context, unique)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Interest")
	}

	if err := service.repo.AttachToUser(context, userID, unique); err != nil {
		return nil, err
	}

	return service.repo.ListByUser(context, userID)
}

func (service *Service) ListByUser(context context.Context, userID string) ([]*Interest, error) {
	return service.repo.ListByUser(context, userID)
}
