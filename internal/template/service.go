// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package template

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/steph2pro/millearnia/internal/platform/apperr"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// TemplateInput holds the mutable fields of a template.
type TemplateInput struct {
	Name            string
	PreviewImageURL string
	Options         json.RawMessage
}

func (service *Service) List(context context.Context) ([]*Template, error) {
	return service.repo.List(context)
}

func (service *Service) Get(context context.Context, id int) (*Template, error) {
	return service.repo.GetByID(context, id)
}

func (service *Service) Create(context context.Context, input TemplateInput) (*Template, error) {
	options, err := normalizeOptions(input.Options)
	if err != nil {
		return nil, err
	}

	template := &Template{
		Name:            input.Name,
		PreviewImageURL: input.PreviewImageURL,
		Options:         options,
	}

	if err := service.repo.Create(context, template); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "template_created", slog.Int("id", template.ID))

	return template, nil
}

func (service *Service) Update(context context.Context, id int, input TemplateInput) (*Template, error) {
	template, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	options, err := normalizeOptions(input.Options)
	if err != nil {
		return nil, err
	}

	template.Name = input.Name
	template.PreviewImageURL = input.PreviewImageURL
	template.Options = options

	if err := service.repo.Update(context, template); err != nil {
		return nil, err
	}

	return template, nil
}

func (service *Service) Delete(context context.Context, id int) error {
	return service.repo.Delete(context, id)
}

// normalizeOptions validates the opaque options payload. Empty input is
// stored as an empty JSON object so clients never see null.
func normalizeOptions(options json.RawMessage) (json.RawMessage, error) {
	if len(options) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(options) {
		return nil, apperr.ValidationError("Options must be valid JSON")
	}
	return options, nil
}
