// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package template

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/steph2pro/millearnia/internal/platform/middleware"
	requestutil "github.com/steph2pro/millearnia/internal/platform/request"
	"github.com/steph2pro/millearnia/internal/platform/respond"
	"github.com/steph2pro/millearnia/internal/platform/sec"
	"github.com/steph2pro/millearnia/internal/platform/validate"
	"github.com/steph2pro/millearnia/pkg/convert"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Members browse the catalog
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", handler.list)
		r.Get("/{id}", handler.get)
	})

	// Catalog management
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

type upsertRequest struct {
	Name            string          `json:"name"`
	PreviewImageURL string          `json:"preview_image_url"`
	Options         json.RawMessage `json:"options"`
}

func (input upsertRequest) validate() error {
	v := &validate.Validator{}
	v.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 120)
	return v.Err()
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	templates, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, templates)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := convert.ToIntD(requestutil.ID(request, "id"), 0)

	template, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, template)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input upsertRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	template, err := handler.service.Create(request.Context(), TemplateInput{
		Name:            input.Name,
		PreviewImageURL: input.PreviewImageURL,
		Options:         input.Options,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, template)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := convert.ToIntD(requestutil.ID(request, "id"), 0)

	var input upsertRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	template, err := handler.service.Update(request.Context(), id, TemplateInput{
		Name:            input.Name,
		PreviewImageURL: input.PreviewImageURL,
		Options:         input.Options,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, template)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := convert.ToIntD(requestutil.ID(request, "id"), 0)

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
