// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package interest

import (
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

	// Public catalog
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// Member endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.listMine)
		r.Post("/me", handler.addToMe)
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
	Name string `json:"name"`
}

type addToUserRequest struct {
	InterestIDs []int `json:"interest_ids"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	interests, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, interests)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := convert.ToIntD(requestutil.ID(request, "id"), 0)

	interest, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, interest)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input upsertRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 80)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	interest, err := handler.service.Create(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, interest)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := convert.ToIntD(requestutil.ID(request, "id"), 0)

	var input upsertRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 80)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	interest, err := handler.service.Update(request.Context(), id, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, interest)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := convert.ToIntD(requestutil.ID(request, "id"), 0)

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	interests, err := handler.service.ListByUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, interests)
}

func (handler *Handler) addToMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addToUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	interests, err := handler.service.AddToUser(request.Context(), userID, input.InterestIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, interests)
}
