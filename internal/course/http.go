// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package course

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/steph2pro/millearnia/internal/platform/middleware"
	requestutil "github.com/steph2pro/millearnia/internal/platform/request"
	"github.com/steph2pro/millearnia/internal/platform/respond"
	"github.com/steph2pro/millearnia/internal/platform/sec"
	"github.com/steph2pro/millearnia/internal/platform/validate"
	"github.com/steph2pro/millearnia/pkg/convert"
	"github.com/steph2pro/millearnia/pkg/pagination"
	"github.com/steph2pro/millearnia/pkg/pointer"
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
	router.Get("/by-slug/{slug}", handler.getBySlug)

	// Member endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.listMine)
		r.Post("/{id}/enroll", handler.enroll)
		r.Patch("/{id}/progress", handler.updateProgress)
	})

	// Catalog management
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleMentor))
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

type upsertRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	VideoURL     string `json:"video_url"`
	InterestIDs  []int  `json:"interest_ids"`
}

func (input upsertRequest) validate() error {
	v := &validate.Validator{}
	v.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 160)
	v.MaxLen(FieldDescription, input.Description, 5000)
	return v.Err()
}

// Progress is a pointer so that a missing field is distinguishable from an
// explicit reset to zero.
type progressRequest struct {
	Progress *int `json:"progress"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	interestID := convert.ToIntD(request.URL.Query().Get("interest_id"), 0)

	courses, meta, err := handler.service.List(request.Context(), params, interestID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, courses, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := convert.ToIntD(requestutil.ID(request, "id"), 0)

	course, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, course)
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	course, err := handler.service.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, course)
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

	// The authenticated mentor owns the course
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.Create(request.Context(), CourseInput{
		Title:        input.Title,
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		VideoURL:     input.VideoURL,
		MentorID:     userID,
		InterestIDs:  input.InterestIDs,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, course)
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

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.service.Update(request.Context(), id, CourseInput{
		Title:        input.Title,
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		VideoURL:     input.VideoURL,
		MentorID:     userID,
		InterestIDs:  input.InterestIDs,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, course)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := convert.ToIntD(requestutil.ID(request, "id"), 0)

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) enroll(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	courseID := convert.ToIntD(requestutil.ID(request, "id"), 0)

	enrollment, err := handler.service.Enroll(request.Context(), userID, courseID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, enrollment)
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	enrollments, err := handler.service.ListUserCourses(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, enrollments)
}

func (handler *Handler) updateProgress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	courseID := convert.ToIntD(requestutil.ID(request, "id"), 0)

	var input progressRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Progress == nil {
		respond.Error(writer, request, validate.RequiredError(FieldProgress, "This field is required"))
		return
	}

	enrollment, err := handler.service.UpdateProgress(request.Context(), userID, courseID, pointer.Val(input.Progress))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, enrollment)
}
