// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package profession

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
	"github.com/steph2pro/millearnia/pkg/query"
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
	router.Get("/match", handler.match)
	router.Get("/categories", handler.listCategories)
	router.Get("/categories/{id}", handler.listByCategory)
	router.Get("/{id}/videos", handler.listVideos)
	router.Get("/videos/{id}/comments", handler.listComments)

	// Member endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/recommended", handler.recommend)
		r.Post("/videos/{id}/comments", handler.addComment)
	})

	// Catalog management
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
		r.Post("/categories", handler.createCategory)
		r.Post("/{id}/videos", handler.addVideo)
		r.Delete("/videos/{id}", handler.deleteVideo)
	})

	return router
}

type categoryRequest struct {
	Name string `json:"name"`
}

type upsertRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	CategoryID  int    `json:"category_id"`
	InterestIDs []int  `json:"interest_ids"`
}

func (input upsertRequest) validate() error {
	v := &validate.Validator{}
	v.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 120)
	v.MaxLen(FieldDescription, input.Description, 5000)
	v.Custom(FieldCategory, input.CategoryID <= 0, "A valid category is required")
	return v.Err()
}

func (input upsertRequest) toInput() ProfessionInput {
	return ProfessionInput{
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
		InterestIDs: input.InterestIDs,
	}
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	professions, meta, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, professions, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := convert.ToIntD(requestutil.ID(request, "id"), 0)

	profession, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profession)
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) listByCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID := convert.ToIntD(requestutil.ID(request, "id"), 0)

	professions, err := handler.service.ListByCategory(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, professions)
}

func (handler *Handler) match(writer http.ResponseWriter, request *http.Request) {
	// ?interests=1,2,3 — invalid entries are silently dropped
	interestIDs := query.IntSlice(query.StringSlice(request.URL.Query().Get("interests")))

	professions, err := handler.service.Match(request.Context(), interestIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, professions)
}

func (handler *Handler) recommend(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	professions, err := handler.service.Recommend(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, professions)
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

	profession, err := handler.service.Create(request.Context(), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, profession)
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

	profession, err := handler.service.Update(request.Context(), id, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profession)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := convert.ToIntD(requestutil.ID(request, "id"), 0)

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

type videoRequest struct {
	Title        string `json:"title"`
	YoutubeID    string `json:"youtube_id"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type commentRequest struct {
	Content  string `json:"content"`
	ParentID *int   `json:"parent_id"`
}

func (handler *Handler) listVideos(writer http.ResponseWriter, request *http.Request) {
	professionID := convert.ToIntD(requestutil.ID(request, "id"), 0)

	videos, err := handler.service.ListVideos(request.Context(), professionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, videos)
}

func (handler *Handler) addVideo(writer http.ResponseWriter, request *http.Request) {
	professionID := convert.ToIntD(requestutil.ID(request, "id"), 0)

	var input videoRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 160)
	v.Required(FieldYoutubeID, input.YoutubeID).MaxLen(FieldYoutubeID, input.YoutubeID, 32)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.AddVideo(request.Context(), professionID, VideoInput{
		Title:        input.Title,
		YoutubeID:    input.YoutubeID,
		ThumbnailURL: input.ThumbnailURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, video)
}

func (handler *Handler) deleteVideo(writer http.ResponseWriter, request *http.Request) {
	id := convert.ToIntD(requestutil.ID(request, "id"), 0)

	if err := handler.service.DeleteVideo(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	videoID := convert.ToIntD(requestutil.ID(request, "id"), 0)

	comments, err := handler.service.ListComments(request.Context(), videoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}

func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	videoID := convert.ToIntD(requestutil.ID(request, "id"), 0)

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldContent, input.Content).MaxLen(FieldContent, input.Content, 2000)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.AddComment(request.Context(), videoID, userID, input.Content, input.ParentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 120)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, category)
}
