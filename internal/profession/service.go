// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package profession

import (
	"context"
	"log/slog"

	"github.com/steph2pro/millearnia/internal/interest"
	"github.com/steph2pro/millearnia/internal/platform/apperr"
	"github.com/steph2pro/millearnia/pkg/pagination"
	"github.com/steph2pro/millearnia/pkg/slice"
	"github.com/steph2pro/millearnia/pkg/slug"
)

type Service struct {
	repo         Repository
	categories   CategoryRepository
	videos       VideoRepository
	interestRepo interest.Repository
	logger       *slog.Logger
}

func NewService(repo Repository, categories CategoryRepository, videos VideoRepository, interestRepo interest.Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		categories:   categories,
		videos:       videos,
		interestRepo: interestRepo,
		logger:       logger,
	}
}

// # Categories

func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	return service.categories.List(context)
}

func (service *Service) CreateCategory(context context.Context, name string) (*Category, error) {
	category := &Category{Name: name, Slug: slug.From(name)}
	if err := service.categories.Create(context, category); err != nil {
		return nil, err
	}
	return category, nil
}

// # Professions

// ProfessionInput holds the mutable fields of a profession.
type ProfessionInput struct {
	Name        string
	Description string
	ImageURL    string
	CategoryID  int
	InterestIDs []int
}

func (service *Service) List(context context.Context, params pagination.Params) ([]*Profession, pagination.Meta, error) {
	professions, total, err := service.repo.List(context, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return professions, pagination.NewMeta(params.Page, params.Limit, total), nil
}

func (service *Service) Get(context context.Context, id int) (*Profession, error) {
	return service.repo.GetByID(context, id)
}

func (service *Service) ListByCategory(context context.Context, categoryID int) ([]*Profession, error) {
	if _, err := service.categories.GetByID(context, categoryID); err != nil {
		return nil, err
	}
	return service.repo.ListByCategory(context, categoryID)
}

func (service *Service) Create(context context.Context, input ProfessionInput) (*Profession, error) {
	interestIDs, err := service.checkInput(context, input)
	if err != nil {
		return nil, err
	}

	profession := &Profession{
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
	}

	if err := service.repo.Create(context, profession, interestIDs); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "profession_created",
		slog.Int("id", profession.ID),
		slog.String("slug", profession.Slug),
	)

	return service.repo.GetByID(context, profession.ID)
}

func (service *Service) Update(context context.Context, id int, input ProfessionInput) (*Profession, error) {
	profession, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	interestIDs, err := service.checkInput(context, input)
	if err != nil {
		return nil, err
	}

	profession.Name = input.Name
	profession.Slug = slug.From(input.Name)
	profession.Description = input.Description
	profession.ImageURL = input.ImageURL
	profession.CategoryID = input.CategoryID

	if err := service.repo.Update(context, profession, interestIDs); err != nil {
		return nil, err
	}

	return service.repo.GetByID(context, id)
}

func (service *Service) Delete(context context.Context, id int) error {
	return service.repo.Delete(context, id)
}

// checkInput verifies the category exists and that the profession is tagged
// with at least one known interest. Untagged professions would never surface
// in recommendations.
func (service *Service) checkInput(context context.Context, input ProfessionInput) ([]int, error) {
	if _, err := service.categories.GetByID(context, input.CategoryID); err != nil {
		return nil, err
	}

	interestIDs := slice.Unique(input.InterestIDs)
	if len(interestIDs) == 0 {
		return nil, apperr.ValidationError("At least one interest is required")
	}

	exists, err := service.interestRepo.ExistAll(context, interestIDs)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Interest")
	}

	return interestIDs, nil
}

// # Videos

// VideoInput holds the mutable fields of a profession video.
type VideoInput struct {
	Title        string
	YoutubeID    string
	ThumbnailURL string
}

func (service *Service) AddVideo(context context.Context, professionID int, input VideoInput) (*Video, error) {
	if _, err := service.repo.GetByID(context, professionID); err != nil {
		return nil, err
	}

	video := &Video{
		ProfessionID: professionID,
		Title:        input.Title,
		YoutubeID:    input.YoutubeID,
		ThumbnailURL: input.ThumbnailURL,
	}

	if err := service.videos.CreateVideo(context, video); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "profession_video_added",
		slog.Int("profession_id", professionID),
		slog.Int("video_id", video.ID),
	)

	return video, nil
}

func (service *Service) ListVideos(context context.Context, professionID int) ([]*Video, error) {
	if _, err := service.repo.GetByID(context, professionID); err != nil {
		return nil, err
	}
	return service.videos.ListVideosByProfession(context, professionID)
}

func (service *Service) DeleteVideo(context context.Context, id int) error {
	return service.videos.DeleteVideo(context, id)
}

// # Comments

// AddComment posts a comment on a video, optionally as a reply. A reply's
// parent must be a comment on the same video.
func (service *Service) AddComment(context context.Context, videoID int, userID, content string, parentID *int) (*Comment, error) {
	if _, err := service.videos.GetVideoByID(context, videoID); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := service.videos.GetCommentByID(context, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.VideoID != videoID {
			return nil, apperr.ValidationError("The parent comment belongs to another video")
		}
	}

	comment := &Comment{
		VideoID:  videoID,
		UserID:   userID,
		ParentID: parentID,
		Content:  content,
	}

	if err := service.videos.CreateComment(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (service *Service) ListComments(context context.Context, videoID int) ([]*Comment, error) {
	if _, err := service.videos.GetVideoByID(context, videoID); err != nil {
		return nil, err
	}
	return service.videos.ListCommentsByVideo(context, videoID)
}

// # Recommendations

// Match returns the professions tagged with any of the given interests,
// best overlap first. Used by anonymous visitors exploring careers before
// creating an account.
func (service *Service) Match(context context.Context, interestIDs []int) ([]*Profession, error) {
	interestIDs = slice.Unique(interestIDs)
	if len(interestIDs) == 0 {
		return []*Profession{}, nil
	}
	return service.repo.ListByInterests(context, interestIDs)
}

// Recommend returns the professions matching the interests the user follows.
// A user with no interests gets an empty list, not an error.
func (service *Service) Recommend(context context.Context, userID string) ([]*Profession, error) {
	interests, err := service.interestRepo.ListByUser(context, userID)
	if err != nil {
		return nil, err
	}
	if len(interests) == 0 {
		return []*Profession{}, nil
	}

	interestIDs := slice.Map(interests, func(item *interest.Interest) int { return item.ID })

	return service.repo.ListByInterests(context, interestIDs)
}
