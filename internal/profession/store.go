// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package profession

import (
	"context"

	"github.com/steph2pro/millearnia/pkg/pagination"
)

// CategoryRepository defines the data access contract for profession categories.
type CategoryRepository interface {
	List(context context.Context) ([]*Category, error)
	GetByID(context context.Context, id int) (*Category, error)
	Create(context context.Context, category *Category) error
}

// Repository defines the data access contract for the profession catalog.
type Repository interface {
	List(context context.Context, params pagination.Params) ([]*Profession, int, error)
	GetByID(context context.Context, id int) (*Profession, error)
	ListByCategory(context context.Context, categoryID int) ([]*Profession, error)
	Create(context context.Context, profession *Profession, interestIDs []int) error
	Update(context context.Context, profession *Profession, interestIDs []int) error
	Delete(context context.Context, id int) error

	// ListByInterests returns the professions tagged with at least one of the
	// given interests, most overlapping first.
	ListByInterests(context context.Context, interestIDs []int) ([]*Profession, error)
}

// VideoRepository defines the data access contract for profession videos and
// their comment threads.
type VideoRepository interface {
	CreateVideo(context context.Context, video *Video) error
	GetVideoByID(context context.Context, id int) (*Video, error)
	ListVideosByProfession(context context.Context, professionID int) ([]*Video, error)
	DeleteVideo(context context.Context, id int) error

	CreateComment(context context.Context, comment *Comment) error
	GetCommentByID(context context.Context, id int) (*Comment, error)
	ListCommentsByVideo(context context.Context, videoID int) ([]*Comment, error)
}
