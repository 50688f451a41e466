// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

package profession

import (
	"context"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steph2pro/millearnia/internal/interest"
	"github.com/steph2pro/millearnia/internal/platform/apperr"
	"github.com/steph2pro/millearnia/pkg/pagination"
)

// # Fakes

type memoryCategoryRepository struct {
	nextID     int
	categories map[int]*Category
}

func newMemoryCategoryRepository() *memoryCategoryRepository {
	return &memoryCategoryRepository{nextID: 1, categories: map[int]*Category{}}
}

func (repository *memoryCategoryRepository) List(context.Context) ([]*Category, error) {
	var all []*Category
	for _, category := range repository.categories {
		all = append(all, category)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (repository *memoryCategoryRepository) GetByID(_ context.Context, id int) (*Category, error) {
	category, ok := repository.categories[id]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	return category, nil
}

func (repository *memoryCategoryRepository) Create(_ context.Context, category *Category) error {
	category.ID = repository.nextID
	repository.nextID++
	repository.categories[category.ID] = category
	return nil
}

type memoryProfessionRepository struct {
	nextID      int
	professions map[int]*Profession
	links       map[int][]int
}

func newMemoryProfessionRepository() *memoryProfessionRepository {
	return &memoryProfessionRepository{nextID: 1, professions: map[int]*Profession{}, links: map[int][]int{}}
}

func (repository *memoryProfessionRepository) List(_ context.Context, params pagination.Params) ([]*Profession, int, error) {
	var all []*Profession
	for _, profession := range repository.professions {
		all = append(all, profession)
	}
	return all, len(all), nil
}

func (repository *memoryProfessionRepository) GetByID(_ context.Context, id int) (*Profession, error) {
	profession, ok := repository.professions[id]
	if !ok {
		return nil, apperr.NotFound("Profession")
	}
	copied := *profession
	return &copied, nil
}

func (repository *memoryProfessionRepository) ListByCategory(_ context.Context, categoryID int) ([]*Profession, error) {
	var result []*Profession
	for _, profession := range repository.professions {
		if profession.CategoryID == categoryID {
			result = append(result, profession)
		}
	}
	return result, nil
}

func (repository *memoryProfessionRepository) ListByInterests(_ context.Context, interestIDs []int) ([]*Profession, error) {
	wanted := map[int]bool{}
	for _, id := range interestIDs {
		wanted[id] = true
	}

	type scored struct {
		profession *Profession
		overlap    int
	}
	var matches []scored
	for id, profession := range repository.professions {
		overlap := 0
		for _, interestID := range repository.links[id] {
			if wanted[interestID] {
				overlap++
			}
		}
		if overlap > 0 {
			matches = append(matches, scored{profession, overlap})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].overlap != matches[j].overlap {
			return matches[i].overlap > matches[j].overlap
		}
		return matches[i].profession.Name < matches[j].profession.Name
	})

	result := make([]*Profession, len(matches))
	for i, match := range matches {
		result[i] = match.profession
	}
	return result, nil
}

func (repository *memoryProfessionRepository) Create(_ context.Context, profession *Profession, interestIDs []int) error {
	profession.ID = repository.nextID
	repository.nextID++
	copied := *profession
	repository.professions[profession.ID] = &copied
	repository.links[profession.ID] = interestIDs
	return nil
}

func (repository *memoryProfessionRepository) Update(_ context.Context, profession *Profession, interestIDs []int) error {
	if _, ok := repository.professions[profession.ID]; !ok {
		return apperr.NotFound("Profession")
	}
	copied := *profession
	repository.professions[profession.ID] = &copied
	repository.links[profession.ID] = interestIDs
	return nil
}

func (repository *memoryProfessionRepository) Delete(_ context.Context, id int) error {
	if _, ok := repository.professions[id]; !ok {
		return apperr.NotFound("Profession")
	}
	delete(repository.professions, id)
	delete(repository.links, id)
	return nil
}

type memoryVideoRepository struct {
	nextVideoID   int
	nextCommentID int
	videos        map[int]*Video
	comments      map[int]*Comment
}

func newMemoryVideoRepository() *memoryVideoRepository {
	return &memoryVideoRepository{
		nextVideoID:   1,
		nextCommentID: 1,
		videos:        map[int]*Video{},
		comments:      map[int]*Comment{},
	}
}

func (repository *memoryVideoRepository) CreateVideo(_ context.Context, video *Video) error {
	video.ID = repository.nextVideoID
	repository.nextVideoID++
	copied := *video
	repository.videos[video.ID] = &copied
	return nil
}

func (repository *memoryVideoRepository) GetVideoByID(_ context.Context, id int) (*Video, error) {
	video, ok := repository.videos[id]
	if !ok {
		return nil, apperr.NotFound("Video")
	}
	copied := *video
	return &copied, nil
}

func (repository *memoryVideoRepository) ListVideosByProfession(_ context.Context, professionID int) ([]*Video, error) {
	result := make([]*Video, 0)
	for _, video := range repository.videos {
		if video.ProfessionID == professionID {
			result = append(result, video)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (repository *memoryVideoRepository) DeleteVideo(_ context.Context, id int) error {
	if _, ok := repository.videos[id]; !ok {
		return apperr.NotFound("Video")
	}
	delete(repository.videos, id)
	return nil
}

func (repository *memoryVideoRepository) CreateComment(_ context.Context, comment *Comment) error {
	comment.ID = repository.nextCommentID
	repository.nextCommentID++
	copied := *comment
	repository.comments[comment.ID] = &copied
	return nil
}

func (repository *memoryVideoRepository) GetCommentByID(_ context.Context, id int) (*Comment, error) {
	comment, ok := repository.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	copied := *comment
	return &copied, nil
}

func (repository *memoryVideoRepository) ListCommentsByVideo(_ context.Context, videoID int) ([]*Comment, error) {
	result := make([]*Comment, 0)
	for _, comment := range repository.comments {
		if comment.VideoID == videoID {
			result = append(result, comment)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type memoryInterestRepository struct {
	known  map[int]*interest.Interest
	byUser map[string][]int
}

func (repository *memoryInterestRepository) List(context.Context) ([]*interest.Interest, error) {
	return nil, nil
}

func (repository *memoryInterestRepository) GetByID(context.Context, int) (*interest.Interest, error) {
	return nil, apperr.NotFound("Interest")
}

func (repository *memoryInterestRepository) Create(context.Context, *interest.Interest) error { return nil }
func (repository *memoryInterestRepository) Update(context.Context, *interest.Interest) error { return nil }
func (repository *memoryInterestRepository) Delete(context.Context, int) error                { return nil }

func (repository *memoryInterestRepository) ExistAll(_ context.Context, ids []int) (bool, error) {
	for _, id := range ids {
		if _, ok := repository.known[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func (repository *memoryInterestRepository) AttachToUser(context.Context, string, []int) error {
	return nil
}

func (repository *memoryInterestRepository) ListByUser(_ context.Context, userID string) ([]*interest.Interest, error) {
	var result []*interest.Interest
	for _, id := range repository.byUser[userID] {
		result = append(result, repository.known[id])
	}
	return result, nil
}

type testEnv struct {
	service    *Service
	categories *memoryCategoryRepository
	videos     *memoryVideoRepository
	interests  *memoryInterestRepository
}

func newTestEnv() *testEnv {
	categories := newMemoryCategoryRepository()
	videos := newMemoryVideoRepository()
	interests := &memoryInterestRepository{
		known: map[int]*interest.Interest{
			1: {ID: 1, Name: "Web Development", Slug: "web-development"},
			2: {ID: 2, Name: "Design", Slug: "design"},
			3: {ID: 3, Name: "Data Science", Slug: "data-science"},
		},
		byUser: map[string][]int{},
	}
	service := NewService(newMemoryProfessionRepository(), categories, videos, interests, slog.Default())
	return &testEnv{service: service, categories: categories, videos: videos, interests: interests}
}

func (env *testEnv) seedCategory(t *testing.T, name string) *Category {
	t.Helper()
	category, err := env.service.CreateCategory(context.Background(), name)
	require.NoError(t, err)
	return category
}

// # Tests

func TestCreate_RequiresExistingCategory(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.Create(context.Background(), ProfessionInput{
		Name:        "Web Developer",
		CategoryID:  42,
		InterestIDs: []int{1},
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestCreate_RequiresAtLeastOneInterest(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory(t, "Technology")

	_, err := env.service.Create(context.Background(), ProfessionInput{
		Name:       "Web Developer",
		CategoryID: category.ID,
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestCreate_RejectsUnknownInterest(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory(t, "Technology")

	_, err := env.service.Create(context.Background(), ProfessionInput{
		Name:        "Web Developer",
		CategoryID:  category.ID,
		InterestIDs: []int{99},
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestCreate_SlugsName(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory(t, "Technology")

	profession, err := env.service.Create(context.Background(), ProfessionInput{
		Name:        "Développeur Web",
		CategoryID:  category.ID,
		InterestIDs: []int{1},
	})
	require.NoError(t, err)
	assert.Equal(t, "developpeur-web", profession.Slug)
}

func TestRecommend_MatchesUserInterests(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory(t, "Technology")

	webDev, err := env.service.Create(context.Background(), ProfessionInput{
		Name: "Web Developer", CategoryID: category.ID, InterestIDs: []int{1, 2},
	})
	require.NoError(t, err)
	_, err = env.service.Create(context.Background(), ProfessionInput{
		Name: "Data Analyst", CategoryID: category.ID, InterestIDs: []int{3},
	})
	require.NoError(t, err)
	designer, err := env.service.Create(context.Background(), ProfessionInput{
		Name: "UX Designer", CategoryID: category.ID, InterestIDs: []int{2},
	})
	require.NoError(t, err)

	// The user follows web-development and design
	env.interests.byUser["user-1"] = []int{1, 2}

	recommended, err := env.service.Recommend(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, recommended, 2)

	// Double overlap ranks the web developer first
	assert.Equal(t, webDev.ID, recommended[0].ID)
	assert.Equal(t, designer.ID, recommended[1].ID)
}

func TestRecommend_NoInterestsIsEmpty(t *testing.T) {
	env := newTestEnv()

	recommended, err := env.service.Recommend(context.Background(), "user-without-interests")
	require.NoError(t, err)
	assert.Empty(t, recommended)
}

func TestMatch_DeduplicatesAndRanks(t *testing.T) {
	env := newTestEnv()
	category := env.seedCategory(t, "Technology")

	webDev, err := env.service.Create(context.Background(), ProfessionInput{
		Name: "Web Developer", CategoryID: category.ID, InterestIDs: []int{1, 2},
	})
	require.NoError(t, err)

	matched, err := env.service.Match(context.Background(), []int{1, 1, 2})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, webDev.ID, matched[0].ID)

	empty, err := env.service.Match(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListByCategory_UnknownCategory(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.ListByCategory(context.Background(), 7)
	require.Error(t, err)
}

// # Videos & Comments

func (env *testEnv) seedProfession(t *testing.T, name string) *Profession {
	t.Helper()
	category := env.seedCategory(t, name+" careers")
	profession, err := env.service.Create(context.Background(), ProfessionInput{
		Name: name, CategoryID: category.ID, InterestIDs: []int{1},
	})
	require.NoError(t, err)
	return profession
}

func TestAddVideo_RequiresExistingProfession(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.AddVideo(context.Background(), 42, VideoInput{
		Title: "A day as a web developer", YoutubeID: "dQw4w9WgXcQ",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestVideoCommentThread(t *testing.T) {
	env := newTestEnv()
	profession := env.seedProfession(t, "Web Developer")

	video, err := env.service.AddVideo(context.Background(), profession.ID, VideoInput{
		Title: "A day as a web developer", YoutubeID: "dQw4w9WgXcQ",
	})
	require.NoError(t, err)

	videos, err := env.service.ListVideos(context.Background(), profession.ID)
	require.NoError(t, err)
	require.Len(t, videos, 1)

	top, err := env.service.AddComment(context.Background(), video.ID, "user-1", "Great overview!", nil)
	require.NoError(t, err)

	reply, err := env.service.AddComment(context.Background(), video.ID, "user-2", "Agreed.", &top.ID)
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, top.ID, *reply.ParentID)

	comments, err := env.service.ListComments(context.Background(), video.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestAddComment_UnknownVideo(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.AddComment(context.Background(), 99, "user-1", "Hello?", nil)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestAddComment_ParentMustShareVideo(t *testing.T) {
	env := newTestEnv()
	profession := env.seedProfession(t, "Web Developer")

	first, err := env.service.AddVideo(context.Background(), profession.ID, VideoInput{
		Title: "Part one", YoutubeID: "aaaaaaaaaaa",
	})
	require.NoError(t, err)
	second, err := env.service.AddVideo(context.Background(), profession.ID, VideoInput{
		Title: "Part two", YoutubeID: "bbbbbbbbbbb",
	})
	require.NoError(t, err)

	comment, err := env.service.AddComment(context.Background(), first.ID, "user-1", "On part one", nil)
	require.NoError(t, err)

	// Replying on the wrong video is rejected
	_, err = env.service.AddComment(context.Background(), second.ID, "user-2", "Misplaced reply", &comment.ID)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}
