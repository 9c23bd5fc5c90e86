package ratingController

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"sanitrack/config"
	. "sanitrack/internal/models"
	"sanitrack/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeToiletRepo struct {
	toilets map[int]Toilet
}

func (f *fakeToiletRepo) GetByID(_ context.Context, id int) (*Toilet, error) {
	toilet, ok := f.toilets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &toilet, nil
}

func (f *fakeToiletRepo) GetActive(_ context.Context) ([]Toilet, error) { return nil, nil }
func (f *fakeToiletRepo) Create(_ context.Context, _ *Toilet) error     { return nil }
func (f *fakeToiletRepo) Update(_ context.Context, _ *Toilet) error     { return nil }
func (f *fakeToiletRepo) CountAll(_ context.Context) (int64, error)     { return 0, nil }
func (f *fakeToiletRepo) CountActive(_ context.Context) (int64, error)  { return 0, nil }

type fakeRatingRepo struct {
	ratings []Rating
	nextID  int
}

func (f *fakeRatingRepo) Create(_ context.Context, rating *Rating) error {
	f.nextID++
	rating.ID = f.nextID
	rating.CreatedAt = time.Now()
	f.ratings = append(f.ratings, *rating)
	return nil
}

func (f *fakeRatingRepo) GetByID(_ context.Context, id int) (*Rating, error) {
	for _, rating := range f.ratings {
		if rating.ID == id {
			return &rating, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRatingRepo) GetAll(_ context.Context) ([]Rating, error) { return f.ratings, nil }

func (f *fakeRatingRepo) GetByToilet(_ context.Context, toiletID int) ([]Rating, error) {
	var result []Rating
	for _, rating := range f.ratings {
		if rating.ToiletID == toiletID {
			result = append(result, rating)
		}
	}
	return result, nil
}

func (f *fakeRatingRepo) GetPageByToilet(
	_ context.Context,
	toiletID, offset, limit int,
) ([]Rating, int64, error) {
	// Newest first, same ordering the real store applies.
	var matching []Rating
	for i := len(f.ratings) - 1; i >= 0; i-- {
		if f.ratings[i].ToiletID == toiletID {
			matching = append(matching, f.ratings[i])
		}
	}

	total := int64(len(matching))
	if offset >= len(matching) {
		return []Rating{}, total, nil
	}
	end := min(offset+limit, len(matching))
	return matching[offset:end], total, nil
}

func (f *fakeRatingRepo) GetLatestByToilet(_ context.Context, _ int) (*Rating, error) {
	return nil, nil
}

func (f *fakeRatingRepo) GetAverageByToilet(_ context.Context, _ int) (float64, int64, error) {
	return 0, 0, nil
}

func (f *fakeRatingRepo) CountAll(_ context.Context) (int64, error)      { return 0, nil }
func (f *fakeRatingRepo) GlobalAverage(_ context.Context) (float64, error) { return 0, nil }
func (f *fakeRatingRepo) CountProblemToiletsSince(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func newTestController(ratingRepo *fakeRatingRepo) RatingControllerInterface {
	repos := repositories.Repository{
		Toilet: &fakeToiletRepo{toilets: map[int]Toilet{
			1: {BaseModel: BaseModel{ID: 1}, Name: "Ground Floor Men's", IsActive: true},
			2: {BaseModel: BaseModel{ID: 2}, Name: "Storage Closet", IsActive: false},
		}},
		Rating: ratingRepo,
	}
	return New(repos, nil, config.Config{})
}

func TestValidateRating(t *testing.T) {
	tests := []struct {
		name    string
		request SubmitRatingRequest
		wantErr bool
	}{
		{
			name:    "clean five star",
			request: SubmitRatingRequest{ToiletID: 1, Rating: 5},
		},
		{
			name:    "problems without other",
			request: SubmitRatingRequest{ToiletID: 1, Rating: 2, Problems: []int{1, 4}},
		},
		{
			name: "other code with text",
			request: SubmitRatingRequest{
				ToiletID: 1, Rating: 1, Problems: []int{6}, OtherText: "broken door lock",
			},
		},
		{
			name:    "score too low",
			request: SubmitRatingRequest{ToiletID: 1, Rating: 0},
			wantErr: true,
		},
		{
			name:    "score too high",
			request: SubmitRatingRequest{ToiletID: 1, Rating: 6},
			wantErr: true,
		},
		{
			name:    "unknown problem code",
			request: SubmitRatingRequest{ToiletID: 1, Rating: 3, Problems: []int{7}},
			wantErr: true,
		},
		{
			name:    "duplicate problem code",
			request: SubmitRatingRequest{ToiletID: 1, Rating: 3, Problems: []int{2, 2}},
			wantErr: true,
		},
		{
			name:    "other code without text",
			request: SubmitRatingRequest{ToiletID: 1, Rating: 1, Problems: []int{6}},
			wantErr: true,
		},
		{
			name: "other code with blank text",
			request: SubmitRatingRequest{
				ToiletID: 1, Rating: 1, Problems: []int{6}, OtherText: "   ",
			},
			wantErr: true,
		},
		{
			name: "other text without other code is allowed",
			request: SubmitRatingRequest{
				ToiletID: 1, Rating: 4, Problems: []int{1}, OtherText: "ignore me",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRating(&tt.request)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmitRejectsMissingOrInactiveToilet(t *testing.T) {
	controller := newTestController(&fakeRatingRepo{})

	_, err := controller.Submit(context.Background(), &SubmitRatingRequest{ToiletID: 99, Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = controller.Submit(context.Background(), &SubmitRatingRequest{ToiletID: 2, Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitStoresRating(t *testing.T) {
	repo := &fakeRatingRepo{}
	controller := newTestController(repo)

	rating, err := controller.Submit(context.Background(), &SubmitRatingRequest{
		ToiletID:  1,
		Rating:    2,
		Problems:  []int{1, 5},
		OtherText: "  door hinge squeaks  ",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, rating.ToiletID)
	assert.Equal(t, 2, rating.Rating)
	assert.Equal(t, 2, rating.ProblemCount())
	assert.Equal(t, "  door hinge squeaks  ", rating.OtherText,
		"note text is stored as submitted")
	assert.Len(t, repo.ratings, 1)
}

func TestClampPageParams(t *testing.T) {
	tests := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{name: "defaults", page: 0, limit: 0, wantPage: 1, wantLimit: DefaultPageLimit},
		{name: "negative page", page: -3, limit: 20, wantPage: 1, wantLimit: 20},
		{name: "limit above cap", page: 2, limit: 500, wantPage: 2, wantLimit: MaxPageLimit},
		{name: "in range", page: 4, limit: 25, wantPage: 4, wantLimit: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := clampPageParams(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name            string
		page, limit     int
		total           int64
		wantTotalPages  int
		wantHasNext     bool
		wantHasPrevious bool
	}{
		{name: "empty store", page: 1, limit: 10, total: 0},
		{
			name: "first of three", page: 1, limit: 10, total: 25,
			wantTotalPages: 3, wantHasNext: true,
		},
		{
			name: "middle page", page: 2, limit: 10, total: 25,
			wantTotalPages: 3, wantHasNext: true, wantHasPrevious: true,
		},
		{
			name: "last partial page", page: 3, limit: 10, total: 25,
			wantTotalPages: 3, wantHasPrevious: true,
		},
		{
			name: "page past the end", page: 4, limit: 10, total: 25,
			wantTotalPages: 3, wantHasPrevious: true,
		},
		{
			name: "exact multiple", page: 2, limit: 5, total: 10,
			wantTotalPages: 2, wantHasPrevious: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pagination := NewPagination(tt.page, tt.limit, tt.total)

			assert.Equal(t, tt.page, pagination.Page)
			assert.Equal(t, tt.limit, pagination.Limit)
			assert.Equal(t, tt.total, pagination.TotalCount)
			assert.Equal(t, tt.wantTotalPages, pagination.TotalPages)
			assert.Equal(t, tt.wantHasNext, pagination.HasNext)
			assert.Equal(t, tt.wantHasPrevious, pagination.HasPrevious)
		})
	}
}

func TestGetPageByToiletWalksAllPages(t *testing.T) {
	repo := &fakeRatingRepo{}
	controller := newTestController(repo)

	for i := range 25 {
		_, err := controller.Submit(context.Background(), &SubmitRatingRequest{
			ToiletID: 1,
			Rating:   (i % 5) + 1,
		})
		require.NoError(t, err)
	}

	seen := 0
	for page := 1; page <= 3; page++ {
		result, err := controller.GetPageByToilet(context.Background(), 1, page, 10)
		require.NoError(t, err)

		seen += len(result.Ratings)
		assert.Equal(t, int64(25), result.Pagination.TotalCount)
		assert.Equal(t, page < 3, result.Pagination.HasNext)
	}
	assert.Equal(t, 25, seen)

	// A page past the end is an empty page, not an error.
	beyond, err := controller.GetPageByToilet(context.Background(), 1, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond.Ratings)
	assert.False(t, beyond.Pagination.HasNext)
	assert.True(t, beyond.Pagination.HasPrevious)
}

func TestGetPageByToiletRequiresToilet(t *testing.T) {
	controller := newTestController(&fakeRatingRepo{})

	_, err := controller.GetPageByToilet(context.Background(), 99, 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRatingPageFieldsAreTopLevel(t *testing.T) {
	page := RatingPage{
		Ratings:    []Rating{},
		Pagination: NewPagination(2, 10, 25),
	}

	data, err := json.Marshal(page)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))

	// Clients read the page metadata directly off the payload, not from a
	// nested object.
	for _, field := range []string{
		"page", "limit", "total_count", "total_pages", "has_next", "has_previous",
	} {
		assert.Contains(t, payload, field)
	}
	assert.EqualValues(t, 2, payload["page"])
	assert.EqualValues(t, 3, payload["total_pages"])
	assert.EqualValues(t, true, payload["has_next"])
}
