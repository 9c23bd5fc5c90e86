package statusController

import (
	"context"
	"testing"
	"time"

	"sanitrack/config"
	"sanitrack/internal/database"
	. "sanitrack/internal/models"
	"sanitrack/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeToiletRepo struct {
	repositories.ToiletRepository
	toilets map[int]Toilet
}

func (f *fakeToiletRepo) GetByID(_ context.Context, id int) (*Toilet, error) {
	toilet, ok := f.toilets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &toilet, nil
}

func (f *fakeToiletRepo) GetActive(_ context.Context) ([]Toilet, error) {
	var active []Toilet
	for _, toilet := range f.toilets {
		if toilet.IsActive {
			active = append(active, toilet)
		}
	}
	return active, nil
}

type fakeRatingRepo struct {
	repositories.RatingRepository
	latest  *Rating
	average float64
	total   int64
}

func (f *fakeRatingRepo) GetLatestByToilet(_ context.Context, _ int) (*Rating, error) {
	return f.latest, nil
}

func (f *fakeRatingRepo) GetAverageByToilet(_ context.Context, _ int) (float64, int64, error) {
	return f.average, f.total, nil
}

type fakeTaskRepo struct {
	repositories.CleaningTaskRepository
	active          *CleaningTask
	lastCompletedAt *time.Time
}

func (f *fakeTaskRepo) GetActiveByToilet(_ context.Context, _ int) (*CleaningTask, error) {
	return f.active, nil
}

func (f *fakeTaskRepo) LastCompletedAt(_ context.Context, _ int) (*time.Time, error) {
	return f.lastCompletedAt, nil
}

func newTestController(ratings *fakeRatingRepo, tasks *fakeTaskRepo) StatusControllerInterface {
	return New(database.DB{}, repositories.Repository{
		Toilet: &fakeToiletRepo{toilets: map[int]Toilet{
			1: {BaseModel: BaseModel{ID: 1}, Name: "Ground Floor Men's", IsActive: true},
			2: {BaseModel: BaseModel{ID: 2}, Name: "Storage Closet", IsActive: false},
		}},
		Rating: ratings,
		Task:   tasks,
	}, config.Config{})
}

// With no cache configured every read must come straight from the stores.
func TestGetStatusComposesWhenCacheUnavailable(t *testing.T) {
	rating := &Rating{
		ToiletID: 1,
		Rating:   2,
		Problems: datatypes.JSONSlice[int]{4, 5},
	}
	rating.CreatedAt = time.Now()

	controller := newTestController(
		&fakeRatingRepo{latest: rating, average: 2.0, total: 1},
		&fakeTaskRepo{},
	)

	status, err := controller.GetStatus(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, status.HasProblems)
	assert.Equal(t, 2, status.ProblemCount)
	assert.InEpsilon(t, 2.0, status.AverageRating, 1e-9)
	assert.EqualValues(t, 1, status.TotalRatings)
}

func TestGetStatusUnknownOrInactiveToilet(t *testing.T) {
	controller := newTestController(&fakeRatingRepo{}, &fakeTaskRepo{})

	_, err := controller.GetStatus(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = controller.GetStatus(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllStatusesComposesWhenCacheUnavailable(t *testing.T) {
	controller := newTestController(&fakeRatingRepo{}, &fakeTaskRepo{})

	statuses, err := controller.GetAllStatuses(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "Ground Floor Men's", statuses[0].Toilet.Name)
	assert.False(t, statuses[0].HasProblems)
}

// A view composed before a write records the pre-write version; once the
// write bumps the counter the entry must be refused, even if it was cached
// after the write landed.
func TestCacheEntryRetiredByVersionBump(t *testing.T) {
	entry := versionedStatus{Version: 3}
	assert.True(t, entry.fresh(3))
	assert.False(t, entry.fresh(4), "entry composed before the write must not be served")

	bulk := versionedStatusList{Version: 7}
	assert.True(t, bulk.fresh(7))
	assert.False(t, bulk.fresh(8))
}
