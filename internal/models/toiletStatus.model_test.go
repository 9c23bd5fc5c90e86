package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func ratingAt(t time.Time, problems ...int) *Rating {
	return &Rating{
		BaseModel: BaseModel{ID: 1, CreatedAt: t},
		ToiletID:  1,
		Rating:    2,
		Problems:  datatypes.JSONSlice[int](problems),
	}
}

func TestDeriveToiletStatus(t *testing.T) {
	toilet := Toilet{BaseModel: BaseModel{ID: 1}, Name: "Ground Floor Men's", IsActive: true}
	now := time.Now()
	earlier := now.Add(-2 * time.Hour)
	later := now.Add(-1 * time.Hour)

	tests := []struct {
		name            string
		lastRating      *Rating
		lastCompletedAt *time.Time
		wantHasProblems bool
		wantCount       int
	}{
		{
			name:            "no ratings yet",
			lastRating:      nil,
			wantHasProblems: false,
			wantCount:       0,
		},
		{
			name:            "clean rating",
			lastRating:      ratingAt(earlier),
			wantHasProblems: false,
			wantCount:       0,
		},
		{
			name:            "problem rating, never cleaned",
			lastRating:      ratingAt(earlier, 1, 3),
			wantHasProblems: true,
			wantCount:       2,
		},
		{
			name:            "problem rating cleaned afterwards",
			lastRating:      ratingAt(earlier, 1, 3),
			lastCompletedAt: &later,
			wantHasProblems: false,
			wantCount:       0,
		},
		{
			name:            "cleaning older than the rating does not clear it",
			lastRating:      ratingAt(later, 2),
			lastCompletedAt: &earlier,
			wantHasProblems: true,
			wantCount:       1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := DeriveToiletStatus(toilet, tt.lastRating, nil, tt.lastCompletedAt, 3.5, 10)

			assert.Equal(t, tt.wantHasProblems, status.HasProblems)
			assert.Equal(t, tt.wantCount, status.ProblemCount)
			assert.Equal(t, toilet.ID, status.Toilet.ID)
			assert.InDelta(t, 3.5, status.AverageRating, 0.0001)
			assert.Equal(t, int64(10), status.TotalRatings)

			if tt.lastRating == nil {
				assert.Nil(t, status.LastChecked)
			} else {
				assert.NotNil(t, status.LastChecked)
				assert.Equal(t, tt.lastRating.CreatedAt, *status.LastChecked)
			}
		})
	}
}

func TestDeriveToiletStatusCarriesActiveTask(t *testing.T) {
	toilet := Toilet{BaseModel: BaseModel{ID: 2}, Name: "First Floor Women's", IsActive: true}
	task := &CleaningTask{BaseModel: BaseModel{ID: 7}, ToiletID: 2, Status: TaskStatusAssigned}

	status := DeriveToiletStatus(toilet, nil, task, nil, 0, 0)

	assert.NotNil(t, status.CleaningTask)
	assert.Equal(t, 7, status.CleaningTask.ID)
}
