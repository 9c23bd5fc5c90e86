package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTaskStatusIsValid(t *testing.T) {
	assert.True(t, TaskStatusAssigned.IsValid())
	assert.True(t, TaskStatusInProgress.IsValid())
	assert.True(t, TaskStatusCompleted.IsValid())
	assert.False(t, TaskStatus("").IsValid())
	assert.False(t, TaskStatus("cancelled").IsValid())
}

func TestTaskStatusIsActive(t *testing.T) {
	assert.True(t, TaskStatusAssigned.IsActive())
	assert.True(t, TaskStatusInProgress.IsActive())
	assert.False(t, TaskStatusCompleted.IsActive())
}

func TestCleaningTaskDuration(t *testing.T) {
	started := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	completed := started.Add(25 * time.Minute)

	tests := []struct {
		name        string
		startedAt   *time.Time
		completedAt *time.Time
		want        *time.Duration
	}{
		{name: "not started", startedAt: nil, completedAt: nil, want: nil},
		{name: "started but not completed", startedAt: &started, completedAt: nil, want: nil},
		{
			name:        "completed",
			startedAt:   &started,
			completedAt: &completed,
			want:        durationPtr(25 * time.Minute),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := CleaningTask{StartedAt: tt.startedAt, CompletedAt: tt.completedAt}

			got := task.Duration()
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

func TestCleaningTaskIsOwnedBy(t *testing.T) {
	owner := uuid.New()
	task := CleaningTask{CleanerID: owner}

	assert.True(t, task.IsOwnedBy(owner))
	assert.False(t, task.IsOwnedBy(uuid.New()))
}
