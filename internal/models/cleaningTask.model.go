package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusAssigned   TaskStatus = "assigned"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusAssigned, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// IsActive reports whether the status counts against the one-active-task-per-
// toilet invariant.
func (s TaskStatus) IsActive() bool {
	return s == TaskStatusAssigned || s == TaskStatusInProgress
}

// CleaningTask is one cleaner's claim on resolving a toilet's reported
// problems. At most one task per toilet may be in an active status at any
// time; completed tasks are retained for statistics.
type CleaningTask struct {
	BaseModel
	ToiletID    int        `gorm:"not null;index:idx_cleaning_tasks_toilet"  json:"toilet_id"`
	Toilet      *Toilet    `gorm:"foreignKey:ToiletID"                       json:"-"`
	CleanerID   uuid.UUID  `gorm:"type:uuid;not null;index"                  json:"cleaner_id"`
	CleanerName string     `gorm:"type:text;not null"                        json:"cleaner_name"`
	Status      TaskStatus `gorm:"type:text;not null;default:'assigned'"     json:"status"`
	StartedAt   *time.Time `gorm:"type:timestamp"                            json:"started_at"`
	CompletedAt *time.Time `gorm:"type:timestamp"                            json:"completed_at"`
}

// Duration returns the time spent between begin and completion, or nil while
// either timestamp is missing.
func (t *CleaningTask) Duration() *time.Duration {
	if t.StartedAt == nil || t.CompletedAt == nil {
		return nil
	}
	d := t.CompletedAt.Sub(*t.StartedAt)
	return &d
}

// IsOwnedBy reports whether the given user is the assigned cleaner.
func (t *CleaningTask) IsOwnedBy(userID uuid.UUID) bool {
	return t.CleanerID == userID
}
