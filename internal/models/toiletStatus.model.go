package models

import (
	"time"
)

// ToiletStatus is the derived per-toilet view the panels consume. It is never
// persisted: it is recomputed from the rating store and the task registry on
// every read, so it cannot drift from its sources.
type ToiletStatus struct {
	Toilet        Toilet        `json:"toilet"`
	LastRating    *Rating       `json:"last_rating,omitempty"`
	HasProblems   bool          `json:"has_problems"`
	ProblemCount  int           `json:"problem_count"`
	LastChecked   *time.Time    `json:"last_checked,omitempty"`
	CleaningTask  *CleaningTask `json:"cleaning_task,omitempty"`
	AverageRating float64       `json:"average_rating"`
	TotalRatings  int64         `json:"total_ratings"`
}

// DeriveToiletStatus composes the status view from its sources. A toilet has
// problems iff its most recent rating carries problem tags and no cleaning
// task has completed after that rating was submitted.
func DeriveToiletStatus(
	toilet Toilet,
	lastRating *Rating,
	activeTask *CleaningTask,
	lastCompletedAt *time.Time,
	averageRating float64,
	totalRatings int64,
) ToiletStatus {
	status := ToiletStatus{
		Toilet:        toilet,
		LastRating:    lastRating,
		CleaningTask:  activeTask,
		AverageRating: averageRating,
		TotalRatings:  totalRatings,
	}

	if lastRating == nil {
		return status
	}

	status.LastChecked = &lastRating.CreatedAt
	status.ProblemCount = lastRating.ProblemCount()

	cleanedSince := lastCompletedAt != nil && lastCompletedAt.After(lastRating.CreatedAt)
	status.HasProblems = lastRating.HasProblems() && !cleanedSince
	if cleanedSince {
		status.ProblemCount = 0
	}

	return status
}
