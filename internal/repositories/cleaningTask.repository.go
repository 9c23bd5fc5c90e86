package repositories

import (
	"context"
	"database/sql"
	"time"

	"sanitrack/internal/database"
	. "sanitrack/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// TaskFilter narrows task listings. Zero values mean "no filter".
type TaskFilter struct {
	Status   TaskStatus
	ToiletID int
}

// CleanerDurations holds per-cleaner cleaning time aggregates in minutes.
// Averages are negative when the cleaner has never completed a cleaning.
type CleanerDurations struct {
	AverageMinutes float64
	FastestMinutes float64
	SlowestMinutes float64
	TotalMinutes   float64
}

type CleaningTaskRepository interface {
	// CreateAssigned inserts a new task in the assigned state. The partial
	// unique index on active tasks makes the no-active-task check and the
	// insert one atomic operation; a duplicate-key error means another task
	// already holds the toilet.
	CreateAssigned(ctx context.Context, task *CleaningTask) error
	GetByID(ctx context.Context, id int) (*CleaningTask, error)
	GetActiveByToilet(ctx context.Context, toiletID int) (*CleaningTask, error)
	// Transition flips a task from one status to the next only if it is still
	// owned by the caller and in the expected state, returning the number of
	// rows changed (0 or 1).
	Transition(
		ctx context.Context,
		taskID int,
		cleanerID uuid.UUID,
		from, to TaskStatus,
		at time.Time,
	) (int64, error)
	List(ctx context.Context, filter TaskFilter) ([]CleaningTask, error)
	LastCompletedAt(ctx context.Context, toiletID int) (*time.Time, error)
	ActiveOlderThan(ctx context.Context, cutoff time.Time) ([]CleaningTask, error)
	CountOngoing(ctx context.Context) (int64, error)
	CountCompletedSince(ctx context.Context, since time.Time) (int64, error)
	CountCompletedByCleaner(ctx context.Context, cleanerID uuid.UUID) (int64, error)
	CountCompletedByCleanerSince(
		ctx context.Context,
		cleanerID uuid.UUID,
		since time.Time,
	) (int64, error)
	CountOngoingByCleaner(ctx context.Context, cleanerID uuid.UUID) (int64, error)
	DurationStatsByCleaner(ctx context.Context, cleanerID uuid.UUID) (*CleanerDurations, error)
}

type cleaningTaskRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCleaningTaskRepository(db database.DB) CleaningTaskRepository {
	return &cleaningTaskRepository{
		db:  db,
		log: logger.New("cleaningTaskRepository"),
	}
}

func (r *cleaningTaskRepository) CreateAssigned(
	ctx context.Context,
	task *CleaningTask,
) error {
	log := r.log.Function("CreateAssigned")

	task.Status = TaskStatusAssigned
	task.StartedAt = nil
	task.CompletedAt = nil

	if err := r.db.SQLWithContext(ctx).Create(task).Error; err != nil {
		// Duplicate key from the exclusivity index is an expected outcome
		// under contention; let the controller classify it.
		return err
	}

	invalidateToiletStatus(ctx, r.db, log, task.ToiletID)

	return nil
}

func (r *cleaningTaskRepository) GetByID(ctx context.Context, id int) (*CleaningTask, error) {
	var task CleaningTask
	if err := r.db.SQLWithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *cleaningTaskRepository) GetActiveByToilet(
	ctx context.Context,
	toiletID int,
) (*CleaningTask, error) {
	var tasks []CleaningTask
	if err := r.db.SQLWithContext(ctx).
		Where("toilet_id = ? AND status IN ?", toiletID,
			[]TaskStatus{TaskStatusAssigned, TaskStatusInProgress}).
		Limit(1).
		Find(&tasks).Error; err != nil {
		return nil, r.log.Function("GetActiveByToilet").
			Err("failed to get active task", err, "toiletID", toiletID)
	}

	if len(tasks) == 0 {
		return nil, nil
	}
	return &tasks[0], nil
}

func (r *cleaningTaskRepository) Transition(
	ctx context.Context,
	taskID int,
	cleanerID uuid.UUID,
	from, to TaskStatus,
	at time.Time,
) (int64, error) {
	log := r.log.Function("Transition")

	updates := map[string]any{"status": to}
	switch to {
	case TaskStatusInProgress:
		updates["started_at"] = at
	case TaskStatusCompleted:
		updates["completed_at"] = at
	}

	result := r.db.SQLWithContext(ctx).
		Model(&CleaningTask{}).
		Where("id = ? AND cleaner_id = ? AND status = ?", taskID, cleanerID, from).
		Updates(updates)
	if result.Error != nil {
		return 0, log.Err("failed to transition task", result.Error,
			"taskID", taskID, "from", from, "to", to)
	}

	if result.RowsAffected > 0 {
		if task, err := r.GetByID(ctx, taskID); err == nil {
			invalidateToiletStatus(ctx, r.db, log, task.ToiletID)
		}
	}

	return result.RowsAffected, nil
}

func (r *cleaningTaskRepository) List(
	ctx context.Context,
	filter TaskFilter,
) ([]CleaningTask, error) {
	query := r.db.SQLWithContext(ctx).Model(&CleaningTask{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ToiletID != 0 {
		query = query.Where("toilet_id = ?", filter.ToiletID)
	}

	var tasks []CleaningTask
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, r.log.Function("List").Err("failed to list tasks", err)
	}
	return tasks, nil
}

// LastCompletedAt returns the completion time of the most recent completed
// task for the toilet, or nil when it has never been cleaned.
func (r *cleaningTaskRepository) LastCompletedAt(
	ctx context.Context,
	toiletID int,
) (*time.Time, error) {
	var result struct {
		CompletedAt sql.NullTime
	}
	if err := r.db.SQLWithContext(ctx).
		Model(&CleaningTask{}).
		Select("MAX(completed_at) as completed_at").
		Where("toilet_id = ? AND status = ?", toiletID, TaskStatusCompleted).
		Scan(&result).Error; err != nil {
		return nil, r.log.Function("LastCompletedAt").
			Err("failed to get last completion", err, "toiletID", toiletID)
	}

	if !result.CompletedAt.Valid {
		return nil, nil
	}
	return &result.CompletedAt.Time, nil
}

func (r *cleaningTaskRepository) ActiveOlderThan(
	ctx context.Context,
	cutoff time.Time,
) ([]CleaningTask, error) {
	var tasks []CleaningTask
	if err := r.db.SQLWithContext(ctx).
		Where("status IN ? AND created_at < ?",
			[]TaskStatus{TaskStatusAssigned, TaskStatusInProgress}, cutoff).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, r.log.Function("ActiveOlderThan").Err("failed to get stale tasks", err)
	}
	return tasks, nil
}

func (r *cleaningTaskRepository) CountOngoing(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.SQLWithContext(ctx).
		Model(&CleaningTask{}).
		Where("status IN ?", []TaskStatus{TaskStatusAssigned, TaskStatusInProgress}).
		Count(&count).Error; err != nil {
		return 0, r.log.Function("CountOngoing").Err("failed to count ongoing tasks", err)
	}
	return count, nil
}

func (r *cleaningTaskRepository) CountCompletedSince(
	ctx context.Context,
	since time.Time,
) (int64, error) {
	var count int64
	if err := r.db.SQLWithContext(ctx).
		Model(&CleaningTask{}).
		Where("status = ? AND completed_at >= ?", TaskStatusCompleted, since).
		Count(&count).Error; err != nil {
		return 0, r.log.Function("CountCompletedSince").Err("failed to count completed tasks", err)
	}
	return count, nil
}

func (r *cleaningTaskRepository) CountCompletedByCleaner(
	ctx context.Context,
	cleanerID uuid.UUID,
) (int64, error) {
	var count int64
	if err := r.db.SQLWithContext(ctx).
		Model(&CleaningTask{}).
		Where("cleaner_id = ? AND status = ?", cleanerID, TaskStatusCompleted).
		Count(&count).Error; err != nil {
		return 0, r.log.Function("CountCompletedByCleaner").
			Err("failed to count completed tasks", err, "cleanerID", cleanerID)
	}
	return count, nil
}

func (r *cleaningTaskRepository) CountCompletedByCleanerSince(
	ctx context.Context,
	cleanerID uuid.UUID,
	since time.Time,
) (int64, error) {
	var count int64
	if err := r.db.SQLWithContext(ctx).
		Model(&CleaningTask{}).
		Where("cleaner_id = ? AND status = ? AND completed_at >= ?",
			cleanerID, TaskStatusCompleted, since).
		Count(&count).Error; err != nil {
		return 0, r.log.Function("CountCompletedByCleanerSince").
			Err("failed to count completed tasks", err, "cleanerID", cleanerID)
	}
	return count, nil
}

func (r *cleaningTaskRepository) CountOngoingByCleaner(
	ctx context.Context,
	cleanerID uuid.UUID,
) (int64, error) {
	var count int64
	if err := r.db.SQLWithContext(ctx).
		Model(&CleaningTask{}).
		Where("cleaner_id = ? AND status IN ?", cleanerID,
			[]TaskStatus{TaskStatusAssigned, TaskStatusInProgress}).
		Count(&count).Error; err != nil {
		return 0, r.log.Function("CountOngoingByCleaner").
			Err("failed to count ongoing tasks", err, "cleanerID", cleanerID)
	}
	return count, nil
}

func (r *cleaningTaskRepository) DurationStatsByCleaner(
	ctx context.Context,
	cleanerID uuid.UUID,
) (*CleanerDurations, error) {
	var result struct {
		Average sql.NullFloat64
		Fastest sql.NullFloat64
		Slowest sql.NullFloat64
		Total   sql.NullFloat64
	}
	if err := r.db.SQLWithContext(ctx).
		Model(&CleaningTask{}).
		Select(`
			AVG(EXTRACT(EPOCH FROM (completed_at - started_at)) / 60) as average,
			MIN(EXTRACT(EPOCH FROM (completed_at - started_at)) / 60) as fastest,
			MAX(EXTRACT(EPOCH FROM (completed_at - started_at)) / 60) as slowest,
			SUM(EXTRACT(EPOCH FROM (completed_at - started_at)) / 60) as total`).
		Where("cleaner_id = ? AND status = ? AND started_at IS NOT NULL AND completed_at IS NOT NULL",
			cleanerID, TaskStatusCompleted).
		Scan(&result).Error; err != nil {
		return nil, r.log.Function("DurationStatsByCleaner").
			Err("failed to get duration stats", err, "cleanerID", cleanerID)
	}

	durations := &CleanerDurations{
		AverageMinutes: -1,
		FastestMinutes: -1,
		SlowestMinutes: -1,
	}
	if result.Average.Valid {
		durations.AverageMinutes = result.Average.Float64
	}
	if result.Fastest.Valid {
		durations.FastestMinutes = result.Fastest.Float64
	}
	if result.Slowest.Valid {
		durations.SlowestMinutes = result.Slowest.Float64
	}
	if result.Total.Valid {
		durations.TotalMinutes = result.Total.Float64
	}

	return durations, nil
}
