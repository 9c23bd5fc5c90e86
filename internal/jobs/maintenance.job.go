package jobs

import (
	"context"
	"time"

	statusController "sanitrack/internal/controllers/status"
	"sanitrack/internal/repositories"
	"sanitrack/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// Tasks still active after this long are almost always abandoned phones or
// forgotten check-ins, not cleanings in progress.
const staleTaskAge = 12 * time.Hour

// MaintenanceJob warms the bulk status cache and reports cleaning tasks that
// have been active suspiciously long. It never mutates task state; stale
// tasks are surfaced for an administrator to resolve.
type MaintenanceJob struct {
	status   statusController.StatusControllerInterface
	taskRepo repositories.CleaningTaskRepository
	log      logger.Logger
	schedule services.Schedule
}

func NewMaintenanceJob(
	status statusController.StatusControllerInterface,
	taskRepo repositories.CleaningTaskRepository,
	schedule services.Schedule,
) *MaintenanceJob {
	return &MaintenanceJob{
		status:   status,
		taskRepo: taskRepo,
		log:      logger.New("maintenanceJob"),
		schedule: schedule,
	}
}

func (j *MaintenanceJob) Name() string {
	return "DailyMaintenance"
}

func (j *MaintenanceJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	if err := j.status.WarmCache(ctx); err != nil {
		return log.Err("failed to warm status cache", err)
	}

	stale, err := j.taskRepo.ActiveOlderThan(ctx, time.Now().Add(-staleTaskAge))
	if err != nil {
		return log.Err("failed to scan for stale tasks", err)
	}

	for _, task := range stale {
		log.Warn("stale cleaning task",
			"taskID", task.ID,
			"toiletID", task.ToiletID,
			"cleaner", task.CleanerName,
			"status", task.Status,
			"age", time.Since(task.CreatedAt).Round(time.Minute).String())
	}

	log.Info("maintenance run completed", "staleTasks", len(stale))
	return nil
}

func (j *MaintenanceJob) Schedule() services.Schedule {
	return j.schedule
}
