package cleaningController

import (
	"context"
	"errors"
	"time"

	"sanitrack/config"
	"sanitrack/internal/events"
	. "sanitrack/internal/models"
	"sanitrack/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

var (
	// ErrNotFound - toilet or task does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict - the toilet already has an active cleaning task
	ErrConflict = errors.New("toilet already has an active cleaning task")
	// ErrForbidden - caller is not the task's assigned cleaner
	ErrForbidden = errors.New("task is assigned to another cleaner")
	// ErrInvalidState - the task does not permit the requested transition
	ErrInvalidState = errors.New("task state does not permit this transition")
)

type StartTaskRequest struct {
	ToiletID int `json:"toilet_id"`
}

type ListTasksRequest struct {
	Status   TaskStatus
	ToiletID int
}

type CleaningControllerInterface interface {
	Start(ctx context.Context, user *User, request *StartTaskRequest) (*CleaningTask, error)
	Begin(ctx context.Context, user *User, taskID int) (*CleaningTask, error)
	Complete(ctx context.Context, user *User, taskID int) (*CleaningTask, error)
	List(ctx context.Context, request *ListTasksRequest) ([]CleaningTask, error)
}

// CleaningController enforces the task state machine: NoActiveTask → Assigned
// → InProgress → Completed. Transitions never go backward and Completed is
// terminal.
type CleaningController struct {
	taskRepo   repositories.CleaningTaskRepository
	toiletRepo repositories.ToiletRepository
	eventBus   *events.EventBus
	Config     config.Config
	log        logger.Logger
}

func New(
	repos repositories.Repository,
	eventBus *events.EventBus,
	config config.Config,
) CleaningControllerInterface {
	return &CleaningController{
		taskRepo:   repos.Task,
		toiletRepo: repos.Toilet,
		eventBus:   eventBus,
		Config:     config,
		log:        logger.New("cleaningController"),
	}
}

// Start claims a toilet for the calling cleaner. The no-active-task check and
// the insert are one atomic operation at the registry, so two concurrent
// starts on the same toilet produce exactly one task and one conflict.
func (c *CleaningController) Start(
	ctx context.Context,
	user *User,
	request *StartTaskRequest,
) (*CleaningTask, error) {
	log := c.log.Function("Start")

	toilet, err := c.toiletRepo.GetByID(ctx, request.ToiletID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to load toilet", err, "toiletID", request.ToiletID)
	}

	if !toilet.IsActive {
		return nil, ErrNotFound
	}

	task := &CleaningTask{
		ToiletID:    toilet.ID,
		CleanerID:   user.ID,
		CleanerName: user.Name,
	}

	if err := c.taskRepo.CreateAssigned(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, log.Err("failed to create cleaning task", err, "toiletID", toilet.ID)
	}

	c.publishStatusChanged(task.ToiletID, events.TASK_STARTED)

	log.Info("cleaning task created",
		"taskID", task.ID, "toiletID", toilet.ID, "cleanerID", user.ID)

	return task, nil
}

// Begin moves the caller's assigned task into progress.
func (c *CleaningController) Begin(
	ctx context.Context,
	user *User,
	taskID int,
) (*CleaningTask, error) {
	return c.transition(ctx, user, taskID,
		TaskStatusAssigned, TaskStatusInProgress, events.TASK_BEGUN)
}

// Complete finishes the caller's in-progress task. That completion timestamp
// is what clears the toilet's derived has-problems flag until a later rating
// reports problems again.
func (c *CleaningController) Complete(
	ctx context.Context,
	user *User,
	taskID int,
) (*CleaningTask, error) {
	return c.transition(ctx, user, taskID,
		TaskStatusInProgress, TaskStatusCompleted, events.TASK_COMPLETED)
}

func (c *CleaningController) transition(
	ctx context.Context,
	user *User,
	taskID int,
	from, to TaskStatus,
	eventType events.MessageType,
) (*CleaningTask, error) {
	log := c.log.Function("transition")

	rows, err := c.taskRepo.Transition(ctx, taskID, user.ID, from, to, time.Now())
	if err != nil {
		return nil, log.Err("failed to transition task", err, "taskID", taskID, "to", to)
	}

	if rows == 0 {
		return nil, c.classifyTransitionFailure(ctx, user, taskID, from)
	}

	task, err := c.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, log.Err("failed to reload task after transition", err, "taskID", taskID)
	}

	c.publishStatusChanged(task.ToiletID, eventType)

	log.Info("cleaning task transitioned",
		"taskID", taskID, "from", from, "to", to, "cleanerID", user.ID)

	return task, nil
}

// classifyTransitionFailure decides why a conditional transition matched no
// rows: missing task, wrong owner, or wrong state.
func (c *CleaningController) classifyTransitionFailure(
	ctx context.Context,
	user *User,
	taskID int,
	expected TaskStatus,
) error {
	task, err := c.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return c.log.Function("classifyTransitionFailure").
			Err("failed to load task", err, "taskID", taskID)
	}

	if !task.IsOwnedBy(user.ID) {
		return ErrForbidden
	}

	if task.Status != expected {
		return ErrInvalidState
	}

	// Row existed with the right owner and state but the update still missed:
	// a concurrent transition won. Report it as a state error.
	return ErrInvalidState
}

func (c *CleaningController) List(
	ctx context.Context,
	request *ListTasksRequest,
) ([]CleaningTask, error) {
	if request.Status != "" && !request.Status.IsValid() {
		return nil, ErrInvalidState
	}

	return c.taskRepo.List(ctx, repositories.TaskFilter{
		Status:   request.Status,
		ToiletID: request.ToiletID,
	})
}

func (c *CleaningController) publishStatusChanged(toiletID int, eventType events.MessageType) {
	if c.eventBus == nil {
		return
	}
	if err := c.eventBus.PublishStatusChanged(toiletID, eventType); err != nil {
		c.log.Warn("failed to publish status change", "toiletID", toiletID, "error", err)
	}
}
