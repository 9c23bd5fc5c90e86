package cleaningController

import (
	"context"
	"sync"
	"testing"
	"time"

	"sanitrack/config"
	. "sanitrack/internal/models"
	"sanitrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeToiletRepo serves a fixed set of toilets.
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

func (f *fakeToiletRepo) GetActive(_ context.Context) ([]Toilet, error) {
	var active []Toilet
	for _, toilet := range f.toilets {
		if toilet.IsActive {
			active = append(active, toilet)
		}
	}
	return active, nil
}

func (f *fakeToiletRepo) Create(_ context.Context, toilet *Toilet) error { return nil }
func (f *fakeToiletRepo) Update(_ context.Context, toilet *Toilet) error { return nil }
func (f *fakeToiletRepo) CountAll(_ context.Context) (int64, error)      { return 0, nil }
func (f *fakeToiletRepo) CountActive(_ context.Context) (int64, error)   { return 0, nil }

// fakeTaskRepo mirrors the registry's semantics in memory: the active-task
// uniqueness check and the insert happen under one lock, and transitions are
// conditional on owner and state.
type fakeTaskRepo struct {
	mu     sync.Mutex
	tasks  map[int]*CleaningTask
	nextID int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int]*CleaningTask), nextID: 1}
}

func (f *fakeTaskRepo) CreateAssigned(_ context.Context, task *CleaningTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.tasks {
		if existing.ToiletID == task.ToiletID && existing.Status.IsActive() {
			return gorm.ErrDuplicatedKey
		}
	}

	task.ID = f.nextID
	f.nextID++
	task.Status = TaskStatusAssigned
	task.CreatedAt = time.Now()
	stored := *task
	f.tasks[task.ID] = &stored

	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id int) (*CleaningTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskRepo) GetActiveByToilet(_ context.Context, toiletID int) (*CleaningTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, task := range f.tasks {
		if task.ToiletID == toiletID && task.Status.IsActive() {
			copied := *task
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTaskRepo) Transition(
	_ context.Context,
	taskID int,
	cleanerID uuid.UUID,
	from, to TaskStatus,
	at time.Time,
) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.tasks[taskID]
	if !ok || task.CleanerID != cleanerID || task.Status != from {
		return 0, nil
	}

	task.Status = to
	switch to {
	case TaskStatusInProgress:
		task.StartedAt = &at
	case TaskStatusCompleted:
		task.CompletedAt = &at
	}

	return 1, nil
}

func (f *fakeTaskRepo) List(_ context.Context, filter repositories.TaskFilter) ([]CleaningTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []CleaningTask
	for _, task := range f.tasks {
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.ToiletID != 0 && task.ToiletID != filter.ToiletID {
			continue
		}
		result = append(result, *task)
	}
	return result, nil
}

func (f *fakeTaskRepo) LastCompletedAt(_ context.Context, toiletID int) (*time.Time, error) {
	return nil, nil
}

func (f *fakeTaskRepo) ActiveOlderThan(_ context.Context, cutoff time.Time) ([]CleaningTask, error) {
	return nil, nil
}

func (f *fakeTaskRepo) CountOngoing(_ context.Context) (int64, error) { return 0, nil }
func (f *fakeTaskRepo) CountCompletedSince(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeTaskRepo) CountCompletedByCleaner(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeTaskRepo) CountCompletedByCleanerSince(
	_ context.Context,
	_ uuid.UUID,
	_ time.Time,
) (int64, error) {
	return 0, nil
}

func (f *fakeTaskRepo) CountOngoingByCleaner(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeTaskRepo) DurationStatsByCleaner(
	_ context.Context,
	_ uuid.UUID,
) (*repositories.CleanerDurations, error) {
	return &repositories.CleanerDurations{}, nil
}

func newTestController(taskRepo *fakeTaskRepo) CleaningControllerInterface {
	repos := repositories.Repository{
		Toilet: &fakeToiletRepo{toilets: map[int]Toilet{
			1: {BaseModel: BaseModel{ID: 1}, Name: "Ground Floor Men's", IsActive: true},
			2: {BaseModel: BaseModel{ID: 2}, Name: "Storage Closet", IsActive: false},
		}},
		Task: taskRepo,
	}
	return New(repos, nil, config.Config{})
}

func testCleaner(name string) *User {
	return &User{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		Username:      name,
		Name:          name,
		Role:          RoleCleaner,
		IsActive:      true,
	}
}

func TestStartCreatesAssignedTask(t *testing.T) {
	controller := newTestController(newFakeTaskRepo())
	cleaner := testCleaner("ayse")

	task, err := controller.Start(context.Background(), cleaner, &StartTaskRequest{ToiletID: 1})

	require.NoError(t, err)
	assert.Equal(t, TaskStatusAssigned, task.Status)
	assert.Equal(t, 1, task.ToiletID)
	assert.Equal(t, cleaner.ID, task.CleanerID)
	assert.Nil(t, task.StartedAt)
	assert.Nil(t, task.CompletedAt)
}

func TestStartRejectsMissingOrInactiveToilet(t *testing.T) {
	controller := newTestController(newFakeTaskRepo())
	cleaner := testCleaner("ayse")

	_, err := controller.Start(context.Background(), cleaner, &StartTaskRequest{ToiletID: 99})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = controller.Start(context.Background(), cleaner, &StartTaskRequest{ToiletID: 2})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStartConflictsOnActiveTask(t *testing.T) {
	controller := newTestController(newFakeTaskRepo())

	_, err := controller.Start(context.Background(), testCleaner("ayse"), &StartTaskRequest{ToiletID: 1})
	require.NoError(t, err)

	_, err = controller.Start(context.Background(), testCleaner("mehmet"), &StartTaskRequest{ToiletID: 1})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestConcurrentStartsProduceExactlyOneTask(t *testing.T) {
	controller := newTestController(newFakeTaskRepo())

	const attempts = 50
	results := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := controller.Start(
				context.Background(),
				testCleaner("cleaner"),
				&StartTaskRequest{ToiletID: 1},
			)
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrConflict):
			conflicts++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

func TestBeginAndCompleteLifecycle(t *testing.T) {
	controller := newTestController(newFakeTaskRepo())
	cleaner := testCleaner("ayse")

	task, err := controller.Start(context.Background(), cleaner, &StartTaskRequest{ToiletID: 1})
	require.NoError(t, err)

	begun, err := controller.Begin(context.Background(), cleaner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, TaskStatusInProgress, begun.Status)
	assert.NotNil(t, begun.StartedAt)
	assert.Nil(t, begun.CompletedAt)

	completed, err := controller.Complete(context.Background(), cleaner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, TaskStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)
}

func TestBeginRejectsWrongCleaner(t *testing.T) {
	controller := newTestController(newFakeTaskRepo())
	owner := testCleaner("ayse")

	task, err := controller.Start(context.Background(), owner, &StartTaskRequest{ToiletID: 1})
	require.NoError(t, err)

	_, err = controller.Begin(context.Background(), testCleaner("mehmet"), task.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTransitionsEnforceTaskState(t *testing.T) {
	controller := newTestController(newFakeTaskRepo())
	cleaner := testCleaner("ayse")

	task, err := controller.Start(context.Background(), cleaner, &StartTaskRequest{ToiletID: 1})
	require.NoError(t, err)

	// Completing before beginning skips a state.
	_, err = controller.Complete(context.Background(), cleaner, task.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = controller.Begin(context.Background(), cleaner, task.ID)
	require.NoError(t, err)

	// Beginning twice replays a transition.
	_, err = controller.Begin(context.Background(), cleaner, task.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = controller.Complete(context.Background(), cleaner, task.ID)
	require.NoError(t, err)

	// Completed is terminal.
	_, err = controller.Complete(context.Background(), cleaner, task.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestTransitionRejectsUnknownTask(t *testing.T) {
	controller := newTestController(newFakeTaskRepo())

	_, err := controller.Begin(context.Background(), testCleaner("ayse"), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	controller := newTestController(newFakeTaskRepo())

	_, err := controller.List(context.Background(), &ListTasksRequest{Status: "cancelled"})
	assert.Error(t, err)
}
