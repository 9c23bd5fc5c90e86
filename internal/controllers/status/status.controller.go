package statusController

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sanitrack/config"
	"sanitrack/internal/constants"
	"sanitrack/internal/database"
	. "sanitrack/internal/models"
	"sanitrack/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// ErrNotFound - the toilet does not exist or is inactive
var ErrNotFound = errors.New("toilet not found")

const statusCacheTTL = 5 * time.Minute

type StatusControllerInterface interface {
	GetStatus(ctx context.Context, toiletID int) (*ToiletStatus, error)
	GetAllStatuses(ctx context.Context) ([]ToiletStatus, error)
	WarmCache(ctx context.Context) error
}

// StatusController serves the derived per-toilet view. Status is recomputed
// from ratings and tasks and cached in valkey behind a write counter: every
// rating or task write bumps the counter, and a cached view is served only
// while the version it was composed under still matches. A view composed
// concurrently with a write records the pre-write version, so the bumped
// counter retires it even if it lands in the cache after the write.
type StatusController struct {
	toiletRepo repositories.ToiletRepository
	ratingRepo repositories.RatingRepository
	taskRepo   repositories.CleaningTaskRepository
	db         database.DB
	Config     config.Config
	log        logger.Logger
}

// versionedStatus is the cache envelope for one toilet's view.
type versionedStatus struct {
	Version int64        `json:"version"`
	Status  ToiletStatus `json:"status"`
}

// versionedStatusList is the cache envelope for the bulk view.
type versionedStatusList struct {
	Version  int64          `json:"version"`
	Statuses []ToiletStatus `json:"statuses"`
}

// fresh reports whether the entry was composed under the current counter
// value, meaning no rating or task write has landed since.
func (e versionedStatus) fresh(version int64) bool { return e.Version == version }

func (e versionedStatusList) fresh(version int64) bool { return e.Version == version }

func New(
	db database.DB,
	repos repositories.Repository,
	config config.Config,
) StatusControllerInterface {
	return &StatusController{
		toiletRepo: repos.Toilet,
		ratingRepo: repos.Rating,
		taskRepo:   repos.Task,
		db:         db,
		Config:     config,
		log:        logger.New("statusController"),
	}
}

func (c *StatusController) GetStatus(ctx context.Context, toiletID int) (*ToiletStatus, error) {
	log := c.log.Function("GetStatus")

	cacheKey := fmt.Sprintf("%s:%d", constants.ToiletStatusCachePrefix, toiletID)
	versionKey := fmt.Sprintf("%s:%d", constants.ToiletStatusVersionPrefix, toiletID)

	// The version must be read before the store reads below: a write landing
	// after this point bumps the counter, so the entry cached at the end of
	// this call fails the freshness check for the next reader.
	version, versionErr := c.statusVersion(ctx, versionKey)
	if versionErr == nil {
		var cached versionedStatus
		found, err := database.NewCacheBuilder(c.db.Cache.Status, cacheKey).
			WithContext(ctx).
			Get(&cached)
		if err != nil {
			log.Warn("status cache read failed", "toiletID", toiletID, "error", err)
		}
		if found && cached.fresh(version) {
			return &cached.Status, nil
		}
	}

	toilet, err := c.toiletRepo.GetByID(ctx, toiletID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to load toilet", err, "toiletID", toiletID)
	}

	if !toilet.IsActive {
		return nil, ErrNotFound
	}

	status, err := c.compose(ctx, *toilet)
	if err != nil {
		return nil, err
	}

	// Without a version to record there is no way to prove the entry fresh
	// later, so skip the cache rather than risk serving a stale view.
	if versionErr == nil {
		if err := database.NewCacheBuilder(c.db.Cache.Status, cacheKey).
			WithContext(ctx).
			WithStruct(versionedStatus{Version: version, Status: status}).
			WithTTL(statusCacheTTL).
			Set(); err != nil {
			log.Warn("status cache write failed", "toiletID", toiletID, "error", err)
		}
	}

	return &status, nil
}

func (c *StatusController) GetAllStatuses(ctx context.Context) ([]ToiletStatus, error) {
	log := c.log.Function("GetAllStatuses")

	version, versionErr := c.statusVersion(ctx, constants.ToiletStatusAllVersionKey)
	if versionErr == nil {
		var cached versionedStatusList
		found, err := database.NewCacheBuilder(c.db.Cache.Status, constants.ToiletStatusAllKey).
			WithContext(ctx).
			Get(&cached)
		if err != nil {
			log.Warn("bulk status cache read failed", "error", err)
		}
		if found && cached.fresh(version) {
			return cached.Statuses, nil
		}
	}

	statuses, err := c.composeAll(ctx)
	if err != nil {
		return nil, err
	}

	if versionErr == nil {
		if err := c.cacheBulk(ctx, version, statuses); err != nil {
			log.Warn("bulk status cache write failed", "error", err)
		}
	}

	return statuses, nil
}

// WarmCache recomputes and re-caches the bulk status view. Run by the daily
// maintenance job so the first panel load of the day is a cache hit.
func (c *StatusController) WarmCache(ctx context.Context) error {
	log := c.log.Function("WarmCache")

	version, err := c.statusVersion(ctx, constants.ToiletStatusAllVersionKey)
	if err != nil {
		return log.Err("failed to read status version", err)
	}

	statuses, err := c.composeAll(ctx)
	if err != nil {
		return err
	}

	if err := c.cacheBulk(ctx, version, statuses); err != nil {
		return log.Err("failed to warm status cache", err)
	}

	log.Info("status cache warmed", "toilets", len(statuses))
	return nil
}

// statusVersion reads the write counter guarding a cache entry. A missing
// counter reads as 0, the version before any write.
func (c *StatusController) statusVersion(ctx context.Context, key string) (int64, error) {
	var version int64
	if _, err := database.NewCacheBuilder(c.db.Cache.Status, key).
		WithContext(ctx).
		Get(&version); err != nil {
		return 0, err
	}
	return version, nil
}

func (c *StatusController) cacheBulk(
	ctx context.Context,
	version int64,
	statuses []ToiletStatus,
) error {
	return database.NewCacheBuilder(c.db.Cache.Status, constants.ToiletStatusAllKey).
		WithContext(ctx).
		WithStruct(versionedStatusList{Version: version, Statuses: statuses}).
		WithTTL(statusCacheTTL).
		Set()
}

func (c *StatusController) composeAll(ctx context.Context) ([]ToiletStatus, error) {
	toilets, err := c.toiletRepo.GetActive(ctx)
	if err != nil {
		return nil, c.log.Function("composeAll").Err("failed to load toilets", err)
	}

	statuses := make([]ToiletStatus, 0, len(toilets))
	for _, toilet := range toilets {
		status, err := c.compose(ctx, toilet)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

func (c *StatusController) compose(ctx context.Context, toilet Toilet) (ToiletStatus, error) {
	log := c.log.Function("compose")

	lastRating, err := c.ratingRepo.GetLatestByToilet(ctx, toilet.ID)
	if err != nil {
		return ToiletStatus{}, log.Err("failed to load latest rating", err, "toiletID", toilet.ID)
	}

	activeTask, err := c.taskRepo.GetActiveByToilet(ctx, toilet.ID)
	if err != nil {
		return ToiletStatus{}, log.Err("failed to load active task", err, "toiletID", toilet.ID)
	}

	lastCompletedAt, err := c.taskRepo.LastCompletedAt(ctx, toilet.ID)
	if err != nil {
		return ToiletStatus{}, log.Err("failed to load last completion", err, "toiletID", toilet.ID)
	}

	average, total, err := c.ratingRepo.GetAverageByToilet(ctx, toilet.ID)
	if err != nil {
		return ToiletStatus{}, log.Err("failed to load rating average", err, "toiletID", toilet.ID)
	}

	return DeriveToiletStatus(toilet, lastRating, activeTask, lastCompletedAt, average, total), nil
}
