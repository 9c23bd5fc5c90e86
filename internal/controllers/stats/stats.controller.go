package statsController

import (
	"context"
	"time"

	"sanitrack/config"
	"sanitrack/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
)

// SystemStats is the admin dashboard headline view.
type SystemStats struct {
	TotalToilets      int64   `json:"total_toilets"`
	ActiveToilets     int64   `json:"active_toilets"`
	TotalRatings      int64   `json:"total_ratings"`
	AverageRating     float64 `json:"average_rating"`
	ProblemToilets24h int64   `json:"problem_toilets_24h"`
	CompletedToday    int64   `json:"completed_today"`
	OngoingTasks      int64   `json:"ongoing_tasks"`
	ActiveCleaners    int64   `json:"active_cleaners"`
}

// CleanerStats aggregates one cleaner's workload and cleaning times. Duration
// fields are -1 when the cleaner has never completed a cleaning.
type CleanerStats struct {
	CleanerID      string  `json:"cleaner_id"`
	CleanerName    string  `json:"cleaner_name"`
	TotalCompleted int64   `json:"total_completed"`
	CompletedToday int64   `json:"completed_today"`
	Ongoing        int64   `json:"ongoing"`
	AverageMinutes float64 `json:"average_minutes"`
	FastestMinutes float64 `json:"fastest_minutes"`
	SlowestMinutes float64 `json:"slowest_minutes"`
	TotalMinutes   float64 `json:"total_minutes"`
}

type StatsControllerInterface interface {
	GetSystemStats(ctx context.Context) (*SystemStats, error)
	GetCleanerStats(ctx context.Context) ([]CleanerStats, error)
}

type StatsController struct {
	toiletRepo repositories.ToiletRepository
	ratingRepo repositories.RatingRepository
	taskRepo   repositories.CleaningTaskRepository
	userRepo   repositories.UserRepository
	Config     config.Config
	log        logger.Logger
}

func New(repos repositories.Repository, config config.Config) StatsControllerInterface {
	return &StatsController{
		toiletRepo: repos.Toilet,
		ratingRepo: repos.Rating,
		taskRepo:   repos.Task,
		userRepo:   repos.User,
		Config:     config,
		log:        logger.New("statsController"),
	}
}

func (c *StatsController) GetSystemStats(ctx context.Context) (*SystemStats, error) {
	log := c.log.Function("GetSystemStats")

	stats := &SystemStats{}
	var err error

	if stats.TotalToilets, err = c.toiletRepo.CountAll(ctx); err != nil {
		return nil, log.Err("failed to count toilets", err)
	}
	if stats.ActiveToilets, err = c.toiletRepo.CountActive(ctx); err != nil {
		return nil, log.Err("failed to count active toilets", err)
	}
	if stats.TotalRatings, err = c.ratingRepo.CountAll(ctx); err != nil {
		return nil, log.Err("failed to count ratings", err)
	}

	average, err := c.ratingRepo.GlobalAverage(ctx)
	if err != nil {
		return nil, log.Err("failed to get global average", err)
	}
	stats.AverageRating = roundTwo(average)

	dayAgo := time.Now().Add(-24 * time.Hour)
	if stats.ProblemToilets24h, err = c.ratingRepo.CountProblemToiletsSince(ctx, dayAgo); err != nil {
		return nil, log.Err("failed to count problem toilets", err)
	}

	startOfDay := startOfToday()
	if stats.CompletedToday, err = c.taskRepo.CountCompletedSince(ctx, startOfDay); err != nil {
		return nil, log.Err("failed to count completed tasks", err)
	}
	if stats.OngoingTasks, err = c.taskRepo.CountOngoing(ctx); err != nil {
		return nil, log.Err("failed to count ongoing tasks", err)
	}
	if stats.ActiveCleaners, err = c.userRepo.CountCleaners(ctx, true); err != nil {
		return nil, log.Err("failed to count cleaners", err)
	}

	return stats, nil
}

// GetCleanerStats returns workload and timing aggregates for every cleaner,
// active or not, so past staff still show up in historical reports.
func (c *StatsController) GetCleanerStats(ctx context.Context) ([]CleanerStats, error) {
	log := c.log.Function("GetCleanerStats")

	cleaners, err := c.userRepo.GetCleaners(ctx)
	if err != nil {
		return nil, log.Err("failed to load cleaners", err)
	}

	startOfDay := startOfToday()
	stats := make([]CleanerStats, 0, len(cleaners))

	for _, cleaner := range cleaners {
		entry := CleanerStats{
			CleanerID:   cleaner.ID.String(),
			CleanerName: cleaner.Name,
		}

		if entry.TotalCompleted, err = c.taskRepo.CountCompletedByCleaner(ctx, cleaner.ID); err != nil {
			return nil, log.Err("failed to count completions", err, "cleanerID", cleaner.ID)
		}
		if entry.CompletedToday, err = c.taskRepo.CountCompletedByCleanerSince(
			ctx, cleaner.ID, startOfDay); err != nil {
			return nil, log.Err("failed to count today's completions", err, "cleanerID", cleaner.ID)
		}
		if entry.Ongoing, err = c.taskRepo.CountOngoingByCleaner(ctx, cleaner.ID); err != nil {
			return nil, log.Err("failed to count ongoing tasks", err, "cleanerID", cleaner.ID)
		}

		durations, err := c.taskRepo.DurationStatsByCleaner(ctx, cleaner.ID)
		if err != nil {
			return nil, log.Err("failed to get duration stats", err, "cleanerID", cleaner.ID)
		}

		entry.AverageMinutes = roundMinutes(durations.AverageMinutes)
		entry.FastestMinutes = roundMinutes(durations.FastestMinutes)
		entry.SlowestMinutes = roundMinutes(durations.SlowestMinutes)
		entry.TotalMinutes = roundMinutes(durations.TotalMinutes)

		stats = append(stats, entry)
	}

	return stats, nil
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// roundMinutes rounds to two decimal places but passes the -1 no-data
// sentinel through untouched.
func roundMinutes(minutes float64) float64 {
	if minutes < 0 {
		return minutes
	}
	return roundTwo(minutes)
}

func roundTwo(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}
