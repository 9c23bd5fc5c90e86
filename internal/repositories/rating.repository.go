package repositories

import (
	"context"
	"database/sql"
	"time"

	"sanitrack/internal/database"
	. "sanitrack/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *Rating) error
	GetByID(ctx context.Context, id int) (*Rating, error)
	GetAll(ctx context.Context) ([]Rating, error)
	GetByToilet(ctx context.Context, toiletID int) ([]Rating, error)
	GetPageByToilet(ctx context.Context, toiletID, offset, limit int) ([]Rating, int64, error)
	GetLatestByToilet(ctx context.Context, toiletID int) (*Rating, error)
	GetAverageByToilet(ctx context.Context, toiletID int) (float64, int64, error)
	CountAll(ctx context.Context) (int64, error)
	GlobalAverage(ctx context.Context) (float64, error)
	CountProblemToiletsSince(ctx context.Context, since time.Time) (int64, error)
}

type ratingRepository struct {
	db  database.DB
	log logger.Logger
}

func NewRatingRepository(db database.DB) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: logger.New("ratingRepository"),
	}
}

// Create appends an immutable rating row and drops the toilet's cached status
// view so the next read recomputes it.
func (r *ratingRepository) Create(ctx context.Context, rating *Rating) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(rating).Error; err != nil {
		return log.Err("failed to create rating", err, "toiletID", rating.ToiletID)
	}

	invalidateToiletStatus(ctx, r.db, log, rating.ToiletID)

	return nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id int) (*Rating, error) {
	var rating Rating
	if err := r.db.SQLWithContext(ctx).First(&rating, id).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetAll(ctx context.Context) ([]Rating, error) {
	var ratings []Rating
	if err := r.db.SQLWithContext(ctx).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to get ratings", err)
	}
	return ratings, nil
}

func (r *ratingRepository) GetByToilet(ctx context.Context, toiletID int) ([]Rating, error) {
	var ratings []Rating
	if err := r.db.SQLWithContext(ctx).
		Where("toilet_id = ?", toiletID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, r.log.Function("GetByToilet").
			Err("failed to get toilet ratings", err, "toiletID", toiletID)
	}
	return ratings, nil
}

// GetPageByToilet returns one newest-first page plus the total row count for
// the toilet.
func (r *ratingRepository) GetPageByToilet(
	ctx context.Context,
	toiletID, offset, limit int,
) ([]Rating, int64, error) {
	log := r.log.Function("GetPageByToilet")

	var total int64
	if err := r.db.SQLWithContext(ctx).
		Model(&Rating{}).
		Where("toilet_id = ?", toiletID).
		Count(&total).Error; err != nil {
		return nil, 0, log.Err("failed to count toilet ratings", err, "toiletID", toiletID)
	}

	var ratings []Rating
	if err := r.db.SQLWithContext(ctx).
		Where("toilet_id = ?", toiletID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&ratings).Error; err != nil {
		return nil, 0, log.Err("failed to get rating page", err, "toiletID", toiletID)
	}

	return ratings, total, nil
}

// GetLatestByToilet returns the most recent rating, or nil when the toilet has
// never been rated.
func (r *ratingRepository) GetLatestByToilet(
	ctx context.Context,
	toiletID int,
) (*Rating, error) {
	var ratings []Rating
	if err := r.db.SQLWithContext(ctx).
		Where("toilet_id = ?", toiletID).
		Order("created_at DESC").
		Limit(1).
		Find(&ratings).Error; err != nil {
		return nil, r.log.Function("GetLatestByToilet").
			Err("failed to get latest rating", err, "toiletID", toiletID)
	}

	if len(ratings) == 0 {
		return nil, nil
	}
	return &ratings[0], nil
}

func (r *ratingRepository) GetAverageByToilet(
	ctx context.Context,
	toiletID int,
) (float64, int64, error) {
	var result struct {
		Average sql.NullFloat64
		Count   int64
	}
	if err := r.db.SQLWithContext(ctx).
		Model(&Rating{}).
		Select("AVG(rating) as average, COUNT(*) as count").
		Where("toilet_id = ?", toiletID).
		Scan(&result).Error; err != nil {
		return 0, 0, r.log.Function("GetAverageByToilet").
			Err("failed to get rating average", err, "toiletID", toiletID)
	}

	return result.Average.Float64, result.Count, nil
}

func (r *ratingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.SQLWithContext(ctx).Model(&Rating{}).Count(&count).Error; err != nil {
		return 0, r.log.Function("CountAll").Err("failed to count ratings", err)
	}
	return count, nil
}

func (r *ratingRepository) GlobalAverage(ctx context.Context) (float64, error) {
	var average sql.NullFloat64
	if err := r.db.SQLWithContext(ctx).
		Model(&Rating{}).
		Select("AVG(rating)").
		Scan(&average).Error; err != nil {
		return 0, r.log.Function("GlobalAverage").Err("failed to get global average", err)
	}
	return average.Float64, nil
}

// CountProblemToiletsSince counts distinct toilets with at least one
// problem-bearing rating submitted after the cutoff.
func (r *ratingRepository) CountProblemToiletsSince(
	ctx context.Context,
	since time.Time,
) (int64, error) {
	var count int64
	if err := r.db.SQLWithContext(ctx).
		Model(&Rating{}).
		Where("jsonb_array_length(problems) > 0 AND created_at > ?", since).
		Distinct("toilet_id").
		Count(&count).Error; err != nil {
		return 0, r.log.Function("CountProblemToiletsSince").
			Err("failed to count problem toilets", err)
	}
	return count, nil
}
