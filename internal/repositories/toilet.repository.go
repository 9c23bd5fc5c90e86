package repositories

import (
	"context"

	"sanitrack/internal/database"
	. "sanitrack/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

type ToiletRepository interface {
	GetByID(ctx context.Context, id int) (*Toilet, error)
	GetActive(ctx context.Context) ([]Toilet, error)
	Create(ctx context.Context, toilet *Toilet) error
	Update(ctx context.Context, toilet *Toilet) error
	CountAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type toiletRepository struct {
	db  database.DB
	log logger.Logger
}

func NewToiletRepository(db database.DB) ToiletRepository {
	return &toiletRepository{
		db:  db,
		log: logger.New("toiletRepository"),
	}
}

func (r *toiletRepository) GetByID(ctx context.Context, id int) (*Toilet, error) {
	var toilet Toilet
	if err := r.db.SQLWithContext(ctx).First(&toilet, id).Error; err != nil {
		return nil, err
	}
	return &toilet, nil
}

func (r *toiletRepository) GetActive(ctx context.Context) ([]Toilet, error) {
	var toilets []Toilet
	if err := r.db.SQLWithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&toilets).Error; err != nil {
		return nil, r.log.Function("GetActive").Err("failed to get active toilets", err)
	}
	return toilets, nil
}

func (r *toiletRepository) Create(ctx context.Context, toilet *Toilet) error {
	if err := r.db.SQLWithContext(ctx).Create(toilet).Error; err != nil {
		return r.log.Function("Create").Err("failed to create toilet", err)
	}
	return nil
}

func (r *toiletRepository) Update(ctx context.Context, toilet *Toilet) error {
	if err := r.db.SQLWithContext(ctx).Save(toilet).Error; err != nil {
		return r.log.Function("Update").Err("failed to update toilet", err, "toiletID", toilet.ID)
	}
	return nil
}

func (r *toiletRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.SQLWithContext(ctx).Model(&Toilet{}).Count(&count).Error; err != nil {
		return 0, r.log.Function("CountAll").Err("failed to count toilets", err)
	}
	return count, nil
}

func (r *toiletRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.SQLWithContext(ctx).
		Model(&Toilet{}).
		Where("is_active = ?", true).
		Count(&count).Error; err != nil {
		return 0, r.log.Function("CountActive").Err("failed to count active toilets", err)
	}
	return count, nil
}
