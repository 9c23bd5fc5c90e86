package ratingController

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sanitrack/config"
	"sanitrack/internal/events"
	. "sanitrack/internal/models"
	"sanitrack/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrValidation - the submitted rating payload is malformed
	ErrValidation = errors.New("invalid rating")
	// ErrNotFound - the referenced toilet or rating does not exist
	ErrNotFound = errors.New("not found")
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type SubmitRatingRequest struct {
	ToiletID  int    `json:"toilet_id"`
	Rating    int    `json:"rating"`
	Problems  []int  `json:"problems"`
	OtherText string `json:"other_text"`
}

type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalCount  int64 `json:"total_count"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// RatingPage embeds the page metadata so clients read page, total_pages,
// total_count, has_next, and has_previous directly off the payload.
type RatingPage struct {
	Ratings []Rating `json:"ratings"`
	Pagination
}

type RatingControllerInterface interface {
	Submit(ctx context.Context, request *SubmitRatingRequest) (*Rating, error)
	GetByID(ctx context.Context, id int) (*Rating, error)
	GetAll(ctx context.Context) ([]Rating, error)
	GetByToilet(ctx context.Context, toiletID int) ([]Rating, error)
	GetPageByToilet(ctx context.Context, toiletID, page, limit int) (*RatingPage, error)
}

type RatingController struct {
	ratingRepo repositories.RatingRepository
	toiletRepo repositories.ToiletRepository
	eventBus   *events.EventBus
	Config     config.Config
	log        logger.Logger
}

func New(
	repos repositories.Repository,
	eventBus *events.EventBus,
	config config.Config,
) RatingControllerInterface {
	return &RatingController{
		ratingRepo: repos.Rating,
		toiletRepo: repos.Toilet,
		eventBus:   eventBus,
		Config:     config,
		log:        logger.New("ratingController"),
	}
}

// Submit validates and records a visitor rating. Ratings are append-only:
// there is no update or delete path.
func (c *RatingController) Submit(
	ctx context.Context,
	request *SubmitRatingRequest,
) (*Rating, error) {
	log := c.log.Function("Submit")

	if err := validateRating(request); err != nil {
		return nil, err
	}

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

	// OtherText is stored exactly as submitted; only validation trims.
	rating := &Rating{
		ToiletID:  toilet.ID,
		Rating:    request.Rating,
		Problems:  datatypes.JSONSlice[int](request.Problems),
		OtherText: request.OtherText,
	}

	if err := c.ratingRepo.Create(ctx, rating); err != nil {
		return nil, log.Err("failed to create rating", err, "toiletID", toilet.ID)
	}

	c.publishStatusChanged(toilet.ID)

	log.Info("rating recorded",
		"ratingID", rating.ID, "toiletID", toilet.ID,
		"score", rating.Rating, "problems", len(rating.Problems))

	return rating, nil
}

func validateRating(request *SubmitRatingRequest) error {
	if request.Rating < MinRatingScore || request.Rating > MaxRatingScore {
		return fmt.Errorf("%w: rating must be between %d and %d",
			ErrValidation, MinRatingScore, MaxRatingScore)
	}

	hasOther := false
	seen := make(map[int]bool, len(request.Problems))
	for _, code := range request.Problems {
		if !ProblemCode(code).IsValid() {
			return fmt.Errorf("%w: unknown problem code %d", ErrValidation, code)
		}
		if seen[code] {
			return fmt.Errorf("%w: duplicate problem code %d", ErrValidation, code)
		}
		seen[code] = true
		if ProblemCode(code) == ProblemOther {
			hasOther = true
		}
	}

	if hasOther && strings.TrimSpace(request.OtherText) == "" {
		return fmt.Errorf("%w: other_text is required when problem code %d is reported",
			ErrValidation, int(ProblemOther))
	}

	return nil
}

func (c *RatingController) GetByID(ctx context.Context, id int) (*Rating, error) {
	rating, err := c.ratingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, c.log.Function("GetByID").Err("failed to load rating", err, "id", id)
	}
	return rating, nil
}

func (c *RatingController) GetAll(ctx context.Context) ([]Rating, error) {
	return c.ratingRepo.GetAll(ctx)
}

func (c *RatingController) GetByToilet(ctx context.Context, toiletID int) ([]Rating, error) {
	if err := c.requireToilet(ctx, toiletID); err != nil {
		return nil, err
	}
	return c.ratingRepo.GetByToilet(ctx, toiletID)
}

// GetPageByToilet returns one page of a toilet's ratings, newest first. Pages
// are 1-based; a page past the end is an empty page, not an error.
func (c *RatingController) GetPageByToilet(
	ctx context.Context,
	toiletID, page, limit int,
) (*RatingPage, error) {
	log := c.log.Function("GetPageByToilet")

	if err := c.requireToilet(ctx, toiletID); err != nil {
		return nil, err
	}

	page, limit = clampPageParams(page, limit)

	ratings, total, err := c.ratingRepo.GetPageByToilet(ctx, toiletID, (page-1)*limit, limit)
	if err != nil {
		return nil, log.Err("failed to page ratings", err, "toiletID", toiletID, "page", page)
	}

	return &RatingPage{
		Ratings:    ratings,
		Pagination: NewPagination(page, limit, total),
	}, nil
}

func (c *RatingController) requireToilet(ctx context.Context, toiletID int) error {
	if _, err := c.toiletRepo.GetByID(ctx, toiletID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return c.log.Function("requireToilet").
			Err("failed to load toilet", err, "toiletID", toiletID)
	}
	return nil
}

func clampPageParams(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// NewPagination computes page metadata. HasPrevious is true for any page past
// the first even when the page itself is empty, so clients can always walk
// back into range.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return Pagination{
		Page:        page,
		Limit:       limit,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

func (c *RatingController) publishStatusChanged(toiletID int) {
	if c.eventBus == nil {
		return
	}
	if err := c.eventBus.PublishStatusChanged(toiletID, events.RATING_CREATED); err != nil {
		c.log.Warn("failed to publish rating event", "toiletID", toiletID, "error", err)
	}
}
