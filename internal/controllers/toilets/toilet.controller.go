package toiletController

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sanitrack/config"
	. "sanitrack/internal/models"
	"sanitrack/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

var (
	// ErrValidation - the toilet payload is malformed
	ErrValidation = errors.New("invalid toilet")
	// ErrNotFound - no such toilet
	ErrNotFound = errors.New("toilet not found")
)

type CreateToiletRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type UpdateToiletRequest struct {
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type ToiletControllerInterface interface {
	GetActive(ctx context.Context) ([]Toilet, error)
	GetByID(ctx context.Context, id int) (*Toilet, error)
	Create(ctx context.Context, request *CreateToiletRequest) (*Toilet, error)
	Update(ctx context.Context, id int, request *UpdateToiletRequest) (*Toilet, error)
}

type ToiletController struct {
	toiletRepo repositories.ToiletRepository
	Config     config.Config
	log        logger.Logger
}

func New(repos repositories.Repository, config config.Config) ToiletControllerInterface {
	return &ToiletController{
		toiletRepo: repos.Toilet,
		Config:     config,
		log:        logger.New("toiletController"),
	}
}

func (c *ToiletController) GetActive(ctx context.Context) ([]Toilet, error) {
	return c.toiletRepo.GetActive(ctx)
}

func (c *ToiletController) GetByID(ctx context.Context, id int) (*Toilet, error) {
	toilet, err := c.toiletRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, c.log.Function("GetByID").Err("failed to load toilet", err, "toiletID", id)
	}
	return toilet, nil
}

func (c *ToiletController) Create(
	ctx context.Context,
	request *CreateToiletRequest,
) (*Toilet, error) {
	log := c.log.Function("Create")

	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	toilet := &Toilet{
		Name:     name,
		Location: strings.TrimSpace(request.Location),
		IsActive: true,
	}

	if err := c.toiletRepo.Create(ctx, toilet); err != nil {
		return nil, log.Err("failed to create toilet", err, "name", name)
	}

	log.Info("toilet created", "toiletID", toilet.ID, "name", name)

	return toilet, nil
}

func (c *ToiletController) Update(
	ctx context.Context,
	id int,
	request *UpdateToiletRequest,
) (*Toilet, error) {
	log := c.log.Function("Update")

	toilet, err := c.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(request.Name); name != "" {
		toilet.Name = name
	}
	if location := strings.TrimSpace(request.Location); location != "" {
		toilet.Location = location
	}
	if request.IsActive != nil {
		toilet.IsActive = *request.IsActive
	}

	if err := c.toiletRepo.Update(ctx, toilet); err != nil {
		return nil, log.Err("failed to update toilet", err, "toiletID", id)
	}

	log.Info("toilet updated", "toiletID", id)

	return toilet, nil
}
