package userController

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sanitrack/config"
	. "sanitrack/internal/models"
	"sanitrack/internal/repositories"
	"sanitrack/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrValidation - the user payload is malformed
	ErrValidation = errors.New("invalid user")
	// ErrNotFound - no such user
	ErrNotFound = errors.New("user not found")
	// ErrConflict - the username is already taken
	ErrConflict = errors.New("username already exists")
)

const minPasswordLength = 8

type UserControllerInterface interface {
	GetAll(ctx context.Context) ([]User, error)
	GetCleaners(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, request *CreateUserRequest) (*User, error)
	Update(ctx context.Context, id uuid.UUID, request *UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserController struct {
	userRepo repositories.UserRepository
	Config   config.Config
	log      logger.Logger
}

func New(repos repositories.Repository, config config.Config) UserControllerInterface {
	return &UserController{
		userRepo: repos.User,
		Config:   config,
		log:      logger.New("userController"),
	}
}

func (c *UserController) GetAll(ctx context.Context) ([]User, error) {
	return c.userRepo.GetAll(ctx)
}

func (c *UserController) GetCleaners(ctx context.Context) ([]User, error) {
	return c.userRepo.GetCleaners(ctx)
}

func (c *UserController) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := c.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, c.log.Function("GetByID").Err("failed to load user", err, "userID", id)
	}
	return user, nil
}

func (c *UserController) Create(
	ctx context.Context,
	request *CreateUserRequest,
) (*User, error) {
	log := c.log.Function("Create")

	username := strings.TrimSpace(request.Username)
	name := strings.TrimSpace(request.Name)

	if username == "" || name == "" {
		return nil, fmt.Errorf("%w: username and name are required", ErrValidation)
	}
	if len(request.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters",
			ErrValidation, minPasswordLength)
	}

	role := request.Role
	if role == "" {
		role = RoleCleaner
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, request.Role)
	}

	user := &User{
		Username: username,
		Password: utils.HashPassword(request.Password),
		Name:     name,
		Role:     role,
		IsActive: true,
	}

	if err := c.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, log.Err("failed to create user", err, "username", username)
	}

	log.Info("user created", "userID", user.ID, "role", user.Role)

	return user, nil
}

func (c *UserController) Update(
	ctx context.Context,
	id uuid.UUID,
	request *UpdateUserRequest,
) (*User, error) {
	log := c.log.Function("Update")

	user, err := c.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(request.Username); username != "" {
		user.Username = username
	}
	if name := strings.TrimSpace(request.Name); name != "" {
		user.Name = name
	}
	if request.Password != "" {
		if len(request.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters",
				ErrValidation, minPasswordLength)
		}
		user.Password = utils.HashPassword(request.Password)
	}
	if request.Role != "" {
		if !request.Role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, request.Role)
		}
		user.Role = request.Role
	}
	if request.IsActive != nil {
		user.IsActive = *request.IsActive
	}

	if err := c.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, log.Err("failed to update user", err, "userID", id)
	}

	log.Info("user updated", "userID", id)

	return user, nil
}

func (c *UserController) Delete(ctx context.Context, id uuid.UUID) error {
	log := c.log.Function("Delete")

	user, err := c.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := c.userRepo.Delete(ctx, user); err != nil {
		return log.Err("failed to delete user", err, "userID", id)
	}

	log.Info("user deleted", "userID", id)

	return nil
}
