package authController

import (
	"context"
	"errors"
	"time"

	"sanitrack/config"
	. "sanitrack/internal/models"
	"sanitrack/internal/repositories"
	"sanitrack/internal/services"
	"sanitrack/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// ErrInvalidCredentials covers every login failure mode so responses never
// reveal whether the username exists.
var ErrInvalidCredentials = errors.New("invalid username or password")

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type AuthControllerInterface interface {
	Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error)
}

type AuthController struct {
	userRepo     repositories.UserRepository
	tokenService *services.TokenService
	Config       config.Config
	log          logger.Logger
}

func New(
	repos repositories.Repository,
	tokenService *services.TokenService,
	config config.Config,
) AuthControllerInterface {
	return &AuthController{
		userRepo:     repos.User,
		tokenService: tokenService,
		Config:       config,
		log:          logger.New("authController"),
	}
}

func (c *AuthController) Login(
	ctx context.Context,
	request *LoginRequest,
) (*LoginResponse, error) {
	log := c.log.Function("Login")

	user, err := c.userRepo.GetByUsername(ctx, request.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, log.Err("failed to load user", err, "username", request.Username)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPassword(request.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := c.tokenService.Issue(user)
	if err != nil {
		return nil, log.Err("failed to issue token", err, "userID", user.ID)
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := c.userRepo.Update(ctx, user); err != nil {
		// A failed last-login stamp must not block the session.
		log.Warn("failed to record last login", "userID", user.ID, "error", err)
	}

	log.Info("user logged in", "userID", user.ID, "role", user.Role)

	return &LoginResponse{Token: token, User: user}, nil
}
