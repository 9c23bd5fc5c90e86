package services

import (
	"errors"
	"fmt"
	"time"

	"sanitrack/config"
	"sanitrack/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the verified caller identity carried by every authenticated
// request: who is calling, their display name, and their role.
type TokenClaims struct {
	UserID uuid.UUID
	Name   string
	Role   models.UserRole
}

type jwtClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the signed session tokens handed out at
// login. Tokens are self-contained; no server-side session row is kept.
type TokenService struct {
	secret []byte
	expiry time.Duration
	log    logger.Logger
}

func NewTokenService(config config.Config) (*TokenService, error) {
	log := logger.New("TokenService")

	if config.JWTSecret == "" {
		return nil, log.ErrMsg("JWT secret is not configured")
	}

	return &TokenService{
		secret: []byte(config.JWTSecret),
		expiry: time.Duration(config.JWTExpiryHours) * time.Hour,
		log:    log,
	}, nil
}

// Issue creates a signed token for the given user.
func (s *TokenService) Issue(user *models.User) (string, error) {
	log := s.log.Function("Issue")

	now := time.Now()
	claims := jwtClaims{
		Name: user.Name,
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			Issuer:    "sanitrack",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", log.Err("failed to sign token", err, "userID", user.ID)
	}

	return signed, nil
}

// Validate parses and verifies a token and returns the caller identity.
func (s *TokenService) Validate(tokenString string) (*TokenClaims, error) {
	claims := &jwtClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	role := models.UserRole(claims.Role)
	if !role.IsValid() {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{
		UserID: userID,
		Name:   claims.Name,
		Role:   role,
	}, nil
}
