package services

import (
	"testing"

	"sanitrack/config"
	"sanitrack/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenService(t *testing.T, secret string) *TokenService {
	t.Helper()

	service, err := NewTokenService(config.Config{
		JWTSecret:      secret,
		JWTExpiryHours: 24,
	})
	require.NoError(t, err)

	return service
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService(config.Config{JWTExpiryHours: 24})
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	service := testTokenService(t, "test-secret")

	user := &models.User{
		BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()},
		Username:      "ayse",
		Name:          "Ayse Demir",
		Role:          models.RoleCleaner,
	}

	token, err := service.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "Ayse Demir", claims.Name)
	assert.Equal(t, models.RoleCleaner, claims.Role)
}

func TestValidateRejectsBadTokens(t *testing.T) {
	service := testTokenService(t, "test-secret")
	other := testTokenService(t, "different-secret")

	user := &models.User{
		BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()},
		Name:          "Mehmet Kaya",
		Role:          models.RoleAdmin,
	}

	foreign, err := other.Issue(user)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "wrong signing secret", token: foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
