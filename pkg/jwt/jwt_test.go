package jwt

import (
	"testing"
	"time"

	"medisync/config"
	"medisync/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestAccessTokenRoundTripCarriesRole(t *testing.T) {
	s := testService()
	userID := uuid.New()

	token, tokenID, err := s.GenerateAccessToken(userID, "nurse@hospital.test", entity.RoleNurse)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := s.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, entity.RoleNurse, claims.Role)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestRefreshTokenHasRefreshType(t *testing.T) {
	s := testService()

	token, _, err := s.GenerateRefreshToken(uuid.New(), "user@hospital.test", entity.RolePatient)
	assert.NoError(t, err)

	claims, err := s.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	s := testService()
	other := NewJWTService(config.JWTConfig{Secret: "different-secret", AccessExpiry: time.Minute})

	token, _, err := s.GenerateAccessToken(uuid.New(), "user@hospital.test", entity.RoleAdmin)
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	s := NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: -time.Minute})

	token, _, err := s.GenerateAccessToken(uuid.New(), "user@hospital.test", entity.RolePatient)
	assert.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}
