package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/scholarship-tracker/internal/config"
	"github.com/jonathan/scholarship-tracker/internal/db"
)

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	cfg := &config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: expirationHours,
	}
	return NewJWTService(cfg)
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token, err := service.GenerateToken(uuid.New(), db.RoleStudent)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Valid JWT has three parts separated by dots
	parts := strings.Split(token, ".")
	assert.Equal(t, 3, len(parts))
}

func TestJWTService_RoundTripClaims(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()

	token, err := service.GenerateToken(userID, db.RoleAdmin)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, db.RoleAdmin, claims.Role)
	assert.Equal(t, userID, claims.GetUserID())
	assert.Equal(t, db.RoleAdmin, claims.GetRole())
}

func TestJWTService_ValidateToken_Empty(t *testing.T) {
	service := setupTestJWTService(t, 24)

	_, err := service.ValidateToken("")
	require.Error(t, err)
}

func TestJWTService_ValidateToken_Malformed(t *testing.T) {
	service := setupTestJWTService(t, 24)

	_, err := service.ValidateToken("not.a.token")
	require.Error(t, err)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	service := setupTestJWTService(t, 24)
	other := NewJWTService(&config.JWTConfig{
		Secret:          "a-completely-different-secret-key-32-bytes",
		ExpirationHours: 24,
	})

	token, err := service.GenerateToken(uuid.New(), db.RoleStudent)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	cfg := &config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 1,
	}
	service := NewJWTService(cfg)

	// Sign a token that expired an hour ago
	now := time.Now()
	claims := &Claims{
		UserID: uuid.New(),
		Role:   db.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			NotBefore: jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = service.ValidateToken(tokenString)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_RejectsUnexpectedSigningMethod(t *testing.T) {
	service := setupTestJWTService(t, 24)

	// alg=none token must be rejected
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New()})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateToken(tokenString)
	require.Error(t, err)
}
