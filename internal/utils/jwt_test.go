package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/voltedge/workshop-api/internal/models"
)

func testJWTConfig() models.JWTConfig {
	return models.JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "workshop-api",
		Audience:  "workshop_users",
		Expiry:    time.Hour,
	}
}

func TestJWTRoundTrip(t *testing.T) {
	cfg := testJWTConfig()

	token, err := GenerateJWT(models.JWT{
		ID:       7,
		Name:     "Hamza",
		Username: "hamza",
		Role:     "admin",
	}, cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	user, err := VerifyJWT(token, cfg)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "Hamza", user.Name)
	assert.Equal(t, "hamza", user.Username)
	assert.Equal(t, "admin", user.Role)
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	cfg := testJWTConfig()

	token, err := GenerateJWT(models.JWT{ID: 1}, cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	bad := cfg
	bad.SecretKey = "other-secret"
	_, err = VerifyJWT(token, bad)
	assert.Error(t, err)
}

func TestVerifyJWTWrongAudience(t *testing.T) {
	cfg := testJWTConfig()

	token, err := GenerateJWT(models.JWT{ID: 1}, cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	bad := cfg
	bad.Audience = "someone_else"
	_, err = VerifyJWT(token, bad)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword("s3cret", hash))
	assert.False(t, CheckPassword("wrong", hash))
}
