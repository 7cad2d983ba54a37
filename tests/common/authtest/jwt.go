//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"barberbook/internal/pkg/config"
	"barberbook/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints customer tokens with the shared secret, standing in for the
// identity service that issues them in production.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, customerID uuid.UUID) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret)
	token, err := service.SignToken(customerID, "customer", time.Hour)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, customerID uuid.UUID) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret)
	token, err := service.SignToken(customerID, "customer", -time.Minute)
	require.NoError(t, err)
	return token
}
