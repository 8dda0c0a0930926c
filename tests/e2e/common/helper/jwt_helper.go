//go:build e2e

package helper

import (
	"testing"
	"time"

	"promo-slot-engine/internal/domain/user"
	"promo-slot-engine/internal/pkg/config"
	"promo-slot-engine/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTTestHelper mints tokens directly with the signing secret. There is no
// login endpoint; identity comes from an upstream issuer in production.
type JWTTestHelper struct {
	cfg config.JWTConfig
}

func NewJWTTestHelper(cfg config.JWTConfig) *JWTTestHelper {
	return &JWTTestHelper{cfg: cfg}
}

func (h *JWTTestHelper) service(t *testing.T, duration time.Duration) *jwt.Service {
	t.Helper()
	return jwt.NewService(h.cfg.Secret, duration)
}

func (h *JWTTestHelper) MerchantToken(t *testing.T, userID, merchantID uuid.UUID) string {
	t.Helper()
	return h.GenerateToken(t, userID, merchantID, user.RoleMerchant)
}

func (h *JWTTestHelper) AdminToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return h.GenerateToken(t, userID, uuid.New(), user.RoleAdmin)
}

func (h *JWTTestHelper) GenerateToken(t *testing.T, userID, merchantID uuid.UUID, role user.Role) string {
	t.Helper()

	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)

	token, err := h.service(t, duration).GenerateToken(userID, merchantID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTTestHelper) CreateExpiredToken(t *testing.T, userID, merchantID uuid.UUID, role user.Role) string {
	t.Helper()

	token, err := h.service(t, 1*time.Millisecond).GenerateToken(userID, merchantID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
