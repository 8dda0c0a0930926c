package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"promo-slot-engine/internal/domain/user"
	"promo-slot-engine/internal/handler/httperr"
	"promo-slot-engine/internal/pkg/jwt"
	"promo-slot-engine/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokens *jwt.Service
}

const (
	ctxUserIDKey     = "user_id"
	ctxMerchantIDKey = "merchant_id"
	ctxUserRoleKey   = "user_role"
)

func NewAuthMiddleware(tokens *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			httperr.Abort(c, http.StatusUnauthorized, nil, "Access token required")
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.Abort(c, http.StatusUnauthorized, err, "Invalid or expired token")
			return
		}

		role, err := user.NewRole(claims.Role)
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, err, "Invalid or expired token")
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxMerchantIDKey, claims.MerchantID)
		c.Set(ctxUserRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"user_id": claims.UserID.String(),
			"role":    claims.Role,
		})
		c.Next()
	}
}

// GetCaller assembles the authorization context set by RequireAuth.
func GetCaller(c *gin.Context) (shared.Caller, bool) {
	userID, uok := c.Get(ctxUserIDKey)
	merchantID, mok := c.Get(ctxMerchantIDKey)
	role, rok := c.Get(ctxUserRoleKey)
	if !uok || !mok || !rok {
		return shared.Caller{}, false
	}

	uid, uok := userID.(uuid.UUID)
	mid, mok := merchantID.(uuid.UUID)
	r, rok := role.(user.Role)
	if !uok || !mok || !rok {
		return shared.Caller{}, false
	}

	return shared.Caller{UserID: uid, MerchantID: mid, Role: r}, true
}
