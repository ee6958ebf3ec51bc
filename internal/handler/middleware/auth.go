package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"voucher-campaign/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxCustomerIDKey = "customer_id"

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		customerID, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxCustomerIDKey, customerID)
		c.Set("jwt_claims", map[string]any{
			"customer_id": customerID.String(),
		})
		c.Next()
	}
}

func GetCustomerID(c *gin.Context) (uuid.UUID, bool) {
	customerID, exists := c.Get(ctxCustomerIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := customerID.(uuid.UUID)
	return id, ok
}
