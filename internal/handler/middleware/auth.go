package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"treebox/internal/domain/admin"
	"treebox/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxAdminIDKey   = "admin_id"
	ctxAdminNameKey = "admin_name"
	ctxAdminRoleKey = "admin_role"
)

var roleHierarchy = map[admin.Role]int{
	admin.RoleCrew:  1,
	admin.RoleSuper: 2,
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

		adminID, displayName, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxAdminIDKey, adminID)
		c.Set(ctxAdminNameKey, displayName)
		c.Set(ctxAdminRoleKey, role)
		c.Next()
	}
}

func hasMinimumRole(adminRole, minRole admin.Role) bool {
	adminLevel, adminExists := roleHierarchy[adminRole]
	minLevel, minExists := roleHierarchy[minRole]
	return adminExists && minExists && adminLevel >= minLevel
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole admin.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetAdminRole(c)
		if !ok {
			// Unexpected: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !hasMinimumRole(role, minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetAdminID(c *gin.Context) (uuid.UUID, bool) {
	adminID, exists := c.Get(ctxAdminIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := adminID.(uuid.UUID)
	return id, ok
}

// GetAdminName returns the display name carried in the token. Handlers
// use it to attribute the cashier name on quick-added sessions.
func GetAdminName(c *gin.Context) (string, bool) {
	name, exists := c.Get(ctxAdminNameKey)
	if !exists {
		return "", false
	}

	s, ok := name.(string)
	return s, ok
}

func GetAdminRole(c *gin.Context) (admin.Role, bool) {
	adminRole, exists := c.Get(ctxAdminRoleKey)
	if !exists {
		return "", false
	}

	role, ok := adminRole.(admin.Role)
	return role, ok
}
