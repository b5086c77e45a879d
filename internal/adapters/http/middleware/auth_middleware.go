package middleware

import (
	"strings"

	"roomfinder/internal/config"
	"roomfinder/internal/core/domain"
	"roomfinder/internal/core/services"
	"roomfinder/internal/pkg/jwt"
	"roomfinder/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// bearerToken extracts the token of an "Authorization: Bearer <token>" header
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

func setClaims(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals("userID", claims.UserID)
	c.Locals("username", claims.Username)
	c.Locals("role", claims.Role)
	c.Locals("name", claims.Name)
}

// AuthMiddleware creates authentication middleware.
// A missing token is 401; a bad or expired token is 403.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. No token found
		accessToken := bearerToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 2. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Forbidden(c, "Access token expired")
			}
			return response.Forbidden(c, "Invalid access token")
		}

		// 3. Set user info in context
		setClaims(c, claims)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if domain.Role(role) == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// OptionalAuth middleware - doesn't require auth but sets user info if a valid token is present
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if accessToken := bearerToken(c); accessToken != "" {
			if claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret); err == nil {
				setClaims(c, claims)
			}
		}
		return c.Next()
	}
}

// CurrentIdentity returns the caller set by AuthMiddleware or OptionalAuth
func CurrentIdentity(c *fiber.Ctx) (services.Identity, bool) {
	username, ok := c.Locals("username").(string)
	if !ok || username == "" {
		return services.Identity{}, false
	}

	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)
	name, _ := c.Locals("name").(string)

	return services.Identity{
		UserID:   userID,
		Username: username,
		Name:     name,
		Role:     domain.Role(role),
	}, true
}
