package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"filmfest/pkg/auth"
)

const claimsKey = "claims"

// RequireAuth enforces a valid Bearer access token and stores the
// decoded claims in Locals for downstream handlers.
func RequireAuth(tm auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing token")
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := tm.VerifyAccess(tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid/Expired token")
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireRole allows the request through only when the authenticated
// role is in the allow-list. Must run after RequireAuth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		for _, r := range roles {
			if claims.Role == r {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}
}

// Claims returns the decoded token claims set by RequireAuth, or nil.
func Claims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsKey).(*auth.Claims)
	return claims
}
