package middleware

import (
	"strings"

	"go-stockledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token and sets the caller's identity in
// the request context. The token is the identity provider's word on
// {id, role, name}; no further lookup happens here.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"message": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"message": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"message": "Invalid or expired token"})
		}

		// Set user info in context for downstream handlers
		c.Locals("user_id", claims.UserID.String())
		c.Locals("user_email", claims.Email)
		c.Locals("user_name", claims.Name)
		c.Locals("user_role", claims.Role)

		return c.Next()
	}
}

// RequireRole checks that the authenticated caller holds one of the allowed
// roles. The allow-list is spelled out at the route, so authorization is
// auditable from the route table alone.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok || role == "" {
			return c.Status(403).JSON(fiber.Map{"message": "No role found"})
		}

		for _, r := range allowed {
			if r == role {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"message": "Forbidden: requires one of " + strings.Join(allowed, ", ") + " roles",
		})
	}
}
