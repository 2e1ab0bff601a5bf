package handler

import (
	"errors"
	"log"

	"go-stockledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull the caller identity out of the context set by RequireAuth.
func getActor(c *fiber.Ctx) service.Actor {
	actor := service.Actor{}
	if id, ok := c.Locals("user_id").(string); ok {
		if parsed, err := uuid.Parse(id); err == nil {
			actor.ID = parsed
		}
	}
	if name, ok := c.Locals("user_name").(string); ok {
		actor.Name = name
	}
	if email, ok := c.Locals("user_email").(string); ok {
		actor.Email = email
	}
	return actor
}

// Helper to parse UUID path params
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// fail maps a service error to an HTTP status and a {message} body.
// Unknown errors are logged and reported generically so internals never
// leak to the client.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrInvalidTransactionType),
		errors.Is(err, service.ErrInvalidRole):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})

	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrSupplierNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})

	case errors.Is(err, service.ErrDuplicateSKU),
		errors.Is(err, service.ErrDuplicateSupplier),
		errors.Is(err, service.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})

	default:
		log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
	}
}
