package handler

import (
	"go-stockledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// GetInventory lists stock levels; ?lowStock=true restricts the result to
// records at or below their reorder level.
func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	items, err := h.service.List(c.Query("lowStock") == "true")
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *InventoryHandler) GetInventoryLogs(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	logs, err := h.service.Logs(productID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(logs)
}

// Adjust applies a manual stock correction.
// POST /api/v1/inventory/adjust
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var req service.AdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	inv, err := h.service.Adjust(&req, getActor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(inv)
}
