package handler

import (
	"go-stockledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.CatalogService
}

func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GetProducts lists products, optionally filtered by ?q=<name substring>
// (case-insensitive).
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.SearchProducts(c.Query("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(&req, getActor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(product)
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(id, &req, getActor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id, getActor(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Deleted"})
}

// GetProductLogs lists the audit trail for one product, newest first.
func (h *ProductHandler) GetProductLogs(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	logs, err := h.service.ProductLogs(productID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(logs)
}
