package handler

import (
	"go-stockledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SupplierHandler struct {
	service service.SupplierService
}

func NewSupplierHandler(s service.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: s}
}

func (h *SupplierHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.GetSuppliers()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(suppliers)
}

func (h *SupplierHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid supplier ID"})
	}

	supplier, err := h.service.GetSupplier(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) CreateSupplier(c *fiber.Ctx) error {
	var req service.CreateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	supplier, err := h.service.CreateSupplier(&req, getActor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(supplier)
}

func (h *SupplierHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid supplier ID"})
	}

	var req service.UpdateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	supplier, err := h.service.UpdateSupplier(id, &req, getActor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid supplier ID"})
	}

	if err := h.service.DeleteSupplier(id, getActor(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Deleted"})
}
