package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
)

// PartnerHandler maneja clientes y proveedores (protegido).
type PartnerHandler struct {
	uc *usecase.PartnerUseCase
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(uc *usecase.PartnerUseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

// CreateCustomer crea un cliente.
// POST /api/customers
func (h *PartnerHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.CreateCustomer(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// GetCustomer obtiene un cliente por ID.
// GET /api/customers/:id
func (h *PartnerHandler) GetCustomer(c *fiber.Ctx) error {
	customer, err := h.uc.GetCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// ListCustomers lista clientes paginados.
// GET /api/customers
func (h *PartnerHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.uc.ListCustomers(c.Context(), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customers)
}

// CreateSupplier crea un proveedor.
// POST /api/suppliers
func (h *PartnerHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	supplier, err := h.uc.CreateSupplier(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// GetSupplier obtiene un proveedor por ID.
// GET /api/suppliers/:id
func (h *PartnerHandler) GetSupplier(c *fiber.Ctx) error {
	supplier, err := h.uc.GetSupplier(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(supplier)
}

// ListSuppliers lista proveedores paginados.
// GET /api/suppliers
func (h *PartnerHandler) ListSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.uc.ListSuppliers(c.Context(), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(suppliers)
}
