package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
)

// InventoryHandler maneja ajustes y consulta de inventario (protegido).
type InventoryHandler struct {
	ledger *inventory.StockLedger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.StockLedger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// Adjust registra un ajuste manual de stock (cantidad con signo).
// POST /api/inventory/adjustments
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.ledger.Adjust(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// Movements lista el historial de movimientos de un producto.
// GET /api/inventory/movements?product_id=...&from=...&to=...
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id requerido"})
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (YYYY-MM-DD)"})
	}
	movs, err := h.ledger.ListMovements(c.Context(), productID, from, to, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movs)
}
