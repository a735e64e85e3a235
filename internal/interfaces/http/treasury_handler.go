package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/treasury"
)

// TreasuryHandler maneja la consulta de tesorería y deudas (protegido).
type TreasuryHandler struct {
	ledger *treasury.TreasuryLedger
	debts  *treasury.DebtLedger
}

// NewTreasuryHandler construye el handler.
func NewTreasuryHandler(ledger *treasury.TreasuryLedger, debts *treasury.DebtLedger) *TreasuryHandler {
	return &TreasuryHandler{ledger: ledger, debts: debts}
}

// Balance devuelve el agregado de tesorería, opcionalmente por canal.
// GET /api/treasury/balance?method=cash
func (h *TreasuryHandler) Balance(c *fiber.Ctx) error {
	resp, err := h.ledger.Balance(c.Context(), c.Query("method"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Entries lista asientos en un rango de fechas.
// GET /api/treasury/entries?from=2025-01-01&to=2025-01-31
func (h *TreasuryHandler) Entries(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (YYYY-MM-DD)"})
	}
	entries, err := h.ledger.ListEntries(c.Context(), from, to, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

// OpeningBalance registra el saldo inicial de tesorería (solo admin).
// POST /api/treasury/opening-balance
func (h *TreasuryHandler) OpeningBalance(c *fiber.Ctx) error {
	var in dto.OpeningBalanceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ledger.RecordOpeningBalance(c.Context(), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// ListDebts lista las deudas de una contraparte.
// GET /api/debts?entity_type=customer&entity_id=...
func (h *TreasuryHandler) ListDebts(c *fiber.Ctx) error {
	debts, err := h.debts.ListDebts(c.Context(), c.Query("entity_type"), c.Query("entity_id"),
		c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(debts)
}

// GetDebt obtiene una deuda por ID.
// GET /api/debts/:id
func (h *TreasuryHandler) GetDebt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	debt, err := h.debts.GetDebt(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(debt)
}
