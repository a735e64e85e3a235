package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/shift"
)

// ShiftHandler maneja el ciclo de vida del turno de caja (protegido).
type ShiftHandler struct {
	uc *shift.UseCase
}

// NewShiftHandler construye el handler.
func NewShiftHandler(uc *shift.UseCase) *ShiftHandler {
	return &ShiftHandler{uc: uc}
}

// Open abre un turno con el fondo fijo inicial.
// POST /api/shifts/open
func (h *ShiftHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Open(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Close cierra el turno abierto del usuario con el efectivo contado.
// POST /api/shifts/close
func (h *ShiftHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Close(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Active devuelve el turno abierto del usuario, o 404 si no hay.
// GET /api/shifts/active
func (h *ShiftHandler) Active(c *fiber.Ctx) error {
	resp, err := h.uc.GetActive(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin turno abierto"})
	}
	return c.JSON(resp)
}
