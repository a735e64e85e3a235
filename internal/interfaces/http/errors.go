package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
)

// respondError mapea errores de dominio a códigos HTTP. Los conflictos de
// estado (stock, turnos, abonos) devuelven 409; las reglas de negocio sobre
// la petición devuelven 400.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrCreditNotAllowed):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CREDIT_NOT_ALLOWED", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrShiftAlreadyOpen):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SHIFT_ALREADY_OPEN", Message: err.Error()})
	case errors.Is(err, domain.ErrShiftClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SHIFT_CLOSED", Message: err.Error()})
	case errors.Is(err, domain.ErrOverpayment):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OVERPAYMENT", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrSequenceExhausted):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SEQUENCE_EXHAUSTED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
