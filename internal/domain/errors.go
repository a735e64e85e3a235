package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrSequenceExhausted  = errors.New("consecutivo diario agotado")
	ErrShiftAlreadyOpen   = errors.New("el usuario ya tiene un turno abierto")
	ErrShiftClosed        = errors.New("el turno está cerrado")
	ErrOverpayment        = errors.New("el abono excede el saldo pendiente")
	ErrCreditNotAllowed   = errors.New("la contraparte no admite crédito")
)
