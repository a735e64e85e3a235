package shift

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio de turnos atado a esa tx. Apertura y cierre bloquean la fila
// del turno abierto del usuario para serializar las transiciones.
type TxRunner interface {
	RunShift(ctx context.Context, fn func(shiftRepo repository.ShiftRepository) error) error
}
