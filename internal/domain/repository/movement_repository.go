package repository

import (
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de
// inventario. Solo inserción y lectura: los movimientos son inmutables.
type MovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByDocument(documentID string) ([]*entity.InventoryMovement, error)
}
