package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para proveedores.
// AdjustBalance suma delta (con signo) al saldo por pagar.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	AdjustBalance(id string, delta decimal.Decimal) error
	Update(supplier *entity.Supplier) error
	List(limit, offset int) ([]*entity.Supplier, error)
}
