package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para que la
// verificación y aplicación de stock sea atómica por producto.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(id string, quantity decimal.Decimal) error
	UpdatePurchasePrice(id string, price decimal.Decimal) error
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
}
