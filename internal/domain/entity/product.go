package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock actual.
// CurrentStock solo se muta a través del libro de inventario (movimientos);
// nunca directamente desde un documento.
type Product struct {
	ID            string
	SKU           string // código único
	Name          string
	Barcode       string
	Unit          string // unidad de medida (puede ser fraccionable)
	PurchasePrice decimal.Decimal
	SellingPrice  decimal.Decimal
	CurrentStock  decimal.Decimal
	MinStock      decimal.Decimal
	MaxStock      decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
