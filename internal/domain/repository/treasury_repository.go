package repository

import (
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// TreasuryRepository define el puerto de persistencia para asientos de
// tesorería. Solo inserción y agregación: los asientos son inmutables.
// Balance suma income/opening_balance en positivo y expense en negativo,
// opcionalmente filtrado por método de pago (method vacío = todos).
type TreasuryRepository interface {
	Create(entry *entity.TreasuryEntry) error
	Balance(method string) (*entity.TreasuryBalance, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.TreasuryEntry, error)
}
