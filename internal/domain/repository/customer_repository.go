package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para clientes.
// AdjustBalance suma delta (con signo) al saldo deudor.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	AdjustBalance(id string, delta decimal.Decimal) error
	Update(customer *entity.Customer) error
	List(limit, offset int) ([]*entity.Customer, error)
}
