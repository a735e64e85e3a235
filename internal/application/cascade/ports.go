package cascade

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta la cascada completa dentro de una única transacción.
// El callback recibe los repositorios ligados a la misma tx: si cualquier
// paso falla, todo se revierte (ningún asiento parcial sobrevive).
type TxRunner interface {
	RunCascade(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		treasuryRepo repository.TreasuryRepository,
		debtRepo repository.DebtRepository,
		customerRepo repository.CustomerRepository,
		supplierRepo repository.SupplierRepository,
		shiftRepo repository.ShiftRepository,
	) error) error
}
