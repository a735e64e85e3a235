package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pos-api/internal/application/cascade"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/shift"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Ensure TxRunner implements every application-level runner port.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ shift.TxRunner = (*TxRunner)(nil)
var _ cascade.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback (ajustes de inventario fuera de la cascada).
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMovementRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunShift inicia una transacción solo con el repositorio de turnos
// (apertura y cierre de caja).
func (r *TxRunner) RunShift(ctx context.Context, fn func(
	shiftRepo repository.ShiftRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewShiftRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCascade inicia la transacción de la cascada de documentos con todos los
// repositorios atados a la misma tx.
func (r *TxRunner) RunCascade(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	treasuryRepo repository.TreasuryRepository,
	debtRepo repository.DebtRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	shiftRepo repository.ShiftRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewDocumentRepository(tx),
		NewProductRepository(tx),
		NewMovementRepository(tx),
		NewTreasuryRepository(tx),
		NewDebtRepository(tx),
		NewCustomerRepository(tx),
		NewSupplierRepository(tx),
		NewShiftRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
