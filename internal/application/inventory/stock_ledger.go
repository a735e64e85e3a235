package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// StockLedger es el libro de inventario: dueño único del stock actual de cada
// producto y del historial inmutable de movimientos. Toda mutación de stock
// pasa por ApplyMovementInTx con la fila del producto bloqueada
// (SELECT FOR UPDATE), así dos ventas concurrentes del mismo SKU nunca pasan
// la verificación contra la misma cantidad obsoleta.
type StockLedger struct {
	txRunner      TxRunner
	movementRepo  repository.MovementRepository
	allowNegative bool
}

// NewStockLedger construye el libro de inventario. allowNegative habilita la
// política global de stock negativo.
func NewStockLedger(txRunner TxRunner, movementRepo repository.MovementRepository, allowNegative bool) *StockLedger {
	return &StockLedger{txRunner: txRunner, movementRepo: movementRepo, allowNegative: allowNegative}
}

// ApplyMovementInTx aplica un delta de stock con los repositorios del caller
// (misma transacción): bloquea la fila del producto, calcula
// after = before + quantity, escribe el stock y apendiza el movimiento con
// before/after. Retorna domain.ErrInsufficientStock si after < 0 y la
// política de stock negativo está desactivada.
//
// Para movimientos de compra, unitCost no nulo refresca el precio de compra
// del catálogo (propagación de precio de proveedor).
func (l *StockLedger) ApplyMovementInTx(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	productID string,
	quantity decimal.Decimal, // con signo
	movementType string,
	documentID, userID string,
	now time.Time,
	unitCost *decimal.Decimal,
	notes string,
) (before, after decimal.Decimal, err error) {
	// Bloquea la fila del producto para evitar lost updates concurrentes
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, decimal.Zero, domain.ErrNotFound
	}

	before = product.CurrentStock
	after = before.Add(quantity)
	if after.IsNegative() && !l.allowNegative {
		return decimal.Zero, decimal.Zero, domain.ErrInsufficientStock
	}

	if err := productRepo.UpdateStock(productID, after); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if movementType == entity.MovementPurchase && unitCost != nil && unitCost.IsPositive() {
		if err := productRepo.UpdatePurchasePrice(productID, *unitCost); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
	}

	mov := &entity.InventoryMovement{
		ID:             uuid.New().String(),
		DocumentID:     documentID,
		ProductID:      productID,
		Type:           movementType,
		Quantity:       quantity,
		QuantityBefore: before,
		QuantityAfter:  after,
		Date:           now,
		CreatedBy:      userID,
		Notes:          notes,
	}
	if err := movRepo.Create(mov); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return before, after, nil
}

// Adjust registra un ajuste manual de inventario en su propia transacción
// (fuera de la cascada de documentos). Quantity con signo.
func (l *StockLedger) Adjust(ctx context.Context, userID string, in dto.AdjustStockRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" || in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var resp *dto.MovementResponse
	err := l.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		before, after, err := l.ApplyMovementInTx(
			movRepo, productRepo,
			in.ProductID, in.Quantity, entity.MovementAdjustment,
			"", userID, now, nil, in.Notes,
		)
		if err != nil {
			return err
		}
		resp = &dto.MovementResponse{
			ProductID:      in.ProductID,
			Type:           entity.MovementAdjustment,
			Quantity:       in.Quantity,
			QuantityBefore: before,
			QuantityAfter:  after,
			Date:           now.Format(time.RFC3339),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListMovements lista el historial de un producto (lectura, fuera de tx).
func (l *StockLedger) ListMovements(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*dto.MovementResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	movs, err := l.movementRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, &dto.MovementResponse{
			ID:             m.ID,
			DocumentID:     m.DocumentID,
			ProductID:      m.ProductID,
			Type:           m.Type,
			Quantity:       m.Quantity,
			QuantityBefore: m.QuantityBefore,
			QuantityAfter:  m.QuantityAfter,
			Date:           m.Date.Format(time.RFC3339),
		})
	}
	return out, nil
}
