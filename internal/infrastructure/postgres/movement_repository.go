package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, document_id, product_id, type, quantity,
	quantity_before, quantity_after, date, created_by, notes`

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: los movimientos son inmutables.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(movement *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, nullable(movement.DocumentID), movement.ProductID, movement.Type,
		movement.Quantity, movement.QuantityBefore, movement.QuantityAfter,
		movement.Date, movement.CreatedBy, movement.Notes,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto en un rango de fechas,
// más recientes primero.
func (r *MovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

// ListByDocument lista los movimientos generados por un documento.
func (r *MovementRepo) ListByDocument(documentID string) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE document_id = $1 ORDER BY date`
	return r.list(query, documentID)
}

func (r *MovementRepo) list(query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var documentID *string
		if err := rows.Scan(
			&m.ID, &documentID, &m.ProductID, &m.Type, &m.Quantity,
			&m.QuantityBefore, &m.QuantityAfter, &m.Date, &m.CreatedBy, &m.Notes,
		); err != nil {
			return nil, err
		}
		m.DocumentID = deref(documentID)
		out = append(out, &m)
	}
	return out, rows.Err()
}
