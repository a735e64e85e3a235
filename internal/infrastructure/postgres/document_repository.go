package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, number, type, request_id, date, subtotal, discount, tax,
	total, paid, remaining, method, customer_id, supplier_id, debt_id, direction,
	category, due_date, status, description, created_at, created_by`

// DocumentRepo implementación de DocumentRepository sobre PostgreSQL (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste la cabecera del documento. El índice único sobre number
// (y sobre request_id cuando no es nulo) convierte duplicados en ErrDuplicate.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.Number, doc.Type, nullable(doc.RequestID), doc.Date,
		doc.Subtotal, doc.Discount, doc.Tax, doc.Total, doc.Paid, doc.Remaining,
		doc.Method, nullable(doc.CustomerID), nullable(doc.SupplierID),
		nullable(doc.DebtID), nullable(doc.Direction), nullable(doc.Category),
		doc.DueDate, doc.Status, doc.Description, doc.CreatedAt, doc.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del documento.
func (r *DocumentRepo) CreateItem(item *entity.DocumentItem) error {
	query := `
		INSERT INTO document_items (id, document_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.DocumentID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("create document item: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID. Retorna (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByNumber obtiene un documento por consecutivo.
func (r *DocumentRepo) GetByNumber(number string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE number = $1`
	return r.scanOne(query, number)
}

// GetByRequestID resuelve la clave de idempotencia a su documento original.
func (r *DocumentRepo) GetByRequestID(requestID string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE request_id = $1`
	return r.scanOne(query, requestID)
}

// GetItems devuelve las líneas de un documento.
func (r *DocumentRepo) GetItems(documentID string) ([]*entity.DocumentItem, error) {
	query := `
		SELECT id, document_id, product_id, quantity, unit_price, subtotal
		FROM document_items WHERE document_id = $1`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document items: %w", err)
	}
	defer rows.Close()

	var out []*entity.DocumentItem
	for rows.Next() {
		var it entity.DocumentItem
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, err
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// List lista documentos por tipo y rango de fechas, más recientes primero.
func (r *DocumentRepo) List(docType string, from, to *time.Time, limit, offset int) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE 1=1`
	args := []any{}
	pos := 1
	if docType != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, docType)
		pos++
	}
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

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DocumentRepo) scanOne(query string, arg any) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var requestID, customerID, supplierID, debtID, direction, category *string
	err := row.Scan(
		&d.ID, &d.Number, &d.Type, &requestID, &d.Date,
		&d.Subtotal, &d.Discount, &d.Tax, &d.Total, &d.Paid, &d.Remaining,
		&d.Method, &customerID, &supplierID, &debtID, &direction, &category,
		&d.DueDate, &d.Status, &d.Description, &d.CreatedAt, &d.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	d.RequestID = deref(requestID)
	d.CustomerID = deref(customerID)
	d.SupplierID = deref(supplierID)
	d.DebtID = deref(debtID)
	d.Direction = deref(direction)
	d.Category = deref(category)
	return &d, nil
}

// nullable mapea string vacío a NULL (los índices únicos parciales ignoran NULL).
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
