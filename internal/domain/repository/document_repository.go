package repository

import (
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para documentos y sus
// líneas. GetByRequestID soporta la deduplicación por clave de idempotencia.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	CreateItem(item *entity.DocumentItem) error
	GetByID(id string) (*entity.Document, error)
	GetByNumber(number string) (*entity.Document, error)
	GetByRequestID(requestID string) (*entity.Document, error)
	GetItems(documentID string) ([]*entity.DocumentItem, error)
	List(docType string, from, to *time.Time, limit, offset int) ([]*entity.Document, error)
}
