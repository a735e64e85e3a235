package cascade

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ReceiptLine es una línea del documento enriquecida para el comprobante.
type ReceiptLine struct {
	entity.DocumentItem
	ProductName string
}

// ReceiptPDFGenerator es el puerto de generación del comprobante en PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, doc *entity.Document, counterparty string, lines []ReceiptLine) ([]byte, error)
}

// ReceiptUseCase genera el comprobante (PDF) de un documento contabilizado.
type ReceiptUseCase struct {
	docRepo      repository.DocumentRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	generator    ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando sus dependencias.
func NewReceiptUseCase(
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		docRepo:      docRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		generator:    generator,
	}
}

// DownloadReceiptPDF recupera el documento con sus líneas, resuelve los
// nombres de producto y contraparte y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, documentID string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.docRepo.GetByID(documentID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}

	items, err := uc.docRepo.GetItems(documentID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener líneas: %w", err)
	}

	lines := make([]ReceiptLine, 0, len(items))
	for _, it := range items {
		name := "Producto " + it.ProductID // fallback
		if product, pErr := uc.productRepo.GetByID(it.ProductID); pErr == nil && product != nil {
			name = product.Name
		}
		lines = append(lines, ReceiptLine{DocumentItem: *it, ProductName: name})
	}

	counterparty := uc.counterpartyName(doc)

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, doc, counterparty, lines)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("recibo_%s.pdf", doc.Number), nil
}

func (uc *ReceiptUseCase) counterpartyName(doc *entity.Document) string {
	if doc.CustomerID != "" {
		if c, err := uc.customerRepo.GetByID(doc.CustomerID); err == nil && c != nil {
			return c.Name
		}
	}
	if doc.SupplierID != "" {
		if s, err := uc.supplierRepo.GetByID(doc.SupplierID); err == nil && s != nil {
			return s.Name
		}
	}
	return "Consumidor final"
}
