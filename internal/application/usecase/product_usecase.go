package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía
// movimientos del libro de inventario, nunca directo.
type ProductUseCase struct {
	repo  repository.ProductRepository
	stock *inventory.StockLedger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, stock *inventory.StockLedger) *ProductUseCase {
	return &ProductUseCase{repo: repo, stock: stock}
}

// Create crea un producto. El stock inicial se contabiliza como un ajuste de
// inventario para que el historial arranque con su movimiento de apertura.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchasePrice.IsNegative() || in.SellingPrice.IsNegative() || in.InitialStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	unit := in.Unit
	if unit == "" {
		unit = "unidad"
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Name:          in.Name,
		Barcode:       in.Barcode,
		Unit:          unit,
		PurchasePrice: in.PurchasePrice,
		SellingPrice:  in.SellingPrice,
		CurrentStock:  decimal.Zero,
		MinStock:      in.MinStock,
		MaxStock:      in.MaxStock,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	if in.InitialStock.IsPositive() {
		mov, err := uc.stock.Adjust(ctx, userID, dto.AdjustStockRequest{
			ProductID: product.ID,
			Quantity:  in.InitialStock,
			Notes:     "stock inicial",
		})
		if err != nil {
			return nil, err
		}
		product.CurrentStock = mov.QuantityAfter
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista el catálogo paginado.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ProductResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	products, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Barcode:       p.Barcode,
		Unit:          p.Unit,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		CurrentStock:  p.CurrentStock,
		MinStock:      p.MinStock,
		MaxStock:      p.MaxStock,
	}
}
