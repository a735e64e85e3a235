package usecase

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

// PartnerUseCase casos de uso CRUD para clientes y proveedores. Los saldos
// corrientes solo los mutan las cascadas de documentos.
type PartnerUseCase struct {
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(customerRepo repository.CustomerRepository, supplierRepo repository.SupplierRepository) *PartnerUseCase {
	return &PartnerUseCase{customerRepo: customerRepo, supplierRepo: supplierRepo}
}

// CreateCustomer crea un cliente. Tipo por defecto: consumer (mostrador).
func (uc *PartnerUseCase) CreateCustomer(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	ctype := in.Type
	if ctype == "" {
		ctype = entity.CustomerConsumer
	}
	if ctype != entity.CustomerRegular && ctype != entity.CustomerConsumer {
		return nil, domain.ErrInvalidInput
	}
	if in.CreditLimit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:             uuid.New().String(),
		Code:           in.Code,
		Name:           in.Name,
		Type:           ctype,
		Phone:          in.Phone,
		Email:          in.Email,
		Address:        in.Address,
		CreditLimit:    in.CreditLimit,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetCustomer obtiene un cliente por ID.
func (uc *PartnerUseCase) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// ListCustomers lista clientes paginados.
func (uc *PartnerUseCase) ListCustomers(ctx context.Context, limit, offset int) ([]*dto.CustomerResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	customers, err := uc.customerRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// CreateSupplier crea un proveedor.
func (uc *PartnerUseCase) CreateSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:             uuid.New().String(),
		Code:           in.Code,
		Name:           in.Name,
		Phone:          in.Phone,
		Email:          in.Email,
		Address:        in.Address,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetSupplier obtiene un proveedor por ID.
func (uc *PartnerUseCase) GetSupplier(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(supplier), nil
}

// ListSuppliers lista proveedores paginados.
func (uc *PartnerUseCase) ListSuppliers(ctx context.Context, limit, offset int) ([]*dto.SupplierResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	suppliers, err := uc.supplierRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:             c.ID,
		Code:           c.Code,
		Name:           c.Name,
		Type:           c.Type,
		CreditLimit:    c.CreditLimit,
		CurrentBalance: c.CurrentBalance,
	}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:             s.ID,
		Code:           s.Code,
		Name:           s.Name,
		CurrentBalance: s.CurrentBalance,
	}
}
