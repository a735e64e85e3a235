package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto en el catálogo.
type CreateProductRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Barcode       string          `json:"barcode"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	InitialStock  decimal.Decimal `json:"initial_stock"`
	MinStock      decimal.Decimal `json:"min_stock"`
	MaxStock      decimal.Decimal `json:"max_stock"`
}

// ProductResponse producto del catálogo con su stock actual.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Barcode       string          `json:"barcode,omitempty"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStock      decimal.Decimal `json:"min_stock"`
	MaxStock      decimal.Decimal `json:"max_stock"`
}

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Type        string          `json:"type"` // regular | consumer
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	Address     string          `json:"address"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// CustomerResponse cliente con su saldo deudor.
type CustomerResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// CreateSupplierRequest alta de proveedor.
type CreateSupplierRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// SupplierResponse proveedor con su saldo por pagar.
type SupplierResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}
