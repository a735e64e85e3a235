package cascade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/sequencer"
	"github.com/jhoicas/pos-api/internal/application/shift"
	"github.com/jhoicas/pos-api/internal/application/treasury"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Orchestrator contabiliza documentos comerciales: coordina la cascada de
// efectos (inventario, tesorería, deudas, turno de caja) en una sola
// transacción. El protocolo es fijo:
//
//  1. validar la forma de la petición según el tipo de documento
//  2. deduplicar por request_id (idempotencia)
//  3. resolver y validar la contraparte
//  4. reservar el consecutivo (transacción propia del secuenciador)
//  5. ejecutar todos los efectos en una transacción: o todos o ninguno
//
// El consecutivo se reserva antes de la cascada: si la cascada falla queda
// un hueco en la numeración, nunca un número duplicado.
type Orchestrator struct {
	txRunner     TxRunner
	seq          *sequencer.Sequencer
	stock        *inventory.StockLedger
	treasury     *treasury.TreasuryLedger
	debts        *treasury.DebtLedger
	shifts       *shift.UseCase
	docRepo      repository.DocumentRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
}

// NewOrchestrator construye el orquestador de la cascada.
func NewOrchestrator(
	txRunner TxRunner,
	seq *sequencer.Sequencer,
	stock *inventory.StockLedger,
	treasuryLedger *treasury.TreasuryLedger,
	debts *treasury.DebtLedger,
	shifts *shift.UseCase,
	docRepo repository.DocumentRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
) *Orchestrator {
	return &Orchestrator{
		txRunner:     txRunner,
		seq:          seq,
		stock:        stock,
		treasury:     treasuryLedger,
		debts:        debts,
		shifts:       shifts,
		docRepo:      docRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

// Post contabiliza un documento. shiftID es el turno abierto del cajero
// (vacío = sin contabilidad de caja, p.ej. operaciones de back office).
func (o *Orchestrator) Post(ctx context.Context, userID, shiftID string, in dto.PostDocumentRequest) (*dto.DocumentResponse, error) {
	if err := validateShape(in); err != nil {
		return nil, err
	}

	// Idempotencia: un request_id ya contabilizado devuelve el documento
	// original sin repetir ningún efecto.
	if in.RequestID != "" {
		existing, err := o.docRepo.GetByRequestID(in.RequestID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return o.toResponse(existing)
		}
	}

	customer, supplier, err := o.resolveCounterparty(in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	number, err := o.seq.Next(ctx, sequencer.PrefixFor(in.Type), now)
	if err != nil {
		return nil, err
	}

	var posted *entity.Document
	var postedItems []*entity.DocumentItem
	err = o.txRunner.RunCascade(ctx, func(
		docRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		treasuryRepo repository.TreasuryRepository,
		debtRepo repository.DebtRepository,
		customerRepo repository.CustomerRepository,
		supplierRepo repository.SupplierRepository,
		shiftRepo repository.ShiftRepository,
	) error {
		doc := &entity.Document{
			ID:          uuid.New().String(),
			Number:      number,
			Type:        in.Type,
			RequestID:   in.RequestID,
			Date:        now,
			Discount:    in.Discount,
			Tax:         in.Tax,
			Method:      in.Method,
			CustomerID:  in.CustomerID,
			SupplierID:  in.SupplierID,
			DebtID:      in.DebtID,
			Direction:   in.Direction,
			Category:    in.Category,
			DueDate:     in.DueDate,
			Status:      entity.DocStatusCompleted,
			Description: in.Description,
			CreatedAt:   now,
			CreatedBy:   userID,
		}

		var items []*entity.DocumentItem
		if entity.HasItems(in.Type) {
			var err error
			items, err = resolveItems(productRepo, doc, in.Items)
			if err != nil {
				return err
			}
			subtotal := decimal.Zero
			for _, it := range items {
				subtotal = subtotal.Add(it.Subtotal)
			}
			doc.Subtotal = subtotal
			doc.Total = subtotal.Sub(doc.Discount).Add(doc.Tax)
		} else {
			doc.Subtotal = in.Amount
			doc.Total = in.Amount
		}
		if doc.Total.IsNegative() {
			return domain.ErrInvalidInput
		}

		paid, remaining, err := settlePayment(doc, in, customer, supplier)
		if err != nil {
			return err
		}
		doc.Paid = paid
		doc.Remaining = remaining

		// La cabecera primero: los movimientos y asientos la referencian.
		if err := docRepo.Create(doc); err != nil {
			return err
		}
		for _, it := range items {
			if err := docRepo.CreateItem(it); err != nil {
				return err
			}
		}

		// Inventario: un movimiento por línea, con la fila bloqueada.
		if dir := entity.StockDirection(doc.Type); dir != 0 {
			movType := entity.MovementTypeFor(doc.Type)
			for _, it := range items {
				qty := it.Quantity
				if dir < 0 {
					qty = qty.Neg()
				}
				var unitCost *decimal.Decimal
				if doc.Type == entity.DocTypePurchase {
					c := it.UnitPrice
					unitCost = &c
				}
				if _, _, err := o.stock.ApplyMovementInTx(
					movementRepo, productRepo,
					it.ProductID, qty, movType, doc.ID, userID, now, unitCost, "",
				); err != nil {
					return err
				}
			}
		}

		// Tesorería, deuda y caja según el tipo.
		switch doc.Type {
		case entity.DocTypeSale:
			if doc.Paid.IsPositive() {
				if err := o.treasury.RecordInTx(treasuryRepo, entity.TreasuryIncome, entity.CategorySales,
					doc.ID, doc.Paid, doc.Method, userID, doc.Description, now); err != nil {
					return err
				}
				if shiftID != "" {
					if err := o.shifts.ApplyProceedsInTx(shiftRepo, shiftID, doc.Method, doc.Paid); err != nil {
						return err
					}
				}
			}
			if doc.Remaining.IsPositive() {
				if _, err := o.debts.OpenDebtInTx(debtRepo, customerRepo, supplierRepo,
					entity.DebtEntityCustomer, doc.CustomerID, doc.ID, doc.Remaining, doc.DueDate, now); err != nil {
					return err
				}
			}

		case entity.DocTypePurchase:
			if doc.Paid.IsPositive() {
				if err := o.treasury.RecordInTx(treasuryRepo, entity.TreasuryExpense, entity.CategoryPurchases,
					doc.ID, doc.Paid, doc.Method, userID, doc.Description, now); err != nil {
					return err
				}
			}
			if doc.Remaining.IsPositive() {
				if _, err := o.debts.OpenDebtInTx(debtRepo, customerRepo, supplierRepo,
					entity.DebtEntitySupplier, doc.SupplierID, doc.ID, doc.Remaining, doc.DueDate, now); err != nil {
					return err
				}
			}

		case entity.DocTypeSalesReturn:
			// Reembolso al cliente: egreso de tesorería, sin tocar la caja
			// del turno (el arqueo solo acumula cobros de venta).
			if doc.Paid.IsPositive() {
				if err := o.treasury.RecordInTx(treasuryRepo, entity.TreasuryExpense, entity.CategorySalesReturns,
					doc.ID, doc.Paid, doc.Method, userID, doc.Description, now); err != nil {
					return err
				}
			}

		case entity.DocTypePurchaseReturn:
			if doc.Paid.IsPositive() {
				if err := o.treasury.RecordInTx(treasuryRepo, entity.TreasuryIncome, entity.CategoryPurchaseReturns,
					doc.ID, doc.Paid, doc.Method, userID, doc.Description, now); err != nil {
					return err
				}
			}

		case entity.DocTypeExpense:
			if err := o.treasury.RecordInTx(treasuryRepo, entity.TreasuryExpense, doc.Category,
				doc.ID, doc.Total, doc.Method, userID, doc.Description, now); err != nil {
				return err
			}

		case entity.DocTypeCapital:
			entryType := entity.TreasuryIncome
			if doc.Direction == entity.CapitalOut {
				entryType = entity.TreasuryExpense
			}
			if err := o.treasury.RecordInTx(treasuryRepo, entryType, entity.CategoryCapital,
				doc.ID, doc.Total, doc.Method, userID, doc.Description, now); err != nil {
				return err
			}

		case entity.DocTypeDebtSettlement:
			debt, err := o.debts.SettleInTx(debtRepo, customerRepo, supplierRepo,
				in.DebtID, doc.ID, doc.Total, doc.Method, userID, now)
			if err != nil {
				return err
			}
			entryType, category := entity.TreasuryIncome, entity.CategoryDebtCollection
			if debt.EntityType == entity.DebtEntitySupplier {
				entryType, category = entity.TreasuryExpense, entity.CategoryDebtPayment
			}
			if err := o.treasury.RecordInTx(treasuryRepo, entryType, category,
				doc.ID, doc.Total, doc.Method, userID, doc.Description, now); err != nil {
				return err
			}
		}

		posted = doc
		postedItems = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.treasury.InvalidateBalance(ctx)
	return mapResponse(posted, postedItems), nil
}

// GetDocument obtiene un documento con sus líneas.
func (o *Orchestrator) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := o.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return o.toResponse(doc)
}

// ListDocuments lista documentos por tipo y rango de fechas.
func (o *Orchestrator) ListDocuments(ctx context.Context, docType string, from, to *time.Time, limit, offset int) ([]*dto.DocumentResponse, error) {
	if docType != "" && !entity.ValidDocType(docType) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	docs, err := o.docRepo.List(docType, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, mapResponse(d, nil))
	}
	return out, nil
}

// validateShape valida la forma de la petición según el tipo, antes de tocar
// cualquier estado.
func validateShape(in dto.PostDocumentRequest) error {
	if !entity.ValidDocType(in.Type) || !entity.ValidPaymentMethod(in.Method) {
		return domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() || in.Tax.IsNegative() || in.Paid.IsNegative() || in.Amount.IsNegative() {
		return domain.ErrInvalidInput
	}

	if entity.HasItems(in.Type) {
		if len(in.Items) == 0 {
			return domain.ErrInvalidInput
		}
		for _, it := range in.Items {
			if it.ProductID == "" || !it.Quantity.IsPositive() || it.UnitPrice.IsNegative() {
				return domain.ErrInvalidInput
			}
		}
	} else {
		if len(in.Items) > 0 || !in.Amount.IsPositive() {
			return domain.ErrInvalidInput
		}
		// Gastos, capital y abonos se liquidan de contado, nunca a crédito.
		if in.Method == entity.PaymentCredit {
			return domain.ErrInvalidInput
		}
	}

	switch in.Type {
	case entity.DocTypeSale, entity.DocTypeSalesReturn:
		if in.SupplierID != "" {
			return domain.ErrInvalidInput
		}
	case entity.DocTypePurchase, entity.DocTypePurchaseReturn:
		if in.SupplierID == "" || in.CustomerID != "" {
			return domain.ErrInvalidInput
		}
	case entity.DocTypeExpense:
		if in.Category == "" {
			return domain.ErrInvalidInput
		}
	case entity.DocTypeCapital:
		if in.Direction != entity.CapitalIn && in.Direction != entity.CapitalOut {
			return domain.ErrInvalidInput
		}
	case entity.DocTypeDebtSettlement:
		if in.DebtID == "" {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// resolveCounterparty carga y valida cliente o proveedor según el tipo.
func (o *Orchestrator) resolveCounterparty(in dto.PostDocumentRequest) (*entity.Customer, *entity.Supplier, error) {
	var customer *entity.Customer
	var supplier *entity.Supplier

	if in.CustomerID != "" {
		c, err := o.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, nil, err
		}
		if c == nil || !c.IsActive {
			return nil, nil, domain.ErrNotFound
		}
		customer = c
	}
	if in.SupplierID != "" {
		s, err := o.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, nil, err
		}
		if s == nil || !s.IsActive {
			return nil, nil, domain.ErrNotFound
		}
		supplier = s
	}
	return customer, supplier, nil
}

// settlePayment aplica las reglas de pago y devuelve (paid, remaining).
//
//   - crédito: paid debe ser cero, todo el total queda pendiente
//   - contado: paid omitido (cero) se interpreta como pago completo;
//     un paid explícito debe quedar dentro de [0, total]
//   - devoluciones: se reembolsan completas, nunca dejan saldo
//   - saldo pendiente exige vencimiento y contraparte con crédito habilitado
func settlePayment(doc *entity.Document, in dto.PostDocumentRequest, customer *entity.Customer, supplier *entity.Supplier) (decimal.Decimal, decimal.Decimal, error) {
	if !entity.HasItems(doc.Type) {
		// Gastos, capital y abonos se liquidan completos al contabilizar.
		return doc.Total, decimal.Zero, nil
	}

	paid := in.Paid
	switch {
	case doc.Method == entity.PaymentCredit:
		if !paid.IsZero() {
			return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
		}
	case paid.IsZero():
		paid = doc.Total
	case paid.GreaterThan(doc.Total):
		return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}
	remaining := doc.Total.Sub(paid)

	if doc.Type == entity.DocTypeSalesReturn || doc.Type == entity.DocTypePurchaseReturn {
		if remaining.IsPositive() {
			return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
		}
		return paid, decimal.Zero, nil
	}

	if remaining.IsPositive() {
		if doc.DueDate == nil {
			return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
		}
		switch doc.Type {
		case entity.DocTypeSale:
			if customer == nil || !customer.CreditEligible() {
				return decimal.Zero, decimal.Zero, domain.ErrCreditNotAllowed
			}
		case entity.DocTypePurchase:
			if supplier == nil {
				return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
			}
		}
	}
	return paid, remaining, nil
}

// resolveItems valida las líneas contra el catálogo y completa los precios
// omitidos: precio de venta para ventas y sus devoluciones, precio de compra
// para compras y las suyas.
func resolveItems(productRepo repository.ProductRepository, doc *entity.Document, items []dto.PostDocumentItemRequest) ([]*entity.DocumentItem, error) {
	out := make([]*entity.DocumentItem, 0, len(items))
	for _, it := range items {
		product, err := productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, domain.ErrNotFound
		}
		price := it.UnitPrice
		if price.IsZero() {
			switch doc.Type {
			case entity.DocTypePurchase, entity.DocTypePurchaseReturn:
				price = product.PurchasePrice
			default:
				price = product.SellingPrice
			}
		}
		out = append(out, &entity.DocumentItem{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  price,
			Subtotal:   it.Quantity.Mul(price),
		})
	}
	return out, nil
}

func (o *Orchestrator) toResponse(doc *entity.Document) (*dto.DocumentResponse, error) {
	items, err := o.docRepo.GetItems(doc.ID)
	if err != nil {
		return nil, err
	}
	return mapResponse(doc, items), nil
}

func mapResponse(doc *entity.Document, items []*entity.DocumentItem) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:          doc.ID,
		Number:      doc.Number,
		Type:        doc.Type,
		Date:        doc.Date.Format(time.RFC3339),
		Subtotal:    doc.Subtotal,
		Discount:    doc.Discount,
		Tax:         doc.Tax,
		Total:       doc.Total,
		Paid:        doc.Paid,
		Remaining:   doc.Remaining,
		Method:      doc.Method,
		CustomerID:  doc.CustomerID,
		SupplierID:  doc.SupplierID,
		DebtID:      doc.DebtID,
		Status:      doc.Status,
		Description: doc.Description,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.DocumentItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
