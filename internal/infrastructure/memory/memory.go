// Package memory implementa todos los puertos de persistencia sobre mapas en
// proceso. Se usa en los tests y en modo demo (sin PostgreSQL configurado).
//
// Las transacciones se serializan con un mutex dedicado y el rollback se
// implementa por snapshot: antes de ejecutar el callback se copia el estado
// completo y, si el callback falla, se restaura. Mismo contrato observable
// que el runner PostgreSQL: o todos los efectos o ninguno.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/cascade"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/shift"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)
var _ shift.TxRunner = (*Store)(nil)
var _ cascade.TxRunner = (*Store)(nil)

// Store guarda todo el estado en memoria. Seguro para uso concurrente.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex // serializa transacciones

	products      map[string]entity.Product
	customers     map[string]entity.Customer
	suppliers     map[string]entity.Supplier
	users         map[string]entity.User
	documents     map[string]entity.Document
	documentItems map[string][]entity.DocumentItem // por documento
	movements     []entity.InventoryMovement
	treasury      []entity.TreasuryEntry
	debts         map[string]entity.Debt
	debtPayments  map[string][]entity.DebtPayment // por deuda
	shifts        map[string]entity.Shift
	sequences     map[string]int // clave "prefijo|YYYY-MM-DD"
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		products:      map[string]entity.Product{},
		customers:     map[string]entity.Customer{},
		suppliers:     map[string]entity.Supplier{},
		users:         map[string]entity.User{},
		documents:     map[string]entity.Document{},
		documentItems: map[string][]entity.DocumentItem{},
		debts:         map[string]entity.Debt{},
		debtPayments:  map[string][]entity.DebtPayment{},
		shifts:        map[string]entity.Shift{},
		sequences:     map[string]int{},
	}
}

// ── Accesores de repositorios ────────────────────────────────────────────────

func (s *Store) Products() repository.ProductRepository   { return &productRepo{s} }
func (s *Store) Customers() repository.CustomerRepository { return &customerRepo{s} }
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierRepo{s} }
func (s *Store) Users() repository.UserRepository         { return &userRepo{s} }
func (s *Store) Documents() repository.DocumentRepository { return &documentRepo{s} }
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s} }
func (s *Store) Treasury() repository.TreasuryRepository  { return &treasuryRepo{s} }
func (s *Store) Debts() repository.DebtRepository         { return &debtRepo{s} }
func (s *Store) Shifts() repository.ShiftRepository       { return &shiftRepo{s} }
func (s *Store) Sequences() repository.SequenceRepository { return &sequenceRepo{s} }

// ── Transacciones ────────────────────────────────────────────────────────────

type snapshot struct {
	products      map[string]entity.Product
	customers     map[string]entity.Customer
	suppliers     map[string]entity.Supplier
	users         map[string]entity.User
	documents     map[string]entity.Document
	documentItems map[string][]entity.DocumentItem
	movements     []entity.InventoryMovement
	treasury      []entity.TreasuryEntry
	debts         map[string]entity.Debt
	debtPayments  map[string][]entity.DebtPayment
	shifts        map[string]entity.Shift
	sequences     map[string]int
}

func (s *Store) takeSnapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		products:      make(map[string]entity.Product, len(s.products)),
		customers:     make(map[string]entity.Customer, len(s.customers)),
		suppliers:     make(map[string]entity.Supplier, len(s.suppliers)),
		users:         make(map[string]entity.User, len(s.users)),
		documents:     make(map[string]entity.Document, len(s.documents)),
		documentItems: make(map[string][]entity.DocumentItem, len(s.documentItems)),
		movements:     append([]entity.InventoryMovement(nil), s.movements...),
		treasury:      append([]entity.TreasuryEntry(nil), s.treasury...),
		debts:         make(map[string]entity.Debt, len(s.debts)),
		debtPayments:  make(map[string][]entity.DebtPayment, len(s.debtPayments)),
		shifts:        make(map[string]entity.Shift, len(s.shifts)),
		sequences:     make(map[string]int, len(s.sequences)),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.customers {
		snap.customers[k] = v
	}
	for k, v := range s.suppliers {
		snap.suppliers[k] = v
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.documents {
		snap.documents[k] = v
	}
	for k, v := range s.documentItems {
		snap.documentItems[k] = append([]entity.DocumentItem(nil), v...)
	}
	for k, v := range s.debts {
		snap.debts[k] = v
	}
	for k, v := range s.debtPayments {
		snap.debtPayments[k] = append([]entity.DebtPayment(nil), v...)
	}
	for k, v := range s.shifts {
		snap.shifts[k] = cloneShift(v)
	}
	for k, v := range s.sequences {
		snap.sequences[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.customers = snap.customers
	s.suppliers = snap.suppliers
	s.users = snap.users
	s.documents = snap.documents
	s.documentItems = snap.documentItems
	s.movements = snap.movements
	s.treasury = snap.treasury
	s.debts = snap.debts
	s.debtPayments = snap.debtPayments
	s.shifts = snap.shifts
	s.sequences = snap.sequences
}

func (s *Store) inTx(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	snap := s.takeSnapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Run ejecuta un ajuste de inventario como transacción.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.inTx(func() error { return fn(s.Movements(), s.Products()) })
}

// RunShift ejecuta una transición de turno como transacción.
func (s *Store) RunShift(ctx context.Context, fn func(
	shiftRepo repository.ShiftRepository,
) error) error {
	return s.inTx(func() error { return fn(s.Shifts()) })
}

// RunCascade ejecuta la cascada de un documento como transacción.
func (s *Store) RunCascade(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	treasuryRepo repository.TreasuryRepository,
	debtRepo repository.DebtRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	shiftRepo repository.ShiftRepository,
) error) error {
	return s.inTx(func() error {
		return fn(s.Documents(), s.Products(), s.Movements(), s.Treasury(),
			s.Debts(), s.Customers(), s.Suppliers(), s.Shifts())
	})
}

// ── Productos ────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate no bloquea fila alguna: las transacciones del Store ya se
// serializan completas con txMu.
func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) UpdateStock(id string, quantity decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = quantity
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r *productRepo) UpdatePurchasePrice(id string, price decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.PurchasePrice = price
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r *productRepo) Update(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return pageOf(all, limit, offset), nil
}

// ── Clientes y proveedores ───────────────────────────────────────────────────

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *customerRepo) AdjustBalance(id string, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.CurrentBalance = c.CurrentBalance.Add(delta)
	c.UpdatedAt = time.Now()
	r.s.customers[id] = c
	return nil
}

func (r *customerRepo) Update(customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[customer.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return pageOf(all, limit, offset), nil
}

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Create(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if sup, ok := r.s.suppliers[id]; ok {
		return &sup, nil
	}
	return nil, nil
}

func (r *supplierRepo) AdjustBalance(id string, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return domain.ErrNotFound
	}
	sup.CurrentBalance = sup.CurrentBalance.Add(delta)
	sup.UpdatedAt = time.Now()
	r.s.suppliers[id] = sup
	return nil
}

func (r *supplierRepo) Update(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *supplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]entity.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		all = append(all, sup)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return pageOf(all, limit, offset), nil
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *userRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

// ── Documentos ───────────────────────────────────────────────────────────────

type documentRepo struct{ s *Store }

func (r *documentRepo) Create(doc *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.documents {
		if d.Number == doc.Number {
			return domain.ErrDuplicate
		}
		if doc.RequestID != "" && d.RequestID == doc.RequestID {
			return domain.ErrDuplicate
		}
	}
	r.s.documents[doc.ID] = *doc
	return nil
}

func (r *documentRepo) CreateItem(item *entity.DocumentItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.documentItems[item.DocumentID] = append(r.s.documentItems[item.DocumentID], *item)
	return nil
}

func (r *documentRepo) GetByID(id string) (*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if d, ok := r.s.documents[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (r *documentRepo) GetByNumber(number string) (*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.documents {
		if d.Number == number {
			cp := d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *documentRepo) GetByRequestID(requestID string) (*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.documents {
		if d.RequestID == requestID {
			cp := d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *documentRepo) GetItems(documentID string) ([]*entity.DocumentItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	items := r.s.documentItems[documentID]
	out := make([]*entity.DocumentItem, 0, len(items))
	for i := range items {
		cp := items[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *documentRepo) List(docType string, from, to *time.Time, limit, offset int) ([]*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []entity.Document
	for _, d := range r.s.documents {
		if docType != "" && d.Type != docType {
			continue
		}
		if from != nil && d.Date.Before(*from) {
			continue
		}
		if to != nil && d.Date.After(*to) {
			continue
		}
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return pageOf(all, limit, offset), nil
}

// ── Movimientos de inventario ────────────────────────────────────────────────

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(movement *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

func (r *movementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.Date.Before(*from) {
			continue
		}
		if to != nil && m.Date.After(*to) {
			continue
		}
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return pageOf(all, limit, offset), nil
}

func (r *movementRepo) ListByDocument(documentID string) ([]*entity.InventoryMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.InventoryMovement
	for i := range r.s.movements {
		if r.s.movements[i].DocumentID == documentID {
			cp := r.s.movements[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── Tesorería ────────────────────────────────────────────────────────────────

type treasuryRepo struct{ s *Store }

func (r *treasuryRepo) Create(entry *entity.TreasuryEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.treasury = append(r.s.treasury, *entry)
	return nil
}

func (r *treasuryRepo) Balance(method string) (*entity.TreasuryBalance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b := entity.TreasuryBalance{Income: decimal.Zero, Expense: decimal.Zero}
	for _, e := range r.s.treasury {
		if method != "" && e.Method != method {
			continue
		}
		switch e.Type {
		case entity.TreasuryIncome, entity.TreasuryOpeningBalance:
			b.Income = b.Income.Add(e.Amount)
		case entity.TreasuryExpense:
			b.Expense = b.Expense.Add(e.Amount)
		}
	}
	b.Net = b.Income.Sub(b.Expense)
	return &b, nil
}

func (r *treasuryRepo) List(from, to *time.Time, limit, offset int) ([]*entity.TreasuryEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []entity.TreasuryEntry
	for _, e := range r.s.treasury {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return pageOf(all, limit, offset), nil
}

// ── Deudas ───────────────────────────────────────────────────────────────────

type debtRepo struct{ s *Store }

func (r *debtRepo) Create(debt *entity.Debt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.debts[debt.ID] = *debt
	return nil
}

func (r *debtRepo) GetByID(id string) (*entity.Debt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if d, ok := r.s.debts[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (r *debtRepo) GetForUpdate(id string) (*entity.Debt, error) {
	return r.GetByID(id)
}

func (r *debtRepo) Update(debt *entity.Debt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.debts[debt.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.debts[debt.ID] = *debt
	return nil
}

func (r *debtRepo) CreatePayment(payment *entity.DebtPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.debtPayments[payment.DebtID] = append(r.s.debtPayments[payment.DebtID], *payment)
	return nil
}

func (r *debtRepo) ListByEntity(entityType, entityID string, limit, offset int) ([]*entity.Debt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []entity.Debt
	for _, d := range r.s.debts {
		if d.EntityType == entityType && d.EntityID == entityID {
			all = append(all, d)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if (all[i].Status == entity.DebtPaid) != (all[j].Status == entity.DebtPaid) {
			return all[i].Status != entity.DebtPaid
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return pageOf(all, limit, offset), nil
}

func (r *debtRepo) ListPayments(debtID string) ([]*entity.DebtPayment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	payments := r.s.debtPayments[debtID]
	out := make([]*entity.DebtPayment, 0, len(payments))
	for i := range payments {
		cp := payments[i]
		out = append(out, &cp)
	}
	return out, nil
}

// ── Turnos ───────────────────────────────────────────────────────────────────

type shiftRepo struct{ s *Store }

func (r *shiftRepo) Create(sh *entity.Shift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.shifts {
		if existing.UserID == sh.UserID && existing.Status == entity.ShiftOpen {
			return domain.ErrDuplicate
		}
	}
	r.s.shifts[sh.ID] = cloneShift(*sh)
	return nil
}

func (r *shiftRepo) GetByID(id string) (*entity.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if sh, ok := r.s.shifts[id]; ok {
		cp := cloneShift(sh)
		return &cp, nil
	}
	return nil, nil
}

func (r *shiftRepo) GetForUpdate(id string) (*entity.Shift, error) {
	return r.GetByID(id)
}

func (r *shiftRepo) GetOpenByUser(userID string) (*entity.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sh := range r.s.shifts {
		if sh.UserID == userID && sh.Status == entity.ShiftOpen {
			cp := cloneShift(sh)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *shiftRepo) GetOpenByUserForUpdate(userID string) (*entity.Shift, error) {
	return r.GetOpenByUser(userID)
}

func (r *shiftRepo) Update(sh *entity.Shift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shifts[sh.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.shifts[sh.ID] = cloneShift(*sh)
	return nil
}

func (r *shiftRepo) List(userID string, limit, offset int) ([]*entity.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []entity.Shift
	for _, sh := range r.s.shifts {
		if userID != "" && sh.UserID != userID {
			continue
		}
		all = append(all, cloneShift(sh))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartTime.After(all[j].StartTime) })
	return pageOf(all, limit, offset), nil
}

// ── Secuencias ───────────────────────────────────────────────────────────────

type sequenceRepo struct{ s *Store }

func (r *sequenceRepo) Next(prefix string, date time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := strings.Join([]string{prefix, date.Format("2006-01-02")}, "|")
	r.s.sequences[key]++
	return r.s.sequences[key], nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func cloneShift(sh entity.Shift) entity.Shift {
	cp := sh
	cp.SalesByMethod = make(map[string]decimal.Decimal, len(sh.SalesByMethod))
	for k, v := range sh.SalesByMethod {
		cp.SalesByMethod[k] = v
	}
	return cp
}

func pageOf[T any](all []T, limit, offset int) []*T {
	if offset >= len(all) {
		return nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]*T, 0, end-offset)
	for i := offset; i < end; i++ {
		cp := all[i]
		out = append(out, &cp)
	}
	return out
}
