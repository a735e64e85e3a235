package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/cascade"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/shift"
	"github.com/jhoicas/pos-api/internal/application/treasury"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *usecase.ProductUseCase
	PartnerUC    *usecase.PartnerUseCase
	StockLedger  *inventory.StockLedger
	Treasury     *treasury.TreasuryLedger
	Debts        *treasury.DebtLedger
	ShiftUC      *shift.UseCase
	Orchestrator *cascade.Orchestrator
	ReceiptUC    *cascade.ReceiptUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Documentos: el punto de entrada de la cascada (protegido)
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.Orchestrator, deps.ReceiptUC, deps.ShiftUC)
	documents.Post("/", documentHandler.Post)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Get("/:id/receipt", documentHandler.Receipt)

	// Turnos de caja (protegido)
	shifts := protected.Group("/shifts")
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	shifts.Post("/open", shiftHandler.Open)
	shifts.Post("/close", shiftHandler.Close)
	shifts.Get("/active", shiftHandler.Active)

	// Tesorería y deudas (protegido; saldo inicial solo admin)
	treasuryHandler := NewTreasuryHandler(deps.Treasury, deps.Debts)
	treasuryGroup := protected.Group("/treasury")
	treasuryGroup.Get("/balance", treasuryHandler.Balance)
	treasuryGroup.Get("/entries", treasuryHandler.Entries)
	treasuryGroup.Post("/opening-balance", RequireRole(entity.RoleAdmin), treasuryHandler.OpeningBalance)
	debts := protected.Group("/debts")
	debts.Get("/", treasuryHandler.ListDebts)
	debts.Get("/:id", treasuryHandler.GetDebt)

	// Inventario (protegido; ajustes solo admin)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockLedger)
	invGroup.Post("/adjustments", RequireRole(entity.RoleAdmin), inventoryHandler.Adjust)
	invGroup.Get("/movements", inventoryHandler.Movements)

	// Productos (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Clientes y proveedores (protegido)
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	customers := protected.Group("/customers")
	customers.Post("/", partnerHandler.CreateCustomer)
	customers.Get("/", partnerHandler.ListCustomers)
	customers.Get("/:id", partnerHandler.GetCustomer)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", partnerHandler.CreateSupplier)
	suppliers.Get("/", partnerHandler.ListSuppliers)
	suppliers.Get("/:id", partnerHandler.GetSupplier)
}
