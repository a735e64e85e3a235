package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/cascade"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/sequencer"
	"github.com/jhoicas/pos-api/internal/application/shift"
	"github.com/jhoicas/pos-api/internal/application/treasury"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	infracache "github.com/jhoicas/pos-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-api/internal/interfaces/http"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	docRepo := postgres.NewDocumentRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	treasuryRepo := postgres.NewTreasuryRepository(pool)
	debtRepo := postgres.NewDebtRepository(pool)
	shiftRepo := postgres.NewShiftRepository(pool)
	seqRepo := postgres.NewSequenceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de saldos de tesorería: Redis si está configurado,
	// si no un no-op que delega siempre en PostgreSQL.
	var balanceCache treasury.BalanceCache = treasury.NoopBalanceCache{}
	if cfg.Redis.Addr != "" {
		redisCache := infracache.NewRedisBalanceCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, se continúa sin caché de saldos")
		} else {
			defer redisCache.Close()
			balanceCache = redisCache
			log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de saldos Redis habilitado")
		}
	}

	seq := sequencer.New(seqRepo)
	stockLedger := inventory.NewStockLedger(txRunner, movementRepo, cfg.POS.AllowNegativeStock)
	treasuryLedger := treasury.NewTreasuryLedger(treasuryRepo, balanceCache)
	debtLedger := treasury.NewDebtLedger(debtRepo)
	shiftUC := shift.NewUseCase(txRunner, shiftRepo)

	// Orquestador de la cascada: numeración → inventario → tesorería → caja → deudas.
	orchestrator := cascade.NewOrchestrator(
		txRunner, seq, stockLedger, treasuryLedger, debtLedger, shiftUC,
		docRepo, customerRepo, supplierRepo,
	)

	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receiptUC := cascade.NewReceiptUseCase(
		docRepo, productRepo, customerRepo, supplierRepo, receiptGenerator,
	)

	productUC := usecase.NewProductUseCase(productRepo, stockLedger)
	partnerUC := usecase.NewPartnerUseCase(customerRepo, supplierRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		PartnerUC:    partnerUC,
		StockLedger:  stockLedger,
		Treasury:     treasuryLedger,
		Debts:        debtLedger,
		ShiftUC:      shiftUC,
		Orchestrator: orchestrator,
		ReceiptUC:    receiptUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
