package main

import (
	"log"

	"github.com/aushadhi/pharmacy-api/internal/application/service"
	"github.com/aushadhi/pharmacy-api/internal/config"
	"github.com/aushadhi/pharmacy-api/internal/infrastructure/database"
	"github.com/aushadhi/pharmacy-api/internal/infrastructure/repository"
	"github.com/aushadhi/pharmacy-api/internal/presentation/http/handler"
	"github.com/aushadhi/pharmacy-api/internal/presentation/http/routes"
	"github.com/aushadhi/pharmacy-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, &cfg.Admin); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	customerReturnRepo := repository.NewCustomerReturnRepository(db)
	supplierReturnRepo := repository.NewSupplierReturnRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	creditNoteRepo := repository.NewCreditNoteRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	txManager := repository.NewTxManager(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo, batchRepo)
	customerService := service.NewCustomerService(customerRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	saleService := service.NewSaleService(
		saleRepo,
		productRepo,
		batchRepo,
		voucherRepo,
		journalRepo,
		settingsRepo,
		attachmentRepo,
		txManager,
	)
	purchaseService := service.NewPurchaseService(
		purchaseRepo,
		supplierRepo,
		productRepo,
		batchRepo,
		creditNoteRepo,
		journalRepo,
		attachmentRepo,
		txManager,
	)
	returnService := service.NewReturnService(
		customerReturnRepo,
		supplierReturnRepo,
		saleRepo,
		purchaseRepo,
		supplierRepo,
		batchRepo,
		voucherRepo,
		creditNoteRepo,
		journalRepo,
		txManager,
	)
	voucherService := service.NewVoucherService(voucherRepo, creditNoteRepo)
	ledgerService := service.NewLedgerService(journalRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	attachmentService := service.NewAttachmentService(attachmentRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Product:    handler.NewProductHandler(productService),
		Customer:   handler.NewCustomerHandler(customerService),
		Supplier:   handler.NewSupplierHandler(supplierService, voucherService),
		Sale:       handler.NewSaleHandler(saleService),
		Purchase:   handler.NewPurchaseHandler(purchaseService),
		Return:     handler.NewReturnHandler(returnService),
		Voucher:    handler.NewVoucherHandler(voucherService),
		Ledger:     handler.NewLedgerHandler(ledgerService),
		Settings:   handler.NewSettingsHandler(settingsService),
		Attachment: handler.NewAttachmentHandler(attachmentService),
	}

	// Setup router
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Start server
	addr := ":" + cfg.App.Port
	log.Printf("%s listening on %s", cfg.App.Name, addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
