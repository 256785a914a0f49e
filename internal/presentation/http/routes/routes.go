package routes

import (
	"time"

	"github.com/aushadhi/pharmacy-api/internal/config"
	"github.com/aushadhi/pharmacy-api/internal/presentation/http/handler"
	"github.com/aushadhi/pharmacy-api/internal/presentation/http/middleware"
	"github.com/aushadhi/pharmacy-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Product    *handler.ProductHandler
	Customer   *handler.CustomerHandler
	Supplier   *handler.SupplierHandler
	Sale       *handler.SaleHandler
	Purchase   *handler.PurchaseHandler
	Return     *handler.ReturnHandler
	Voucher    *handler.VoucherHandler
	Ledger     *handler.LedgerHandler
	Settings   *handler.SettingsHandler
	Attachment *handler.AttachmentHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/profile", h.Auth.Profile)

	// Settings (admin only)
	protected.GET("/settings", h.Settings.Get)
	protected.PUT("/settings", middleware.RequireRole("admin"), h.Settings.Update)

	registerProductRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerSupplierRoutes(protected, h)
	registerSaleRoutes(protected, h)
	registerPurchaseRoutes(protected, h)
	registerReturnRoutes(protected, h)
	registerVoucherRoutes(protected, h)
	registerLedgerRoutes(protected, h)
	registerAttachmentRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/expiring-batches", h.Product.ExpiringBatches)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/batches", h.Product.AddBatch)
		products.GET("/:id/suggest-batch", h.Product.SuggestBatch)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerSupplierRoutes(protected *gin.RouterGroup, h *Handlers) {
	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
		suppliers.GET("/:id/credit-notes", h.Supplier.OpenCreditNotes)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", h.Sale.Checkout)
		sales.POST("/preview", h.Sale.Preview)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/payments", h.Sale.ReceivePayment)
	}
}

func registerPurchaseRoutes(protected *gin.RouterGroup, h *Handlers) {
	purchases := protected.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", h.Purchase.Create)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.POST("/:id/payments", h.Purchase.PaySupplier)
		purchases.POST("/:id/apply-credit-note", h.Purchase.ApplyCreditNote)
	}
}

func registerReturnRoutes(protected *gin.RouterGroup, h *Handlers) {
	customerReturns := protected.Group("/customer-returns")
	{
		customerReturns.GET("", h.Return.ListCustomerReturns)
		customerReturns.POST("", h.Return.CreateCustomerReturn)
		customerReturns.GET("/:id", h.Return.GetCustomerReturn)
	}

	supplierReturns := protected.Group("/supplier-returns")
	{
		supplierReturns.GET("", h.Return.ListSupplierReturns)
		supplierReturns.POST("", h.Return.CreateSupplierReturn)
		supplierReturns.GET("/:id", h.Return.GetSupplierReturn)
	}
}

func registerVoucherRoutes(protected *gin.RouterGroup, h *Handlers) {
	vouchers := protected.Group("/vouchers")
	{
		vouchers.GET("", h.Voucher.ListVouchers)
		vouchers.GET("/active", h.Voucher.ListActive)
		vouchers.POST("/expire-stale", h.Voucher.ExpireStale)
		vouchers.GET("/:id", h.Voucher.GetVoucher)
	}

	creditNotes := protected.Group("/credit-notes")
	{
		creditNotes.GET("", h.Voucher.ListCreditNotes)
		creditNotes.GET("/:id", h.Voucher.GetCreditNote)
	}
}

func registerLedgerRoutes(protected *gin.RouterGroup, h *Handlers) {
	ledger := protected.Group("/ledger")
	{
		ledger.GET("/entries", h.Ledger.ListEntries)
		ledger.POST("/entries", middleware.RequireRole("admin"), h.Ledger.CreateManualEntry)
		ledger.GET("/entries/:id", h.Ledger.GetEntry)
		ledger.GET("/accounts", h.Ledger.ListAccounts)
		ledger.GET("/accounts/:id/balance", h.Ledger.AccountBalance)
		ledger.GET("/accounts/:id/statement", h.Ledger.AccountStatement)
	}
}

func registerAttachmentRoutes(protected *gin.RouterGroup, h *Handlers) {
	attachments := protected.Group("/attachments")
	{
		attachments.POST("", h.Attachment.Upload)
		attachments.GET("/:id", h.Attachment.Download)
	}
}
