package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jsalazar/tiendita-api/internal/config"
	"github.com/jsalazar/tiendita-api/internal/presentation/http/handler"
	"github.com/jsalazar/tiendita-api/internal/presentation/http/middleware"
	"github.com/jsalazar/tiendita-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Sale      *handler.SaleHandler
	Credit    *handler.CreditHandler
	Register  *handler.RegisterHandler
	ServiceTx *handler.ServiceTxHandler
	Report    *handler.ReportHandler
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

		// Per-operator rate limiter
		rateLimiter := middleware.NewOperatorRateLimiter(middleware.RateLimiterConfig{
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
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile
	protected.GET("/profile", h.Auth.Profile)

	// Sales and installment payments
	registerSaleRoutes(protected, h)

	// Cash register sessions
	registerRegisterRoutes(protected, h)

	// Service transactions
	registerServiceTxRoutes(protected, h)

	// Reports
	registerReportRoutes(protected, h)
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/void", h.Sale.Void)
		sales.GET("/:id/payments", h.Credit.ListPayments)
		sales.POST("/:id/payments", h.Credit.RecordPayment)
	}

	payments := protected.Group("/payments")
	{
		payments.GET("/:id", h.Credit.GetPayment)
		payments.PUT("/:id", h.Credit.UpdatePayment)
		payments.DELETE("/:id", h.Credit.DeletePayment)
	}
}

func registerRegisterRoutes(protected *gin.RouterGroup, h *Handlers) {
	registers := protected.Group("/registers")
	{
		registers.GET("", h.Register.List)
		registers.POST("", h.Register.Open)
		registers.GET("/current", h.Register.Current)
		registers.GET("/:id", h.Register.Get)
		registers.POST("/:id/close", h.Register.Close)
		registers.PUT("/:id", h.Register.Edit)
	}
}

func registerServiceTxRoutes(protected *gin.RouterGroup, h *Handlers) {
	services := protected.Group("/service-transactions")
	{
		services.GET("", h.ServiceTx.List)
		services.POST("", h.ServiceTx.Create)
		services.DELETE("/:id", h.ServiceTx.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("/income/daily", h.Report.DailyIncome)
	}
}
