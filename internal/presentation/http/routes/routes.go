package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/config"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/handler"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/middleware"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/utils"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Auth        *handler.AuthHandler
	Transaction *handler.TransactionHandler
	Room        *handler.RoomHandler
	MenuItem    *handler.MenuItemHandler
	Guest       *handler.GuestHandler
	Unit        *handler.UnitHandler
	Property    *handler.PropertyHandler
	Settings    *handler.SettingsHandler
	Dashboard   *handler.DashboardHandler
	User        *handler.UserHandler
	Export      *handler.ExportHandler
	Printer     *handler.PrinterHandler
}

// Deps holds the shared dependencies the router wires into middleware
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo repository.IdempotencyRepository
	PropertyRepo    repository.PropertyRepository
}

// Setup configures all application routes
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": deps.Cfg.App.Name})
	})

	limiterCfg := middleware.DefaultRateLimiterConfig()
	if deps.Cfg.RateLimit.Requests > 0 && deps.Cfg.RateLimit.Duration > 0 {
		limiterCfg.RequestsPerSecond = float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration)
		limiterCfg.BurstSize = deps.Cfg.RateLimit.Requests
	}
	rateLimiter := middleware.NewPropertyRateLimiter(limiterCfg)

	idempotency := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/verify-email", h.Auth.VerifyEmail)
		auth.POST("/resend-verification", h.Auth.ResendVerification)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}

	// Authenticated routes without a property context
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWTManager))
	{
		protected.POST("/auth/logout", h.Auth.Logout)
		protected.GET("/auth/profile", h.Auth.GetProfile)
		protected.PUT("/auth/profile", h.Auth.UpdateProfile)
		protected.POST("/auth/change-password", h.Auth.ChangePassword)

		protected.GET("/properties", h.Property.ListProperties)
		protected.POST("/properties", h.Property.CreateProperty)
	}

	// Property-scoped routes. Every request must carry X-Property-ID and the
	// caller must be a member of that property.
	scoped := v1.Group("")
	scoped.Use(middleware.AuthMiddleware(deps.JWTManager))
	scoped.Use(middleware.PropertyMiddleware(deps.PropertyRepo))
	scoped.Use(rateLimiter.Middleware())
	{
		registerPropertyRoutes(scoped, h)
		registerTransactionRoutes(scoped, h, idempotency)
		registerRoomRoutes(scoped, h)
		registerMenuRoutes(scoped, h)
		registerGuestRoutes(scoped, h)
		registerUnitRoutes(scoped, h)
		registerSettingsRoutes(scoped, h)
		registerDashboardRoutes(scoped, h)
		registerUserRoutes(scoped, h)
		registerExportRoutes(scoped, h)
		registerPrinterRoutes(scoped, h)
	}

	return router
}

func registerPropertyRoutes(rg *gin.RouterGroup, h *Handlers) {
	properties := rg.Group("/properties")
	{
		properties.GET("/current", h.Property.GetCurrentProperty)
		properties.PUT("/current", middleware.RequirePermission("manage-settings"), h.Property.UpdateProperty)
		properties.GET("/current/members", h.Property.ListMembers)
		properties.POST("/current/members", middleware.RequirePermission("manage-users"), h.Property.AddMember)
		properties.DELETE("/current/members/:userId", middleware.RequirePermission("manage-users"), h.Property.RemoveMember)
	}
}

func registerTransactionRoutes(rg *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	transactions := rg.Group("/transactions")
	{
		transactions.POST("/checkout", middleware.RequirePermission("record-sales"), idempotency, h.Transaction.Checkout)
		transactions.POST("/folios", middleware.RequirePermission("manage-folios"), idempotency, h.Transaction.CreateFolio)
		transactions.POST("/proformas", middleware.RequirePermission("manage-proformas"), idempotency, h.Transaction.CreateProforma)
		transactions.POST("/:id/settle", middleware.RequirePermission("settle-transactions"), idempotency, h.Transaction.Settle)
		transactions.PUT("/:id", middleware.RequirePermission("manage-folios"), h.Transaction.Amend)
		transactions.PATCH("/:id/guest", middleware.RequirePermission("manage-folios"), h.Transaction.UpdateGuestDetails)
		transactions.POST("/:id/void", middleware.RequirePermission("void-transactions"), h.Transaction.VoidTransaction)
		transactions.GET("", h.Transaction.ListTransactions)
		transactions.GET("/:id", h.Transaction.GetTransaction)
		transactions.GET("/reference/:reference", h.Transaction.GetByReference)
		transactions.POST("/:id/print", middleware.RequirePermission("record-sales"), h.Printer.PrintTransaction)
		transactions.GET("/:id/docket", h.Printer.BuildDocket)
	}
}

func registerRoomRoutes(rg *gin.RouterGroup, h *Handlers) {
	rooms := rg.Group("/rooms")
	{
		rooms.GET("", h.Room.ListRooms)
		rooms.GET("/:id", h.Room.GetRoom)
		rooms.GET("/:id/availability", h.Room.CheckAvailability)
		rooms.POST("", middleware.RequirePermission("manage-rooms"), h.Room.CreateRoom)
		rooms.PUT("/:id", middleware.RequirePermission("manage-rooms"), h.Room.UpdateRoom)
		rooms.DELETE("/:id", middleware.RequirePermission("manage-rooms"), h.Room.DeleteRoom)
	}
}

func registerMenuRoutes(rg *gin.RouterGroup, h *Handlers) {
	items := rg.Group("/menu-items")
	{
		items.GET("", h.MenuItem.ListMenuItems)
		items.GET("/low-stock", h.MenuItem.GetLowStock)
		items.GET("/:id", h.MenuItem.GetMenuItem)
		items.POST("", middleware.RequirePermission("manage-menu"), h.MenuItem.CreateMenuItem)
		items.PUT("/:id", middleware.RequirePermission("manage-menu"), h.MenuItem.UpdateMenuItem)
		items.POST("/:id/restock", middleware.RequirePermission("manage-menu"), h.MenuItem.Restock)
		items.DELETE("/:id", middleware.RequirePermission("manage-menu"), h.MenuItem.DeleteMenuItem)
	}
}

func registerGuestRoutes(rg *gin.RouterGroup, h *Handlers) {
	guests := rg.Group("/guests")
	guests.Use(middleware.RequirePermission("manage-guests"))
	{
		guests.GET("", h.Guest.ListGuests)
		guests.GET("/:id", h.Guest.GetGuest)
		guests.POST("", h.Guest.CreateGuest)
		guests.PUT("/:id", h.Guest.UpdateGuest)
		guests.DELETE("/:id", h.Guest.DeleteGuest)
	}
}

func registerUnitRoutes(rg *gin.RouterGroup, h *Handlers) {
	units := rg.Group("/units")
	{
		units.GET("", h.Unit.ListUnits)
		units.GET("/:id", h.Unit.GetUnit)
		units.POST("", middleware.RequirePermission("manage-units"), h.Unit.CreateUnit)
		units.PUT("/:id", middleware.RequirePermission("manage-units"), h.Unit.UpdateUnit)
		units.DELETE("/:id", middleware.RequirePermission("manage-units"), h.Unit.DeleteUnit)
		units.POST("/:id/bank-accounts", middleware.RequirePermission("manage-units"), h.Unit.AddBankAccount)
		units.PUT("/:id/bank-accounts/:accountId", middleware.RequirePermission("manage-units"), h.Unit.UpdateBankAccount)
		units.DELETE("/:id/bank-accounts/:accountId", middleware.RequirePermission("manage-units"), h.Unit.RemoveBankAccount)
	}
}

func registerSettingsRoutes(rg *gin.RouterGroup, h *Handlers) {
	settings := rg.Group("/settings")
	{
		settings.GET("", h.Settings.GetSettings)
		settings.PUT("", middleware.RequirePermission("manage-settings"), h.Settings.UpdateSettings)

		taxRules := settings.Group("/tax-rules")
		{
			taxRules.GET("", h.Settings.ListTaxRules)
			taxRules.POST("", middleware.RequirePermission("manage-tax-rules"), h.Settings.CreateTaxRule)
			taxRules.PUT("/reorder", middleware.RequirePermission("manage-tax-rules"), h.Settings.ReorderTaxRules)
			taxRules.PUT("/:id", middleware.RequirePermission("manage-tax-rules"), h.Settings.UpdateTaxRule)
			taxRules.DELETE("/:id", middleware.RequirePermission("manage-tax-rules"), h.Settings.DeleteTaxRule)
		}
	}
}

func registerDashboardRoutes(rg *gin.RouterGroup, h *Handlers) {
	dashboard := rg.Group("/dashboard")
	dashboard.Use(middleware.RequirePermission("view-dashboard"))
	{
		dashboard.GET("/summary", h.Dashboard.GetSummary)
	}
}

func registerUserRoutes(rg *gin.RouterGroup, h *Handlers) {
	users := rg.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.ListUsers)
		users.GET("/:id", h.User.GetUser)
		users.POST("", h.User.CreateUser)
		users.PUT("/:id", h.User.UpdateUser)
		users.DELETE("/:id", h.User.DeleteUser)
		users.POST("/:id/roles", h.User.AssignRole)
		users.DELETE("/:id/roles/:roleId", h.User.RemoveRole)
	}

	roles := rg.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
		roles.PUT("/:roleId/permissions", h.User.SyncRolePermissions)
	}

	rg.GET("/permissions", middleware.RequirePermission("manage-users"), h.User.ListPermissions)
}

func registerExportRoutes(rg *gin.RouterGroup, h *Handlers) {
	exports := rg.Group("/exports")
	exports.Use(middleware.RequirePermission("export-reports"))
	{
		exports.GET("/transactions", h.Export.ExportTransactions)
		exports.GET("/inventory", h.Export.ExportInventory)
	}
}

func registerPrinterRoutes(rg *gin.RouterGroup, h *Handlers) {
	printer := rg.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", middleware.RequirePermission("manage-settings"), h.Printer.TestPrint)
	}
}
