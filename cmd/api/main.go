package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/application/service"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/config"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/infrastructure/database"
	infraRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/infrastructure/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/handler"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/routes"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/email"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/oauth"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/printer"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/utils"
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

	// Seed default roles, permissions, tax rules and the admin account
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := infraRepo.NewUserRepository(db)
	roleRepo := infraRepo.NewRoleRepository(db)
	permissionRepo := infraRepo.NewPermissionRepository(db)
	accountTokenRepo := infraRepo.NewAccountTokenRepository(db)
	propertyRepo := infraRepo.NewPropertyRepository(db)
	unitRepo := infraRepo.NewUnitRepository(db)
	bankAccountRepo := infraRepo.NewBankAccountRepository(db)
	roomRepo := infraRepo.NewRoomRepository(db)
	menuItemRepo := infraRepo.NewMenuItemRepository(db)
	guestRepo := infraRepo.NewGuestRepository(db)
	txnRepo := infraRepo.NewTransactionRepository(db)
	taxRuleRepo := infraRepo.NewTaxRuleRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)
	analyticsRepo := infraRepo.NewAnalyticsRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.App.FrontendURL,
		AppName:      cfg.App.Name,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, accountTokenRepo, jwtManager, emailService, googleOAuthService)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)
	propertyService := service.NewPropertyService(propertyRepo, userRepo)
	settingsService := service.NewSettingsService(propertyRepo, taxRuleRepo)
	unitService := service.NewUnitService(unitRepo, bankAccountRepo)
	roomService := service.NewRoomService(roomRepo)
	menuItemService := service.NewMenuItemService(menuItemRepo)
	guestService := service.NewGuestService(guestRepo)
	txnService := service.NewTransactionService(txnRepo, roomRepo, menuItemRepo, guestRepo, settingsService)
	dashboardService := service.NewDashboardService(analyticsRepo, menuItemService)
	exportService := service.NewExportService(txnRepo, menuItemRepo, cfg.Export.MaxRows)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, txnRepo, settingsService, cfg.Printer.Type, cfg.Printer.CharWidth)

	// Periodically purge expired idempotency keys and account tokens
	go runCleanup(idempotencyRepo, accountTokenRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService, userService, &cfg.OAuth),
		Transaction: handler.NewTransactionHandler(txnService),
		Room:        handler.NewRoomHandler(roomService),
		MenuItem:    handler.NewMenuItemHandler(menuItemService),
		Guest:       handler.NewGuestHandler(guestService),
		Unit:        handler.NewUnitHandler(unitService),
		Property:    handler.NewPropertyHandler(propertyService),
		Settings:    handler.NewSettingsHandler(settingsService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		User:        handler.NewUserHandler(userService),
		Export:      handler.NewExportHandler(exportService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		PropertyRepo:    propertyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

func runCleanup(idempotencyRepo repository.IdempotencyRepository, accountTokenRepo repository.AccountTokenRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := idempotencyRepo.DeleteExpired(ctx); err != nil {
			log.Printf("Warning: Failed to clean up idempotency keys: %v", err)
		}
		if err := accountTokenRepo.DeleteExpired(ctx); err != nil {
			log.Printf("Warning: Failed to clean up account tokens: %v", err)
		}
		cancel()
	}
}
