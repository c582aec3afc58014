package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/config"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/utils"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Identity entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},
		&entity.AccountToken{},

		// Property entities
		&entity.Property{},
		&entity.PropertyMembership{},
		&entity.Unit{},
		&entity.BankAccount{},
		&entity.TaxRule{},

		// Catalog entities
		&entity.Room{},
		&entity.MenuItem{},
		&entity.Guest{},

		// Revenue entities
		&entity.Transaction{},
		&entity.TransactionLine{},
		&entity.TransactionTax{},
		&entity.PaymentRecord{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default roles, permissions and,
// when configured, the first admin operator and property.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	permissions := []entity.Permission{
		{Name: "view-dashboard", GuardName: "web"},
		{Name: "record-sales", GuardName: "web"},
		{Name: "manage-folios", GuardName: "web"},
		{Name: "manage-proformas", GuardName: "web"},
		{Name: "settle-transactions", GuardName: "web"},
		{Name: "void-transactions", GuardName: "web"},
		{Name: "manage-rooms", GuardName: "web"},
		{Name: "manage-menu", GuardName: "web"},
		{Name: "manage-guests", GuardName: "web"},
		{Name: "manage-units", GuardName: "web"},
		{Name: "manage-tax-rules", GuardName: "web"},
		{Name: "manage-settings", GuardName: "web"},
		{Name: "manage-users", GuardName: "web"},
		{Name: "export-reports", GuardName: "web"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Printf("Warning: failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	// Admin gets everything
	var adminRole entity.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		adminRole = entity.Role{
			Name:        "admin",
			GuardName:   "web",
			Permissions: allPermissions,
		}
		if err := db.Create(&adminRole).Error; err != nil {
			log.Printf("Warning: failed to create admin role: %v", err)
		}
	}

	// Cashiers run the terminal but cannot touch back-office configuration
	cashierPermissions := []string{
		"view-dashboard",
		"record-sales",
		"manage-folios",
		"manage-proformas",
		"settle-transactions",
		"manage-guests",
	}
	var cashierPerms []entity.Permission
	for _, name := range cashierPermissions {
		for _, p := range allPermissions {
			if p.Name == name {
				cashierPerms = append(cashierPerms, p)
				break
			}
		}
	}

	var cashierRole entity.Role
	if err := db.Where("name = ?", "cashier").First(&cashierRole).Error; err != nil {
		cashierRole = entity.Role{
			Name:        "cashier",
			GuardName:   "web",
			Permissions: cashierPerms,
		}
		if err := db.Create(&cashierRole).Error; err != nil {
			log.Printf("Warning: failed to create cashier role: %v", err)
		}
	}

	// Create the first admin operator and property if configured
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")
	propertyName := viper.GetString("PROPERTY_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
				return nil
			}

			var role entity.Role
			if err := db.Where("name = ?", "admin").First(&role).Error; err != nil {
				log.Printf("Warning: admin role missing, skipping admin user seed: %v", err)
				return nil
			}

			if adminName == "" {
				adminName = "Front Office Admin"
			}
			firstName := adminName
			lastName := ""
			for i, c := range adminName {
				if c == ' ' {
					firstName = adminName[:i]
					lastName = adminName[i+1:]
					break
				}
			}

			adminUser := entity.User{
				ID:        uuid.New(),
				FirstName: firstName,
				LastName:  lastName,
				Email:     adminEmail,
				Password:  string(hashedPassword),
				Roles:     []entity.Role{role},
			}
			if err := db.Create(&adminUser).Error; err != nil {
				log.Printf("Warning: failed to create admin user: %v", err)
				return nil
			}
			log.Printf("Admin user created: %s", adminEmail)

			if propertyName != "" {
				property := entity.Property{
					Name:     propertyName,
					Slug:     utils.Slugify(propertyName),
					OwnerID:  adminUser.ID,
					Settings: entity.DefaultPropertySettings(),
				}
				if err := db.Create(&property).Error; err != nil {
					log.Printf("Warning: failed to create property: %v", err)
					return nil
				}

				membership := entity.PropertyMembership{
					PropertyID: property.ID,
					UserID:     adminUser.ID,
					Role:       "owner",
				}
				if err := db.Create(&membership).Error; err != nil {
					log.Printf("Warning: failed to create property membership: %v", err)
				}

				seedDefaultTaxRules(db, property.ID)
				log.Printf("Property created: %s", propertyName)
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}

// seedDefaultTaxRules installs the standard VAT + service charge pair on a
// fresh property. Admins can edit or remove them afterwards.
func seedDefaultTaxRules(db *gorm.DB, propertyID uuid.UUID) {
	var count int64
	db.Model(&entity.TaxRule{}).Where("property_id = ?", propertyID).Count(&count)
	if count > 0 {
		return
	}

	rules := []entity.TaxRule{
		{PropertyID: propertyID, Name: "VAT", Rate: 0.075, Kind: enum.TaxKindVAT, VisibleOnReceipt: true, Position: 0},
		{PropertyID: propertyID, Name: "Service Charge", Rate: 0.10, Kind: enum.TaxKindServiceCharge, VisibleOnReceipt: true, Position: 1},
	}
	for i := range rules {
		if err := db.Create(&rules[i]).Error; err != nil {
			log.Printf("Warning: failed to seed tax rule %s: %v", rules[i].Name, err)
		}
	}
}
