package database

import (
	"fmt"
	"log"

	"github.com/aushadhi/pharmacy-api/internal/application/ledger"
	"github.com/aushadhi/pharmacy-api/internal/config"
	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
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
		// Catalog and inventory
		&entity.Product{},
		&entity.Batch{},

		// Parties
		&entity.Customer{},
		&entity.Supplier{},

		// Transactions
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.Purchase{},
		&entity.PurchaseItem{},
		&entity.CustomerReturn{},
		&entity.CustomerReturnItem{},
		&entity.SupplierReturn{},
		&entity.SupplierReturnItem{},

		// Credit instruments
		&entity.Voucher{},
		&entity.CreditNote{},

		// Bookkeeping
		&entity.Account{},
		&entity.JournalEntry{},
		&entity.JournalLine{},

		// System
		&entity.User{},
		&entity.GSTSettings{},
		&entity.Attachment{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the system ledger accounts, the default GST rate
// bands and the admin login.
func SeedDefaultData(db *gorm.DB, admin *config.AdminConfig) error {
	log.Println("Seeding default data...")

	for id, name := range ledger.SystemAccounts {
		var existing entity.Account
		if err := db.Where("id = ?", id).First(&existing).Error; err != nil {
			if err := db.Create(&entity.Account{ID: id, Name: name}).Error; err != nil {
				log.Printf("Warning: failed to create account %s: %v", id, err)
			}
		}
	}

	var settings entity.GSTSettings
	if err := db.First(&settings).Error; err != nil {
		settings = entity.GSTSettings{Subsidized: 5, General: 12, Food: 18}
		if err := db.Create(&settings).Error; err != nil {
			log.Printf("Warning: failed to create GST settings: %v", err)
		}
	}

	var adminUser entity.User
	if err := db.Where("email = ?", admin.Email).First(&adminUser).Error; err != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		adminUser = entity.User{
			FirstName: "Admin",
			Email:     admin.Email,
			Password:  string(hashed),
			Role:      "admin",
		}
		if err := db.Create(&adminUser).Error; err != nil {
			log.Printf("Warning: failed to create admin user: %v", err)
		}
	}

	log.Println("Default data seeded successfully")
	return nil
}
