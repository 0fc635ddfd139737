package database

import (
	"fmt"
	"log"

	"github.com/mbianou/chopchap-api/internal/config"
	"github.com/mbianou/chopchap-api/internal/domain/entity"
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
		&entity.User{},

		// Reference data
		&entity.DeliveryArea{},
		&entity.AddOnGroup{},

		// Orders
		&entity.Order{},
		&entity.OrderItem{},

		// Loyalty program
		&entity.LoyaltyAccount{},
		&entity.LedgerTransaction{},

		// System entities
		&entity.Notification{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedReferenceData seeds delivery areas and the add-on catalog
func SeedReferenceData(db *gorm.DB) error {
	log.Println("Seeding reference data...")

	areas := []entity.DeliveryArea{
		{Name: "Bastos", Fee: 1500},
		{Name: "Mvog-Ada", Fee: 1000},
		{Name: "Nlongkak", Fee: 1000},
		{Name: "Odza", Fee: 2000},
		{Name: "Mendong", Fee: 2000},
		{Name: "Emana", Fee: 1500},
	}

	for i := range areas {
		var existing entity.DeliveryArea
		if err := db.Where("name = ?", areas[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&areas[i]).Error; err != nil {
				log.Printf("Warning: failed to create delivery area %s: %v", areas[i].Name, err)
			}
		}
	}

	groups := []entity.AddOnGroup{
		{
			ID:   "sauces",
			Name: "Sauces",
			Options: entity.AddOnOptionList{
				{Name: "Piment", Price: 100},
				{Name: "Mayonnaise", Price: 200},
				{Name: "Sauce tomate", Price: 150},
			},
		},
		{
			ID:   "boissons",
			Name: "Boissons",
			Options: entity.AddOnOptionList{
				{Name: "Top Ananas", Price: 500},
				{Name: "Djino Cocktail", Price: 500},
				{Name: "Eau minerale", Price: 400},
			},
		},
		{
			ID:   "supplements",
			Name: "Supplements",
			Options: entity.AddOnOptionList{
				{Name: "Plantain frit", Price: 500},
				{Name: "Baton de manioc", Price: 300},
			},
		},
	}

	for i := range groups {
		var existing entity.AddOnGroup
		if err := db.Where("id = ?", groups[i].ID).First(&existing).Error; err != nil {
			if err := db.Create(&groups[i]).Error; err != nil {
				log.Printf("Warning: failed to create add-on group %s: %v", groups[i].ID, err)
			}
		}
	}

	log.Println("Reference data seeding completed")
	return nil
}
