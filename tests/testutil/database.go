package testutil

import (
	"testing"

	"github.com/pixelmage/pixelmage-cards-api/config"
	"github.com/pixelmage/pixelmage-cards-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB opens a fresh in-memory database with the full schema
// migrated and registers it as the active connection.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	// Each pooled connection would otherwise see its own empty
	// in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Role{},
		&models.Account{},
		&models.Supplier{},
		&models.Product{},
		&models.CardTemplate{},
		&models.Card{},
		&models.Warehouse{},
		&models.Inventory{},
		&models.WarehouseTransaction{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderLine{},
		&models.Order{},
		&models.OrderItem{},
		&models.CardCollection{},
		&models.CollectionItem{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}
