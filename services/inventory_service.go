package services

import (
	"errors"
	"time"

	"github.com/pixelmage/pixelmage-cards-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockedInventory loads the Inventory row for (productID, warehouseID)
// inside tx, holding a row lock until the surrounding transaction ends.
// SQLite (used in tests) serializes writers on its own and rejects
// FOR UPDATE, so the locking clause is only applied on postgres.
func lockedInventory(tx *gorm.DB, productID, warehouseID uint) (*models.Inventory, error) {
	query := tx.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID)
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var inventory models.Inventory
	if err := query.First(&inventory).Error; err != nil {
		return nil, err
	}
	return &inventory, nil
}

// ApplyInventoryAdjustment mutates the Inventory row for
// (productID, warehouseID) inside tx according to the transaction type:
//
//	IN         adds quantity
//	OUT        subtracts quantity, failing with ErrInsufficientInventory
//	           rather than letting the row go negative
//	ADJUSTMENT sets the quantity to the given value (absolute, not a delta)
//
// The row is created at zero on first use. LastChecked is refreshed on
// every adjustment. Callers must run this inside a database transaction;
// the re-read under lock is what prevents lost updates when two
// transactions touch the same row concurrently.
func ApplyInventoryAdjustment(tx *gorm.DB, productID, warehouseID uint, quantity int, transactionType string) (*models.Inventory, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !models.ValidTransactionType(transactionType) {
		return nil, ErrInvalidTransactionType
	}

	inventory, err := lockedInventory(tx, productID, warehouseID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// First movement for this pair creates the row at zero
		inventory = &models.Inventory{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Quantity:    0,
		}
		if err := tx.Create(inventory).Error; err != nil {
			return nil, err
		}
	}

	switch transactionType {
	case models.TransactionTypeIn:
		inventory.Quantity += quantity
	case models.TransactionTypeOut:
		if inventory.Quantity < quantity {
			return nil, ErrInsufficientInventory
		}
		inventory.Quantity -= quantity
	case models.TransactionTypeAdjustment:
		// ADJUSTMENT sets the absolute on-hand count, e.g. after a physical
		// stock take. The name reads like a delta but it never was one.
		inventory.Quantity = quantity
	}

	inventory.LastChecked = time.Now()
	if err := tx.Save(inventory).Error; err != nil {
		return nil, err
	}

	return inventory, nil
}

// ReverseInventoryEffect undoes the inventory effect of a previously
// recorded IN or OUT transaction inside tx. ADJUSTMENT has no
// well-defined inverse and is rejected.
func ReverseInventoryEffect(tx *gorm.DB, transaction *models.WarehouseTransaction) error {
	var inverse string
	switch transaction.TransactionType {
	case models.TransactionTypeIn:
		inverse = models.TransactionTypeOut
	case models.TransactionTypeOut:
		inverse = models.TransactionTypeIn
	case models.TransactionTypeAdjustment:
		return ErrIrreversibleAdjustment
	default:
		return ErrInvalidTransactionType
	}

	_, err := ApplyInventoryAdjustment(tx, transaction.ProductID, transaction.WarehouseID, transaction.Quantity, inverse)
	return err
}

// CreateInventory explicitly creates an Inventory row with an initial
// quantity, failing with ErrInventoryExists if the (product, warehouse)
// pair already has one.
func CreateInventory(db *gorm.DB, productID, warehouseID uint, quantity int) (*models.Inventory, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	var inventory models.Inventory
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Warehouse{}, warehouseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWarehouseNotFound
			}
			return err
		}
		if err := tx.First(&models.Product{}, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		var existing models.Inventory
		err := tx.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&existing).Error
		if err == nil {
			return ErrInventoryExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		inventory = models.Inventory{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Quantity:    quantity,
			LastChecked: time.Now(),
		}
		return tx.Create(&inventory).Error
	})
	if err != nil {
		return nil, err
	}

	return &inventory, nil
}
