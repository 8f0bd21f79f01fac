package services

import (
	"errors"
	"time"

	"github.com/pixelmage/pixelmage-cards-api/models"
	"gorm.io/gorm"
)

// RecordTransactionInput carries the parameters for recording a
// warehouse transaction.
type RecordTransactionInput struct {
	WarehouseID     uint
	ProductID       uint
	Quantity        int
	TransactionType string
	ReferenceID     *uint
	TransactionDate time.Time
}

// RecordTransaction validates and persists a warehouse transaction and
// applies its inventory effect. Both writes happen in one database
// transaction: a failed inventory adjustment (an OUT against
// insufficient stock, say) rolls the transaction row back too, so the
// log never carries an event whose effect did not happen.
func RecordTransaction(db *gorm.DB, input RecordTransactionInput) (*models.WarehouseTransaction, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !models.ValidTransactionType(input.TransactionType) {
		return nil, ErrInvalidTransactionType
	}
	if input.TransactionDate.IsZero() {
		input.TransactionDate = time.Now()
	}

	var transaction models.WarehouseTransaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Warehouse{}, input.WarehouseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWarehouseNotFound
			}
			return err
		}
		if err := tx.First(&models.Product{}, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		transaction = models.WarehouseTransaction{
			WarehouseID:     input.WarehouseID,
			ProductID:       input.ProductID,
			Quantity:        input.Quantity,
			TransactionType: input.TransactionType,
			ReferenceID:     input.ReferenceID,
			TransactionDate: input.TransactionDate,
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		_, err := ApplyInventoryAdjustment(tx, input.ProductID, input.WarehouseID, input.Quantity, input.TransactionType)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

// UpdateTransactionMetadata updates the reference and date of a
// recorded transaction. Quantity, type, product and warehouse are
// frozen once the inventory effect has been applied; changing them
// would silently desynchronize the log from the ledger.
func UpdateTransactionMetadata(db *gorm.DB, transactionID uint, referenceID *uint, transactionDate *time.Time) (*models.WarehouseTransaction, error) {
	var transaction models.WarehouseTransaction
	if err := db.First(&transaction, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	transaction.ReferenceID = referenceID
	if transactionDate != nil {
		transaction.TransactionDate = *transactionDate
	}

	if err := db.Save(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

// DeleteTransaction removes a transaction row and reverses its
// inventory effect in the same database transaction. ADJUSTMENT rows
// cannot be deleted (no inverse), and a reversal that would drive
// inventory negative fails the whole delete.
func DeleteTransaction(db *gorm.DB, transactionID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var transaction models.WarehouseTransaction
		if err := tx.First(&transaction, transactionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		if err := ReverseInventoryEffect(tx, &transaction); err != nil {
			return err
		}

		return tx.Delete(&transaction).Error
	})
}
