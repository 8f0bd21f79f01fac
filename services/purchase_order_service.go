package services

import (
	"errors"
	"time"

	"github.com/pixelmage/pixelmage-cards-api/models"
	"gorm.io/gorm"
)

// AddLineInput carries the parameters for adding a line to a purchase order.
type AddLineInput struct {
	PurchaseOrderID uint
	ProductID       uint
	QuantityOrdered int
	UnitPrice       float64
	ExpectedDate    *time.Time
	Note            *string
}

// AddPurchaseOrderLine appends a product line to an existing purchase
// order. TotalPrice is computed here as UnitPrice * QuantityOrdered;
// the full ordered quantity starts out pending.
func AddPurchaseOrderLine(db *gorm.DB, input AddLineInput) (*models.PurchaseOrderLine, error) {
	if input.QuantityOrdered <= 0 {
		return nil, ErrInvalidQuantity
	}

	var line models.PurchaseOrderLine
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.PurchaseOrder{}, input.PurchaseOrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPurchaseOrderNotFound
			}
			return err
		}
		if err := tx.First(&models.Product{}, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		line = models.PurchaseOrderLine{
			PurchaseOrderID:         input.PurchaseOrderID,
			ProductID:               input.ProductID,
			QuantityOrdered:         input.QuantityOrdered,
			QuantityReceived:        0,
			QuantityPendingReceived: input.QuantityOrdered,
			UnitPrice:               input.UnitPrice,
			TotalPrice:              input.UnitPrice * float64(input.QuantityOrdered),
			ExpectedDate:            input.ExpectedDate,
			Note:                    input.Note,
		}
		return tx.Create(&line).Error
	})
	if err != nil {
		return nil, err
	}

	return &line, nil
}

// ReceivePurchaseOrderLine marks one line of a purchase order as
// received in full: QuantityReceived becomes QuantityOrdered, nothing
// is left pending, and an IN warehouse transaction referencing the
// purchase order feeds the received stock into the inventory ledger at
// the order's warehouse. Once every line is fully received the order
// status moves to RECEIVED. The line update, the transaction row and
// the inventory mutation all commit or roll back together.
func ReceivePurchaseOrderLine(db *gorm.DB, purchaseOrderID, lineID uint) (*models.PurchaseOrder, error) {
	var result models.PurchaseOrder
	err := db.Transaction(func(tx *gorm.DB) error {
		var po models.PurchaseOrder
		if err := tx.First(&po, purchaseOrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPurchaseOrderNotFound
			}
			return err
		}

		if po.Status == models.PurchaseOrderStatusCanceled || po.Status == models.PurchaseOrderStatusClosed {
			return ErrPurchaseOrderNotReceivable
		}

		var line models.PurchaseOrderLine
		if err := tx.Where("id = ? AND purchase_order_id = ?", lineID, purchaseOrderID).First(&line).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPurchaseOrderLineNotFound
			}
			return err
		}

		if line.FullyReceived() {
			return ErrLineAlreadyReceived
		}

		// Receiving assumes full receipt of the ordered quantity; only the
		// part still outstanding flows into inventory.
		remaining := line.QuantityOrdered - line.QuantityReceived
		line.QuantityReceived = line.QuantityOrdered
		line.QuantityPendingReceived = 0
		if err := tx.Save(&line).Error; err != nil {
			return err
		}

		referenceID := po.ID
		transaction := models.WarehouseTransaction{
			WarehouseID:     po.WarehouseID,
			ProductID:       line.ProductID,
			Quantity:        remaining,
			TransactionType: models.TransactionTypeIn,
			ReferenceID:     &referenceID,
			TransactionDate: time.Now(),
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}
		if _, err := ApplyInventoryAdjustment(tx, line.ProductID, po.WarehouseID, remaining, models.TransactionTypeIn); err != nil {
			return err
		}

		// Order is fully received once no line has anything outstanding
		var outstanding int64
		if err := tx.Model(&models.PurchaseOrderLine{}).
			Where("purchase_order_id = ? AND quantity_received < quantity_ordered", purchaseOrderID).
			Count(&outstanding).Error; err != nil {
			return err
		}
		if outstanding == 0 {
			po.Status = models.PurchaseOrderStatusReceived
			if err := tx.Save(&po).Error; err != nil {
				return err
			}
		}

		return tx.Preload("Lines").Preload("Supplier").First(&result, purchaseOrderID).Error
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
