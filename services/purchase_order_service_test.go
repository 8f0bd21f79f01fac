package services

import (
	"testing"

	"github.com/pixelmage/pixelmage-cards-api/models"
	"github.com/pixelmage/pixelmage-cards-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedPurchaseOrder creates a supplier, warehouse, product and an
// APPROVED purchase order, all wired together
func seedPurchaseOrder(t *testing.T, db *gorm.DB) (*models.PurchaseOrder, uint, uint) {
	t.Helper()

	supplier := models.Supplier{Name: "CardStock Co", Email: "orders@cardstock.example"}
	require.NoError(t, db.Create(&supplier).Error)

	warehouseID, productID := seedWarehouseAndProduct(t, db)

	po := models.PurchaseOrder{
		SupplierID:  supplier.ID,
		WarehouseID: warehouseID,
		PONumber:    "PO-2026-0001",
		Status:      models.PurchaseOrderStatusApproved,
	}
	require.NoError(t, db.Create(&po).Error)

	return &po, warehouseID, productID
}

func TestAddPurchaseOrderLine(t *testing.T) {
	db := testutil.OpenTestDB(t)
	po, _, productID := seedPurchaseOrder(t, db)

	line, err := AddPurchaseOrderLine(db, AddLineInput{
		PurchaseOrderID: po.ID,
		ProductID:       productID,
		QuantityOrdered: 50,
		UnitPrice:       2.50,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, line.QuantityOrdered)
	assert.Equal(t, 0, line.QuantityReceived)
	assert.Equal(t, 50, line.QuantityPendingReceived)
	assert.Equal(t, 125.0, line.TotalPrice)

	_, err = AddPurchaseOrderLine(db, AddLineInput{PurchaseOrderID: po.ID, ProductID: productID, QuantityOrdered: 0, UnitPrice: 1})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = AddPurchaseOrderLine(db, AddLineInput{PurchaseOrderID: po.ID + 999, ProductID: productID, QuantityOrdered: 1, UnitPrice: 1})
	assert.ErrorIs(t, err, ErrPurchaseOrderNotFound)

	_, err = AddPurchaseOrderLine(db, AddLineInput{PurchaseOrderID: po.ID, ProductID: productID + 999, QuantityOrdered: 1, UnitPrice: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestReceivePurchaseOrderLine(t *testing.T) {
	db := testutil.OpenTestDB(t)
	po, warehouseID, productID := seedPurchaseOrder(t, db)

	line, err := AddPurchaseOrderLine(db, AddLineInput{
		PurchaseOrderID: po.ID,
		ProductID:       productID,
		QuantityOrdered: 30,
		UnitPrice:       2.50,
	})
	require.NoError(t, err)

	received, err := ReceivePurchaseOrderLine(db, po.ID, line.ID)
	require.NoError(t, err)

	// The line is received in full
	var reloaded models.PurchaseOrderLine
	require.NoError(t, db.First(&reloaded, line.ID).Error)
	assert.Equal(t, 30, reloaded.QuantityReceived)
	assert.Equal(t, 0, reloaded.QuantityPendingReceived)
	assert.True(t, reloaded.FullyReceived())

	// Its only line was received, so the whole order is RECEIVED
	assert.Equal(t, models.PurchaseOrderStatusReceived, received.Status)

	// The stock landed in inventory at the order's warehouse
	var inv models.Inventory
	require.NoError(t, db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&inv).Error)
	assert.Equal(t, 30, inv.Quantity)

	// An IN transaction referencing the purchase order was logged
	var transaction models.WarehouseTransaction
	require.NoError(t, db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&transaction).Error)
	assert.Equal(t, models.TransactionTypeIn, transaction.TransactionType)
	assert.Equal(t, 30, transaction.Quantity)
	require.NotNil(t, transaction.ReferenceID)
	assert.Equal(t, po.ID, *transaction.ReferenceID)
}

func TestReceivePurchaseOrderLinePartialOrder(t *testing.T) {
	db := testutil.OpenTestDB(t)
	po, _, productID := seedPurchaseOrder(t, db)

	line1, err := AddPurchaseOrderLine(db, AddLineInput{PurchaseOrderID: po.ID, ProductID: productID, QuantityOrdered: 10, UnitPrice: 1})
	require.NoError(t, err)
	line2, err := AddPurchaseOrderLine(db, AddLineInput{PurchaseOrderID: po.ID, ProductID: productID, QuantityOrdered: 20, UnitPrice: 1})
	require.NoError(t, err)

	// Receiving one of two lines leaves the order status alone
	result, err := ReceivePurchaseOrderLine(db, po.ID, line1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseOrderStatusApproved, result.Status)

	// Receiving the last outstanding line flips it to RECEIVED
	result, err = ReceivePurchaseOrderLine(db, po.ID, line2.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PurchaseOrderStatusReceived, result.Status)
}

func TestReceivePurchaseOrderLineGuards(t *testing.T) {
	db := testutil.OpenTestDB(t)
	po, _, productID := seedPurchaseOrder(t, db)

	line, err := AddPurchaseOrderLine(db, AddLineInput{PurchaseOrderID: po.ID, ProductID: productID, QuantityOrdered: 5, UnitPrice: 1})
	require.NoError(t, err)

	_, err = ReceivePurchaseOrderLine(db, po.ID+999, line.ID)
	assert.ErrorIs(t, err, ErrPurchaseOrderNotFound)

	_, err = ReceivePurchaseOrderLine(db, po.ID, line.ID+999)
	assert.ErrorIs(t, err, ErrPurchaseOrderLineNotFound)

	// Receiving twice is rejected, and the second attempt adds no stock
	_, err = ReceivePurchaseOrderLine(db, po.ID, line.ID)
	require.NoError(t, err)
	_, err = ReceivePurchaseOrderLine(db, po.ID, line.ID)
	assert.ErrorIs(t, err, ErrLineAlreadyReceived)

	var count int64
	require.NoError(t, db.Model(&models.WarehouseTransaction{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReceivePurchaseOrderLineNotReceivable(t *testing.T) {
	db := testutil.OpenTestDB(t)
	po, _, productID := seedPurchaseOrder(t, db)

	line, err := AddPurchaseOrderLine(db, AddLineInput{PurchaseOrderID: po.ID, ProductID: productID, QuantityOrdered: 5, UnitPrice: 1})
	require.NoError(t, err)

	for _, status := range []string{models.PurchaseOrderStatusCanceled, models.PurchaseOrderStatusClosed} {
		require.NoError(t, db.Model(&models.PurchaseOrder{}).Where("id = ?", po.ID).Update("status", status).Error)
		_, err = ReceivePurchaseOrderLine(db, po.ID, line.ID)
		assert.ErrorIs(t, err, ErrPurchaseOrderNotReceivable, "status %s must not be receivable", status)
	}
}
