package services

import (
	"sync"
	"testing"

	"github.com/pixelmage/pixelmage-cards-api/models"
	"github.com/pixelmage/pixelmage-cards-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedWarehouseAndProduct creates one warehouse and one product and
// returns their IDs
func seedWarehouseAndProduct(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()

	warehouse := models.Warehouse{Name: "Main Warehouse"}
	require.NoError(t, db.Create(&warehouse).Error)

	product := models.Product{Name: "Holo Dragon", Price: 19.99}
	require.NoError(t, db.Create(&product).Error)

	return warehouse.ID, product.ID
}

func TestApplyInventoryAdjustmentIn(t *testing.T) {
	db := testutil.OpenTestDB(t)
	warehouseID, productID := seedWarehouseAndProduct(t, db)

	// First IN creates the row
	inv, err := ApplyInventoryAdjustment(db, productID, warehouseID, 10, models.TransactionTypeIn)
	require.NoError(t, err)
	assert.Equal(t, 10, inv.Quantity)

	// Second IN adds to it
	inv, err = ApplyInventoryAdjustment(db, productID, warehouseID, 5, models.TransactionTypeIn)
	require.NoError(t, err)
	assert.Equal(t, 15, inv.Quantity)

	// Exactly one row exists for the pair
	var count int64
	require.NoError(t, db.Model(&models.Inventory{}).Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApplyInventoryAdjustmentOut(t *testing.T) {
	db := testutil.OpenTestDB(t)
	warehouseID, productID := seedWarehouseAndProduct(t, db)

	_, err := ApplyInventoryAdjustment(db, productID, warehouseID, 10, models.TransactionTypeIn)
	require.NoError(t, err)

	inv, err := ApplyInventoryAdjustment(db, productID, warehouseID, 4, models.TransactionTypeOut)
	require.NoError(t, err)
	assert.Equal(t, 6, inv.Quantity)

	// Draining to exactly zero is allowed
	inv, err = ApplyInventoryAdjustment(db, productID, warehouseID, 6, models.TransactionTypeOut)
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Quantity)
}

func TestApplyInventoryAdjustmentOutInsufficient(t *testing.T) {
	db := testutil.OpenTestDB(t)
	warehouseID, productID := seedWarehouseAndProduct(t, db)

	_, err := ApplyInventoryAdjustment(db, productID, warehouseID, 3, models.TransactionTypeIn)
	require.NoError(t, err)

	_, err = ApplyInventoryAdjustment(db, productID, warehouseID, 4, models.TransactionTypeOut)
	assert.ErrorIs(t, err, ErrInsufficientInventory)

	// Quantity is untouched after the failed OUT
	var inv models.Inventory
	require.NoError(t, db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&inv).Error)
	assert.Equal(t, 3, inv.Quantity)
}

func TestApplyInventoryAdjustmentOutAgainstMissingRow(t *testing.T) {
	db := testutil.OpenTestDB(t)
	warehouseID, productID := seedWarehouseAndProduct(t, db)

	// No inventory row exists yet; an OUT treats that as zero on hand
	_, err := ApplyInventoryAdjustment(db, productID, warehouseID, 1, models.TransactionTypeOut)
	assert.ErrorIs(t, err, ErrInsufficientInventory)
}

func TestApplyInventoryAdjustmentAbsolute(t *testing.T) {
	db := testutil.OpenTestDB(t)
	warehouseID, productID := seedWarehouseAndProduct(t, db)

	_, err := ApplyInventoryAdjustment(db, productID, warehouseID, 10, models.TransactionTypeIn)
	require.NoError(t, err)

	// ADJUSTMENT sets the absolute quantity, not a delta
	inv, err := ApplyInventoryAdjustment(db, productID, warehouseID, 42, models.TransactionTypeAdjustment)
	require.NoError(t, err)
	assert.Equal(t, 42, inv.Quantity)

	inv, err = ApplyInventoryAdjustment(db, productID, warehouseID, 7, models.TransactionTypeAdjustment)
	require.NoError(t, err)
	assert.Equal(t, 7, inv.Quantity)
}

func TestApplyInventoryAdjustmentRoundTrip(t *testing.T) {
	db := testutil.OpenTestDB(t)
	warehouseID, productID := seedWarehouseAndProduct(t, db)

	start, err := ApplyInventoryAdjustment(db, productID, warehouseID, 20, models.TransactionTypeIn)
	require.NoError(t, err)

	// IN of n followed by OUT of n lands back where it started
	_, err = ApplyInventoryAdjustment(db, productID, warehouseID, 13, models.TransactionTypeIn)
	require.NoError(t, err)
	end, err := ApplyInventoryAdjustment(db, productID, warehouseID, 13, models.TransactionTypeOut)
	require.NoError(t, err)
	assert.Equal(t, start.Quantity, end.Quantity)
}

func TestConcurrentOutNeverGoesNegative(t *testing.T) {
	db := testutil.OpenTestDB(t)
	warehouseID, productID := seedWarehouseAndProduct(t, db)

	const initial = 10
	const workers = 20
	_, err := ApplyInventoryAdjustment(db, productID, warehouseID, initial, models.TransactionTypeIn)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Transaction(func(tx *gorm.DB) error {
				_, err := ApplyInventoryAdjustment(tx, productID, warehouseID, 1, models.TransactionTypeOut)
				return err
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	var inv models.Inventory
	require.NoError(t, db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&inv).Error)
	assert.GreaterOrEqual(t, inv.Quantity, 0, "Inventory must never go negative")
	assert.Equal(t, initial-successes, inv.Quantity, "Each successful OUT removes exactly one unit")
}

func TestReverseInventoryEffect(t *testing.T) {
	db := testutil.OpenTestDB(t)
	warehouseID, productID := seedWarehouseAndProduct(t, db)

	_, err := ApplyInventoryAdjustment(db, productID, warehouseID, 10, models.TransactionTypeIn)
	require.NoError(t, err)

	// Reversing an IN subtracts its quantity
	in := &models.WarehouseTransaction{WarehouseID: warehouseID, ProductID: productID, Quantity: 4, TransactionType: models.TransactionTypeIn}
	require.NoError(t, ReverseInventoryEffect(db, in))

	var inv models.Inventory
	require.NoError(t, db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&inv).Error)
	assert.Equal(t, 6, inv.Quantity)

	// Reversing an OUT adds its quantity back
	out := &models.WarehouseTransaction{WarehouseID: warehouseID, ProductID: productID, Quantity: 2, TransactionType: models.TransactionTypeOut}
	require.NoError(t, ReverseInventoryEffect(db, out))
	require.NoError(t, db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&inv).Error)
	assert.Equal(t, 8, inv.Quantity)

	// ADJUSTMENT has no inverse
	adj := &models.WarehouseTransaction{WarehouseID: warehouseID, ProductID: productID, Quantity: 5, TransactionType: models.TransactionTypeAdjustment}
	assert.ErrorIs(t, ReverseInventoryEffect(db, adj), ErrIrreversibleAdjustment)
}

func TestCreateInventory(t *testing.T) {
	db := testutil.OpenTestDB(t)
	warehouseID, productID := seedWarehouseAndProduct(t, db)

	inv, err := CreateInventory(db, productID, warehouseID, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, inv.Quantity)

	// A second row for the same pair is rejected
	_, err = CreateInventory(db, productID, warehouseID, 1)
	assert.ErrorIs(t, err, ErrInventoryExists)

	// Unknown warehouse and product are rejected up front
	_, err = CreateInventory(db, productID, warehouseID+999, 1)
	assert.ErrorIs(t, err, ErrWarehouseNotFound)
	_, err = CreateInventory(db, productID+999, warehouseID, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
