package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pixelmage/pixelmage-cards-api/models"
	"github.com/pixelmage/pixelmage-cards-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func purchaseOrderRoutes(r *gin.RouterGroup) {
	r.POST("/purchase-orders", CreatePurchaseOrder)
	r.GET("/purchase-orders", ListPurchaseOrders)
	r.GET("/purchase-orders/:id", GetPurchaseOrder)
	r.PUT("/purchase-orders/:id", UpdatePurchaseOrder)
	r.DELETE("/purchase-orders/:id", DeletePurchaseOrder)
	r.POST("/purchase-orders/:id/lines", AddPurchaseOrderLine)
	r.POST("/purchase-orders/:id/lines/:lineId/receive", ReceivePurchaseOrderLine)
}

func seedSupplier(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	supplier := models.Supplier{Name: "CardStock Co", Email: "orders@cardstock.example"}
	require.NoError(t, db.Create(&supplier).Error)
	return supplier.ID
}

func TestCreatePurchaseOrderEndpoint(t *testing.T) {
	db := testutil.OpenTestDB(t)
	seedRoleAccount(t, db, "auth0|admin", "admin")
	supplierID := seedSupplier(t, db)
	warehouseID, _ := seedStock(t, db)
	router := authRouter("auth0|admin", "admin", purchaseOrderRoutes)

	w, response := doJSON(t, router, "POST", "/api/v1/purchase-orders", gin.H{
		"supplier_id":  supplierID,
		"warehouse_id": warehouseID,
		"po_number":    "PO-2026-0042",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, response["success"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, models.PurchaseOrderStatusDraft, data["status"], "Status defaults to DRAFT")

	// Duplicate PO number is a conflict
	w, response = doJSON(t, router, "POST", "/api/v1/purchase-orders", gin.H{
		"supplier_id":  supplierID,
		"warehouse_id": warehouseID,
		"po_number":    "PO-2026-0042",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_PO_NUMBER", errorCode(response))
}

func TestCreatePurchaseOrderInvalidStatus(t *testing.T) {
	db := testutil.OpenTestDB(t)
	seedRoleAccount(t, db, "auth0|admin", "admin")
	supplierID := seedSupplier(t, db)
	warehouseID, _ := seedStock(t, db)
	router := authRouter("auth0|admin", "admin", purchaseOrderRoutes)

	w, response := doJSON(t, router, "POST", "/api/v1/purchase-orders", gin.H{
		"supplier_id":  supplierID,
		"warehouse_id": warehouseID,
		"po_number":    "PO-2026-0099",
		"status":       "SHIPPED",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_STATUS", errorCode(response))
}

func TestReceivePurchaseOrderLineEndpoint(t *testing.T) {
	db := testutil.OpenTestDB(t)
	seedRoleAccount(t, db, "auth0|admin", "admin")
	supplierID := seedSupplier(t, db)
	warehouseID, productID := seedStock(t, db)
	router := authRouter("auth0|admin", "admin", purchaseOrderRoutes)

	po := models.PurchaseOrder{
		SupplierID:  supplierID,
		WarehouseID: warehouseID,
		PONumber:    "PO-2026-0100",
		Status:      models.PurchaseOrderStatusApproved,
	}
	require.NoError(t, db.Create(&po).Error)

	w, lineResp := doJSON(t, router, "POST", "/api/v1/purchase-orders/"+itoa(po.ID)+"/lines", gin.H{
		"product_id":       productID,
		"quantity_ordered": 40,
		"unit_price":       1.25,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	lineID := uint(lineResp["data"].(map[string]interface{})["id"].(float64))

	w, response := doJSON(t, router, "POST", "/api/v1/purchase-orders/"+itoa(po.ID)+"/lines/"+itoa(lineID)+"/receive", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, models.PurchaseOrderStatusReceived, data["status"])

	// Received stock shows up in the ledger
	var inv models.Inventory
	require.NoError(t, db.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&inv).Error)
	assert.Equal(t, 40, inv.Quantity)

	// Receiving the same line again fails
	w, response = doJSON(t, router, "POST", "/api/v1/purchase-orders/"+itoa(po.ID)+"/lines/"+itoa(lineID)+"/receive", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "LINE_ALREADY_RECEIVED", errorCode(response))
}

func TestReceiveCanceledPurchaseOrderEndpoint(t *testing.T) {
	db := testutil.OpenTestDB(t)
	seedRoleAccount(t, db, "auth0|admin", "admin")
	supplierID := seedSupplier(t, db)
	warehouseID, productID := seedStock(t, db)
	router := authRouter("auth0|admin", "admin", purchaseOrderRoutes)

	po := models.PurchaseOrder{
		SupplierID:  supplierID,
		WarehouseID: warehouseID,
		PONumber:    "PO-2026-0101",
		Status:      models.PurchaseOrderStatusCanceled,
	}
	require.NoError(t, db.Create(&po).Error)
	line := models.PurchaseOrderLine{
		PurchaseOrderID:         po.ID,
		ProductID:               productID,
		QuantityOrdered:         5,
		QuantityPendingReceived: 5,
		UnitPrice:               1,
		TotalPrice:              5,
	}
	require.NoError(t, db.Create(&line).Error)

	w, response := doJSON(t, router, "POST", "/api/v1/purchase-orders/"+itoa(po.ID)+"/lines/"+itoa(line.ID)+"/receive", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PO_NOT_RECEIVABLE", errorCode(response))
}

func TestPurchaseOrderRequiresAdmin(t *testing.T) {
	db := testutil.OpenTestDB(t)
	seedRoleAccount(t, db, "auth0|customer", "customer")
	router := authRouter("auth0|customer", "customer", purchaseOrderRoutes)

	w, response := doJSON(t, router, "GET", "/api/v1/purchase-orders", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(response))
}
