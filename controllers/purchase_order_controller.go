package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pixelmage/pixelmage-cards-api/config"
	"github.com/pixelmage/pixelmage-cards-api/models"
	"github.com/pixelmage/pixelmage-cards-api/services"
	"gorm.io/gorm"
)

// PurchaseOrderRequest represents the request body for creating or updating a purchase order
type PurchaseOrderRequest struct {
	SupplierID       uint       `json:"supplier_id" binding:"required"`
	WarehouseID      uint       `json:"warehouse_id" binding:"required"`
	PONumber         string     `json:"po_number" binding:"required"`
	Status           string     `json:"status" binding:"omitempty"`
	OrderDate        *time.Time `json:"order_date"`
	ExpectedDelivery *time.Time `json:"expected_delivery"`
}

// PurchaseOrderLineRequest represents the request body for adding a line to a purchase order
type PurchaseOrderLineRequest struct {
	ProductID       uint       `json:"product_id" binding:"required"`
	QuantityOrdered int        `json:"quantity_ordered" binding:"required,gt=0"`
	UnitPrice       float64    `json:"unit_price" binding:"required,gte=0"`
	ExpectedDate    *time.Time `json:"expected_date"`
	Note            *string    `json:"note"`
}

// CreatePurchaseOrder handles POST /api/v1/purchase-orders (admins only)
func CreatePurchaseOrder(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req PurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	status := req.Status
	if status == "" {
		status = models.PurchaseOrderStatusDraft
	}
	if !models.ValidPurchaseOrderStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Unknown purchase order status",
			},
		})
		return
	}

	db := config.GetDB()

	var supplier models.Supplier
	if err := db.First(&supplier, req.SupplierID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SUPPLIER_NOT_FOUND",
				"message": "Supplier not found",
			},
		})
		return
	}

	var warehouse models.Warehouse
	if err := db.First(&warehouse, req.WarehouseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "WAREHOUSE_NOT_FOUND",
				"message": "Warehouse not found",
			},
		})
		return
	}

	po := models.PurchaseOrder{
		SupplierID:       req.SupplierID,
		WarehouseID:      req.WarehouseID,
		PONumber:         req.PONumber,
		Status:           status,
		ExpectedDelivery: req.ExpectedDelivery,
		OrderDate:        time.Now(),
	}
	if req.OrderDate != nil {
		po.OrderDate = *req.OrderDate
	}

	if err := db.Create(&po).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_PO_NUMBER",
					"message": "A purchase order with this PO number already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create purchase order",
			},
		})
		return
	}

	if err := db.Preload("Supplier").First(&po, po.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load purchase order details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    po,
	})
}

// ListPurchaseOrders handles GET /api/v1/purchase-orders (admins only)
func ListPurchaseOrders(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	db := config.GetDB()
	var orders []models.PurchaseOrder
	if err := db.Preload("Supplier").Preload("Lines").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list purchase orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetPurchaseOrder handles GET /api/v1/purchase-orders/:id (admins only)
func GetPurchaseOrder(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var po models.PurchaseOrder
	if err := db.Preload("Supplier").Preload("Lines").First(&po, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PURCHASE_ORDER_NOT_FOUND",
				"message": "Purchase order not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    po,
	})
}

// UpdatePurchaseOrder handles PUT /api/v1/purchase-orders/:id (admins only)
func UpdatePurchaseOrder(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var po models.PurchaseOrder
	if err := db.First(&po, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PURCHASE_ORDER_NOT_FOUND",
				"message": "Purchase order not found",
			},
		})
		return
	}

	var req PurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if req.Status != "" {
		if !models.ValidPurchaseOrderStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Unknown purchase order status",
				},
			})
			return
		}
		po.Status = req.Status
	}

	po.SupplierID = req.SupplierID
	po.WarehouseID = req.WarehouseID
	po.PONumber = req.PONumber
	po.ExpectedDelivery = req.ExpectedDelivery
	if req.OrderDate != nil {
		po.OrderDate = *req.OrderDate
	}

	if err := db.Save(&po).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_PO_NUMBER",
					"message": "A purchase order with this PO number already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update purchase order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    po,
	})
}

// DeletePurchaseOrder handles DELETE /api/v1/purchase-orders/:id (admins only)
func DeletePurchaseOrder(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var po models.PurchaseOrder
	if err := db.First(&po, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PURCHASE_ORDER_NOT_FOUND",
				"message": "Purchase order not found",
			},
		})
		return
	}

	// Lines go with the order
	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_order_id = ?", po.ID).Delete(&models.PurchaseOrderLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&po).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete purchase order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// AddPurchaseOrderLine handles POST /api/v1/purchase-orders/:id/lines (admins only)
func AddPurchaseOrderLine(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	poID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req PurchaseOrderLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	line, err := services.AddPurchaseOrderLine(db, services.AddLineInput{
		PurchaseOrderID: poID,
		ProductID:       req.ProductID,
		QuantityOrdered: req.QuantityOrdered,
		UnitPrice:       req.UnitPrice,
		ExpectedDate:    req.ExpectedDate,
		Note:            req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPurchaseOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PURCHASE_ORDER_NOT_FOUND",
					"message": "Purchase order not found",
				},
			})
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product not found",
				},
			})
		case errors.Is(err, services.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Ordered quantity must be positive",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to add purchase order line",
				},
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    line,
	})
}

// ReceivePurchaseOrderLine handles POST /api/v1/purchase-orders/:id/lines/:lineId/receive
// (admins only). Marks the line received in full and feeds the stock into
// the warehouse inventory via an IN transaction referencing the order.
func ReceivePurchaseOrderLine(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	poID, ok := pathID(c, "id")
	if !ok {
		return
	}
	lineID, ok := pathID(c, "lineId")
	if !ok {
		return
	}

	db := config.GetDB()
	po, err := services.ReceivePurchaseOrderLine(db, poID, lineID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPurchaseOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PURCHASE_ORDER_NOT_FOUND",
					"message": "Purchase order not found",
				},
			})
		case errors.Is(err, services.ErrPurchaseOrderLineNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "LINE_NOT_FOUND",
					"message": "Purchase order line not found",
				},
			})
		case errors.Is(err, services.ErrLineAlreadyReceived):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "LINE_ALREADY_RECEIVED",
					"message": "This line has already been received in full",
				},
			})
		case errors.Is(err, services.ErrPurchaseOrderNotReceivable):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PO_NOT_RECEIVABLE",
					"message": "Canceled or closed purchase orders cannot be received",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to receive purchase order line",
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    po,
	})
}
