package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pixelmage/pixelmage-cards-api/config"
	"github.com/pixelmage/pixelmage-cards-api/models"
	"github.com/pixelmage/pixelmage-cards-api/services"
)

// CreateTransactionRequest represents the request body for recording a warehouse transaction
type CreateTransactionRequest struct {
	WarehouseID     uint       `json:"warehouse_id" binding:"required"`
	ProductID       uint       `json:"product_id" binding:"required"`
	Quantity        int        `json:"quantity" binding:"required,gt=0"`
	TransactionType string     `json:"transaction_type" binding:"required"`
	ReferenceID     *uint      `json:"reference_id"`
	TransactionDate *time.Time `json:"transaction_date"`
}

// UpdateTransactionRequest represents the request body for updating
// transaction metadata. Quantity and type are frozen once recorded.
type UpdateTransactionRequest struct {
	ReferenceID     *uint      `json:"reference_id"`
	TransactionDate *time.Time `json:"transaction_date"`
}

// CreateWarehouseTransaction handles POST /api/v1/warehouse-transactions (admins only).
// Recording a transaction applies its inventory effect atomically; if the
// effect cannot be applied the transaction row is not kept either.
func CreateWarehouseTransaction(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req CreateTransactionRequest
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

	input := services.RecordTransactionInput{
		WarehouseID:     req.WarehouseID,
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		TransactionType: req.TransactionType,
		ReferenceID:     req.ReferenceID,
	}
	if req.TransactionDate != nil {
		input.TransactionDate = *req.TransactionDate
	}

	db := config.GetDB()
	transaction, err := services.RecordTransaction(db, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWarehouseNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "WAREHOUSE_NOT_FOUND",
					"message": "Warehouse not found",
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
		case errors.Is(err, services.ErrInvalidTransactionType):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TRANSACTION_TYPE",
					"message": "Transaction type must be IN, OUT or ADJUSTMENT",
				},
			})
		case errors.Is(err, services.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Quantity must be positive",
				},
			})
		case errors.Is(err, services.ErrInsufficientInventory):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INSUFFICIENT_INVENTORY",
					"message": "Not enough stock on hand for this OUT transaction",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to record transaction",
				},
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    transaction,
	})
}

// ListWarehouseTransactions handles GET /api/v1/warehouse-transactions (admins only).
// Supports ?warehouse_id= and ?product_id= filters.
func ListWarehouseTransactions(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.WarehouseTransaction{}).Order("transaction_date DESC")
	if warehouseID := c.Query("warehouse_id"); warehouseID != "" {
		query = query.Where("warehouse_id = ?", warehouseID)
	}
	if productID := c.Query("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}

	var transactions []models.WarehouseTransaction
	if err := query.Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list transactions",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    transactions,
	})
}

// GetWarehouseTransaction handles GET /api/v1/warehouse-transactions/:id (admins only)
func GetWarehouseTransaction(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var transaction models.WarehouseTransaction
	if err := db.First(&transaction, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TRANSACTION_NOT_FOUND",
				"message": "Transaction not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    transaction,
	})
}

// UpdateWarehouseTransaction handles PUT /api/v1/warehouse-transactions/:id
// (admins only). Only reference and date may change; the quantity, type,
// product and warehouse of a recorded movement are immutable.
func UpdateWarehouseTransaction(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateTransactionRequest
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
	transaction, err := services.UpdateTransactionMetadata(db, id, req.ReferenceID, req.TransactionDate)
	if err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "TRANSACTION_NOT_FOUND",
					"message": "Transaction not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update transaction",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    transaction,
	})
}

// DeleteWarehouseTransaction handles DELETE /api/v1/warehouse-transactions/:id
// (admins only). Deleting a movement reverses its inventory effect; the two
// writes commit or roll back together.
func DeleteWarehouseTransaction(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	if err := services.DeleteTransaction(db, id); err != nil {
		switch {
		case errors.Is(err, services.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "TRANSACTION_NOT_FOUND",
					"message": "Transaction not found",
				},
			})
		case errors.Is(err, services.ErrIrreversibleAdjustment):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "IRREVERSIBLE_TRANSACTION",
					"message": "Adjustment transactions cannot be deleted",
				},
			})
		case errors.Is(err, services.ErrInsufficientInventory):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INSUFFICIENT_INVENTORY",
					"message": "Reversing this transaction would drive inventory negative",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to delete transaction",
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
