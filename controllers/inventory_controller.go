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

// CreateInventoryRequest represents the request body for creating an inventory row
type CreateInventoryRequest struct {
	ProductID   uint `json:"product_id" binding:"required"`
	WarehouseID uint `json:"warehouse_id" binding:"required"`
	Quantity    int  `json:"quantity" binding:"gte=0"`
}

// UpdateInventoryRequest represents the request body for setting an inventory count
type UpdateInventoryRequest struct {
	Quantity int `json:"quantity" binding:"gte=0"`
}

// CreateInventory handles POST /api/v1/inventories - explicitly creates an
// inventory row for a (product, warehouse) pair (admins only)
func CreateInventory(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req CreateInventoryRequest
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
	inventory, err := services.CreateInventory(db, req.ProductID, req.WarehouseID, req.Quantity)
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
		case errors.Is(err, services.ErrInventoryExists):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVENTORY_EXISTS",
					"message": "Inventory already exists for this product and warehouse",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to create inventory",
				},
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    inventory,
	})
}

// ListInventories handles GET /api/v1/inventories (admins only).
// Supports ?warehouse_id= and ?product_id= filters.
func ListInventories(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Inventory{})
	if warehouseID := c.Query("warehouse_id"); warehouseID != "" {
		query = query.Where("warehouse_id = ?", warehouseID)
	}
	if productID := c.Query("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}

	var inventories []models.Inventory
	if err := query.Find(&inventories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list inventories",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    inventories,
	})
}

// GetInventory handles GET /api/v1/inventories/:id (admins only)
func GetInventory(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var inventory models.Inventory
	if err := db.First(&inventory, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVENTORY_NOT_FOUND",
				"message": "Inventory not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    inventory,
	})
}

// UpdateInventory handles PUT /api/v1/inventories/:id - sets an absolute
// on-hand count, e.g. after a manual stock check (admins only)
func UpdateInventory(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var inventory models.Inventory
	if err := db.First(&inventory, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVENTORY_NOT_FOUND",
				"message": "Inventory not found",
			},
		})
		return
	}

	var req UpdateInventoryRequest
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

	inventory.Quantity = req.Quantity
	inventory.LastChecked = time.Now()

	if err := db.Save(&inventory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update inventory",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    inventory,
	})
}

// DeleteInventory handles DELETE /api/v1/inventories/:id (admins only)
func DeleteInventory(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var inventory models.Inventory
	if err := db.First(&inventory, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVENTORY_NOT_FOUND",
				"message": "Inventory not found",
			},
		})
		return
	}

	if err := db.Delete(&inventory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete inventory",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
