package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelmage/pixelmage-cards-api/config"
	"github.com/pixelmage/pixelmage-cards-api/models"
)

// WarehouseRequest represents the request body for creating or updating a warehouse
type WarehouseRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
	Capacity *int    `json:"capacity" binding:"omitempty,gt=0"`
}

// CreateWarehouse handles POST /api/v1/warehouses (admins only)
func CreateWarehouse(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req WarehouseRequest
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

	warehouse := models.Warehouse{
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
	}

	db := config.GetDB()
	if err := db.Create(&warehouse).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create warehouse",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    warehouse,
	})
}

// ListWarehouses handles GET /api/v1/warehouses (admins only)
func ListWarehouses(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	db := config.GetDB()
	var warehouses []models.Warehouse
	if err := db.Find(&warehouses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list warehouses",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    warehouses,
	})
}

// GetWarehouse handles GET /api/v1/warehouses/:id (admins only)
func GetWarehouse(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var warehouse models.Warehouse
	if err := db.First(&warehouse, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "WAREHOUSE_NOT_FOUND",
				"message": "Warehouse not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    warehouse,
	})
}

// UpdateWarehouse handles PUT /api/v1/warehouses/:id (admins only)
func UpdateWarehouse(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var warehouse models.Warehouse
	if err := db.First(&warehouse, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "WAREHOUSE_NOT_FOUND",
				"message": "Warehouse not found",
			},
		})
		return
	}

	var req WarehouseRequest
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

	warehouse.Name = req.Name
	warehouse.Location = req.Location
	warehouse.Capacity = req.Capacity

	if err := db.Save(&warehouse).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update warehouse",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    warehouse,
	})
}

// DeleteWarehouse handles DELETE /api/v1/warehouses/:id (admins only)
func DeleteWarehouse(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var warehouse models.Warehouse
	if err := db.First(&warehouse, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "WAREHOUSE_NOT_FOUND",
				"message": "Warehouse not found",
			},
		})
		return
	}

	if err := db.Delete(&warehouse).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete warehouse",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
