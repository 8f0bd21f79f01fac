package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelmage/pixelmage-cards-api/config"
	"github.com/pixelmage/pixelmage-cards-api/models"
	"github.com/pixelmage/pixelmage-cards-api/services"
)

// CollectionRequest represents the request body for creating or updating a collection
type CollectionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IsPublic    bool    `json:"is_public"`
}

// AddCollectionItemRequest represents the request body for adding a card to a collection
type AddCollectionItemRequest struct {
	CardID uint `json:"card_id" binding:"required"`
}

// CreateCollection handles POST /api/v1/collections
func CreateCollection(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	var req CollectionRequest
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

	collection := models.CardCollection{
		AccountID:   account.ID,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}

	if err := config.GetDB().Create(&collection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create collection",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    collection,
	})
}

// ListMyCollections handles GET /api/v1/collections
func ListMyCollections(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	var collections []models.CardCollection
	if err := config.GetDB().Where("account_id = ?", account.ID).Find(&collections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list collections",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    collections,
	})
}

// ListPublicCollections handles GET /api/v1/collections/public - no auth required
func ListPublicCollections(c *gin.Context) {
	var collections []models.CardCollection
	if err := config.GetDB().Where("is_public = ?", true).Find(&collections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list collections",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    collections,
	})
}

// GetCollection handles GET /api/v1/collections/:id. The owner always
// sees their collection; everyone else only sees it when public.
func GetCollection(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var collection models.CardCollection
	err := config.GetDB().Preload("Items.Card.CardTemplate").First(&collection, id).Error
	if err != nil || (collection.AccountID != account.ID && !collection.IsPublic) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COLLECTION_NOT_FOUND",
				"message": "Collection not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    collection,
	})
}

// UpdateCollection handles PUT /api/v1/collections/:id
func UpdateCollection(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var collection models.CardCollection
	if err := db.Where("id = ? AND account_id = ?", id, account.ID).First(&collection).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COLLECTION_NOT_FOUND",
				"message": "Collection not found",
			},
		})
		return
	}

	var req CollectionRequest
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

	collection.Name = req.Name
	collection.Description = req.Description
	collection.IsPublic = req.IsPublic

	if err := db.Save(&collection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update collection",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    collection,
	})
}

// DeleteCollection handles DELETE /api/v1/collections/:id. Items go
// with the collection.
func DeleteCollection(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var collection models.CardCollection
	if err := db.Where("id = ? AND account_id = ?", id, account.ID).First(&collection).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COLLECTION_NOT_FOUND",
				"message": "Collection not found",
			},
		})
		return
	}

	if err := db.Where("collection_id = ?", collection.ID).Delete(&models.CollectionItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete collection items",
			},
		})
		return
	}

	if err := db.Delete(&collection).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete collection",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// AddCollectionItem handles POST /api/v1/collections/:id/items.
// Customers can only shelve cards they currently own.
func AddCollectionItem(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AddCollectionItemRequest
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

	item, err := services.AddCardToCollection(config.GetDB(), account.ID, id, req.CardID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCollectionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "COLLECTION_NOT_FOUND",
					"message": "Collection not found",
				},
			})
		case errors.Is(err, services.ErrCardNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CARD_NOT_FOUND",
					"message": "Card not found",
				},
			})
		case errors.Is(err, services.ErrCardNotOwned):
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CARD_NOT_OWNED",
					"message": "Only cards you own can be added to a collection",
				},
			})
		case errors.Is(err, services.ErrDuplicateCollectionItem):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_COLLECTION_ITEM",
					"message": "Card is already in this collection",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to add card to collection",
				},
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    item,
	})
}

// RemoveCollectionItem handles DELETE /api/v1/collections/:id/items/:cardId
func RemoveCollectionItem(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cardID, ok := pathID(c, "cardId")
	if !ok {
		return
	}

	err := services.RemoveCardFromCollection(config.GetDB(), account.ID, id, cardID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCollectionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "COLLECTION_NOT_FOUND",
					"message": "Collection not found",
				},
			})
		case errors.Is(err, services.ErrCollectionItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "COLLECTION_ITEM_NOT_FOUND",
					"message": "Card is not in this collection",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to remove card from collection",
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"removed": true},
	})
}
