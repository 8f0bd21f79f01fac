package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pixelmage/pixelmage-cards-api/config"
	"github.com/pixelmage/pixelmage-cards-api/models"
)

// CardRequest represents the request body for creating or updating a card
type CardRequest struct {
	NFCUUID        string  `json:"nfc_uuid" binding:"omitempty,uuid"`
	CardTemplateID uint    `json:"card_template_id" binding:"required"`
	ProductID      uint    `json:"product_id" binding:"required"`
	CustomText     *string `json:"custom_text"`
}

// CreateCard handles POST /api/v1/cards (admins only). A fresh NFC UUID
// is minted when the request does not carry one (cards programmed later).
func CreateCard(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req CardRequest
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

	var template models.CardTemplate
	if err := db.First(&template, req.CardTemplateID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TEMPLATE_NOT_FOUND",
				"message": "Card template not found",
			},
		})
		return
	}

	var product models.Product
	if err := db.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	nfcUUID := req.NFCUUID
	if nfcUUID == "" {
		nfcUUID = uuid.NewString()
	}

	card := models.Card{
		NFCUUID:        nfcUUID,
		CardTemplateID: req.CardTemplateID,
		ProductID:      req.ProductID,
		CustomText:     req.CustomText,
	}

	if err := db.Create(&card).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_NFC_UUID",
					"message": "A card with this NFC UUID already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create card",
			},
		})
		return
	}

	if err := db.Preload("CardTemplate").Preload("Product").First(&card, card.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load card details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    card,
	})
}

// ListCards handles GET /api/v1/cards - public catalog listing.
// Supports ?product_id= and ?card_template_id= filters.
func ListCards(c *gin.Context) {
	db := config.GetDB()
	query := db.Preload("CardTemplate").Preload("Product")
	if productID := c.Query("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	if templateID := c.Query("card_template_id"); templateID != "" {
		query = query.Where("card_template_id = ?", templateID)
	}

	var cards []models.Card
	if err := query.Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list cards",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cards,
	})
}

// GetCard handles GET /api/v1/cards/:id
func GetCard(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var card models.Card
	if err := db.Preload("CardTemplate").Preload("Product").First(&card, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CARD_NOT_FOUND",
				"message": "Card not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    card,
	})
}

// UpdateCard handles PUT /api/v1/cards/:id (admins only)
func UpdateCard(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var card models.Card
	if err := db.First(&card, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CARD_NOT_FOUND",
				"message": "Card not found",
			},
		})
		return
	}

	var req CardRequest
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

	if req.NFCUUID != "" {
		card.NFCUUID = req.NFCUUID
	}
	card.CardTemplateID = req.CardTemplateID
	card.ProductID = req.ProductID
	card.CustomText = req.CustomText

	if err := db.Save(&card).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_NFC_UUID",
					"message": "A card with this NFC UUID already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update card",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    card,
	})
}

// DeleteCard handles DELETE /api/v1/cards/:id (admins only)
func DeleteCard(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var card models.Card
	if err := db.First(&card, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CARD_NOT_FOUND",
				"message": "Card not found",
			},
		})
		return
	}

	if err := db.Delete(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete card",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
