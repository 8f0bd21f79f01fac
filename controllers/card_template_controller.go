package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pixelmage/pixelmage-cards-api/config"
	"github.com/pixelmage/pixelmage-cards-api/models"
	"github.com/pixelmage/pixelmage-cards-api/services"
	"github.com/pixelmage/pixelmage-cards-api/utils"
)

// CardTemplateRequest represents the request body for creating or updating a card template
type CardTemplateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// attachDesignURL fills in the presigned design URL for a template when
// it has uploaded design art
func attachDesignURL(template *models.CardTemplate) {
	if template.DesignS3Key == nil || *template.DesignS3Key == "" {
		return
	}
	designService := services.GetDesignService()
	if designService == nil {
		return
	}
	url, err := designService.GetDesignURL(*template.DesignS3Key)
	if err != nil {
		log.Printf("Failed to generate design URL for template %d: %v", template.ID, err)
		return
	}
	template.DesignURL = &url
}

// CreateCardTemplate handles POST /api/v1/card-templates (admins only)
func CreateCardTemplate(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var req CardTemplateRequest
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

	template := models.CardTemplate{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := config.GetDB().Create(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create card template",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    template,
	})
}

// ListCardTemplates handles GET /api/v1/card-templates - public
func ListCardTemplates(c *gin.Context) {
	var templates []models.CardTemplate
	if err := config.GetDB().Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list card templates",
			},
		})
		return
	}

	for i := range templates {
		attachDesignURL(&templates[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    templates,
	})
}

// GetCardTemplate handles GET /api/v1/card-templates/:id
func GetCardTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var template models.CardTemplate
	if err := config.GetDB().First(&template, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TEMPLATE_NOT_FOUND",
				"message": "Card template not found",
			},
		})
		return
	}

	attachDesignURL(&template)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    template,
	})
}

// UpdateCardTemplate handles PUT /api/v1/card-templates/:id (admins only)
func UpdateCardTemplate(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var template models.CardTemplate
	if err := db.First(&template, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TEMPLATE_NOT_FOUND",
				"message": "Card template not found",
			},
		})
		return
	}

	var req CardTemplateRequest
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

	template.Name = req.Name
	template.Description = req.Description

	if err := db.Save(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update card template",
			},
		})
		return
	}

	attachDesignURL(&template)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    template,
	})
}

// UploadCardTemplateDesign handles POST /api/v1/card-templates/:id/design (admins only).
// Accepts a multipart form with a "design" file field. Replacing an
// existing design deletes the old art from storage.
func UploadCardTemplateDesign(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var template models.CardTemplate
	if err := db.First(&template, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TEMPLATE_NOT_FOUND",
				"message": "Card template not found",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("design")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Design file is required",
			},
		})
		return
	}

	designService := services.GetDesignService()
	oldKey := template.DesignS3Key

	s3Key, err := designService.UploadDesign(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}
		log.Printf("Failed to upload design for template %d: %v", template.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to upload design",
			},
		})
		return
	}

	template.DesignS3Key = &s3Key
	if err := db.Save(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save design reference",
			},
		})
		return
	}

	if oldKey != nil && *oldKey != "" {
		if err := designService.DeleteDesign(*oldKey); err != nil {
			log.Printf("Failed to delete old design %s: %v", *oldKey, err)
		}
	}

	attachDesignURL(&template)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    template,
	})
}

// DeleteCardTemplate handles DELETE /api/v1/card-templates/:id (admins only)
func DeleteCardTemplate(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var template models.CardTemplate
	if err := db.First(&template, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TEMPLATE_NOT_FOUND",
				"message": "Card template not found",
			},
		})
		return
	}

	var cardCount int64
	if err := db.Model(&models.Card{}).Where("card_template_id = ?", template.ID).Count(&cardCount).Error; err == nil && cardCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TEMPLATE_IN_USE",
				"message": "Card template is referenced by existing cards",
			},
		})
		return
	}

	if err := db.Delete(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete card template",
			},
		})
		return
	}

	if template.DesignS3Key != nil && *template.DesignS3Key != "" {
		if err := services.GetDesignService().DeleteDesign(*template.DesignS3Key); err != nil {
			log.Printf("Failed to delete design %s: %v", *template.DesignS3Key, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
