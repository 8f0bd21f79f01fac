package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pixelmage/pixelmage-cards-api/config"
	"github.com/pixelmage/pixelmage-cards-api/middleware"
	"github.com/pixelmage/pixelmage-cards-api/models"
)

// currentAccount resolves the authenticated account from the JWT's sub
// claim. It writes the error response itself and returns ok=false when
// the token is missing or no account profile exists yet.
func currentAccount(c *gin.Context) (*models.Account, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var account models.Account
	if err := db.Preload("Role").Where("auth0_id = ?", auth0ID).First(&account).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ACCOUNT_NOT_FOUND",
				"message": "Account profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return &account, true
}

// requireAdmin resolves the authenticated account and rejects non-admins.
func requireAdmin(c *gin.Context) (*models.Account, bool) {
	account, ok := currentAccount(c)
	if !ok {
		return nil, false
	}

	if !account.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only admins can access this resource",
			},
		})
		return nil, false
	}

	return account, true
}

// pathID parses a numeric path parameter, answering 400 on garbage.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Path parameter '" + name + "' must be a positive integer",
			},
		})
		return 0, false
	}
	return uint(id), true
}
