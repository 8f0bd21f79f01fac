package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pixelmage/pixelmage-cards-api/config"
	"github.com/pixelmage/pixelmage-cards-api/middleware"
	"github.com/pixelmage/pixelmage-cards-api/models"
	"github.com/pixelmage/pixelmage-cards-api/services"
)

// UpdateAccountRequest represents the request body for updating an account profile
type UpdateAccountRequest struct {
	Name        string  `json:"name" binding:"omitempty"`
	Email       string  `json:"email" binding:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty"`
}

// CreateAccount handles POST /api/v1/accounts - creates an account from Auth0 userinfo.
// This endpoint requires authentication and fetches profile data from Auth0's /userinfo endpoint.
func CreateAccount(c *gin.Context) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user ID from token",
			},
		})
		return
	}

	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_TOKEN",
				"message": "Access token not found",
			},
		})
		return
	}

	cfg := config.GetConfig()
	auth0Service := services.NewAuth0Service(cfg)
	userInfo, err := auth0Service.GetUserInfo(accessToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "AUTH0_ERROR",
				"message": "Failed to fetch user information from Auth0",
			},
		})
		return
	}

	if userInfo.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_EMAIL",
				"message": "Email not provided by Auth0",
			},
		})
		return
	}

	if userInfo.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_NAME",
				"message": "Name not provided by Auth0",
			},
		})
		return
	}

	// Role comes from the custom claim when present, defaulting to customer
	roleName := "customer"
	if claims, err := middleware.GetClaims(c); err == nil {
		if customClaims, ok := claims.CustomClaims.(*middleware.CustomClaims); ok && customClaims.Role != "" {
			roleName = customClaims.Role
		}
	}

	db := config.GetDB()

	var role models.Role
	if err := db.Where("role_name = ?", roleName).FirstOrCreate(&role, models.Role{RoleName: roleName}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to resolve account role",
			},
		})
		return
	}

	account := models.Account{
		Auth0ID: auth0ID,
		Name:    userInfo.Name,
		Email:   userInfo.Email,
		RoleID:  &role.ID,
	}

	if err := db.Create(&account).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ACCOUNT_EXISTS",
					"message": "An account already exists for this user or email",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create account",
			},
		})
		return
	}

	if err := db.Preload("Role").First(&account, account.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load account details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    account,
	})
}

// GetMyAccount handles GET /api/v1/accounts/me - returns the authenticated account's profile
func GetMyAccount(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    account,
	})
}

// UpdateMyAccount handles PUT /api/v1/accounts/me - updates the authenticated account's profile
func UpdateMyAccount(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	var req UpdateAccountRequest
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

	if req.Name != "" {
		account.Name = req.Name
	}
	if req.Email != "" {
		account.Email = req.Email
	}
	if req.PhoneNumber != nil {
		account.PhoneNumber = req.PhoneNumber
	}

	db := config.GetDB()
	if err := db.Save(account).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EMAIL_EXISTS",
					"message": "Another account already uses this email",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update account",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    account,
	})
}

// GetOwnedCards handles GET /api/v1/accounts/me/owned-cards - returns the
// distinct cards the customer owns through completed and paid orders
func GetOwnedCards(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	db := config.GetDB()
	cards, err := services.OwnedCards(db, account.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to derive owned cards",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cards,
	})
}

// ListAccounts handles GET /api/v1/accounts - lists all accounts (admins only)
func ListAccounts(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	db := config.GetDB()
	var accounts []models.Account
	if err := db.Preload("Role").Find(&accounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list accounts",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    accounts,
	})
}
