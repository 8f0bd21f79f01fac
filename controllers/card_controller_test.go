package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pixelmage/pixelmage-cards-api/models"
	"github.com/pixelmage/pixelmage-cards-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func cardRoutes(r *gin.RouterGroup) {
	r.POST("/cards", CreateCard)
	r.GET("/cards/:id", GetCard)
}

func seedCatalog(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()
	template := models.CardTemplate{Name: "Catalog Template"}
	require.NoError(t, db.Create(&template).Error)
	product := models.Product{Name: "Catalog Product", Price: 14.99}
	require.NoError(t, db.Create(&product).Error)
	return template.ID, product.ID
}

func TestCreateCardMintsNFCUUID(t *testing.T) {
	db := testutil.OpenTestDB(t)
	seedRoleAccount(t, db, "auth0|admin", "admin")
	templateID, productID := seedCatalog(t, db)
	router := authRouter("auth0|admin", "admin", cardRoutes)

	w, response := doJSON(t, router, "POST", "/api/v1/cards", gin.H{
		"card_template_id": templateID,
		"product_id":       productID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// A fresh NFC UUID is minted when the request carries none
	nfcUUID := response["data"].(map[string]interface{})["nfc_uuid"].(string)
	_, err := uuid.Parse(nfcUUID)
	assert.NoError(t, err, "Minted NFC UUID should be a valid UUID")
}

func TestCreateCardDuplicateNFCUUID(t *testing.T) {
	db := testutil.OpenTestDB(t)
	seedRoleAccount(t, db, "auth0|admin", "admin")
	templateID, productID := seedCatalog(t, db)
	router := authRouter("auth0|admin", "admin", cardRoutes)

	nfcUUID := uuid.NewString()
	body := gin.H{
		"nfc_uuid":         nfcUUID,
		"card_template_id": templateID,
		"product_id":       productID,
	}

	w, _ := doJSON(t, router, "POST", "/api/v1/cards", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w, response := doJSON(t, router, "POST", "/api/v1/cards", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_NFC_UUID", errorCode(response))
}

func TestCreateCardUnknownReferences(t *testing.T) {
	db := testutil.OpenTestDB(t)
	seedRoleAccount(t, db, "auth0|admin", "admin")
	templateID, productID := seedCatalog(t, db)
	router := authRouter("auth0|admin", "admin", cardRoutes)

	w, response := doJSON(t, router, "POST", "/api/v1/cards", gin.H{
		"card_template_id": templateID + 999,
		"product_id":       productID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "TEMPLATE_NOT_FOUND", errorCode(response))

	w, response = doJSON(t, router, "POST", "/api/v1/cards", gin.H{
		"card_template_id": templateID,
		"product_id":       productID + 999,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errorCode(response))
}
