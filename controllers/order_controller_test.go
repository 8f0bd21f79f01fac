package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pixelmage/pixelmage-cards-api/models"
	"github.com/pixelmage/pixelmage-cards-api/services"
	"github.com/pixelmage/pixelmage-cards-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRoutes(r *gin.RouterGroup) {
	r.POST("/orders", CreateOrder)
	r.GET("/orders", ListMyOrders)
	r.GET("/orders/:id", GetOrder)
	r.PUT("/orders/:id/status", UpdateOrderStatus)
	r.POST("/orders/:id/payment/refresh", RefreshOrderPayment)
	r.GET("/accounts/me/owned-cards", GetOwnedCards)
}

func TestCreateOrderEndpoint(t *testing.T) {
	db := testutil.OpenTestDB(t)
	account := seedRoleAccount(t, db, "auth0|buyer", "customer")
	router := authRouter("auth0|buyer", "customer", orderRoutes)

	template := models.CardTemplate{Name: "Order Template"}
	require.NoError(t, db.Create(&template).Error)
	product := models.Product{Name: "Order Product", Price: 12.50}
	require.NoError(t, db.Create(&product).Error)
	card := models.Card{NFCUUID: "nfc-order-1", CardTemplateID: template.ID, ProductID: product.ID}
	require.NoError(t, db.Create(&card).Error)

	w, response := doJSON(t, router, "POST", "/api/v1/orders", gin.H{
		"items": []gin.H{{"card_id": card.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, models.OrderStatusPending, data["status"])
	assert.Equal(t, models.PaymentStatusPending, data["payment_status"])
	// Price comes from the product, not the request
	assert.Equal(t, 25.0, data["total_amount"])

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Where("account_id = ?", account.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateOrderUnknownCard(t *testing.T) {
	db := testutil.OpenTestDB(t)
	seedRoleAccount(t, db, "auth0|buyer", "customer")
	router := authRouter("auth0|buyer", "customer", orderRoutes)

	w, response := doJSON(t, router, "POST", "/api/v1/orders", gin.H{
		"items": []gin.H{{"card_id": 4242, "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CARD_NOT_FOUND", errorCode(response))

	// Nothing was half-created
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRefreshOrderPaymentEndpoint(t *testing.T) {
	db := testutil.OpenTestDB(t)
	account := seedRoleAccount(t, db, "auth0|payer", "customer")
	router := authRouter("auth0|payer", "customer", orderRoutes)

	mock := services.NewMockPaymentService()
	mock.SetAsMockForTesting()
	mock.AddPayment("pay_123", models.PaymentStatusPaid, 9.99)

	reference := "pay_123"
	order := models.Order{
		AccountID:     account.ID,
		Status:        models.OrderStatusCompleted,
		PaymentStatus: models.PaymentStatusPending,
		TotalAmount:   9.99,
		PaymentMethod: &reference,
	}
	require.NoError(t, db.Create(&order).Error)

	w, response := doJSON(t, router, "POST", "/api/v1/orders/"+itoa(order.ID)+"/payment/refresh", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, models.PaymentStatusPaid, data["payment_status"])

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, reloaded.PaymentStatus)
}

func TestRefreshOrderPaymentUnknownReference(t *testing.T) {
	db := testutil.OpenTestDB(t)
	account := seedRoleAccount(t, db, "auth0|payer", "customer")
	router := authRouter("auth0|payer", "customer", orderRoutes)

	mock := services.NewMockPaymentService()
	mock.SetAsMockForTesting()

	reference := "pay_unknown"
	order := models.Order{
		AccountID:     account.ID,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		TotalAmount:   5,
		PaymentMethod: &reference,
	}
	require.NoError(t, db.Create(&order).Error)

	w, response := doJSON(t, router, "POST", "/api/v1/orders/"+itoa(order.ID)+"/payment/refresh", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "PAYMENT_VERIFICATION_FAILED", errorCode(response))
}

func TestOwnedCardsEndpoint(t *testing.T) {
	db := testutil.OpenTestDB(t)
	account := seedRoleAccount(t, db, "auth0|cardholder", "customer")
	router := authRouter("auth0|cardholder", "customer", orderRoutes)

	seedOwnedCard(t, db, account.ID, "nfc-mine")

	w, response := doJSON(t, router, "GET", "/api/v1/accounts/me/owned-cards", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	cards := response["data"].([]interface{})
	require.Len(t, cards, 1)
	assert.Equal(t, "nfc-mine", cards[0].(map[string]interface{})["nfc_uuid"])
}

func TestOrdersAreScopedToTheirOwner(t *testing.T) {
	db := testutil.OpenTestDB(t)
	owner := seedRoleAccount(t, db, "auth0|order-owner", "customer")
	seedRoleAccount(t, db, "auth0|snoop", "customer")

	order := models.Order{
		AccountID:     owner.ID,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		TotalAmount:   5,
	}
	require.NoError(t, db.Create(&order).Error)

	router := authRouter("auth0|snoop", "customer", orderRoutes)
	w, response := doJSON(t, router, "GET", "/api/v1/orders/"+itoa(order.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", errorCode(response))
}
