package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pixelmage/pixelmage-cards-api/config"
	"github.com/pixelmage/pixelmage-cards-api/models"
	"github.com/pixelmage/pixelmage-cards-api/services"
	"gorm.io/gorm"
)

// OrderItemRequest is one requested card line on a new order
type OrderItemRequest struct {
	CardID     uint    `json:"card_id" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,min=1"`
	CustomText *string `json:"custom_text"`
}

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress *string            `json:"shipping_address"`
	PaymentMethod   *string            `json:"payment_method"`
	Notes           *string            `json:"notes"`
}

// UpdateOrderStatusRequest represents the request body for an order status change
type UpdateOrderStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	PaymentStatus string `json:"payment_status"`
}

// CreateOrder handles POST /api/v1/orders. Unit prices come from the
// card's product, never from the client.
func CreateOrder(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
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
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			AccountID:       account.ID,
			OrderDate:       time.Now(),
			Status:          models.OrderStatusPending,
			PaymentStatus:   models.PaymentStatusPending,
			ShippingAddress: req.ShippingAddress,
			PaymentMethod:   req.PaymentMethod,
			Notes:           req.Notes,
		}

		var total float64
		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			var card models.Card
			if err := tx.Preload("Product").First(&card, item.CardID).Error; err != nil {
				return services.ErrCardNotFound
			}

			subtotal := card.Product.Price * float64(item.Quantity)
			total += subtotal
			items = append(items, models.OrderItem{
				CardID:     item.CardID,
				Quantity:   item.Quantity,
				UnitPrice:  card.Product.Price,
				Subtotal:   subtotal,
				CustomText: item.CustomText,
			})
		}

		order.TotalAmount = total
		order.Items = items
		return tx.Create(&order).Error
	})
	if err != nil {
		if err == services.ErrCardNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CARD_NOT_FOUND",
					"message": "One or more cards on the order do not exist",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	if err := db.Preload("Items.Card").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListMyOrders handles GET /api/v1/orders - the caller's own orders
func ListMyOrders(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	var orders []models.Order
	if err := config.GetDB().Preload("Items.Card").Where("account_id = ?", account.ID).Order("order_date DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListAllOrders handles GET /api/v1/admin/orders (admins only)
func ListAllOrders(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	query := config.GetDB().Preload("Items.Card").Preload("Account")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}

	var orders []models.Order
	if err := query.Order("order_date DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id. Customers can only see
// their own orders; admins can see any order.
func GetOrder(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var order models.Order
	if err := config.GetDB().Preload("Items.Card").First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if order.AccountID != account.ID && !account.IsAdmin() {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status (admins only).
// Fulfillment status and payment status move independently; ownership
// of the cards on the order requires COMPLETED and PAID together.
func UpdateOrderStatus(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
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

	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Unknown order status: " + req.Status,
			},
		})
		return
	}
	if req.PaymentStatus != "" && !models.ValidPaymentStatus(req.PaymentStatus) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PAYMENT_STATUS",
				"message": "Unknown payment status: " + req.PaymentStatus,
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	order.Status = req.Status
	if req.PaymentStatus != "" {
		order.PaymentStatus = req.PaymentStatus
	}

	if err := db.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// RefreshOrderPayment handles POST /api/v1/orders/:id/payment/refresh.
// It re-reads the order's payment status from the payment processor,
// which is the source of truth. Customers can refresh their own
// orders; admins can refresh any.
func RefreshOrderPayment(c *gin.Context) {
	account, ok := currentAccount(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if order.AccountID != account.ID && !account.IsAdmin() {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if order.PaymentMethod == nil || *order.PaymentMethod == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_PAYMENT_REFERENCE",
				"message": "Order has no payment reference to verify",
			},
		})
		return
	}

	verification, err := services.GetPaymentService().VerifyPayment(*order.PaymentMethod)
	if err != nil {
		log.Printf("Payment verification failed for order %d: %v", order.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PAYMENT_VERIFICATION_FAILED",
				"message": "Could not verify payment with the payment processor",
			},
		})
		return
	}

	if models.ValidPaymentStatus(verification.Status) && verification.Status != order.PaymentStatus {
		order.PaymentStatus = verification.Status
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update payment status",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
