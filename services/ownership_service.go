package services

import (
	"github.com/pixelmage/pixelmage-cards-api/models"
	"gorm.io/gorm"
)

// OwnedCards returns the distinct cards a customer owns: every card
// appearing on at least one order item of an order that is COMPLETED
// and PAID at the same time. Ownership is derived on every call, never
// cached, because order and payment state are mutable.
func OwnedCards(db *gorm.DB, accountID uint) ([]models.Card, error) {
	var cards []models.Card
	err := db.
		Distinct("cards.*").
		Joins("JOIN order_items ON order_items.card_id = cards.id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.account_id = ? AND orders.status = ? AND orders.payment_status = ? AND orders.deleted_at IS NULL",
			accountID, models.OrderStatusCompleted, models.PaymentStatusPaid).
		Order("cards.id").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// IsCardOwned reports whether accountID owns cardID. Same gate as
// OwnedCards, but as a single existence query.
func IsCardOwned(db *gorm.DB, accountID, cardID uint) (bool, error) {
	var count int64
	err := db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.card_id = ? AND orders.account_id = ? AND orders.status = ? AND orders.payment_status = ? AND orders.deleted_at IS NULL",
			cardID, accountID, models.OrderStatusCompleted, models.PaymentStatusPaid).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
