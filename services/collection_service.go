package services

import (
	"errors"
	"strings"
	"time"

	"github.com/pixelmage/pixelmage-cards-api/models"
	"gorm.io/gorm"
)

// customerCollection loads a collection only when it belongs to
// accountID. Nonexistence and wrong ownership both come back as
// ErrCollectionNotFound so that probing other customers' collection
// ids leaks nothing.
func customerCollection(tx *gorm.DB, accountID, collectionID uint) (*models.CardCollection, error) {
	var collection models.CardCollection
	err := tx.Where("id = ? AND account_id = ?", collectionID, accountID).First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return &collection, nil
}

// AddCardToCollection inserts a card into one of the customer's
// collections. The card must exist, must be owned by the customer
// (purchased through a COMPLETED+PAID order) and must not already be
// in the collection. The unique index on (collection_id, card_id)
// backs up the duplicate check against concurrent adds.
func AddCardToCollection(db *gorm.DB, accountID, collectionID, cardID uint) (*models.CollectionItem, error) {
	var item models.CollectionItem
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := customerCollection(tx, accountID, collectionID); err != nil {
			return err
		}

		if err := tx.First(&models.Card{}, cardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			return err
		}

		owned, err := IsCardOwned(tx, accountID, cardID)
		if err != nil {
			return err
		}
		if !owned {
			return ErrCardNotOwned
		}

		var count int64
		if err := tx.Model(&models.CollectionItem{}).
			Where("collection_id = ? AND card_id = ?", collectionID, cardID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateCollectionItem
		}

		item = models.CollectionItem{
			CollectionID: collectionID,
			CardID:       cardID,
			AddedAt:      time.Now(),
		}
		if err := tx.Create(&item).Error; err != nil {
			// The unique index closes the window between the count above
			// and this insert
			if isUniqueViolation(err) {
				return ErrDuplicateCollectionItem
			}
			return err
		}

		return tx.Preload("Card").First(&item, item.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// RemoveCardFromCollection deletes one card's membership from one of
// the customer's collections.
func RemoveCardFromCollection(db *gorm.DB, accountID, collectionID, cardID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := customerCollection(tx, accountID, collectionID); err != nil {
			return err
		}

		var item models.CollectionItem
		err := tx.Where("collection_id = ? AND card_id = ?", collectionID, cardID).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCollectionItemNotFound
			}
			return err
		}

		return tx.Delete(&item).Error
	})
}

// isUniqueViolation detects a unique-constraint failure across the
// drivers we run against (postgres in production, sqlite in tests).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
