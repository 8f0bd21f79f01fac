package services

import "errors"

// Domain errors surfaced by the inventory, purchase order and collection
// services. Controllers translate these into HTTP responses with errors.Is.
var (
	ErrWarehouseNotFound     = errors.New("warehouse not found")
	ErrProductNotFound       = errors.New("product not found")
	ErrTransactionNotFound   = errors.New("warehouse transaction not found")
	ErrInventoryNotFound     = errors.New("inventory not found")
	ErrInventoryExists       = errors.New("inventory already exists for this product and warehouse")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrImmutableTransaction  = errors.New("transaction quantity, type, product and warehouse cannot be changed")
	ErrIrreversibleAdjustment = errors.New("adjustment transactions cannot be deleted")

	ErrPurchaseOrderNotFound = errors.New("purchase order not found")
	ErrPurchaseOrderLineNotFound = errors.New("purchase order line not found")
	ErrDuplicatePONumber     = errors.New("po number already exists")
	ErrLineAlreadyReceived   = errors.New("purchase order line already fully received")
	ErrPurchaseOrderNotReceivable = errors.New("purchase order cannot be received in its current status")

	ErrCardNotFound       = errors.New("card not found")
	ErrCardNotOwned       = errors.New("card is not owned by this customer")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrDuplicateCollectionItem = errors.New("card is already in this collection")
	ErrCollectionItemNotFound  = errors.New("card not found in collection")
)
