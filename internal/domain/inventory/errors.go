package inventory

import "github.com/stationery/backoffice/internal/domain/shared"

// ErrInventoryItemNotFound is returned when an inventory item lookup misses
var ErrInventoryItemNotFound = shared.NewDomainError("INVENTORY_ITEM_NOT_FOUND", "Inventory item not found")
