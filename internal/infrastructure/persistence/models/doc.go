// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
//   - base.go: shared columns (BaseModel, AggregateModel)
//   - financing.go: investors, investments and investor payouts
//   - trade.go: purchase orders with items and vendor payments, sales orders with lines
//   - inventory.go: inventory items received from purchase orders
//   - billing.go: bills, bill items and buyer payments
package models
