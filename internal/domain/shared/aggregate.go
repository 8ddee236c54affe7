// Package shared holds the building blocks every bounded context uses:
// identity and versioning, domain events, list filters, and the error taxonomy.
package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries identity and audit timestamps
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBaseEntity() BaseEntity {
	return NewBaseEntityWithID(uuid.New())
}

// NewBaseEntityWithID is used when the caller must know the ID before the
// entity exists, such as the fixed house investor.
func NewBaseEntityWithID(id uuid.UUID) BaseEntity {
	now := time.Now()
	return BaseEntity{ID: id, CreatedAt: now, UpdatedAt: now}
}

func (e *BaseEntity) GetID() uuid.UUID { return e.ID }

// Touch records a modification
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// BaseAggregateRoot adds an optimistic-locking version and a queue of
// events raised since the aggregate was loaded.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
	pending []DomainEvent
}

func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

func (a *BaseAggregateRoot) GetVersion() int { return a.Version }

func (a *BaseAggregateRoot) IncrementVersion() { a.Version++ }

// AddDomainEvent queues an event for publication after the aggregate is saved
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent { return a.pending }

func (a *BaseAggregateRoot) ClearDomainEvents() { a.pending = nil }
