package financing

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stationery/backoffice/internal/domain/shared"
	"golang.org/x/text/unicode/norm"
)

// HouseInvestorName is the display name of the reserved house investor
const HouseInvestorName = "Self"

// ContactDetails holds how an investor can be reached
type ContactDetails struct {
	Phone   string
	Email   string
	Address string
}

// BankDetails holds where payouts are sent
type BankDetails struct {
	BankName      string
	AccountName   string
	AccountNumber string
	Branch        string
}

// Investor is an external party (or the house) that funds purchase orders
// in exchange for a percentage of the profit on the resulting goods.
type Investor struct {
	shared.BaseAggregateRoot
	Name     string
	Contact  ContactDetails
	Bank     BankDetails
	Notes    string
	IsActive bool
	IsHouse  bool
}

// NewInvestor creates an active investor
func NewInvestor(name string, contact ContactDetails, bank BankDetails) (*Investor, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	return &Investor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Contact:           contact,
		Bank:              bank,
		IsActive:          true,
	}, nil
}

// normalizeName composes the name to NFC and collapses whitespace runs,
// so the same name typed on different keyboards matches in search.
func normalizeName(name string) (string, error) {
	name = strings.Join(strings.Fields(norm.NFC.String(name)), " ")
	if name == "" {
		return "", shared.NewDomainError("INVALID_INPUT", "Investor name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 200 {
		return "", shared.NewDomainError("INVALID_INPUT", "Investor name cannot exceed 200 characters")
	}
	return name, nil
}

// NewHouseInvestor builds the reserved house record under a well-known id
func NewHouseInvestor(id uuid.UUID) *Investor {
	root := shared.NewBaseAggregateRoot()
	root.BaseEntity = shared.NewBaseEntityWithID(id)
	return &Investor{
		BaseAggregateRoot: root,
		Name:              HouseInvestorName,
		IsActive:          true,
		IsHouse:           true,
	}
}

// Rename changes the display name
func (i *Investor) Rename(name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	if i.IsHouse {
		return ErrHouseInvestorReserved.WithDetails(map[string]any{"investor_id": i.ID.String()})
	}
	i.Name = name
	i.Touch()
	i.IncrementVersion()
	return nil
}

// UpdateContact replaces contact details
func (i *Investor) UpdateContact(contact ContactDetails) {
	i.Contact = contact
	i.Touch()
	i.IncrementVersion()
}

// UpdateBankDetails replaces bank details
func (i *Investor) UpdateBankDetails(bank BankDetails) {
	i.Bank = bank
	i.Touch()
	i.IncrementVersion()
}

// SetNotes sets free-form notes
func (i *Investor) SetNotes(notes string) {
	i.Notes = notes
	i.Touch()
}

// Activate marks the investor active
func (i *Investor) Activate() error {
	if i.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Investor is already active")
	}
	i.IsActive = true
	i.Touch()
	i.IncrementVersion()
	return nil
}

// Deactivate marks the investor inactive. The house investor is always active.
func (i *Investor) Deactivate() error {
	if i.IsHouse {
		return ErrHouseInvestorReserved.WithDetails(map[string]any{"investor_id": i.ID.String()})
	}
	if !i.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Investor is already inactive")
	}
	i.IsActive = false
	i.Touch()
	i.IncrementVersion()
	return nil
}

// EnsureDeletable rejects deletion while investments still reference the investor
func (i *Investor) EnsureDeletable(investmentCount int64) error {
	if i.IsHouse {
		return ErrHouseInvestorReserved.WithDetails(map[string]any{"investor_id": i.ID.String()})
	}
	if investmentCount > 0 {
		return ErrInvestorHasInvestments.WithDetails(map[string]any{
			"investor_id":      i.ID.String(),
			"investment_count": investmentCount,
		})
	}
	return nil
}
