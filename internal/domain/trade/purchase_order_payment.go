package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/shared"
)

// PaymentMethod is how a vendor was paid
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodMobile       PaymentMethod = "MOBILE"
)

// IsValid checks if the method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheque, PaymentMethodMobile:
		return true
	}
	return false
}

// PurchaseOrderPayment is money paid to the vendor of a purchase order.
// Unlike investor payouts these rows can be edited or deleted, and every
// change is mirrored in the order's paid and due amounts.
type PurchaseOrderPayment struct {
	shared.BaseEntity
	PurchaseOrderID uuid.UUID
	Amount          decimal.Decimal
	Method          PaymentMethod
	Reference       string
	Note            string
	PaidAt          time.Time
}

// AddPayment records a vendor payment and moves the amount from due to paid
func (o *PurchaseOrder) AddPayment(amount decimal.Decimal, method PaymentMethod, reference, note string) (*PurchaseOrderPayment, error) {
	if o.Status == PurchaseOrderStatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot pay a cancelled order")
	}
	if err := o.checkPaymentAmount(amount, decimal.Zero); err != nil {
		return nil, err
	}
	if !method.IsValid() {
		return nil, shared.NewDomainErrorf("INVALID_PAYMENT_METHOD", "Unknown payment method %q", method)
	}
	base := shared.NewBaseEntity()
	p := &PurchaseOrderPayment{
		BaseEntity:      base,
		PurchaseOrderID: o.ID,
		Amount:          amount,
		Method:          method,
		Reference:       strings.TrimSpace(reference),
		Note:            note,
		PaidAt:          base.CreatedAt,
	}
	o.applyPaid(amount)
	return p, nil
}

// EditPayment changes a payment's amount, reversing the old amount first
func (o *PurchaseOrder) EditPayment(p *PurchaseOrderPayment, amount decimal.Decimal, method PaymentMethod, reference, note string) error {
	if p.PurchaseOrderID != o.ID {
		return shared.NewDomainError("PAYMENT_NOT_FOUND", "Payment does not belong to this purchase order")
	}
	if err := o.checkPaymentAmount(amount, p.Amount); err != nil {
		return err
	}
	if !method.IsValid() {
		return shared.NewDomainErrorf("INVALID_PAYMENT_METHOD", "Unknown payment method %q", method)
	}
	o.applyPaid(amount.Sub(p.Amount))
	p.Amount = amount
	p.Method = method
	p.Reference = strings.TrimSpace(reference)
	p.Note = note
	p.Touch()
	return nil
}

// RemovePayment reverses a payment's effect on the order
func (o *PurchaseOrder) RemovePayment(p *PurchaseOrderPayment) error {
	if p.PurchaseOrderID != o.ID {
		return shared.NewDomainError("PAYMENT_NOT_FOUND", "Payment does not belong to this purchase order")
	}
	o.applyPaid(p.Amount.Neg())
	return nil
}

func (o *PurchaseOrder) checkPaymentAmount(amount, replacing decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	available := o.DueAmount.Add(replacing)
	if amount.GreaterThan(available) {
		return shared.NewDomainErrorf("PAYMENT_EXCEEDS_BALANCE", "Payment amount %s exceeds amount due %s",
			amount.StringFixed(2), available.StringFixed(2)).
			WithDetails(map[string]any{
				"purchase_order_id": o.ID.String(),
				"requested":         amount.StringFixed(2),
				"due":               available.StringFixed(2),
			})
	}
	return nil
}

func (o *PurchaseOrder) applyPaid(delta decimal.Decimal) {
	o.PaidAmount = o.PaidAmount.Add(delta)
	o.DueAmount = o.TotalAmount.Sub(o.PaidAmount)
	o.Touch()
	o.IncrementVersion()
}
