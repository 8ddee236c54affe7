package billing

import "github.com/stationery/backoffice/internal/domain/shared"

var (
	ErrBillNotFound    = shared.NewDomainError("BILL_NOT_FOUND", "Bill not found")
	ErrBillNumberTaken = shared.NewDomainError("ALREADY_EXISTS", "Bill number is already in use")
)
