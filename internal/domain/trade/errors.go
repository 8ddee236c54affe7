package trade

import "github.com/stationery/backoffice/internal/domain/shared"

var (
	ErrPurchaseOrderNotFound = shared.NewDomainError("PURCHASE_ORDER_NOT_FOUND", "Purchase order not found")
	ErrSalesOrderNotFound    = shared.NewDomainError("SALES_ORDER_NOT_FOUND", "Sales order not found")
	ErrVendorPaymentNotFound = shared.NewDomainError("PAYMENT_NOT_FOUND", "Payment not found")
	ErrOrderNumberTaken      = shared.NewDomainError("ALREADY_EXISTS", "Order number is already in use")
)
