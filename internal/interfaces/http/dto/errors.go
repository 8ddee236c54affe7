package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeTooLarge     = "REQUEST_TOO_LARGE"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeUnavailable  = "SERVICE_UNAVAILABLE"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
)

// Domain error codes with a fixed status
const (
	ErrCodeInvalidInput             = "INVALID_INPUT"
	ErrCodeInvestmentOversubscribed = "INVESTMENT_OVERSUBSCRIBED"
	ErrCodeNoItems                  = "NO_ITEMS"

	ErrCodeInvalidPayoutAmount   = "INVALID_PAYOUT_AMOUNT"
	ErrCodePayoutExceedsPayable  = "PAYOUT_EXCEEDS_PAYABLE"
	ErrCodeInvalidState          = "INVALID_STATE"
	ErrCodePaymentExceedsBalance = "PAYMENT_EXCEEDS_BALANCE"
	ErrCodeInsufficientStock     = "INSUFFICIENT_STOCK"

	ErrCodeInvestorHasInvestments = "INVESTOR_HAS_INVESTMENTS"
	ErrCodeHouseInvestorReserved  = "HOUSE_INVESTOR_RESERVED"
	ErrCodeDuplicateRequest       = "DUPLICATE_REQUEST"
	ErrCodeConcurrencyConflict    = "CONCURRENCY_CONFLICT"
	ErrCodeAlreadyExists          = "ALREADY_EXISTS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeUnavailable:  http.StatusServiceUnavailable,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Validation -> 400
	ErrCodeValidation:               http.StatusBadRequest,
	ErrCodeInvalidInput:             http.StatusBadRequest,
	ErrCodeInvestmentOversubscribed: http.StatusBadRequest,
	ErrCodeNoItems:                  http.StatusBadRequest,

	// Invariant violations -> 422
	ErrCodeInvalidPayoutAmount:   http.StatusUnprocessableEntity,
	ErrCodePayoutExceedsPayable:  http.StatusUnprocessableEntity,
	ErrCodeInvalidState:          http.StatusUnprocessableEntity,
	ErrCodePaymentExceedsBalance: http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock:     http.StatusUnprocessableEntity,

	// Deletion blocked and conflicts -> 409
	ErrCodeInvestorHasInvestments: http.StatusConflict,
	ErrCodeHouseInvestorReserved:  http.StatusConflict,
	ErrCodeDuplicateRequest:       http.StatusConflict,
	ErrCodeConcurrencyConflict:    http.StatusConflict,
	ErrCodeAlreadyExists:          http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status for an error code. Codes not listed
// fall back on their suffix or prefix: *_NOT_FOUND is 404, INVALID_* is 400,
// and anything else is 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
