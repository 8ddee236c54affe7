package financing

import "github.com/stationery/backoffice/internal/domain/shared"

// Financing error codes
var (
	ErrInvestorNotFound         = shared.NewDomainError("INVESTOR_NOT_FOUND", "Investor not found")
	ErrInvestmentOversubscribed = shared.NewDomainError("INVESTMENT_OVERSUBSCRIBED", "Proposed investments exceed the purchase order total")
	ErrInvalidPayoutAmount      = shared.NewDomainError("INVALID_PAYOUT_AMOUNT", "Payout amount must be greater than zero")
	ErrPayoutExceedsPayable     = shared.NewDomainError("PAYOUT_EXCEEDS_PAYABLE", "Payout amount exceeds the payable amount")
	ErrInvestorHasInvestments   = shared.NewDomainError("INVESTOR_HAS_INVESTMENTS", "Investor has investments and cannot be deleted; deactivate instead")
	ErrHouseInvestorReserved    = shared.NewDomainError("HOUSE_INVESTOR_RESERVED", "The house investor is reserved and cannot be modified this way")
)
