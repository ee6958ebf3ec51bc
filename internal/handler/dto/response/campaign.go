package response

import (
	"voucher-campaign/internal/domain/eligibility"
	"voucher-campaign/internal/usecase"
)

// EligibilityResponse is the wire shape of a check-eligibility outcome. The
// message strings are part of the public contract; clients match on them.
type EligibilityResponse struct {
	Eligibility  bool   `json:"eligibility"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type ValidationResponse struct {
	Code         string `json:"code,omitempty"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

const (
	msgSuccess            = "Success."
	msgVoucherLocked      = "Voucher locked, proceed to validate."
	msgAllRedeemed        = "All vouchers redeemed."
	msgAllClaimed         = "All vouchers have been claimed."
	msgRedeemed           = "Redeemed."
	msgInsufficientCount  = "Less than 3 transactions in 30 days."
	msgInsufficientAmount = "Total transactions less than $100."
	msgRecognitionFailed  = "Image recognition failed."
)

func FromEligibilityResult(result *usecase.EligibilityResult) *EligibilityResponse {
	switch result.Verdict {
	case eligibility.VerdictEligible:
		return &EligibilityResponse{Eligibility: true, Message: msgSuccess}
	case eligibility.VerdictReservationActive:
		return &EligibilityResponse{Eligibility: true, Message: msgVoucherLocked}
	case eligibility.VerdictAllRedeemed:
		return &EligibilityResponse{ErrorMessage: msgAllRedeemed}
	case eligibility.VerdictAllClaimed:
		return &EligibilityResponse{ErrorMessage: msgAllClaimed}
	case eligibility.VerdictAlreadyRedeemed:
		return &EligibilityResponse{ErrorMessage: msgRedeemed}
	case eligibility.VerdictInsufficientTransactionCount:
		return &EligibilityResponse{ErrorMessage: msgInsufficientCount}
	case eligibility.VerdictInsufficientTransactionAmount:
		return &EligibilityResponse{ErrorMessage: msgInsufficientAmount}
	}
	return &EligibilityResponse{ErrorMessage: msgAllClaimed}
}

func FromValidationResult(result *usecase.ValidationResult) *ValidationResponse {
	if !result.Verified {
		return &ValidationResponse{ErrorMessage: msgRecognitionFailed}
	}
	return &ValidationResponse{Code: result.Code, Message: msgSuccess}
}
