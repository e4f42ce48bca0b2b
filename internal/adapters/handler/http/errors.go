package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smallie/smallie/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	// PaymentReceived marks reconciliation failures: the charge went
	// through even though the vote is not recorded yet.
	PaymentReceived bool `json:"payment_received,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeVoteError maps the error taxonomy to responses. Reconciliation
// failures explicitly say the payment was received so the page never
// claims the charge failed.
func writeVoteError(w http.ResponseWriter, err error) {
	var recErr *domain.ReconciliationError
	if errors.As(err, &recErr) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:           "your payment was received but the vote could not be recorded yet; it will be reconciled manually",
			Code:            "reconciliation_pending",
			PaymentReceived: true,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidVoteCount), errors.Is(err, domain.ErrInvalidContestantID):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_request"})
	case errors.Is(err, domain.ErrContestantNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, domain.ErrContestantEliminated):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "eliminated"})
	case errors.Is(err, domain.ErrCheckoutNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: "unknown_reference"})
	case errors.Is(err, domain.ErrWalletUnavailable):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: "Phantom wallet is not installed. Please install it from https://phantom.app/",
			Code:  "wallet_missing",
		})
	case errors.Is(err, domain.ErrPaymentCancelled):
		writeJSON(w, http.StatusPaymentRequired, errorResponse{Error: "payment was cancelled", Code: "payment_cancelled"})
	case errors.Is(err, domain.ErrPaymentFailed):
		writeJSON(w, http.StatusPaymentRequired, errorResponse{Error: "payment was cancelled or failed, please try again", Code: "payment_failed"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "internal"})
	}
}
