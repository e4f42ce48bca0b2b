package domain

import (
	"errors"
	"fmt"
)

var (
	ErrContestantNotFound   = errors.New("contestant not found")
	ErrContestantEliminated = errors.New("contestant has been eliminated and can no longer receive votes")
	ErrInvalidVoteCount     = errors.New("vote count must be a positive integer")
	ErrInvalidContestantID  = errors.New("invalid contestant id")
	ErrTaskNotFound         = errors.New("task not found")
	ErrPaymentFailed        = errors.New("payment failed")
	ErrPaymentCancelled     = errors.New("payment cancelled")
	ErrWalletUnavailable    = errors.New("phantom wallet is not installed")
	ErrCheckoutNotFound     = errors.New("checkout reference not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrInternal             = errors.New("internal server error")
)

// ReconciliationError reports a ledger commit that failed after the payment
// already settled. Callers must not present it as a payment failure: the
// charge went through and the vote needs manual reconciliation.
type ReconciliationError struct {
	Method        PaymentMethod
	TransactionID string
	Err           error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("vote commit failed after settled %s payment (transaction %s): %v", e.Method, e.TransactionID, e.Err)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}
