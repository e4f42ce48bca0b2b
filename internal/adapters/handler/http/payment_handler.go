package http

import (
	"encoding/json"
	"net/http"

	"github.com/smallie/smallie/internal/core/ports"
)

type PaymentHandler struct {
	votes    ports.VoteService
	payments ports.PaymentService
}

func NewPaymentHandler(votes ports.VoteService, payments ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		votes:    votes,
		payments: payments,
	}
}

// CreateCheckout opens a rail-A attempt and returns the hosted payment
// link the page redirects to.
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	intent, _, err := h.votes.BuildIntent(r.Context(), ports.BuildIntentInput{
		ContestantID: req.ContestantID,
		Count:        req.Count,
		Email:        req.Email,
	})
	if err != nil {
		writeVoteError(w, err)
		return
	}

	session, err := h.payments.CreateCheckout(r.Context(), *intent)
	if err != nil {
		writeVoteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// CheckoutCallback is where the aggregator sends the user after the
// hosted checkout closes, successful or not.
func (h *PaymentHandler) CheckoutCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	reference := q.Get("tx_ref")
	status := q.Get("status")
	transactionID := q.Get("transaction_id")

	if reference == "" {
		http.Error(w, "missing tx_ref", http.StatusBadRequest)
		return
	}

	record, err := h.payments.CompleteCheckout(r.Context(), reference, status, transactionID)
	if err != nil {
		writeVoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// WalletPay drives a rail-B payment to settlement and commits the vote.
func (h *PaymentHandler) WalletPay(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	intent, _, err := h.votes.BuildIntent(r.Context(), ports.BuildIntentInput{
		ContestantID: req.ContestantID,
		Count:        req.Count,
		Email:        req.Email,
	})
	if err != nil {
		writeVoteError(w, err)
		return
	}

	record, err := h.payments.PayWithWallet(r.Context(), *intent)
	if err != nil {
		writeVoteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}
