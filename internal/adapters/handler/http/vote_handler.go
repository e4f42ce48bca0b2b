package http

import (
	"encoding/json"
	"net/http"

	"github.com/smallie/smallie/internal/core/ports"
)

type VoteHandler struct {
	votes    ports.VoteService
	payments ports.PaymentService
}

func NewVoteHandler(votes ports.VoteService, payments ports.PaymentService) *VoteHandler {
	return &VoteHandler{
		votes:    votes,
		payments: payments,
	}
}

type voteRequest struct {
	ContestantID string `json:"contestant_id"`
	Count        int    `json:"count"`
	Email        string `json:"email"`
}

// BuildIntent assembles the intent plus quote the confirmation modal
// shows. Nothing is persisted; the page re-submits the same fields to
// whichever payment route the user picks.
func (h *VoteHandler) BuildIntent(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	intent, quote, err := h.votes.BuildIntent(r.Context(), ports.BuildIntentInput{
		ContestantID: req.ContestantID,
		Count:        req.Count,
		Email:        req.Email,
	})
	if err != nil {
		writeVoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"intent": intent,
		"quote":  quote,
	})
}

// DirectSubmit is the no-payment path: the intent commits immediately.
func (h *VoteHandler) DirectSubmit(w http.ResponseWriter, r *http.Request) {
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

	record, err := h.payments.SubmitDirect(r.Context(), *intent)
	if err != nil {
		writeVoteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}
