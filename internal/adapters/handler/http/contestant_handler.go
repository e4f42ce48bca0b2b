package http

import (
	"net/http"

	"github.com/smallie/smallie/internal/core/ports"
)

type ContestantHandler struct {
	service ports.ContestantService
}

func NewContestantHandler(service ports.ContestantService) *ContestantHandler {
	return &ContestantHandler{
		service: service,
	}
}

func (h *ContestantHandler) List(w http.ResponseWriter, r *http.Request) {
	contestants, err := h.service.List(r.Context())
	if err != nil {
		writeVoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contestants)
}

func (h *ContestantHandler) PrizeFund(w http.ResponseWriter, r *http.Request) {
	fund, err := h.service.PrizeFundNGN(r.Context())
	if err != nil {
		writeVoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"prize_fund_ngn": fund})
}
