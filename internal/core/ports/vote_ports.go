package ports

import (
	"context"

	"github.com/smallie/smallie/internal/core/domain"
)

type VoteRepository interface {
	SaveVote(ctx context.Context, vote *domain.VoteRecord) error
}

type PaymentRepository interface {
	SavePayment(ctx context.Context, payment *domain.Payment) error
}

type ContestantRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Contestant, error)
	List(ctx context.Context) ([]*domain.Contestant, error)
	// IncrementVotes adds delta to the contestant's tally in a single
	// server-side atomic statement and returns the new total.
	IncrementVotes(ctx context.Context, id string, delta int) (int64, error)
}

// TallyCache is the locally-projected tally used for immediate UI feedback
// after a commit, without waiting for a fresh store read.
type TallyCache interface {
	Add(ctx context.Context, contestantID string, delta int64) (int64, error)
	Set(ctx context.Context, contestantID string, votes int64) error
	Get(ctx context.Context, contestantID string) (votes int64, ok bool, err error)
}

// LedgerService commits a paid (or free) intent: one appended vote record
// plus one atomic tally increment. A half-applied commit surfaces as a
// *domain.ReconciliationError.
type LedgerService interface {
	Commit(ctx context.Context, intent domain.VoteIntent, result domain.PaymentResult) (*domain.VoteRecord, error)
}

type BuildIntentInput struct {
	ContestantID string
	// Count 0 means the one-click default of a single vote.
	Count int
	Email string
}

// Quote is what the confirmation step displays before any payment starts.
type Quote struct {
	ContestantID   string  `json:"contestant_id"`
	ContestantName string  `json:"contestant_name"`
	Count          int     `json:"count"`
	UnitUSD        float64 `json:"unit_usd"`
	TotalUSD       float64 `json:"total_usd"`
	TotalNGN       float64 `json:"total_ngn"`
}

type VoteService interface {
	BuildIntent(ctx context.Context, input BuildIntentInput) (*domain.VoteIntent, *Quote, error)
}

type ContestantService interface {
	List(ctx context.Context) ([]*domain.Contestant, error)
	PrizeFundNGN(ctx context.Context) (float64, error)
}
