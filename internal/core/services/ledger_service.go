package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/smallie/smallie/internal/config"
	"github.com/smallie/smallie/internal/core/domain"
	"github.com/smallie/smallie/internal/core/ports"
	"github.com/smallie/smallie/internal/metrics"
)

type ledgerService struct {
	votes       ports.VoteRepository
	payments    ports.PaymentRepository
	contestants ports.ContestantRepository
	cache       ports.TallyCache
	dir         *Directory
	pricing     config.Pricing
	log         *slog.Logger
}

func NewLedgerService(
	votes ports.VoteRepository,
	payments ports.PaymentRepository,
	contestants ports.ContestantRepository,
	cache ports.TallyCache,
	dir *Directory,
	pricing config.Pricing,
	log *slog.Logger,
) ports.LedgerService {
	return &ledgerService{
		votes:       votes,
		payments:    payments,
		contestants: contestants,
		cache:       cache,
		dir:         dir,
		pricing:     pricing,
		log:         log,
	}
}

// Commit appends the vote record and applies the atomic tally increment.
// The two writes are logically one unit: if either fails after the payment
// settled, the caller receives a *domain.ReconciliationError so the user is
// never told the charge failed.
func (s *ledgerService) Commit(ctx context.Context, intent domain.VoteIntent, result domain.PaymentResult) (*domain.VoteRecord, error) {
	if !result.Success {
		return nil, domain.ErrPaymentFailed
	}
	if intent.Count < 1 {
		return nil, domain.ErrInvalidVoteCount
	}

	record := &domain.VoteRecord{
		ID:            uuid.New(),
		ContestantID:  intent.ContestantID,
		Count:         intent.Count,
		PayerEmail:    intent.PayerEmail,
		DayIndex:      intent.DayIndex,
		PaymentMethod: result.Method,
		TransactionID: result.TransactionID,
	}

	if err := s.votes.SaveVote(ctx, record); err != nil {
		return nil, s.commitFailure(result, fmt.Errorf("failed to append vote record: %w", err))
	}

	newTotal, err := s.contestants.IncrementVotes(ctx, intent.ContestantID, intent.Count)
	if err != nil {
		return nil, s.commitFailure(result, fmt.Errorf("failed to increment tally: %w", err))
	}

	if result.Method != domain.PaymentDirect {
		payment := &domain.Payment{
			ID:            uuid.New(),
			ContestantID:  intent.ContestantID,
			VoteCount:     intent.Count,
			AmountUSD:     s.pricing.TotalUSD(intent.Count),
			PayerEmail:    intent.PayerEmail,
			Method:        result.Method,
			TransactionID: result.TransactionID,
			Status:        "completed",
		}
		if err := s.payments.SavePayment(ctx, payment); err != nil {
			// The vote and tally are already committed; the audit row
			// is recoverable from the rail's own records.
			s.log.Error("payment audit write failed", "transaction_id", result.TransactionID, "error", err)
		}
	}

	if _, err := s.cache.Add(ctx, intent.ContestantID, int64(intent.Count)); err != nil {
		s.log.Warn("tally cache update failed", "contestant_id", intent.ContestantID, "error", err)
	}
	s.dir.ApplyVotes(intent.ContestantID, int64(intent.Count))

	metrics.VotesCommitted.Add(float64(intent.Count))
	s.log.Info("vote committed",
		"contestant_id", intent.ContestantID,
		"count", intent.Count,
		"method", result.Method,
		"tally", newTotal,
	)

	return record, nil
}

// commitFailure classifies a failed ledger write. Only settled rails have
// a charge to reconcile; a failed free vote is a plain error.
func (s *ledgerService) commitFailure(result domain.PaymentResult, err error) error {
	if result.Method == domain.PaymentDirect {
		return err
	}

	rerr := &domain.ReconciliationError{
		Method:        result.Method,
		TransactionID: result.TransactionID,
		Err:           err,
	}
	metrics.ReconciliationFailures.Inc()
	s.log.Error("ledger commit needs manual reconciliation",
		"method", result.Method,
		"transaction_id", result.TransactionID,
		"error", err,
	)
	return rerr
}
