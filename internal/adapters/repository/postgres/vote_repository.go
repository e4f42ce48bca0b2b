package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smallie/smallie/internal/core/domain"
	"github.com/smallie/smallie/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// SaveVote appends the record; created_at is assigned by the store so
// client clock skew never orders the ledger.
func (r *voteRepository) SaveVote(ctx context.Context, vote *domain.VoteRecord) error {
	query := `
		INSERT INTO votes (id, contestant_id, count, payer_email, day_index, payment_method, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		vote.ID, vote.ContestantID, vote.Count, vote.PayerEmail, vote.DayIndex, vote.PaymentMethod, vote.TransactionID,
	).Scan(&vote.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) ports.PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

func (r *paymentRepository) SavePayment(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, contestant_id, vote_count, amount_usd, payer_email, method, transaction_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		payment.ID, payment.ContestantID, payment.VoteCount, payment.AmountUSD,
		payment.PayerEmail, payment.Method, payment.TransactionID, payment.Status,
	).Scan(&payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}
