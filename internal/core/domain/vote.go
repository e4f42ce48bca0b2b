package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentDirect      PaymentMethod = "direct"
	PaymentFlutterwave PaymentMethod = "flutterwave"
	PaymentSolana      PaymentMethod = "solana"
)

// VoteIntent is a user's declared desire to cast Count votes for a
// contestant. It is built once, consumed once by a payment run or the
// direct-submit path, and never mutated.
type VoteIntent struct {
	ContestantID string `json:"contestant_id"`
	Count        int    `json:"count"`
	PayerEmail   string `json:"payer_email,omitempty"`
	DayIndex     int    `json:"day_index"`
}

type PaymentResult struct {
	Method        PaymentMethod `json:"method"`
	Success       bool          `json:"success"`
	TransactionID string        `json:"transaction_id,omitempty"`
}

// VoteRecord is the append-only persisted form of a committed intent.
// CreatedAt is assigned server-side by the store.
type VoteRecord struct {
	ID            uuid.UUID     `json:"id"`
	ContestantID  string        `json:"contestant_id"`
	Count         int           `json:"count"`
	PayerEmail    string        `json:"payer_email,omitempty"`
	DayIndex      int           `json:"day_index"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	TransactionID string        `json:"transaction_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Payment is the audit record appended alongside a rail-settled vote.
type Payment struct {
	ID            uuid.UUID     `json:"id"`
	ContestantID  string        `json:"contestant_id"`
	VoteCount     int           `json:"vote_count"`
	AmountUSD     float64       `json:"amount_usd"`
	PayerEmail    string        `json:"payer_email,omitempty"`
	Method        PaymentMethod `json:"method"`
	TransactionID string        `json:"transaction_id"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}
