package ports

import (
	"context"

	"github.com/smallie/smallie/internal/core/domain"
)

type CheckoutRequest struct {
	Reference   string
	AmountNGN   float64
	Email       string
	Name        string
	Title       string
	Description string
}

type CheckoutSession struct {
	Reference string `json:"reference"`
	Link      string `json:"link"`
}

// CheckoutGateway is the card/bank/USSD aggregator (rail A). Checkout
// creation hands back a hosted payment link; settlement arrives later on
// the callback route and must be verified server-side before any vote is
// written.
type CheckoutGateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	// VerifyTransaction confirms with the aggregator that the
	// transaction settled for the expected reference and NGN amount.
	VerifyTransaction(ctx context.Context, transactionID, reference string, amountNGN float64) (bool, error)
}

// PendingIntentStore parks an intent between checkout creation and the
// rail callback. Take consumes it: a reference resolves at most once.
type PendingIntentStore interface {
	Put(ctx context.Context, reference string, intent domain.VoteIntent) error
	Take(ctx context.Context, reference string) (*domain.VoteIntent, error)
}

// TransferOrder is the single native-asset transfer rail B settles with.
type TransferOrder struct {
	FromPubkey      string
	ToPubkey        string
	Lamports        uint64
	RecentBlockhash string
}

type SignedTransaction []byte

// Wallet is the user's signing wallet. It may be absent at runtime; the
// orchestrator must fail an attempt before any chain call when it is.
type Wallet interface {
	Connect(ctx context.Context) (pubkey string, err error)
	SignTransfer(ctx context.Context, order TransferOrder) (SignedTransaction, error)
}

type WalletProvider interface {
	Wallet() (Wallet, bool)
}

// ChainClient talks to the settlement network (rail B). AwaitConfirmation
// blocks until the transaction is confirmed or the client's own timeout
// policy gives up.
type ChainClient interface {
	RecentAnchor(ctx context.Context) (blockhash string, err error)
	Submit(ctx context.Context, tx SignedTransaction) (signature string, err error)
	AwaitConfirmation(ctx context.Context, signature string) error
}

// PaymentService drives one intent to a terminal state. Terminal failures
// and cancellations discard the intent; the caller re-collects a fresh one
// to retry.
type PaymentService interface {
	SubmitDirect(ctx context.Context, intent domain.VoteIntent) (*domain.VoteRecord, error)
	CreateCheckout(ctx context.Context, intent domain.VoteIntent) (*CheckoutSession, error)
	CompleteCheckout(ctx context.Context, reference, status, transactionID string) (*domain.VoteRecord, error)
	PayWithWallet(ctx context.Context, intent domain.VoteIntent) (*domain.VoteRecord, error)
}
