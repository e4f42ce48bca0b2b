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

// checkoutStatusOK is the aggregator's settled status; anything else on the
// callback is a failure or a user dismissal.
const checkoutStatusOK = "successful"

type paymentService struct {
	ledger     ports.LedgerService
	gateway    ports.CheckoutGateway
	pending    ports.PendingIntentStore
	wallets    ports.WalletProvider
	chain      ports.ChainClient
	pricing    config.Pricing
	guestEmail string
	recipient  string
	log        *slog.Logger
}

func NewPaymentService(
	ledger ports.LedgerService,
	gateway ports.CheckoutGateway,
	pending ports.PendingIntentStore,
	wallets ports.WalletProvider,
	chain ports.ChainClient,
	cfg *config.Config,
	log *slog.Logger,
) ports.PaymentService {
	return &paymentService{
		ledger:     ledger,
		gateway:    gateway,
		pending:    pending,
		wallets:    wallets,
		chain:      chain,
		pricing:    cfg.Pricing,
		guestEmail: cfg.GuestEmail,
		recipient:  cfg.Solana.RecipientPubkey,
		log:        log,
	}
}

// SubmitDirect is the no-payment path: the intent commits immediately.
func (s *paymentService) SubmitDirect(ctx context.Context, intent domain.VoteIntent) (*domain.VoteRecord, error) {
	record, err := s.ledger.Commit(ctx, intent, domain.PaymentResult{
		Method:  domain.PaymentDirect,
		Success: true,
	})
	if err != nil {
		metrics.PaymentsTotal.WithLabelValues(string(domain.PaymentDirect), metrics.OutcomeFailed).Inc()
		return nil, err
	}
	metrics.PaymentsTotal.WithLabelValues(string(domain.PaymentDirect), metrics.OutcomeSucceeded).Inc()
	return record, nil
}

// CreateCheckout opens a rail-A attempt: the intent is parked under a
// unique per-attempt reference and the hosted checkout link is returned.
// Nothing is written to the ledger until the callback settles.
func (s *paymentService) CreateCheckout(ctx context.Context, intent domain.VoteIntent) (*ports.CheckoutSession, error) {
	reference := fmt.Sprintf("vote-%s", uuid.NewString())

	if err := s.pending.Put(ctx, reference, intent); err != nil {
		return nil, fmt.Errorf("failed to park checkout intent: %w", err)
	}

	email := intent.PayerEmail
	if email == "" {
		email = s.guestEmail
	}

	session, err := s.gateway.CreateCheckout(ctx, ports.CheckoutRequest{
		Reference:   reference,
		AmountNGN:   s.pricing.TotalNGN(intent.Count),
		Email:       email,
		Name:        "Smallie Voter",
		Title:       "Smallie Vote Payment",
		Description: fmt.Sprintf("%d vote(s) for contestant %s", intent.Count, intent.ContestantID),
	})
	if err != nil {
		metrics.PaymentsTotal.WithLabelValues(string(domain.PaymentFlutterwave), metrics.OutcomeFailed).Inc()
		return nil, fmt.Errorf("failed to open checkout: %w", err)
	}

	return session, nil
}

// CompleteCheckout consumes a rail-A callback. The parked intent resolves
// at most once; the settlement is re-verified with the aggregator before
// the ledger write.
func (s *paymentService) CompleteCheckout(ctx context.Context, reference, status, transactionID string) (*domain.VoteRecord, error) {
	intent, err := s.pending.Take(ctx, reference)
	if err != nil {
		return nil, err
	}

	if status != checkoutStatusOK {
		if status == "cancelled" {
			metrics.PaymentsTotal.WithLabelValues(string(domain.PaymentFlutterwave), metrics.OutcomeCancelled).Inc()
			return nil, domain.ErrPaymentCancelled
		}
		metrics.PaymentsTotal.WithLabelValues(string(domain.PaymentFlutterwave), metrics.OutcomeFailed).Inc()
		return nil, fmt.Errorf("%w: checkout reported status %q", domain.ErrPaymentFailed, status)
	}

	ok, err := s.gateway.VerifyTransaction(ctx, transactionID, reference, s.pricing.TotalNGN(intent.Count))
	if err != nil {
		metrics.PaymentsTotal.WithLabelValues(string(domain.PaymentFlutterwave), metrics.OutcomeFailed).Inc()
		return nil, fmt.Errorf("%w: verification error: %v", domain.ErrPaymentFailed, err)
	}
	if !ok {
		metrics.PaymentsTotal.WithLabelValues(string(domain.PaymentFlutterwave), metrics.OutcomeFailed).Inc()
		return nil, fmt.Errorf("%w: transaction %s did not verify for reference %s", domain.ErrPaymentFailed, transactionID, reference)
	}

	record, err := s.ledger.Commit(ctx, *intent, domain.PaymentResult{
		Method:        domain.PaymentFlutterwave,
		Success:       true,
		TransactionID: transactionID,
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsTotal.WithLabelValues(string(domain.PaymentFlutterwave), metrics.OutcomeSucceeded).Inc()
	return record, nil
}

// PayWithWallet drives rail B end to end: connect, build the transfer,
// anchor it to a recent blockhash, sign, submit, and wait for on-chain
// confirmation. A submitted-but-unconfirmed transfer is a failure, not a
// vote.
func (s *paymentService) PayWithWallet(ctx context.Context, intent domain.VoteIntent) (*domain.VoteRecord, error) {
	wallet, ok := s.wallets.Wallet()
	if !ok {
		metrics.PaymentsTotal.WithLabelValues(string(domain.PaymentSolana), metrics.OutcomeFailed).Inc()
		return nil, domain.ErrWalletUnavailable
	}

	payer, err := wallet.Connect(ctx)
	if err != nil {
		return nil, s.walletFailure(fmt.Errorf("wallet connect rejected: %w", err))
	}

	blockhash, err := s.chain.RecentAnchor(ctx)
	if err != nil {
		return nil, s.walletFailure(fmt.Errorf("failed to fetch recent blockhash: %w", err))
	}

	signed, err := wallet.SignTransfer(ctx, ports.TransferOrder{
		FromPubkey:      payer,
		ToPubkey:        s.recipient,
		Lamports:        s.pricing.Lamports(intent.Count),
		RecentBlockhash: blockhash,
	})
	if err != nil {
		return nil, s.walletFailure(fmt.Errorf("wallet signing rejected: %w", err))
	}

	signature, err := s.chain.Submit(ctx, signed)
	if err != nil {
		return nil, s.walletFailure(fmt.Errorf("transaction submit failed: %w", err))
	}

	if err := s.chain.AwaitConfirmation(ctx, signature); err != nil {
		return nil, s.walletFailure(fmt.Errorf("transaction %s not confirmed: %w", signature, err))
	}

	record, err := s.ledger.Commit(ctx, intent, domain.PaymentResult{
		Method:        domain.PaymentSolana,
		Success:       true,
		TransactionID: signature,
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsTotal.WithLabelValues(string(domain.PaymentSolana), metrics.OutcomeSucceeded).Inc()
	return record, nil
}

func (s *paymentService) walletFailure(err error) error {
	metrics.PaymentsTotal.WithLabelValues(string(domain.PaymentSolana), metrics.OutcomeFailed).Inc()
	s.log.Warn("wallet payment failed", "error", err)
	return fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
}
