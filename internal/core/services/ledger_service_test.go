package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallie/smallie/internal/core/domain"
)

type ledgerFixture struct {
	votes       *fakeVoteRepo
	payments    *fakePaymentRepo
	contestants *fakeContestantRepo
	cache       *fakeTallyCache
	dir         *Directory
	svc         *ledgerService
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		votes:       &fakeVoteRepo{},
		payments:    &fakePaymentRepo{},
		contestants: newFakeContestantRepo(),
		cache:       newFakeTallyCache(),
		dir:         rosterDirectory(),
	}
	f.contestants.tallies["7"] = 234
	f.svc = NewLedgerService(
		f.votes, f.payments, f.contestants, f.cache, f.dir, testPricing(), discardLogger(),
	).(*ledgerService)
	return f
}

func TestCommitIncrementsTallyByExactCount(t *testing.T) {
	f := newLedgerFixture()

	intent := domain.VoteIntent{ContestantID: "7", Count: 3, PayerEmail: "voter@example.com", DayIndex: 2}
	record, err := f.svc.Commit(context.Background(), intent, domain.PaymentResult{
		Method:        domain.PaymentFlutterwave,
		Success:       true,
		TransactionID: "tx123",
	})
	require.NoError(t, err)

	assert.Equal(t, "7", record.ContestantID)
	assert.Equal(t, 3, record.Count)
	assert.Equal(t, "tx123", record.TransactionID)
	assert.NotEqual(t, record.ID.String(), "00000000-0000-0000-0000-000000000000")

	require.Len(t, f.votes.saved, 1)
	assert.Equal(t, []int{3}, f.contestants.increments)
	assert.Equal(t, int64(237), f.contestants.tallies["7"])
	assert.Equal(t, int64(3), f.cache.counts["7"])

	_, tally, ok := f.dir.Snapshot("7")
	require.True(t, ok)
	assert.Equal(t, int64(237), tally.Votes)
}

func TestCommitWritesAuditRowForPaidRails(t *testing.T) {
	f := newLedgerFixture()
	intent := domain.VoteIntent{ContestantID: "7", Count: 2}

	_, err := f.svc.Commit(context.Background(), intent, domain.PaymentResult{
		Method:        domain.PaymentSolana,
		Success:       true,
		TransactionID: "sig-abc",
	})
	require.NoError(t, err)

	require.Len(t, f.payments.saved, 1)
	audit := f.payments.saved[0]
	assert.Equal(t, domain.PaymentSolana, audit.Method)
	assert.Equal(t, 1.0, audit.AmountUSD)
	assert.Equal(t, "completed", audit.Status)
}

func TestCommitSkipsAuditRowForDirectVotes(t *testing.T) {
	f := newLedgerFixture()

	_, err := f.svc.Commit(context.Background(), domain.VoteIntent{ContestantID: "7", Count: 1}, domain.PaymentResult{
		Method:  domain.PaymentDirect,
		Success: true,
	})
	require.NoError(t, err)
	assert.Empty(t, f.payments.saved)
}

func TestCommitRejectsUnsettledPayment(t *testing.T) {
	f := newLedgerFixture()

	_, err := f.svc.Commit(context.Background(), domain.VoteIntent{ContestantID: "7", Count: 1}, domain.PaymentResult{
		Method: domain.PaymentFlutterwave,
	})
	assert.ErrorIs(t, err, domain.ErrPaymentFailed)
	assert.Empty(t, f.votes.saved)
	assert.Empty(t, f.contestants.increments)
}

func TestCommitReconciliationOnVoteWriteFailure(t *testing.T) {
	f := newLedgerFixture()
	f.votes.err = errBackend

	_, err := f.svc.Commit(context.Background(), domain.VoteIntent{ContestantID: "7", Count: 1}, domain.PaymentResult{
		Method:        domain.PaymentFlutterwave,
		Success:       true,
		TransactionID: "tx123",
	})

	var rerr *domain.ReconciliationError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "tx123", rerr.TransactionID)
	assert.Equal(t, domain.PaymentFlutterwave, rerr.Method)
	assert.Empty(t, f.contestants.increments)
}

func TestCommitReconciliationOnTallyFailure(t *testing.T) {
	f := newLedgerFixture()
	f.contestants.incErr = errBackend

	_, err := f.svc.Commit(context.Background(), domain.VoteIntent{ContestantID: "7", Count: 2}, domain.PaymentResult{
		Method:        domain.PaymentSolana,
		Success:       true,
		TransactionID: "sig-abc",
	})

	var rerr *domain.ReconciliationError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "sig-abc", rerr.TransactionID)
	// The vote row was appended; the half-applied state is exactly what
	// reconciliation reports.
	assert.Len(t, f.votes.saved, 1)
}

func TestCommitFailedFreeVoteIsNotReconciliation(t *testing.T) {
	f := newLedgerFixture()
	f.votes.err = errBackend

	_, err := f.svc.Commit(context.Background(), domain.VoteIntent{ContestantID: "7", Count: 1}, domain.PaymentResult{
		Method:  domain.PaymentDirect,
		Success: true,
	})
	require.Error(t, err)

	// No charge settled, so the caller must never be told a payment was
	// received.
	var rerr *domain.ReconciliationError
	assert.False(t, errors.As(err, &rerr))
	assert.ErrorIs(t, err, errBackend)
}

func TestCommitSurvivesCacheFailure(t *testing.T) {
	f := newLedgerFixture()
	f.cache.addErr = errBackend

	_, err := f.svc.Commit(context.Background(), domain.VoteIntent{ContestantID: "7", Count: 1}, domain.PaymentResult{
		Method:  domain.PaymentDirect,
		Success: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(235), f.contestants.tallies["7"])
}
