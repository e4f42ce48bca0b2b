package services

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/smallie/smallie/internal/core/domain"
	"github.com/smallie/smallie/internal/core/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeVoteRepo struct {
	saved []*domain.VoteRecord
	err   error
}

func (f *fakeVoteRepo) SaveVote(_ context.Context, vote *domain.VoteRecord) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, vote)
	return nil
}

type fakePaymentRepo struct {
	saved []*domain.Payment
	err   error
}

func (f *fakePaymentRepo) SavePayment(_ context.Context, payment *domain.Payment) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, payment)
	return nil
}

type fakeContestantRepo struct {
	tallies    map[string]int64
	increments []int
	incErr     error
	list       []*domain.Contestant
	listErr    error
}

func newFakeContestantRepo() *fakeContestantRepo {
	return &fakeContestantRepo{tallies: map[string]int64{}}
}

func (f *fakeContestantRepo) GetByID(context.Context, string) (*domain.Contestant, error) {
	return nil, domain.ErrContestantNotFound
}

func (f *fakeContestantRepo) List(context.Context) ([]*domain.Contestant, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeContestantRepo) IncrementVotes(_ context.Context, id string, delta int) (int64, error) {
	if f.incErr != nil {
		return 0, f.incErr
	}
	f.tallies[id] += int64(delta)
	f.increments = append(f.increments, delta)
	return f.tallies[id], nil
}

type fakeTallyCache struct {
	counts map[string]int64
	addErr error
	setErr error
}

func newFakeTallyCache() *fakeTallyCache {
	return &fakeTallyCache{counts: map[string]int64{}}
}

func (f *fakeTallyCache) Add(_ context.Context, id string, delta int64) (int64, error) {
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.counts[id] += delta
	return f.counts[id], nil
}

func (f *fakeTallyCache) Set(_ context.Context, id string, votes int64) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.counts[id] = votes
	return nil
}

func (f *fakeTallyCache) Get(_ context.Context, id string) (int64, bool, error) {
	v, ok := f.counts[id]
	return v, ok, nil
}

type fakeLedger struct {
	intents []domain.VoteIntent
	results []domain.PaymentResult
	err     error
}

func (f *fakeLedger) Commit(_ context.Context, intent domain.VoteIntent, result domain.PaymentResult) (*domain.VoteRecord, error) {
	f.intents = append(f.intents, intent)
	f.results = append(f.results, result)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.VoteRecord{
		ContestantID:  intent.ContestantID,
		Count:         intent.Count,
		PaymentMethod: result.Method,
		TransactionID: result.TransactionID,
	}, nil
}

type fakeGateway struct {
	session    *ports.CheckoutSession
	createErr  error
	verifyOK   bool
	verifyErr  error
	verifyArgs []string
}

func (f *fakeGateway) CreateCheckout(_ context.Context, req ports.CheckoutRequest) (*ports.CheckoutSession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.session != nil {
		return f.session, nil
	}
	return &ports.CheckoutSession{Reference: req.Reference, Link: "https://checkout.example/pay"}, nil
}

func (f *fakeGateway) VerifyTransaction(_ context.Context, transactionID, reference string, _ float64) (bool, error) {
	f.verifyArgs = append(f.verifyArgs, transactionID, reference)
	return f.verifyOK, f.verifyErr
}

type fakeIntentStore struct {
	parked map[string]domain.VoteIntent
	putErr error
}

func newFakeIntentStore() *fakeIntentStore {
	return &fakeIntentStore{parked: map[string]domain.VoteIntent{}}
}

func (f *fakeIntentStore) Put(_ context.Context, reference string, intent domain.VoteIntent) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.parked[reference] = intent
	return nil
}

func (f *fakeIntentStore) Take(_ context.Context, reference string) (*domain.VoteIntent, error) {
	intent, ok := f.parked[reference]
	if !ok {
		return nil, domain.ErrCheckoutNotFound
	}
	delete(f.parked, reference)
	return &intent, nil
}

type fakeWallet struct {
	pubkey     string
	connectErr error
	signErr    error
	orders     []ports.TransferOrder
}

func (f *fakeWallet) Connect(context.Context) (string, error) {
	if f.connectErr != nil {
		return "", f.connectErr
	}
	return f.pubkey, nil
}

func (f *fakeWallet) SignTransfer(_ context.Context, order ports.TransferOrder) (ports.SignedTransaction, error) {
	if f.signErr != nil {
		return nil, f.signErr
	}
	f.orders = append(f.orders, order)
	return ports.SignedTransaction("signed"), nil
}

type fakeWalletProvider struct {
	wallet ports.Wallet
}

func (f *fakeWalletProvider) Wallet() (ports.Wallet, bool) {
	if f.wallet == nil {
		return nil, false
	}
	return f.wallet, true
}

type fakeChain struct {
	blockhash  string
	anchorErr  error
	signature  string
	submitErr  error
	confirmErr error
	calls      int
}

func (f *fakeChain) RecentAnchor(context.Context) (string, error) {
	f.calls++
	if f.anchorErr != nil {
		return "", f.anchorErr
	}
	return f.blockhash, nil
}

func (f *fakeChain) Submit(context.Context, ports.SignedTransaction) (string, error) {
	f.calls++
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return f.signature, nil
}

func (f *fakeChain) AwaitConfirmation(context.Context, string) error {
	f.calls++
	return f.confirmErr
}

type fakeTaskRepo struct {
	tasks map[int]*domain.TaskDescriptor
	err   error
}

func (f *fakeTaskRepo) GetByDay(_ context.Context, day int) (*domain.TaskDescriptor, error) {
	if f.err != nil {
		return nil, f.err
	}
	task, ok := f.tasks[day]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (f *fakeTaskRepo) Save(_ context.Context, task *domain.TaskDescriptor) error {
	if f.tasks == nil {
		f.tasks = map[int]*domain.TaskDescriptor{}
	}
	f.tasks[task.Day] = task
	return nil
}

var errBackend = errors.New("backend unavailable")
