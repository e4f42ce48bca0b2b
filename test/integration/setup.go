package integration

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/lib/pq"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/smallie/smallie/internal/adapters/cache/redis"
	handler "github.com/smallie/smallie/internal/adapters/handler/http"
	"github.com/smallie/smallie/internal/adapters/oauth/google"
	"github.com/smallie/smallie/internal/adapters/payment/flutterwave"
	"github.com/smallie/smallie/internal/adapters/payment/solana"
	repo "github.com/smallie/smallie/internal/adapters/repository/postgres"
	"github.com/smallie/smallie/internal/config"
	"github.com/smallie/smallie/internal/core/ports"
	"github.com/smallie/smallie/internal/core/schedule"
	"github.com/smallie/smallie/internal/core/services"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// checkoutStub fakes the aggregator's v3 API: checkout creation returns a
// hosted link, verification echoes the most recently created attempt.
type checkoutStub struct {
	mu           sync.Mutex
	Server       *httptest.Server
	lastRef      string
	lastAmount   float64
	VerifyStatus string
}

func newCheckoutStub() *checkoutStub {
	stub := &checkoutStub{VerifyStatus: "successful"}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /payments", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TxRef  string  `json:"tx_ref"`
			Amount float64 `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		stub.mu.Lock()
		stub.lastRef = req.TxRef
		stub.lastAmount = req.Amount
		stub.mu.Unlock()

		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data":   map[string]string{"link": "https://checkout.flutterwave.com/v3/hosted/pay/stub"},
		})
	})

	mux.HandleFunc("GET /transactions/{id}/verify", func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		defer stub.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": map[string]any{
				"status":   stub.VerifyStatus,
				"tx_ref":   stub.lastRef,
				"amount":   stub.lastAmount,
				"currency": "NGN",
			},
		})
	})

	stub.Server = httptest.NewServer(mux)
	return stub
}

// chainStub answers the three JSON-RPC methods the wallet rail uses, with
// every submitted transaction confirming immediately.
func newChainStub() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var result any
		switch req.Method {
		case "getLatestBlockhash":
			result = map[string]any{"value": map[string]string{"blockhash": "9sHcv6xwn9YkB8nxTUGKDwPwNnmqVp5oLjsF4zPPWfhh"}}
		case "sendTransaction":
			result = "sig-integration"
		case "getSignatureStatuses":
			result = map[string]any{"value": []map[string]any{{"confirmationStatus": "confirmed"}}}
		default:
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": -32601, "message": "method not found"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"result": result})
	}))
}

type TestApp struct {
	DB          *sql.DB
	Redis       *miniredis.Miniredis
	Server      *httptest.Server
	Client      *http.Client
	Checkout    *checkoutStub
	Chain       *httptest.Server
	DBContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	return setupTestAppWithVerifier(t, google.NewVerifier())
}

// setupTestAppWithVerifier lets the session tests swap the Google verifier
// for a stub credential check.
func setupTestAppWithVerifier(t *testing.T, verifier ports.TokenVerifier) *TestApp {
	t.Helper()
	ctx := context.Background()

	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	require.NoError(t, applyMigrations(db))
	seedRoster(t, db)

	mr := miniredis.RunT(t)
	redisClient := backend.NewClient(&backend.Options{Addr: mr.Addr()})

	checkout := newCheckoutStub()
	chain := newChainStub()

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		GoogleClientID: "test-client",
		GuestEmail:     "guest@smallie.com",
		Pricing: config.Pricing{
			VotePriceUSD:   0.5,
			USDToNGN:       480,
			LamportsPerNGN: 1e9 / 1000,
			PrizeShare:     0.9,
		},
		Flutterwave: config.Flutterwave{
			SecretKey:   "FLWSECK_TEST",
			BaseURL:     checkout.Server.URL,
			RedirectURL: "/api/payments/checkout/callback",
		},
		Solana: config.Solana{RPCURL: chain.URL},
	}

	wallet, recipient := testWalletAndRecipient(t)
	cfg.Solana.RecipientPubkey = recipient

	contestantRepo := repo.NewContestantRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	paymentRepo := repo.NewPaymentRepository(db)
	taskRepo := repo.NewTaskRepository(db)
	userRepo := repo.NewUserRepository(db)
	authRepo := repo.NewAuthRepository(db)

	tallyCache := redis.NewTallyCache(redisClient)
	intentStore := redis.NewIntentStore(redisClient)

	window := schedule.Default()
	dir := services.NewDirectory()
	log := discardLogger()

	contestantSvc := services.NewContestantService(contestantRepo, tallyCache, dir, cfg.Pricing, log)
	voteSvc := services.NewVoteService(dir, window, cfg.Pricing)
	ledgerSvc := services.NewLedgerService(voteRepo, paymentRepo, contestantRepo, tallyCache, dir, cfg.Pricing, log)
	taskSvc := services.NewTaskService(taskRepo, window, log)
	sessionSvc := services.NewSessionService(userRepo, authRepo, verifier, cfg.JWTSecret, cfg.GoogleClientID, log)

	gateway := flutterwave.NewClient(cfg.Flutterwave)
	chainClient := solana.NewClient(cfg.Solana.RPCURL, solana.WithConfirmationPolicy(10*time.Millisecond, 2*time.Second))
	paymentSvc := services.NewPaymentService(
		ledgerSvc, gateway, intentStore, solana.NewProvider(wallet), chainClient, cfg, log,
	)

	_, err = contestantSvc.List(ctx)
	require.NoError(t, err)

	router := handler.NewHandler(
		handler.NewSessionHandler(sessionSvc, "/", "", http.SameSiteLaxMode, log),
		handler.NewVoteHandler(voteSvc, paymentSvc),
		handler.NewPaymentHandler(voteSvc, paymentSvc),
		handler.NewTaskHandler(taskSvc, window),
		handler.NewContestantHandler(contestantSvc),
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Redis:       mr,
		Server:      server,
		Client:      server.Client(),
		Checkout:    checkout,
		Chain:       chain,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.Checkout.Server.Close()
	app.Chain.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) contestantVotes(t *testing.T, id string) int64 {
	t.Helper()
	var votes int64
	err := app.DB.QueryRow("SELECT votes FROM contestants WHERE id = $1", id).Scan(&votes)
	require.NoError(t, err)
	return votes
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testWalletAndRecipient generates an installed payer wallet plus an
// unrelated recipient address.
func testWalletAndRecipient(t *testing.T) (*solana.KeypairWallet, string) {
	t.Helper()

	_, payerPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	_, recipientPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	recipient, err := solana.NewKeypairWallet(recipientPriv).Connect(context.Background())
	require.NoError(t, err)

	return solana.NewKeypairWallet(payerPriv), recipient
}

func seedRoster(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO contestants (id, name, votes, eliminated) VALUES
			('7', 'Ibrahim Yusuf', 234, FALSE),
			('8', 'Amara Obi', 156, TRUE)`)
	require.NoError(t, err)
}
