package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	backend "github.com/redis/go-redis/v9"

	"github.com/smallie/smallie/internal/adapters/cache/redis"
	"github.com/smallie/smallie/internal/adapters/handler/http"
	"github.com/smallie/smallie/internal/adapters/oauth/google"
	"github.com/smallie/smallie/internal/adapters/payment/flutterwave"
	"github.com/smallie/smallie/internal/adapters/payment/solana"
	"github.com/smallie/smallie/internal/adapters/repository/postgres"
	"github.com/smallie/smallie/internal/config"
	"github.com/smallie/smallie/internal/core/ports"
	"github.com/smallie/smallie/internal/core/schedule"
	"github.com/smallie/smallie/internal/core/services"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Postgres.ConnString())
	if err != nil {
		log.Error("open postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Error("ping postgres", "error", err)
		os.Exit(1)
	}

	redisClient := backend.NewClient(&backend.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	contestantRepo := postgres.NewContestantRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	userRepo := postgres.NewUserRepository(db)
	authRepo := postgres.NewAuthRepository(db)

	tallyCache := redis.NewTallyCache(redisClient)
	intentStore := redis.NewIntentStore(redisClient)

	window := schedule.Default()
	dir := services.NewDirectory()

	contestantService := services.NewContestantService(contestantRepo, tallyCache, dir, cfg.Pricing, log)
	voteService := services.NewVoteService(dir, window, cfg.Pricing)
	ledgerService := services.NewLedgerService(voteRepo, paymentRepo, contestantRepo, tallyCache, dir, cfg.Pricing, log)
	taskService := services.NewTaskService(taskRepo, window, log)
	sessionService := services.NewSessionService(userRepo, authRepo, google.NewVerifier(), cfg.JWTSecret, cfg.GoogleClientID, log)

	gateway := flutterwave.NewClient(cfg.Flutterwave)
	chain := solana.NewClient(cfg.Solana.RPCURL)
	paymentService := services.NewPaymentService(
		ledgerService, gateway, intentStore, walletProvider(cfg, log), chain, cfg, log,
	)

	// Warm the contestant directory so intents can be validated before
	// the first roster request arrives.
	if _, err := contestantService.List(context.Background()); err != nil {
		log.Warn("initial roster load failed", "error", err)
	}

	handler := http.NewHandler(
		http.NewSessionHandler(sessionService, cfg.RedirectURL, cfg.CookieDomain, stdhttp.SameSiteLaxMode, log),
		http.NewVoteHandler(voteService, paymentService),
		http.NewPaymentHandler(voteService, paymentService),
		http.NewTaskHandler(taskService, window),
		http.NewContestantHandler(contestantService),
	)

	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Error("serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
		os.Exit(1)
	}
}

func walletProvider(cfg *config.Config, log *slog.Logger) ports.WalletProvider {
	if cfg.Solana.WalletSecret == "" {
		return solana.NewProvider(nil)
	}
	wallet, err := solana.WalletFromSecret(cfg.Solana.WalletSecret)
	if err != nil {
		log.Warn("wallet secret rejected, rail B disabled", "error", err)
		return solana.NewProvider(nil)
	}
	return solana.NewProvider(wallet)
}
