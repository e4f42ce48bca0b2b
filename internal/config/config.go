// Package config centralizes every runtime parameter the page used to read
// from page-global values: payment keys, pricing constants, store
// credentials. Values load from the environment, with a .env file for
// development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Pricing holds the per-vote price and the fixed conversion rates every
// amount in the system derives from.
type Pricing struct {
	VotePriceUSD float64
	USDToNGN     float64
	// LamportsPerNGN sizes rail-B transfers: NGN/1000 SOL at 1e9
	// lamports per SOL, matching the page's approximate rate.
	LamportsPerNGN float64
	// PrizeShare is the fraction of gross vote revenue paid out.
	PrizeShare float64
}

func (p Pricing) TotalUSD(count int) float64 { return float64(count) * p.VotePriceUSD }
func (p Pricing) TotalNGN(count int) float64 { return p.TotalUSD(count) * p.USDToNGN }
func (p Pricing) Lamports(count int) uint64  { return uint64(p.TotalNGN(count) * p.LamportsPerNGN) }

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

func (p Postgres) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, p.DB)
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Flutterwave struct {
	PublicKey   string
	SecretKey   string
	BaseURL     string
	RedirectURL string
	LogoURL     string
}

type Solana struct {
	RPCURL          string
	RecipientPubkey string
	// WalletSecret is a base58 ed25519 key for the dev wallet. Empty
	// means no wallet is installed and rail B is refused.
	WalletSecret string
}

type Config struct {
	Addr           string
	JWTSecret      string
	GoogleClientID string
	RedirectURL    string
	CookieDomain   string
	GuestEmail     string
	Pricing        Pricing
	Postgres       Postgres
	Redis          Redis
	Flutterwave    Flutterwave
	Solana         Solana
}

// Load reads configuration from the environment. A missing .env file is
// fine; missing individual keys fall back to development defaults except
// for secrets, which stay empty and are warned about by their consumers.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:           envOr("HTTP_ADDR", "0.0.0.0:8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		RedirectURL:    envOr("AUTH_REDIRECT_URL", "/"),
		CookieDomain:   os.Getenv("COOKIE_DOMAIN"),
		GuestEmail:     envOr("GUEST_EMAIL", "guest@smallie.com"),
		Pricing: Pricing{
			VotePriceUSD:   0.5,
			USDToNGN:       480,
			LamportsPerNGN: 1e9 / 1000,
			PrizeShare:     0.9,
		},
		Postgres: Postgres{
			Host:     envOr("POSTGRES_HOST", "localhost"),
			Port:     envOr("POSTGRES_PORT", "5432"),
			User:     envOr("POSTGRES_USER", "postgres"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DB:       envOr("POSTGRES_DB", "smallie"),
		},
		Redis: Redis{
			Addr:     envOr("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Flutterwave: Flutterwave{
			PublicKey:   os.Getenv("FLUTTERWAVE_PUBLIC_KEY"),
			SecretKey:   os.Getenv("FLUTTERWAVE_SECRET_KEY"),
			BaseURL:     envOr("FLUTTERWAVE_BASE_URL", "https://api.flutterwave.com/v3"),
			RedirectURL: envOr("FLUTTERWAVE_REDIRECT_URL", "/api/payments/checkout/callback"),
			LogoURL:     envOr("FLUTTERWAVE_LOGO_URL", "/static/images/logo.png"),
		},
		Solana: Solana{
			RPCURL:          envOr("SOLANA_RPC_URL", "https://api.devnet.solana.com"),
			RecipientPubkey: os.Getenv("SOLANA_RECIPIENT_PUBKEY"),
			WalletSecret:    os.Getenv("SOLANA_WALLET_SECRET"),
		},
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
