package solana

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/smallie/smallie/internal/core/ports"
)

// KeypairWallet signs transfers with an in-process ed25519 key. Production
// deployments bridge to the user's own wallet; this adapter serves dev
// environments and tests.
type KeypairWallet struct {
	priv ed25519.PrivateKey
}

func NewKeypairWallet(priv ed25519.PrivateKey) *KeypairWallet {
	return &KeypairWallet{priv: priv}
}

// WalletFromSecret builds a wallet from a base58-encoded ed25519 key:
// either the 64-byte expanded key or the 32-byte seed.
func WalletFromSecret(secret string) (*KeypairWallet, error) {
	raw, err := base58Decode(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid wallet secret: %w", err)
	}
	switch len(raw) {
	case ed25519.PrivateKeySize:
		return NewKeypairWallet(ed25519.PrivateKey(raw)), nil
	case ed25519.SeedSize:
		return NewKeypairWallet(ed25519.NewKeyFromSeed(raw)), nil
	default:
		return nil, fmt.Errorf("wallet secret decodes to %d bytes, want 32 or 64", len(raw))
	}
}

var _ ports.Wallet = (*KeypairWallet)(nil)

func (w *KeypairWallet) Connect(ctx context.Context) (string, error) {
	pub, ok := w.priv.Public().(ed25519.PublicKey)
	if !ok {
		return "", fmt.Errorf("wallet key is not ed25519")
	}
	return base58Encode(pub), nil
}

func (w *KeypairWallet) SignTransfer(ctx context.Context, order ports.TransferOrder) (ports.SignedTransaction, error) {
	message, err := buildTransferMessage(order)
	if err != nil {
		return nil, err
	}

	signature := ed25519.Sign(w.priv, message)
	return assembleTransaction(signature, message), nil
}

// Provider reports whether a wallet is installed. A nil wallet is the
// not-installed state the orchestrator refuses before any chain call.
type Provider struct {
	wallet ports.Wallet
}

func NewProvider(wallet ports.Wallet) *Provider {
	return &Provider{wallet: wallet}
}

var _ ports.WalletProvider = (*Provider)(nil)

func (p *Provider) Wallet() (ports.Wallet, bool) {
	if p.wallet == nil {
		return nil, false
	}
	return p.wallet, true
}
