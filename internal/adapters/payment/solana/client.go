// Package solana implements the wallet payment rail: a JSON-RPC client for
// the settlement network plus the single-transfer transaction codec.
package solana

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/smallie/smallie/internal/core/ports"
)

// Client talks to a Solana JSON-RPC endpoint.
type Client struct {
	httpClient   *http.Client
	url          string
	pollInterval time.Duration
	confirmWait  time.Duration
}

type ClientOption func(*Client)

// WithConfirmationPolicy overrides how long AwaitConfirmation polls before
// giving up.
func WithConfirmationPolicy(interval, maxWait time.Duration) ClientOption {
	return func(c *Client) {
		c.pollInterval = interval
		c.confirmWait = maxWait
	}
}

func NewClient(url string, opts ...ClientOption) *Client {
	client := &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		url:          url,
		pollInterval: 2 * time.Second,
		confirmWait:  90 * time.Second,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

var _ ports.ChainClient = (*Client)(nil)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func (c *Client) call(ctx context.Context, method string, params []any, result any) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("failed to encode rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rpc call %s failed: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcError       `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode rpc response: %w", err)
	}
	if envelope.Error != nil {
		return envelope.Error
	}

	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}

func (c *Client) RecentAnchor(ctx context.Context) (string, error) {
	var result struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}
	if err := c.call(ctx, "getLatestBlockhash", nil, &result); err != nil {
		return "", err
	}
	if result.Value.Blockhash == "" {
		return "", fmt.Errorf("empty blockhash from rpc")
	}
	return result.Value.Blockhash, nil
}

func (c *Client) Submit(ctx context.Context, tx ports.SignedTransaction) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(tx)
	var signature string
	err := c.call(ctx, "sendTransaction", []any{encoded, map[string]string{"encoding": "base64"}}, &signature)
	if err != nil {
		return "", err
	}
	return signature, nil
}

// AwaitConfirmation polls signature status until the transaction reaches
// confirmed (or finalized) commitment. The wait is bounded by the client's
// own policy on top of any caller deadline.
func (c *Client) AwaitConfirmation(ctx context.Context, signature string) error {
	ctx, cancel := context.WithTimeout(ctx, c.confirmWait)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		status, err := c.signatureStatus(ctx, signature)
		if err == nil {
			switch status {
			case "confirmed", "finalized":
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("confirmation wait for %s expired: %w", signature, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) signatureStatus(ctx context.Context, signature string) (string, error) {
	var result struct {
		Value []*struct {
			ConfirmationStatus string `json:"confirmationStatus"`
			Err                any    `json:"err"`
		} `json:"value"`
	}
	if err := c.call(ctx, "getSignatureStatuses", []any{[]string{signature}}, &result); err != nil {
		return "", err
	}
	if len(result.Value) == 0 || result.Value[0] == nil {
		return "", fmt.Errorf("signature %s not yet known", signature)
	}
	if result.Value[0].Err != nil {
		return "", fmt.Errorf("transaction %s failed on chain", signature)
	}
	return result.Value[0].ConfirmationStatus, nil
}
