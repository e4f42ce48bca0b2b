// Package flutterwave implements the card/bank/USSD checkout rail against
// the Flutterwave v3 API. Checkout creation returns a hosted payment link;
// settlement is re-verified server-side before any vote is written.
package flutterwave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/smallie/smallie/internal/config"
	"github.com/smallie/smallie/internal/core/ports"
)

const paymentOptions = "card, banktransfer, ussd"

type Client struct {
	httpClient  *http.Client
	baseURL     string
	secretKey   string
	redirectURL string
	logoURL     string
}

func NewClient(cfg config.Flutterwave) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     cfg.BaseURL,
		secretKey:   cfg.SecretKey,
		redirectURL: cfg.RedirectURL,
		logoURL:     cfg.LogoURL,
	}
}

var _ ports.CheckoutGateway = (*Client)(nil)

type createPaymentRequest struct {
	TxRef          string         `json:"tx_ref"`
	Amount         float64        `json:"amount"`
	Currency       string         `json:"currency"`
	RedirectURL    string         `json:"redirect_url"`
	PaymentOptions string         `json:"payment_options"`
	Customer       customer       `json:"customer"`
	Customizations customizations `json:"customizations"`
}

type customer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type customizations struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}

type createPaymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Link string `json:"link"`
	} `json:"data"`
}

func (c *Client) CreateCheckout(ctx context.Context, req ports.CheckoutRequest) (*ports.CheckoutSession, error) {
	body := createPaymentRequest{
		TxRef:          req.Reference,
		Amount:         req.AmountNGN,
		Currency:       "NGN",
		RedirectURL:    c.redirectURL,
		PaymentOptions: paymentOptions,
		Customer:       customer{Email: req.Email, Name: req.Name},
		Customizations: customizations{
			Title:       req.Title,
			Description: req.Description,
			Logo:        c.logoURL,
		},
	}

	var resp createPaymentResponse
	if err := c.do(ctx, http.MethodPost, "/payments", body, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "success" || resp.Data.Link == "" {
		return nil, fmt.Errorf("checkout creation rejected: %s", resp.Message)
	}

	return &ports.CheckoutSession{
		Reference: req.Reference,
		Link:      resp.Data.Link,
	}, nil
}

type verifyResponse struct {
	Status string `json:"status"`
	Data   struct {
		Status   string  `json:"status"`
		TxRef    string  `json:"tx_ref"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	} `json:"data"`
}

// VerifyTransaction confirms with Flutterwave that the transaction settled
// for the expected reference and amount. The callback's own query
// parameters are never trusted on their own.
func (c *Client) VerifyTransaction(ctx context.Context, transactionID, reference string, amountNGN float64) (bool, error) {
	var resp verifyResponse
	path := fmt.Sprintf("/transactions/%s/verify", transactionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return false, err
	}

	if resp.Status != "success" {
		return false, nil
	}
	d := resp.Data
	return d.Status == "successful" && d.TxRef == reference && d.Currency == "NGN" && d.Amount >= amountNGN, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("flutterwave request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("flutterwave returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode flutterwave response: %w", err)
	}
	return nil
}
