package solana

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rpcServer(t *testing.T, handler func(method string, params []json.RawMessage) any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      1,
			"result":  handler(req.Method, req.Params),
		})
	}))
}

func TestRecentAnchor(t *testing.T) {
	server := rpcServer(t, func(method string, _ []json.RawMessage) any {
		require.Equal(t, "getLatestBlockhash", method)
		return map[string]any{"value": map[string]string{"blockhash": "9sHcv6xwn9YkB8nxTUGKDwPwNnmqVp5oAXxU8Fdkm4J6"}}
	})
	defer server.Close()

	hash, err := NewClient(server.URL).RecentAnchor(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "9sHcv6xwn9YkB8nxTUGKDwPwNnmqVp5oAXxU8Fdkm4J6", hash)
}

func TestSubmitSendsBase64(t *testing.T) {
	server := rpcServer(t, func(method string, params []json.RawMessage) any {
		require.Equal(t, "sendTransaction", method)
		require.Len(t, params, 2)

		var opts map[string]string
		require.NoError(t, json.Unmarshal(params[1], &opts))
		assert.Equal(t, "base64", opts["encoding"])
		return "sig123"
	})
	defer server.Close()

	sig, err := NewClient(server.URL).Submit(context.Background(), []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "sig123", sig)
}

func TestAwaitConfirmation(t *testing.T) {
	var calls atomic.Int32
	server := rpcServer(t, func(method string, _ []json.RawMessage) any {
		require.Equal(t, "getSignatureStatuses", method)
		status := "processed"
		if calls.Add(1) >= 3 {
			status = "confirmed"
		}
		return map[string]any{"value": []any{map[string]any{"confirmationStatus": status, "err": nil}}}
	})
	defer server.Close()

	client := NewClient(server.URL, WithConfirmationPolicy(time.Millisecond, time.Second))
	require.NoError(t, client.AwaitConfirmation(context.Background(), "sig123"))
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestAwaitConfirmationTimesOut(t *testing.T) {
	server := rpcServer(t, func(string, []json.RawMessage) any {
		return map[string]any{"value": []any{nil}}
	})
	defer server.Close()

	client := NewClient(server.URL, WithConfirmationPolicy(time.Millisecond, 20*time.Millisecond))
	err := client.AwaitConfirmation(context.Background(), "sig123")
	assert.Error(t, err, "an unconfirmed transaction must not settle")
}

func TestRPCErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      1,
			"error":   map[string]any{"code": -32002, "message": "Blockhash not found"},
		})
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Submit(context.Background(), []byte{1})
	assert.ErrorContains(t, err, "Blockhash not found")
}
