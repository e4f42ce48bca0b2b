package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallie/smallie/internal/core/domain"
)

func TestWalletPaymentFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := postJSON(t, app, "/api/payments/wallet", map[string]any{
		"contestant_id": "7",
		"count":         1,
		"email":         "a@x.com",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var record domain.VoteRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
	assert.Equal(t, domain.PaymentSolana, record.PaymentMethod)
	assert.Equal(t, "sig-integration", record.TransactionID)

	assert.Equal(t, int64(235), app.contestantVotes(t, "7"))

	var audits int
	err := app.DB.QueryRow("SELECT COUNT(*) FROM payments WHERE method = 'solana'").Scan(&audits)
	require.NoError(t, err)
	assert.Equal(t, 1, audits)
}

func TestWalletPaymentRejectsEliminatedContestant(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := postJSON(t, app, "/api/payments/wallet", map[string]any{"contestant_id": "8"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, int64(156), app.contestantVotes(t, "8"))
}
