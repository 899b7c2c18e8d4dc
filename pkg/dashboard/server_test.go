package dashboard

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashgraph-online/token-dashboard-go/pkg/credstore"
	"github.com/hashgraph-online/token-dashboard-go/pkg/ledger"
)

func newTestServer(t *testing.T, fake *fakeLedger) (*httptest.Server, *Dashboard) {
	t.Helper()
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	d, err := New(Config{Ledger: fake, Store: credstore.NewMemoryStore(), Metrics: metrics})
	require.NoError(t, err)

	server, err := NewServer(ServerConfig{Dashboard: d, Metrics: metrics, Gatherer: registry})
	require.NoError(t, err)

	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)
	return httpServer, d
}

func doJSON(t *testing.T, method string, url string, body any) (*http.Response, actionResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	request, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	var decoded actionResponse
	raw, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return response, decoded
}

func TestNewServerRequiresDashboard(t *testing.T) {
	_, err := NewServer(ServerConfig{})
	assert.Error(t, err)
}

func TestServerHealthAndRequestID(t *testing.T) {
	server, _ := newTestServer(t, &fakeLedger{})

	response, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer response.Body.Close()

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Len(t, response.Header.Get(echo.HeaderXRequestID), 36)
}

func TestServerActionFlow(t *testing.T) {
	fake := &fakeLedger{balances: ledger.Balances{Hbar: "10 ℏ", TokenBalance: "0"}}
	server, _ := newTestServer(t, fake)

	response, body := doJSON(t, http.MethodPost, server.URL+"/api/accounts", nil)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "Please enter operator Account ID and Private Key", body.Status)

	response, body = doJSON(t, http.MethodPut, server.URL+"/api/operator", operatorRequest{OperatorID: "0.0.2", OperatorKey: "k"})
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "0.0.2", body.State.OperatorID)
	assert.True(t, body.State.CanAutoCreate)

	response, body = doJSON(t, http.MethodPost, server.URL+"/api/accounts", nil)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	require.NotNil(t, body.Account)
	assert.Equal(t, "new-private-key", body.Account.PrivateKey)
	assert.Equal(t, body.Account.AccountID, body.State.AccountID)
	assert.Equal(t, "10 ℏ", body.State.HbarBalance)

	response, body = doJSON(t, http.MethodPost, server.URL+"/api/tokens", TokenRequest{Name: "Widget", Symbol: "WDG", InitialSupply: 1000})
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "0.0.7000", body.State.TokenID)

	fake.tokenXferErr = &ledger.TokenNotAssociatedError{RecipientAccountID: "0.0.9", TokenID: "0.0.7000"}
	response, body = doJSON(t, http.MethodPost, server.URL+"/api/transfers/token", TokenTransferRequest{RecipientAccountID: "0.0.9", Amount: 10})
	assert.Equal(t, http.StatusBadGateway, response.StatusCode)
	assert.False(t, body.OK)
	assert.Contains(t, body.Status, "(0.0.9) is not associated")

	response, body = doJSON(t, http.MethodPost, server.URL+"/api/associations", AssociationRequest{AccountID: "0.0.9", PrivateKey: "k9"})
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "0.0.7000", fake.associations[0].TokenID)

	fake.tokenXferErr = nil
	response, body = doJSON(t, http.MethodPost, server.URL+"/api/transfers/token", TokenTransferRequest{RecipientAccountID: "0.0.9", Amount: 10})
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.True(t, body.OK)

	response, body = doJSON(t, http.MethodPost, server.URL+"/api/transfers/hbar", HbarTransferRequest{RecipientAccountID: "0.0.9", Amount: "2"})
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "2", fake.hbarTransfers[0].Amount)

	response, body = doJSON(t, http.MethodPost, server.URL+"/api/balances/refresh", nil)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "Balances updated successfully", body.Status)

	response, _ = doJSON(t, http.MethodDelete, server.URL+"/api/operator", nil)
	assert.Equal(t, http.StatusOK, response.StatusCode)

	response, err := http.Get(server.URL + "/api/state")
	require.NoError(t, err)
	defer response.Body.Close()
	var state State
	require.NoError(t, json.NewDecoder(response.Body).Decode(&state))
	assert.Empty(t, state.OperatorID)
	assert.Equal(t, "0.0.7000", state.TokenID)
	assert.Equal(t, "Operator credentials cleared", state.Status)
}

func TestServerAccountAndTokenUpdates(t *testing.T) {
	fake := &fakeLedger{balances: ledger.Balances{Hbar: "3 ℏ", TokenBalance: "7"}}
	server, d := newTestServer(t, fake)

	response, body := doJSON(t, http.MethodPut, server.URL+"/api/account", accountRequest{AccountID: "0.0.1001", PrivateKey: "k"})
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "3 ℏ", body.State.HbarBalance)

	response, body = doJSON(t, http.MethodPut, server.URL+"/api/token", tokenIDRequest{TokenID: "0.0.3003"})
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "7", body.State.TokenBalance)
	assert.Equal(t, "0.0.3003", d.State().TokenID)
}

func TestServerRejectsMalformedJSON(t *testing.T) {
	server, _ := newTestServer(t, &fakeLedger{})

	response, err := http.Post(server.URL+"/api/tokens", echo.MIMEApplicationJSON, strings.NewReader("{not json"))
	require.NoError(t, err)
	defer response.Body.Close()
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
}

func TestServerCompressesResponses(t *testing.T) {
	server, _ := newTestServer(t, &fakeLedger{})

	for _, encoding := range []string{"br", "gzip"} {
		request, err := http.NewRequest(http.MethodGet, server.URL+"/api/state", nil)
		require.NoError(t, err)
		request.Header.Set("Accept-Encoding", encoding)

		transport := &http.Transport{DisableCompression: true}
		response, err := (&http.Client{Transport: transport}).Do(request)
		require.NoError(t, err)

		assert.Equal(t, encoding, response.Header.Get(echo.HeaderContentEncoding))

		var reader io.Reader
		switch encoding {
		case "br":
			reader = brotli.NewReader(response.Body)
		case "gzip":
			gz, err := gzip.NewReader(response.Body)
			require.NoError(t, err)
			reader = gz
		}
		var state State
		require.NoError(t, json.NewDecoder(reader).Decode(&state))
		assert.Equal(t, "0", state.HbarBalance)
		response.Body.Close()
	}
}

func TestServerMetricsEndpoint(t *testing.T) {
	server, d := newTestServer(t, &fakeLedger{})
	d.RefreshBalances(context.Background())

	response, err := http.Get(server.URL + "/api/state")
	require.NoError(t, err)
	response.Body.Close()

	response, err = http.Get(server.URL + metricsPath)
	require.NoError(t, err)
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `tokendash_api_requests_total{method="GET",path="/api/state",status="200"} 1`)
	assert.Contains(t, string(raw), `tokendash_dashboard_actions_total{action="refresh_balances",outcome="invalid"} 1`)
}

func TestServerRejectsInvalidTransferInput(t *testing.T) {
	fake := &fakeLedger{}
	server, d := newTestServer(t, fake)
	d.SetAccount(context.Background(), "0.0.1001", "account-key")

	fake.hbarErr = &ledger.ValidationError{Field: "recipient account ID", Tag: "account_id", Message: "recipient account ID: invalid"}
	response, body := doJSON(t, http.MethodPost, server.URL+"/api/transfers/hbar", HbarTransferRequest{RecipientAccountID: "not-an-account", Amount: "1"})
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, OutcomeInvalid, body.Outcome)
	assert.Contains(t, body.Status, "recipient account ID")

	fake.hbarErr = &ledger.ValidationError{Field: "amount", Tag: "gt", Message: "amount must be positive"}
	response, body = doJSON(t, http.MethodPost, server.URL+"/api/transfers/hbar", HbarTransferRequest{RecipientAccountID: "0.0.9", Amount: "-5"})
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, OutcomeInvalid, body.Outcome)

	fake.hbarErr = errors.New("node unavailable")
	response, body = doJSON(t, http.MethodPost, server.URL+"/api/transfers/hbar", HbarTransferRequest{RecipientAccountID: "0.0.9", Amount: "1"})
	assert.Equal(t, http.StatusBadGateway, response.StatusCode)
	assert.Equal(t, OutcomeFailed, body.Outcome)
}
