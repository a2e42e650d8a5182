package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/tanalabs/tanacoin-client/backend"
)

type recordedRequest struct {
	method string
	path   string
	auth   string
	body   map[string]any
}

// newTestServer records every request and replies with the canned
// status/body pairs keyed by path.
func newTestServer(t *testing.T, responses map[string]struct {
	status int
	body   string
}) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded := recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			auth:   r.Header.Get("Authorization"),
		}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&recorded.body)
		}
		requests = append(requests, recorded)

		resp, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = w.Write([]byte(resp.body))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestLogin(t *testing.T) {
	server, requests := newTestServer(t, map[string]struct {
		status int
		body   string
	}{
		"/login": {http.StatusOK, `{"token":"jwt-abc","exp":1900000000,"user_id":7,"is_superuser":true}`},
	})

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	resp, err := client.Login(context.Background(), "john", "secret")
	require.NoError(t, err)
	require.Equal(t, "jwt-abc", resp.Token)
	require.Equal(t, int64(1900000000), resp.Exp)
	require.Equal(t, int64(7), resp.UserID)
	require.True(t, resp.IsSuperuser)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	require.Equal(t, http.MethodPost, req.method)
	require.Equal(t, "john", req.body["identifier"])
	require.Equal(t, "secret", req.body["password"])
}

func TestLoginBadCredentials(t *testing.T) {
	server, _ := newTestServer(t, map[string]struct {
		status int
		body   string
	}{
		"/login": {http.StatusUnauthorized, `{"message":"bad credentials"}`},
	})

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	_, err = client.Login(context.Background(), "john", "wrong")
	require.Error(t, err)

	var backendErr *backend.Error
	require.True(t, errors.As(err, &backendErr))
	require.Equal(t, http.StatusUnauthorized, backendErr.Status)
	require.Equal(t, "bad credentials", backendErr.Message)
	require.Equal(t, "bad credentials", backend.Message(err))
}

func TestConnectWallet(t *testing.T) {
	server, requests := newTestServer(t, map[string]struct {
		status int
		body   string
	}{
		"/connect_wallet": {http.StatusOK, `{"token":"jwt-wallet","exp":1900000000,"user_id":3,"is_superuser":false}`},
	})

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	resp, err := client.ConnectWallet(context.Background(), "0xabc", 1, 1)
	require.NoError(t, err)
	require.Equal(t, "jwt-wallet", resp.Token)

	req := (*requests)[0]
	require.Equal(t, "0xabc", req.body["wallet_address"])
	require.Equal(t, float64(1), req.body["chain_id"])
	require.Equal(t, float64(1), req.body["network_id"])
}

func TestDashboardDataSendsBearer(t *testing.T) {
	server, requests := newTestServer(t, map[string]struct {
		status int
		body   string
	}{
		"/dashboard/data": {http.StatusOK, `{"user_data":[{"username":"john","email":"j@x.io","tnc_wallet_id":"tnc-1","user_id":7,"created_at":"2024-01-01"}],"wallet_data":[{"balance":"12.5","tnc_wallet_unique_id":"tnc-1","wallet_created_at":"2024-01-01","wallet_id":1}]}`},
	})

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	dashboard, err := client.DashboardData(context.Background(), "jwt-abc")
	require.NoError(t, err)
	require.Len(t, dashboard.UserData, 1)
	require.Equal(t, "john", dashboard.UserData[0].Username)
	require.Equal(t, "12.5", dashboard.WalletData[0].Balance)

	require.Equal(t, "Bearer jwt-abc", (*requests)[0].auth)
}

func TestDashboardDataRequiresCredential(t *testing.T) {
	server, requests := newTestServer(t, nil)
	client, err := backend.New(server.URL)
	require.NoError(t, err)

	_, err = client.DashboardData(context.Background(), "")
	require.Error(t, err)
	require.Empty(t, *requests, "request must not be sent without a credential")
}

func TestTransfer(t *testing.T) {
	server, requests := newTestServer(t, map[string]struct {
		status int
		body   string
	}{
		"/dashboard": {http.StatusOK, `{"message":"transfer complete"}`},
	})

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	message, err := client.Transfer(context.Background(), "jwt-abc", "tnc-recipient", 5)
	require.NoError(t, err)
	require.Equal(t, "transfer complete", message)

	req := (*requests)[0]
	require.Equal(t, "Bearer jwt-abc", req.auth)
	require.Equal(t, "transfer", req.body["action"])
	require.Equal(t, "tnc-recipient", req.body["recipient_tnc_wallet_id"])
	require.Equal(t, float64(5), req.body["amount"])
}

func TestTransferErrorField(t *testing.T) {
	server, _ := newTestServer(t, map[string]struct {
		status int
		body   string
	}{
		"/dashboard": {http.StatusOK, `{"error":"insufficient balance"}`},
	})

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	_, err = client.Transfer(context.Background(), "jwt-abc", "tnc-recipient", 5)
	require.Error(t, err)
	require.Equal(t, "insufficient balance", backend.Message(err))
}

func TestAddWallet(t *testing.T) {
	server, requests := newTestServer(t, map[string]struct {
		status int
		body   string
	}{
		"/dashboard": {http.StatusOK, `{"message":"wallet added"}`},
	})

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	message, err := client.AddWallet(context.Background(), "jwt-abc", "0xabc", 7)
	require.NoError(t, err)
	require.Equal(t, "wallet added", message)

	req := (*requests)[0]
	require.Equal(t, "add_wallet", req.body["action"])
	require.Equal(t, "0xabc", req.body["wallet_address"])
	require.Equal(t, float64(7), req.body["user_id"])
}

func TestTanacoinPriceAndSupply(t *testing.T) {
	server, _ := newTestServer(t, map[string]struct {
		status int
		body   string
	}{
		"/get_tanacoin_price": {http.StatusOK, `{"ETH":0.0005,"USDT":1.2}`},
		"/token-supply":       {http.StatusOK, `{"totalSupply":"21000000"}`},
	})

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	price, err := client.TanacoinPrice(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0.0005, price.ETH)
	require.Equal(t, 1.2, price.USDT)

	supply, err := client.TokenSupply(context.Background())
	require.NoError(t, err)
	require.Equal(t, "21000000", supply)
}

func TestWalletUserFlow(t *testing.T) {
	server, requests := newTestServer(t, map[string]struct {
		status int
		body   string
	}{
		"/check_wallet_registration": {http.StatusOK, `{"is_registered":true}`},
		"/login_wallet_user":         {http.StatusOK, `{"success":true}`},
		"/register_wallet_user":      {http.StatusOK, `{"success":false,"message":"address taken"}`},
	})

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	registered, err := client.CheckWalletRegistration(context.Background(), "0xabc")
	require.NoError(t, err)
	require.True(t, registered)

	require.NoError(t, client.LoginWalletUser(context.Background(), "0xabc"))

	err = client.RegisterWalletUser(context.Background(), "0xabc")
	require.Error(t, err)
	require.Equal(t, "address taken", backend.Message(err))

	require.Len(t, *requests, 3)
}

func TestStoreTransaction(t *testing.T) {
	server, requests := newTestServer(t, map[string]struct {
		status int
		body   string
	}{
		"/store_transaction": {http.StatusOK, `{"success":true}`},
	})

	client, err := backend.New(server.URL)
	require.NoError(t, err)

	require.NoError(t, client.StoreTransaction(context.Background(), "0xhash", "0xabc", 1.5))
	req := (*requests)[0]
	require.Equal(t, "0xhash", req.body["transaction_hash"])
	require.Equal(t, "0xabc", req.body["wallet_address"])
	require.Equal(t, 1.5, req.body["amount"])
}

func TestNetworkError(t *testing.T) {
	server, _ := newTestServer(t, nil)
	url := server.URL
	server.Close()

	client, err := backend.New(url)
	require.NoError(t, err)

	_, err = client.Login(context.Background(), "john", "secret")
	require.True(t, errors.Is(err, backend.ErrNetwork))
}
