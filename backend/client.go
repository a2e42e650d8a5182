// Package backend is the typed HTTP client for the Tanacoin backend API.
// All business logic (balances, transfers, pricing, persistence,
// authentication) lives behind these endpoints; the client only shapes
// requests and decodes responses. No call is ever retried automatically.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const defaultTimeout = 30 * time.Second

// Client talks to the backend at a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// ClientOption modifies a Client.
type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// New creates a backend client for the given base URL.
func New(baseURL string, options ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[backend.New] base URL is required")
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, identifier, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/login", loginRequest{
		Identifier: identifier,
		Password:   password,
	}, &resp)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Login]")
	}
	return &resp, nil
}

// ConnectWallet exchanges a connected wallet for a bearer token.
func (c *Client) ConnectWallet(ctx context.Context, address string, chainID, networkID int64) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/connect_wallet", connectWalletRequest{
		WalletAddress: address,
		ChainID:       chainID,
		NetworkID:     networkID,
	}, &resp)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.ConnectWallet]")
	}
	return &resp, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, registration Registration) (*SignupResponse, error) {
	var resp SignupResponse
	if err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/signup", registration, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.Signup]")
	}
	return &resp, nil
}

// DashboardData fetches the profile and wallet rows for the dashboard.
// Requires a credential.
func (c *Client) DashboardData(ctx context.Context, credential string) (*Dashboard, error) {
	httpClient, err := c.bearerClient(ctx, credential)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.DashboardData]")
	}
	var resp Dashboard
	if err := c.doJSON(ctx, httpClient, http.MethodGet, "/dashboard/data", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.DashboardData]")
	}
	return &resp, nil
}

// Transfer moves Tanacoin to another TNC wallet. Returns the backend's
// confirmation message.
func (c *Client) Transfer(ctx context.Context, credential, recipientTncWalletID string, amount float64) (string, error) {
	return c.dashboardAction(ctx, credential, dashboardActionRequest{
		Action:               "transfer",
		RecipientTncWalletID: recipientTncWalletID,
		Amount:               amount,
	}, "[Client.Transfer]")
}

// AddWallet associates a chain wallet address with the authenticated
// account.
func (c *Client) AddWallet(ctx context.Context, credential, address string, userID int64) (string, error) {
	return c.dashboardAction(ctx, credential, dashboardActionRequest{
		Action:        "add_wallet",
		WalletAddress: address,
		UserID:        userID,
	}, "[Client.AddWallet]")
}

func (c *Client) dashboardAction(ctx context.Context, credential string, request dashboardActionRequest, wrap string) (string, error) {
	httpClient, err := c.bearerClient(ctx, credential)
	if err != nil {
		return "", errors.Wrap(err, wrap)
	}
	var resp dashboardActionResponse
	if err := c.doJSON(ctx, httpClient, http.MethodPost, "/dashboard", request, &resp); err != nil {
		return "", errors.Wrap(err, wrap)
	}
	if resp.Err != "" {
		return "", errors.Wrap(newError(http.StatusOK, resp.Err), wrap)
	}
	return resp.Message, nil
}

// TanacoinPrice fetches the conversion rates per payment method.
func (c *Client) TanacoinPrice(ctx context.Context) (*Price, error) {
	var resp Price
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, "/get_tanacoin_price", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.TanacoinPrice]")
	}
	return &resp, nil
}

// TokenSupply fetches the total Tanacoin supply.
func (c *Client) TokenSupply(ctx context.Context) (string, error) {
	var resp tokenSupplyResponse
	if err := c.doJSON(ctx, c.httpClient, http.MethodGet, "/token-supply", nil, &resp); err != nil {
		return "", errors.Wrap(err, "[Client.TokenSupply]")
	}
	return resp.TotalSupply, nil
}

// CheckWalletRegistration reports whether a wallet address already has an
// account.
func (c *Client) CheckWalletRegistration(ctx context.Context, address string) (bool, error) {
	var resp walletRegistrationResponse
	err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/check_wallet_registration", walletAddressRequest{WalletAddress: address}, &resp)
	if err != nil {
		return false, errors.Wrap(err, "[Client.CheckWalletRegistration]")
	}
	return resp.IsRegistered, nil
}

// RegisterWalletUser creates an account keyed to a wallet address.
func (c *Client) RegisterWalletUser(ctx context.Context, address string) error {
	return c.walletUserCall(ctx, "/register_wallet_user", address, "[Client.RegisterWalletUser]")
}

// LoginWalletUser logs in an account keyed to a wallet address.
func (c *Client) LoginWalletUser(ctx context.Context, address string) error {
	return c.walletUserCall(ctx, "/login_wallet_user", address, "[Client.LoginWalletUser]")
}

func (c *Client) walletUserCall(ctx context.Context, path, address, wrap string) error {
	var resp walletUserResponse
	err := c.doJSON(ctx, c.httpClient, http.MethodPost, path, walletAddressRequest{WalletAddress: address}, &resp)
	if err != nil {
		return errors.Wrap(err, wrap)
	}
	if !resp.Success {
		return errors.Wrap(newError(http.StatusOK, resp.Message), wrap)
	}
	return nil
}

// StoreTransaction records a completed on-chain purchase with the
// backend.
func (c *Client) StoreTransaction(ctx context.Context, txHash, address string, amount float64) error {
	err := c.doJSON(ctx, c.httpClient, http.MethodPost, "/store_transaction", storeTransactionRequest{
		TransactionHash: txHash,
		WalletAddress:   address,
		Amount:          amount,
	}, nil)
	return errors.Wrap(err, "[Client.StoreTransaction]")
}

// bearerClient wraps the base transport with an Authorization header. An
// empty credential is a client-side precondition failure; the request is
// never sent speculatively.
func (c *Client) bearerClient(ctx context.Context, credential string) (*http.Client, error) {
	if credential == "" {
		return nil, errors.New("credential is required")
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	source := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: credential,
		TokenType:   "Bearer",
	})
	return oauth2.NewClient(ctx, source), nil
}

// doJSON issues one request and decodes the response into out (when out
// is non-nil). Transport failures wrap ErrNetwork; non-2xx responses
// become *Error with the backend's message.
func (c *Client) doJSON(ctx context.Context, httpClient *http.Client, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-Id", requestID)

	started := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return errors.Wrapf(ErrNetwork, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// decodeError pulls the backend's message out of an error body. The
// backend is inconsistent about the field name ("message" on auth
// endpoints, "error" on dashboard actions), so both are accepted.
func decodeError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	message := body.Message
	if message == "" {
		message = body.Err
	}
	return newError(resp.StatusCode, message)
}
