// Package session holds the client's authentication core: a controller
// owning the canonical Session and WalletLink state, driving credential
// login, wallet connection and linking, logout, and restoration at
// startup. The view layer consumes controller state and actions only; it
// never talks to the store, the wallet gateway, or the backend directly.
package session

import (
	"context"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tanalabs/tanacoin-client/backend"
	"github.com/tanalabs/tanacoin-client/store"
	"github.com/tanalabs/tanacoin-client/token"
	"github.com/tanalabs/tanacoin-client/wallet"
)

// Backend is the slice of the backend API the controller drives.
type Backend interface {
	Login(ctx context.Context, identifier, password string) (*backend.AuthResponse, error)
	ConnectWallet(ctx context.Context, address string, chainID, networkID int64) (*backend.AuthResponse, error)
	Signup(ctx context.Context, registration backend.Registration) (*backend.SignupResponse, error)
	DashboardData(ctx context.Context, credential string) (*backend.Dashboard, error)
	Transfer(ctx context.Context, credential, recipientTncWalletID string, amount float64) (string, error)
	AddWallet(ctx context.Context, credential, address string, userID int64) (string, error)
	TanacoinPrice(ctx context.Context) (*backend.Price, error)
	CheckWalletRegistration(ctx context.Context, address string) (bool, error)
	RegisterWalletUser(ctx context.Context, address string) error
	LoginWalletUser(ctx context.Context, address string) error
	StoreTransaction(ctx context.Context, txHash, address string, amount float64) error
}

// WalletGateway is the wallet capability the controller drives.
type WalletGateway interface {
	Snapshot(ctx context.Context) (*wallet.Link, error)
	Send(ctx context.Context, to string, valueWei *big.Int) (string, error)
	Disconnect() error
}

// Deps holds all controller dependencies.
type Deps struct {
	Store   store.Store
	Backend Backend
	Wallet  WalletGateway
}

// Controller owns the in-memory Session and WalletLink and is the only
// writer to the store. Transition methods are serialized by a mutex; the
// view layer should still disable a triggering control while its request
// is in flight.
type Controller struct {
	deps     Deps
	receiver string
	logger   zerolog.Logger
	nowTime  func() time.Time

	mu      sync.Mutex
	session *Session
	wallet  *wallet.Link
}

// ControllerOption defines a function type to modify the Controller.
type ControllerOption func(*Controller)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) ControllerOption {
	return func(c *Controller) { c.nowTime = nowFunc }
}

func WithLogger(logger zerolog.Logger) ControllerOption {
	return func(c *Controller) { c.logger = logger }
}

// WithReceiverAddress sets the platform wallet that receives purchase
// payments.
func WithReceiverAddress(address string) ControllerOption {
	return func(c *Controller) { c.receiver = address }
}

// NewController initializes a Controller with required dependencies.
func NewController(deps Deps, options ...ControllerOption) (*Controller, error) {
	if deps.Store == nil {
		return nil, errors.New("[NewController] Store is required")
	}
	if deps.Backend == nil {
		return nil, errors.New("[NewController] Backend is required")
	}
	if deps.Wallet == nil {
		return nil, errors.New("[NewController] Wallet is required")
	}

	controller := &Controller{
		deps:    deps,
		logger:  zerolog.Nop(),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(controller)
	}
	return controller, nil
}

// Restore rebuilds auth state from the store at process start. An
// expired or undecodable stored credential is silently discarded: that is
// a normal "not logged in" condition, not an error. A stored wallet
// address alone still yields a wallet link.
func (c *Controller) Restore() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if credential, ok := c.deps.Store.Get(store.TokenKey); ok {
		claims, err := token.Decode(credential)
		switch {
		case err != nil:
			c.logger.Debug().Msg("discarding undecodable stored credential")
			_ = c.deps.Store.Remove(store.TokenKey)
		case claims.Expired(c.nowTime()):
			c.logger.Debug().Msg("discarding expired stored credential")
			_ = c.deps.Store.Remove(store.TokenKey)
		default:
			c.session = &Session{Credential: credential, Claims: claims}
		}
	}

	if address, ok := c.deps.Store.Get(store.WalletAddressKey); ok {
		c.wallet = &wallet.Link{Address: address}
	}
}

// State returns the published state. Expiry is re-checked on every read:
// a session is never trusted past its expiry.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropIfExpiredLocked()
	return snapshotOf(c.phaseLocked(), c.session, c.wallet)
}

// LoginWithCredentials exchanges an identifier and secret for a backend
// session. On failure the current state is untouched and the backend's
// message is surfaced; partial state is never persisted.
func (c *Controller) LoginWithCredentials(ctx context.Context, identifier, password string) (Destination, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp, err := c.deps.Backend.Login(ctx, identifier, password)
	if err != nil {
		c.logger.Warn().Str("identifier", identifier).Msg("login failed")
		return "", errors.Wrap(err, "[Controller.LoginWithCredentials]")
	}

	if err := c.commitSessionLocked(resp); err != nil {
		return "", errors.Wrap(err, "[Controller.LoginWithCredentials]")
	}
	c.logger.Info().Int64("user_id", resp.UserID).Bool("superuser", resp.IsSuperuser).Msg("logged in")
	return routeFor(resp.IsSuperuser), nil
}

// ConnectWallet gathers the wallet link through the gateway, exchanges
// it for a backend session, and only then commits both. A failure at
// either step leaves prior state unchanged — wallet data obtained before
// a backend failure is not persisted.
func (c *Controller) ConnectWallet(ctx context.Context) (Destination, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	link, err := c.deps.Wallet.Snapshot(ctx)
	if err != nil {
		return "", errors.Wrap(err, "[Controller.ConnectWallet] wallet")
	}

	resp, err := c.deps.Backend.ConnectWallet(ctx, link.Address, link.ChainID, link.NetworkID)
	if err != nil {
		c.logger.Warn().Str("address", link.Address).Msg("wallet connect rejected by backend")
		return "", errors.Wrap(err, "[Controller.ConnectWallet] backend")
	}

	if err := c.deps.Store.Set(store.WalletAddressKey, link.Address); err != nil {
		return "", errors.Wrap(err, "[Controller.ConnectWallet] persist wallet address")
	}
	if err := c.commitSessionLocked(resp); err != nil {
		return "", errors.Wrap(err, "[Controller.ConnectWallet]")
	}
	c.wallet = link
	c.logger.Info().Str("address", link.Address).Msg("wallet connected and authenticated")
	return routeFor(resp.IsSuperuser), nil
}

// LinkWallet attaches a wallet to the existing backend session. Requires
// an unexpired credential; fails with ErrNotAuthenticated otherwise.
func (c *Controller) LinkWallet(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	credential, claims, err := c.credentialLocked()
	if err != nil {
		return errors.Wrap(err, "[Controller.LinkWallet]")
	}

	link, err := c.deps.Wallet.Snapshot(ctx)
	if err != nil {
		return errors.Wrap(err, "[Controller.LinkWallet] wallet")
	}

	if _, err := c.deps.Backend.AddWallet(ctx, credential, link.Address, claims.UserID); err != nil {
		return errors.Wrap(err, "[Controller.LinkWallet] backend")
	}

	if err := c.deps.Store.Set(store.WalletAddressKey, link.Address); err != nil {
		return errors.Wrap(err, "[Controller.LinkWallet] persist wallet address")
	}
	c.wallet = link
	c.logger.Info().Str("address", link.Address).Msg("wallet linked to session")
	return nil
}

// WalletLogin is the wallet-first flow: connect a wallet, then log in to
// the account registered for its address, creating the account first if
// none exists. Reports whether the address was already registered. The
// resulting state is WalletLinked; these legacy endpoints issue no
// credential.
func (c *Controller) WalletLogin(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	link, err := c.deps.Wallet.Snapshot(ctx)
	if err != nil {
		return false, errors.Wrap(err, "[Controller.WalletLogin] wallet")
	}

	registered, err := c.deps.Backend.CheckWalletRegistration(ctx, link.Address)
	if err != nil {
		return false, errors.Wrap(err, "[Controller.WalletLogin] registration check")
	}

	if registered {
		err = c.deps.Backend.LoginWalletUser(ctx, link.Address)
	} else {
		err = c.deps.Backend.RegisterWalletUser(ctx, link.Address)
	}
	if err != nil {
		return registered, errors.Wrap(err, "[Controller.WalletLogin] backend")
	}

	if err := c.deps.Store.Set(store.WalletAddressKey, link.Address); err != nil {
		return registered, errors.Wrap(err, "[Controller.WalletLogin] persist wallet address")
	}
	c.wallet = link
	return registered, nil
}

// Logout clears all persisted and in-memory auth state and best-effort
// disconnects the wallet provider session. Idempotent: a second call is
// a no-op ending in the same terminal state.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range []string{store.TokenKey, store.WalletAddressKey, store.UserDetailsKey} {
		if err := c.deps.Store.Remove(key); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to clear stored key on logout")
		}
	}
	c.session = nil
	c.wallet = nil

	if err := c.deps.Wallet.Disconnect(); err != nil {
		c.logger.Warn().Err(err).Msg("wallet disconnect failed during logout")
	}
	c.logger.Info().Msg("logged out")
}

// Signup registers a new account and returns the created username.
func (c *Controller) Signup(ctx context.Context, registration backend.Registration) (string, error) {
	if registration.Username == "" || registration.Email == "" || registration.Password == "" {
		return "", errors.New("[Controller.Signup] username, email and password are required")
	}
	if registration.Password != registration.ConfirmPassword {
		return "", errors.New("[Controller.Signup] passwords do not match")
	}

	resp, err := c.deps.Backend.Signup(ctx, registration)
	if err != nil {
		return "", errors.Wrap(err, "[Controller.Signup]")
	}
	return resp.Username, nil
}

// Dashboard fetches the profile and wallet data for the logged-in user.
func (c *Controller) Dashboard(ctx context.Context) (*backend.Dashboard, error) {
	credential, _, err := c.holdCredential()
	if err != nil {
		return nil, errors.Wrap(err, "[Controller.Dashboard]")
	}
	dashboard, err := c.deps.Backend.DashboardData(ctx, credential)
	if err != nil {
		return nil, errors.Wrap(err, "[Controller.Dashboard]")
	}
	return dashboard, nil
}

// Transfer sends Tanacoin to another TNC wallet. Without an unexpired
// credential the request is never sent; the failure is local.
func (c *Controller) Transfer(ctx context.Context, recipientTncWalletID string, amount float64) (string, error) {
	credential, _, err := c.holdCredential()
	if err != nil {
		return "", errors.Wrap(err, "[Controller.Transfer]")
	}
	message, err := c.deps.Backend.Transfer(ctx, credential, recipientTncWalletID, amount)
	if err != nil {
		return "", errors.Wrap(err, "[Controller.Transfer]")
	}
	return message, nil
}

// PurchaseReceipt summarizes a completed token purchase.
type PurchaseReceipt struct {
	TxHash        string
	Method        string
	PaymentAmount float64
}

// Purchase buys tanacoinAmount of Tanacoin: quote the current rate,
// send the payment through the wallet to the platform receiver, then
// record the transaction with the backend. Recording is best-effort; the
// on-chain payment has already settled by then. Only ETH settles through
// the wallet gateway.
func (c *Controller) Purchase(ctx context.Context, tanacoinAmount float64, method string) (*PurchaseReceipt, error) {
	if tanacoinAmount <= 0 {
		return nil, errors.New("[Controller.Purchase] amount must be positive")
	}
	if c.receiver == "" {
		return nil, errors.New("[Controller.Purchase] no receiver address configured")
	}

	price, err := c.deps.Backend.TanacoinPrice(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[Controller.Purchase] price")
	}

	var rate float64
	switch method {
	case "ETH":
		rate = price.ETH
	case "USDT":
		// USDT settles through the token contract, which the wallet
		// gateway does not drive.
		return nil, errors.Wrap(ErrUnsupportedPayment, "[Controller.Purchase] USDT")
	default:
		return nil, errors.Errorf("[Controller.Purchase] unknown payment method %q", method)
	}
	if rate <= 0 {
		return nil, errors.Errorf("[Controller.Purchase] no %s rate available", method)
	}

	payment := tanacoinAmount * rate
	valueWei, err := wallet.ToWei(strconv.FormatFloat(payment, 'f', -1, 64))
	if err != nil {
		return nil, errors.Wrap(err, "[Controller.Purchase] payment amount")
	}

	txHash, err := c.deps.Wallet.Send(ctx, c.receiver, valueWei)
	if err != nil {
		return nil, errors.Wrap(err, "[Controller.Purchase] send")
	}

	c.mu.Lock()
	address := ""
	if c.wallet != nil {
		address = c.wallet.Address
	}
	c.mu.Unlock()

	if err := c.deps.Backend.StoreTransaction(ctx, txHash, address, tanacoinAmount); err != nil {
		c.logger.Warn().Err(err).Str("tx_hash", txHash).Msg("failed to record purchase with backend")
	}

	return &PurchaseReceipt{TxHash: txHash, Method: method, PaymentAmount: payment}, nil
}

// holdCredential returns the current unexpired credential and claims, or
// ErrNotAuthenticated.
func (c *Controller) holdCredential() (string, *token.Claims, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.credentialLocked()
}

func (c *Controller) credentialLocked() (string, *token.Claims, error) {
	c.dropIfExpiredLocked()
	if c.session == nil {
		return "", nil, ErrNotAuthenticated
	}
	return c.session.Credential, c.session.Claims, nil
}

// dropIfExpiredLocked enforces the expiry invariant on read paths: an
// expired session is removed from memory and from the store before it
// can be trusted.
func (c *Controller) dropIfExpiredLocked() {
	if c.session == nil || !c.session.Claims.Expired(c.nowTime()) {
		return
	}
	c.logger.Debug().Msg("session expired, dropping")
	c.session = nil
	_ = c.deps.Store.Remove(store.TokenKey)
}

// commitSessionLocked persists the credential and installs the session.
func (c *Controller) commitSessionLocked(resp *backend.AuthResponse) error {
	if err := c.deps.Store.Set(store.TokenKey, resp.Token); err != nil {
		return errors.Wrap(err, "persist credential")
	}
	c.session = &Session{
		Credential: resp.Token,
		Claims:     token.FromLogin(resp.Exp, resp.UserID, resp.IsSuperuser),
	}
	return nil
}

func (c *Controller) phaseLocked() Phase {
	switch {
	case c.session != nil && c.wallet != nil:
		return CredentialAndWalletAuthenticated
	case c.session != nil:
		return CredentialAuthenticated
	case c.wallet != nil:
		return WalletLinked
	}
	return Anonymous
}
