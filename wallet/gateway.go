// Package wallet gives uniform access to exactly one of two wallet
// capability providers: an injected wallet reachable over a configured
// RPC endpoint, or a remote-pairing provider constructed from a project
// key. The injected provider wins when both are configured.
package wallet

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tanalabs/tanacoin-client/internal/config"
)

// Link is the client-side record of a connected chain account. Balance is
// the human-readable ether string, not wei.
type Link struct {
	Address   string
	Balance   string
	NetworkID int64
	ChainID   int64
}

// DialFunc connects to a provider endpoint. Injectable for tests.
type DialFunc func(ctx context.Context, url string) (Provider, error)

// Gateway selects and caches a wallet provider.
type Gateway struct {
	cfg    config.WalletConfig
	logger zerolog.Logger
	dial   DialFunc

	mu       sync.Mutex
	provider Provider
}

// GatewayOption modifies a Gateway.
type GatewayOption func(*Gateway)

func WithDialFunc(dial DialFunc) GatewayOption {
	return func(g *Gateway) { g.dial = dial }
}

func WithLogger(logger zerolog.Logger) GatewayOption {
	return func(g *Gateway) { g.logger = logger }
}

func NewGateway(cfg config.WalletConfig, options ...GatewayOption) *Gateway {
	g := &Gateway{
		cfg:    cfg,
		logger: zerolog.Nop(),
		dial: func(ctx context.Context, url string) (Provider, error) {
			return Dial(ctx, url)
		},
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

// connect returns the active provider, dialing one on first use. The
// injected endpoint is preferred; the remote-pairing endpoint is built
// from the configured project key; neither configured means
// ErrNoWalletAvailable.
func (g *Gateway) connect(ctx context.Context) (Provider, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.provider != nil {
		return g.provider, nil
	}

	var url string
	switch {
	case g.cfg.GetEthRPCURL() != "":
		url = g.cfg.GetEthRPCURL()
		g.logger.Debug().Str("endpoint", url).Msg("using injected wallet provider")
	case g.cfg.GetInfuraAPIKey() != "":
		url = fmt.Sprintf("https://mainnet.infura.io/v3/%s", g.cfg.GetInfuraAPIKey())
		g.logger.Debug().Msg("using remote-pairing wallet provider")
	default:
		return nil, errors.Wrap(ErrNoWalletAvailable, "[Gateway.connect]")
	}

	provider, err := g.dial(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "[Gateway.connect] dial")
	}
	g.provider = provider
	return provider, nil
}

// Snapshot connects to the provider and gathers the full wallet link:
// first account, formatted balance, network and chain ids. Only the
// first account is ever used.
func (g *Gateway) Snapshot(ctx context.Context) (*Link, error) {
	provider, err := g.connect(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := provider.RequestAccounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[Gateway.Snapshot] request accounts")
	}
	if len(accounts) == 0 {
		return nil, errors.Wrap(ErrNoAccounts, "[Gateway.Snapshot]")
	}
	address := accounts[0]

	balance, err := provider.BalanceOf(ctx, address)
	if err != nil {
		return nil, errors.Wrap(err, "[Gateway.Snapshot] balance")
	}
	networkID, err := provider.NetworkID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[Gateway.Snapshot] network id")
	}
	chainID, err := provider.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[Gateway.Snapshot] chain id")
	}

	return &Link{
		Address:   address,
		Balance:   FormatEther(balance),
		NetworkID: networkID,
		ChainID:   chainID,
	}, nil
}

// Send transfers valueWei from the wallet's first account to the given
// address and returns the transaction hash.
func (g *Gateway) Send(ctx context.Context, to string, valueWei *big.Int) (string, error) {
	provider, err := g.connect(ctx)
	if err != nil {
		return "", err
	}

	accounts, err := provider.RequestAccounts(ctx)
	if err != nil {
		return "", errors.Wrap(err, "[Gateway.Send] request accounts")
	}
	if len(accounts) == 0 {
		return "", errors.Wrap(ErrNoAccounts, "[Gateway.Send]")
	}

	hash, err := provider.SendTransaction(ctx, Transaction{
		From:     accounts[0],
		To:       to,
		ValueWei: valueWei,
	})
	if err != nil {
		return "", err
	}
	g.logger.Info().Str("tx_hash", hash).Str("to", to).Msg("transaction submitted")
	return hash, nil
}

// Disconnect drops the active provider session, if any.
func (g *Gateway) Disconnect() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.provider == nil {
		return nil
	}
	err := g.provider.Disconnect()
	g.provider = nil
	return err
}
