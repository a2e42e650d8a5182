package wallet

import (
	"context"
	stderrors "errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

// Transaction is a native-currency transfer request. Value is in wei.
type Transaction struct {
	From     string
	To       string
	ValueWei *big.Int
}

// Provider is a wallet capability: account discovery, balance and network
// queries, and transaction submission. RequestAccounts may suspend until
// a human answers a permission prompt outside this process; any timeout
// is the provider's, not ours.
type Provider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	BalanceOf(ctx context.Context, address string) (*big.Int, error)
	NetworkID(ctx context.Context) (int64, error)
	ChainID(ctx context.Context) (int64, error)
	SendTransaction(ctx context.Context, txn Transaction) (string, error)
	Disconnect() error
}

// EIP-1193 provider error codes.
const (
	codeUserRejected   = 4001
	codeMethodNotFound = -32601
)

var _ Provider = (*RPCProvider)(nil)

// RPCProvider speaks Ethereum JSON-RPC to a wallet endpoint. It backs
// both provider flavours: the injected (in-page / local node) wallet and
// the remote-pairing one, whose endpoint is derived from a project key.
type RPCProvider struct {
	client *rpc.Client
}

// Dial connects to a wallet provider endpoint.
func Dial(ctx context.Context, url string) (*RPCProvider, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "[wallet.Dial] rpc.DialContext")
	}
	return &RPCProvider{client: client}, nil
}

// RequestAccounts asks the provider for permission to read accounts.
// Providers that do not implement eth_requestAccounts (remote endpoints
// already paired out of band) fall back to eth_accounts.
func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []common.Address
	err := p.client.CallContext(ctx, &accounts, "eth_requestAccounts")
	if rpcErrorCode(err) == codeMethodNotFound {
		err = p.client.CallContext(ctx, &accounts, "eth_accounts")
	}
	if err != nil {
		if rpcErrorCode(err) == codeUserRejected {
			return nil, errors.Wrap(ErrUserRejected, "[RPCProvider.RequestAccounts]")
		}
		return nil, errors.Wrap(err, "[RPCProvider.RequestAccounts]")
	}

	addresses := make([]string, 0, len(accounts))
	for _, account := range accounts {
		addresses = append(addresses, account.Hex())
	}
	return addresses, nil
}

// BalanceOf returns the latest native-currency balance in wei.
func (p *RPCProvider) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	var balance hexutil.Big
	if err := p.client.CallContext(ctx, &balance, "eth_getBalance", common.HexToAddress(address), "latest"); err != nil {
		return nil, errors.Wrap(err, "[RPCProvider.BalanceOf]")
	}
	return balance.ToInt(), nil
}

func (p *RPCProvider) NetworkID(ctx context.Context) (int64, error) {
	var version string
	if err := p.client.CallContext(ctx, &version, "net_version"); err != nil {
		return 0, errors.Wrap(err, "[RPCProvider.NetworkID]")
	}
	id, ok := new(big.Int).SetString(version, 10)
	if !ok {
		return 0, errors.Errorf("[RPCProvider.NetworkID] unparseable network id %q", version)
	}
	return id.Int64(), nil
}

func (p *RPCProvider) ChainID(ctx context.Context) (int64, error) {
	var id hexutil.Big
	if err := p.client.CallContext(ctx, &id, "eth_chainId"); err != nil {
		return 0, errors.Wrap(err, "[RPCProvider.ChainID]")
	}
	return id.ToInt().Int64(), nil
}

// SendTransaction submits a value transfer signed by the provider. A
// human refusal maps to ErrTransactionRejected, every other provider or
// network failure to ErrTransactionFailed.
func (p *RPCProvider) SendTransaction(ctx context.Context, txn Transaction) (string, error) {
	arg := map[string]any{
		"from":  common.HexToAddress(txn.From),
		"to":    common.HexToAddress(txn.To),
		"value": (*hexutil.Big)(txn.ValueWei),
	}

	var hash common.Hash
	if err := p.client.CallContext(ctx, &hash, "eth_sendTransaction", arg); err != nil {
		if rpcErrorCode(err) == codeUserRejected {
			return "", errors.Wrapf(ErrTransactionRejected, "[RPCProvider.SendTransaction] %v", err)
		}
		return "", errors.Wrapf(ErrTransactionFailed, "[RPCProvider.SendTransaction] %v", err)
	}
	return hash.Hex(), nil
}

// Disconnect closes the RPC connection.
func (p *RPCProvider) Disconnect() error {
	p.client.Close()
	return nil
}

func rpcErrorCode(err error) int {
	if err == nil {
		return 0
	}
	var rpcErr rpc.Error
	if stderrors.As(err, &rpcErr) {
		return rpcErr.ErrorCode()
	}
	return 0
}
