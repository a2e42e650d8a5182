package walletfakes

import (
	"context"
	"math/big"

	"github.com/tanalabs/tanacoin-client/wallet"
)

var _ wallet.Provider = (*FakeProvider)(nil)

// FakeProvider is a scriptable wallet.Provider for tests.
type FakeProvider struct {
	Accounts    []string
	AccountsErr error

	Balances   map[string]*big.Int
	BalanceErr error

	Network    int64
	Chain      int64
	NetworkErr error
	ChainErr   error

	TxHash  string
	SendErr error
	SentTxs []wallet.Transaction

	Disconnected  bool
	DisconnectErr error
}

func (fp *FakeProvider) RequestAccounts(context.Context) ([]string, error) {
	if fp.AccountsErr != nil {
		return nil, fp.AccountsErr
	}
	return fp.Accounts, nil
}

func (fp *FakeProvider) BalanceOf(_ context.Context, address string) (*big.Int, error) {
	if fp.BalanceErr != nil {
		return nil, fp.BalanceErr
	}
	if balance, ok := fp.Balances[address]; ok {
		return balance, nil
	}
	return big.NewInt(0), nil
}

func (fp *FakeProvider) NetworkID(context.Context) (int64, error) {
	return fp.Network, fp.NetworkErr
}

func (fp *FakeProvider) ChainID(context.Context) (int64, error) {
	return fp.Chain, fp.ChainErr
}

func (fp *FakeProvider) SendTransaction(_ context.Context, txn wallet.Transaction) (string, error) {
	if fp.SendErr != nil {
		return "", fp.SendErr
	}
	fp.SentTxs = append(fp.SentTxs, txn)
	return fp.TxHash, nil
}

func (fp *FakeProvider) Disconnect() error {
	fp.Disconnected = true
	return fp.DisconnectErr
}
