package sessionfakes

import (
	"context"
	"math/big"

	"github.com/tanalabs/tanacoin-client/session"
	"github.com/tanalabs/tanacoin-client/wallet"
)

var _ session.WalletGateway = (*FakeGateway)(nil)

// FakeGateway is a scriptable session.WalletGateway for controller tests.
type FakeGateway struct {
	Link        *wallet.Link
	SnapshotErr error

	TxHash  string
	SendErr error

	DisconnectErr error

	SnapshotCalls  int
	SendCalls      int
	Disconnections int
	LastSendTo     string
	LastSendValue  *big.Int
}

func (fg *FakeGateway) Snapshot(context.Context) (*wallet.Link, error) {
	fg.SnapshotCalls++
	if fg.SnapshotErr != nil {
		return nil, fg.SnapshotErr
	}
	link := *fg.Link
	return &link, nil
}

func (fg *FakeGateway) Send(_ context.Context, to string, valueWei *big.Int) (string, error) {
	fg.SendCalls++
	fg.LastSendTo = to
	fg.LastSendValue = valueWei
	if fg.SendErr != nil {
		return "", fg.SendErr
	}
	return fg.TxHash, nil
}

func (fg *FakeGateway) Disconnect() error {
	fg.Disconnections++
	return fg.DisconnectErr
}
