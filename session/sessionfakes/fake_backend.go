package sessionfakes

import (
	"context"

	"github.com/tanalabs/tanacoin-client/backend"
	"github.com/tanalabs/tanacoin-client/session"
)

var _ session.Backend = (*FakeBackend)(nil)

// FakeBackend is a scriptable session.Backend for controller tests.
type FakeBackend struct {
	LoginResp *backend.AuthResponse
	LoginErr  error

	ConnectWalletResp *backend.AuthResponse
	ConnectWalletErr  error

	SignupResp *backend.SignupResponse
	SignupErr  error

	DashboardResp *backend.Dashboard
	DashboardErr  error

	TransferMessage string
	TransferErr     error

	AddWalletMessage string
	AddWalletErr     error

	PriceResp *backend.Price
	PriceErr  error

	Registered      bool
	RegistrationErr error
	RegisterErr     error
	WalletLoginErr  error

	StoreTransactionErr error

	// Call records
	LoginCalls            int
	ConnectWalletCalls    int
	TransferCalls         int
	AddWalletCalls        int
	DashboardCalls        int
	StoredTxHashes        []string
	LastConnectAddress    string
	LastTransferRecipient string
	LastTransferAmount    float64
	LastAddWalletAddress  string
	LastAddWalletUserID   int64
	LastCredential        string
}

func (fb *FakeBackend) Login(_ context.Context, identifier, password string) (*backend.AuthResponse, error) {
	fb.LoginCalls++
	if fb.LoginErr != nil {
		return nil, fb.LoginErr
	}
	return fb.LoginResp, nil
}

func (fb *FakeBackend) ConnectWallet(_ context.Context, address string, chainID, networkID int64) (*backend.AuthResponse, error) {
	fb.ConnectWalletCalls++
	fb.LastConnectAddress = address
	if fb.ConnectWalletErr != nil {
		return nil, fb.ConnectWalletErr
	}
	return fb.ConnectWalletResp, nil
}

func (fb *FakeBackend) Signup(_ context.Context, registration backend.Registration) (*backend.SignupResponse, error) {
	if fb.SignupErr != nil {
		return nil, fb.SignupErr
	}
	return fb.SignupResp, nil
}

func (fb *FakeBackend) DashboardData(_ context.Context, credential string) (*backend.Dashboard, error) {
	fb.DashboardCalls++
	fb.LastCredential = credential
	if fb.DashboardErr != nil {
		return nil, fb.DashboardErr
	}
	return fb.DashboardResp, nil
}

func (fb *FakeBackend) Transfer(_ context.Context, credential, recipientTncWalletID string, amount float64) (string, error) {
	fb.TransferCalls++
	fb.LastCredential = credential
	fb.LastTransferRecipient = recipientTncWalletID
	fb.LastTransferAmount = amount
	if fb.TransferErr != nil {
		return "", fb.TransferErr
	}
	return fb.TransferMessage, nil
}

func (fb *FakeBackend) AddWallet(_ context.Context, credential, address string, userID int64) (string, error) {
	fb.AddWalletCalls++
	fb.LastCredential = credential
	fb.LastAddWalletAddress = address
	fb.LastAddWalletUserID = userID
	if fb.AddWalletErr != nil {
		return "", fb.AddWalletErr
	}
	return fb.AddWalletMessage, nil
}

func (fb *FakeBackend) TanacoinPrice(context.Context) (*backend.Price, error) {
	if fb.PriceErr != nil {
		return nil, fb.PriceErr
	}
	return fb.PriceResp, nil
}

func (fb *FakeBackend) CheckWalletRegistration(_ context.Context, address string) (bool, error) {
	return fb.Registered, fb.RegistrationErr
}

func (fb *FakeBackend) RegisterWalletUser(_ context.Context, address string) error {
	return fb.RegisterErr
}

func (fb *FakeBackend) LoginWalletUser(_ context.Context, address string) error {
	return fb.WalletLoginErr
}

func (fb *FakeBackend) StoreTransaction(_ context.Context, txHash, address string, amount float64) error {
	if fb.StoreTransactionErr != nil {
		return fb.StoreTransactionErr
	}
	fb.StoredTxHashes = append(fb.StoredTxHashes, txHash)
	return nil
}
