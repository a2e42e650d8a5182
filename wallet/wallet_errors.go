package wallet

import "errors"

var (
	ErrNoWalletAvailable   = errors.New("no wallet available")
	ErrUserRejected        = errors.New("user rejected the request")
	ErrNoAccounts          = errors.New("provider returned no accounts")
	ErrTransactionRejected = errors.New("transaction rejected")
	ErrTransactionFailed   = errors.New("transaction failed")
)
