package store

// Keys used by the session layer. The store itself treats keys as opaque.
const (
	TokenKey         = "token"          // bearer credential issued by the backend
	WalletAddressKey = "wallet_address" // last connected chain account
	UserDetailsKey   = "user_details"   // cached display data, best-effort
)

// Store persists session credentials between process runs. Absence of a
// key is a valid, expected state and is never an error; validation of
// stored values is the caller's job.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}
