package backend

// AuthResponse is the body of a successful /login or /connect_wallet
// call: the bearer credential plus the claims the client mirrors into
// UI state.
type AuthResponse struct {
	Token       string `json:"token"`
	Exp         int64  `json:"exp"`
	UserID      int64  `json:"user_id"`
	IsSuperuser bool   `json:"is_superuser"`
}

// Registration is the /signup request body.
type Registration struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	WalletConnect   bool   `json:"wallet_connect"`
	WalletAddress   string `json:"wallet_address,omitempty"`
}

// SignupResponse carries the created username, used as the redirect
// target after registration.
type SignupResponse struct {
	Username string `json:"username"`
}

// UserData is one row of the dashboard profile payload.
type UserData struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture"`
	TncWalletID    string `json:"tnc_wallet_id"`
	UserID         int64  `json:"user_id"`
	CreatedAt      string `json:"created_at"`
}

// WalletData is one row of the dashboard wallet payload.
type WalletData struct {
	Balance           string `json:"balance"`
	TncWalletUniqueID string `json:"tnc_wallet_unique_id"`
	WalletCreatedAt   string `json:"wallet_created_at"`
	WalletID          int64  `json:"wallet_id"`
}

// Dashboard is the /dashboard/data response.
type Dashboard struct {
	UserData   []UserData   `json:"user_data"`
	WalletData []WalletData `json:"wallet_data"`
}

// Price holds the Tanacoin conversion rates per payment method.
type Price struct {
	ETH  float64 `json:"ETH"`
	USDT float64 `json:"USDT"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type connectWalletRequest struct {
	WalletAddress string `json:"wallet_address"`
	ChainID       int64  `json:"chain_id"`
	NetworkID     int64  `json:"network_id"`
}

// dashboardActionRequest is the multiplexed POST /dashboard body; Action
// selects "transfer" or "add_wallet".
type dashboardActionRequest struct {
	Action               string  `json:"action"`
	RecipientTncWalletID string  `json:"recipient_tnc_wallet_id,omitempty"`
	Amount               float64 `json:"amount,omitempty"`
	WalletAddress        string  `json:"wallet_address,omitempty"`
	UserID               int64   `json:"user_id,omitempty"`
}

type dashboardActionResponse struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

type walletAddressRequest struct {
	WalletAddress string `json:"wallet_address"`
}

type walletRegistrationResponse struct {
	IsRegistered bool `json:"is_registered"`
}

type walletUserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type storeTransactionRequest struct {
	TransactionHash string  `json:"transaction_hash"`
	WalletAddress   string  `json:"wallet_address"`
	Amount          float64 `json:"amount"`
}

type tokenSupplyResponse struct {
	TotalSupply string `json:"totalSupply"`
}
