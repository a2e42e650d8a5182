package session

import (
	"github.com/tanalabs/tanacoin-client/token"
	"github.com/tanalabs/tanacoin-client/wallet"
)

// Phase is the controller's authentication state. WalletLinked alone is
// valid: a wallet can be connected without a backend session, and a
// credential session can exist without a wallet.
type Phase int

const (
	Anonymous Phase = iota
	CredentialAuthenticated
	WalletLinked
	CredentialAndWalletAuthenticated
)

func (p Phase) String() string {
	switch p {
	case Anonymous:
		return "anonymous"
	case CredentialAuthenticated:
		return "credential-authenticated"
	case WalletLinked:
		return "wallet-linked"
	case CredentialAndWalletAuthenticated:
		return "credential-and-wallet-authenticated"
	}
	return "unknown"
}

// Session is the authenticated backend identity: the opaque bearer
// credential plus its decoded, unverified claims.
type Session struct {
	Credential string
	Claims     *token.Claims
}

// Destination is the route the view layer should navigate to after a
// successful login, a pure function of the backend's is_superuser flag.
type Destination string

const (
	DashboardRoute          Destination = "/dashboard"
	SuperuserDashboardRoute Destination = "/superuser_dashboard"
)

func routeFor(isSuperuser bool) Destination {
	if isSuperuser {
		return SuperuserDashboardRoute
	}
	return DashboardRoute
}

// Snapshot is the published read-only state the view layer consumes. It
// is a value copy; mutating it has no effect on the controller.
type Snapshot struct {
	Phase           Phase
	LoggedIn        bool
	Superuser       bool
	UserID          int64
	WalletConnected bool
	WalletAddress   string
	WalletBalance   string
	NetworkID       int64
	ChainID         int64
}

func snapshotOf(phase Phase, session *Session, link *wallet.Link) Snapshot {
	snapshot := Snapshot{Phase: phase}
	if session != nil {
		snapshot.LoggedIn = true
		snapshot.Superuser = session.Claims.IsSuperuser()
		snapshot.UserID = session.Claims.UserID
	}
	if link != nil {
		snapshot.WalletConnected = true
		snapshot.WalletAddress = link.Address
		snapshot.WalletBalance = link.Balance
		snapshot.NetworkID = link.NetworkID
		snapshot.ChainID = link.ChainID
	}
	return snapshot
}
