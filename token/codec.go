// Package token decodes backend-issued session credentials into their
// claims. Decoding is deliberately unverified: the backend re-checks the
// signature on every privileged request, the client only needs claims for
// UI gating (superuser views, expiry-based auto-logout).
package token

import (
	stderrors "errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// ErrMalformedCredential is returned when a credential cannot be parsed
// as a structured token.
var ErrMalformedCredential = stderrors.New("malformed credential")

const RoleSuperuser = "superuser"

// Claims are the decoded, unverified fields embedded in a credential.
type Claims struct {
	ExpiresAt int64  // epoch seconds
	UserID    int64  // optional, zero when absent
	Role      string // "user" or "superuser"
}

// IsSuperuser reports whether the credential carries the superuser role.
func (c *Claims) IsSuperuser() bool {
	return c.Role == RoleSuperuser
}

// Expired reports whether the credential is past its expiry at the given
// instant. A credential expiring exactly now counts as expired.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt*1000 <= now.UnixMilli()
}

// Decode extracts claims from a credential without verifying its
// signature. Any parse failure, and any token missing an exp claim,
// yields ErrMalformedCredential.
func Decode(credential string) (*Claims, error) {
	parsed, _, err := jwtlib.NewParser().ParseUnverified(credential, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedCredential, "[Decode] %v", err)
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.Wrap(ErrMalformedCredential, "[Decode] claims are not a map")
	}

	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return nil, errors.Wrap(ErrMalformedCredential, "[Decode] missing exp claim")
	}

	claims := &Claims{
		ExpiresAt: int64(exp),
		Role:      "user",
	}
	if userID, ok := mapClaims["user_id"].(float64); ok {
		claims.UserID = int64(userID)
	}
	if role, ok := mapClaims["role"].(string); ok && role != "" {
		claims.Role = role
	}
	return claims, nil
}

// FromLogin builds claims from a backend auth response body. The backend
// reports superuser status as a boolean; it becomes the role claim here,
// matching what Decode extracts from the credential itself.
func FromLogin(exp, userID int64, isSuperuser bool) *Claims {
	role := "user"
	if isSuperuser {
		role = RoleSuperuser
	}
	return &Claims{
		ExpiresAt: exp,
		UserID:    userID,
		Role:      role,
	}
}
