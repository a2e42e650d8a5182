package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/tanalabs/tanacoin-client/token"
)

func signedCredential(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	credential, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return credential
}

func TestDecodeExtractsClaims(t *testing.T) {
	now := time.Now()
	credential := signedCredential(t, jwtlib.MapClaims{
		"exp":     float64(now.Add(time.Hour).Unix()),
		"user_id": float64(42),
		"role":    "superuser",
	})

	claims, err := token.Decode(credential)
	require.NoError(t, err)
	require.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt)
	require.Equal(t, int64(42), claims.UserID)
	require.True(t, claims.IsSuperuser())
	require.False(t, claims.Expired(now))
}

func TestDecodeDefaultsRoleToUser(t *testing.T) {
	credential := signedCredential(t, jwtlib.MapClaims{
		"exp": float64(time.Now().Add(time.Hour).Unix()),
	})

	claims, err := token.Decode(credential)
	require.NoError(t, err)
	require.Equal(t, "user", claims.Role)
	require.False(t, claims.IsSuperuser())
	require.Zero(t, claims.UserID)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := token.Decode("not-a-token")
	require.Error(t, err)
	require.True(t, errors.Is(err, token.ErrMalformedCredential))
}

func TestDecodeRejectsMissingExpiry(t *testing.T) {
	credential := signedCredential(t, jwtlib.MapClaims{"user_id": float64(1)})

	_, err := token.Decode(credential)
	require.True(t, errors.Is(err, token.ErrMalformedCredential))
}

func TestExpiredBoundary(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	claims := &token.Claims{ExpiresAt: now.Unix()}

	// exp*1000 <= nowMillis means expired, so the exact instant counts.
	require.True(t, claims.Expired(now))
	require.True(t, claims.Expired(now.Add(time.Second)))
	require.False(t, claims.Expired(now.Add(-time.Second)))
}

func TestFromLogin(t *testing.T) {
	claims := token.FromLogin(123, 7, true)
	require.Equal(t, int64(123), claims.ExpiresAt)
	require.Equal(t, int64(7), claims.UserID)
	require.True(t, claims.IsSuperuser())

	claims = token.FromLogin(123, 7, false)
	require.Equal(t, "user", claims.Role)
}
