package tokenx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testIssuer() *Issuer {
	return &Issuer{
		Secret: []byte("test-secret-at-least-32-bytes-long"),
		Issuer: "registry-test",
		TTL:    time.Hour,
	}
}

func TestMintAndVerify(t *testing.T) {
	t.Parallel()

	iss := testIssuer()
	claims := Claims{
		UserID: 42,
		Email:  "a@x.com",
		Roles:  []string{"participant"},
	}

	raw, err := iss.Mint(claims, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	got, err := iss.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, claims, got)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	iss := testIssuer()
	raw, err := iss.Mint(Claims{UserID: 7, Email: "old@x.com"}, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = iss.Verify(raw)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	iss := testIssuer()
	raw, err := iss.Mint(Claims{UserID: 7, Email: "a@x.com"}, time.Now())
	require.NoError(t, err)

	other := testIssuer()
	other.Secret = []byte("a-completely-different-hmac-secret")

	_, err = other.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongIssuer(t *testing.T) {
	t.Parallel()

	iss := testIssuer()
	raw, err := iss.Mint(Claims{UserID: 7, Email: "a@x.com"}, time.Now())
	require.NoError(t, err)

	other := testIssuer()
	other.Issuer = "someone-else"

	_, err = other.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	t.Parallel()

	iss := testIssuer()

	_, err := iss.Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = iss.Verify("")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestMint_NoSecret(t *testing.T) {
	t.Parallel()

	iss := &Issuer{Issuer: "registry-test", TTL: time.Hour}
	_, err := iss.Mint(Claims{UserID: 1}, time.Now())
	require.Error(t, err)
}
