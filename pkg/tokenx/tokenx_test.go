package tokenx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/premmsharma122/user-management-system/pkg/tokenx"
)

func TestCodecIssueVerify(t *testing.T) {
	t.Parallel()

	codec := tokenx.NewCodec([]byte("test-secret"), "userms-test")

	token, err := codec.Issue("01ARZ3NDEKTSV4RRFFQ69G5FAV", "admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", claims.Subject)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, "userms-test", claims.Issuer)
}

func TestCodecIssueUnique(t *testing.T) {
	t.Parallel()

	// A frozen clock pins iat and exp, so only the jti separates two
	// issuances for the same subject.
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	codec := tokenx.NewCodec([]byte("test-secret"), "userms-test").
		WithClock(func() time.Time { return clock })

	first, err := codec.Issue("user-1", "user", time.Hour)
	require.NoError(t, err)
	second, err := codec.Issue("user-1", "user", time.Hour)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	claims, err := codec.Verify(first)
	require.NoError(t, err)
	require.NotEmpty(t, claims.ID)
}

func TestCodecVerifyExpired(t *testing.T) {
	t.Parallel()

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	codec := tokenx.NewCodec([]byte("test-secret"), "userms-test").
		WithClock(func() time.Time { return clock })

	token, err := codec.Issue("user-1", "user", time.Minute)
	require.NoError(t, err)

	// Still valid just before expiry.
	clock = clock.Add(59 * time.Second)
	_, err = codec.Verify(token)
	require.NoError(t, err)

	clock = clock.Add(2 * time.Second)
	_, err = codec.Verify(token)
	require.ErrorIs(t, err, tokenx.ErrExpired)
}

func TestCodecVerifyBadSignature(t *testing.T) {
	t.Parallel()

	codec := tokenx.NewCodec([]byte("secret-a"), "userms-test")
	other := tokenx.NewCodec([]byte("secret-b"), "userms-test")

	token, err := other.Issue("user-1", "user", time.Hour)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, tokenx.ErrBadSignature)
}

func TestCodecVerifyMalformed(t *testing.T) {
	t.Parallel()

	codec := tokenx.NewCodec([]byte("test-secret"), "userms-test")

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Verify(token)
		require.ErrorIs(t, err, tokenx.ErrMalformed)
	}
}

func TestCodecVerifyWrongIssuer(t *testing.T) {
	t.Parallel()

	codec := tokenx.NewCodec([]byte("test-secret"), "userms-test")
	other := tokenx.NewCodec([]byte("test-secret"), "someone-else")

	token, err := other.Issue("user-1", "user", time.Hour)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, tokenx.ErrMalformed)
}

func TestIssuerIssuePair(t *testing.T) {
	t.Parallel()

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	codec := tokenx.NewCodec([]byte("test-secret"), "userms-test").
		WithClock(func() time.Time { return clock })
	issuer := tokenx.NewIssuer(codec, time.Hour, 7*24*time.Hour)

	pair, err := issuer.IssuePair("user-1", "user")
	require.NoError(t, err)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	require.Equal(t, int64(3600), pair.ExpiresIn)

	access, err := codec.Verify(pair.AccessToken)
	require.NoError(t, err)
	refresh, err := codec.Verify(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, access.Subject, refresh.Subject)
	require.Equal(t, access.Role, refresh.Role)

	// The access token expires first; the refresh token outlives it.
	clock = clock.Add(2 * time.Hour)
	_, err = codec.Verify(pair.AccessToken)
	require.ErrorIs(t, err, tokenx.ErrExpired)
	_, err = codec.Verify(pair.RefreshToken)
	require.NoError(t, err)
}

func TestIssuerDefaults(t *testing.T) {
	t.Parallel()

	codec := tokenx.NewCodec([]byte("test-secret"), "userms-test")
	issuer := tokenx.NewIssuer(codec, 0, 0)
	require.Equal(t, tokenx.DefaultAccessTokenTTL, issuer.AccessTTL)
	require.Equal(t, tokenx.DefaultRefreshTokenTTL, issuer.RefreshTTL)
}
