// Package tokenx implements the signed-credential layer: a codec that
// issues and verifies HS256 tokens carrying an identity reference and a
// role, and an issuer that mints access/refresh session pairs.
//
// Tokens are stateless. There is no server-side session table and no
// revocation list: possession of a validly signed, unexpired token is
// proof of authorization, and a rotated-out refresh token stays
// cryptographically valid until its own expiry. That is a property of
// the protocol, not an accident.
package tokenx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/premmsharma122/user-management-system/pkg/idx"
)

// Default token lifetimes. Short access tokens bound the damage of a
// leaked bearer credential; the refresh token trades that off against
// how often a client has to fully re-authenticate.
const (
	DefaultAccessTokenTTL  = time.Hour
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Verification failures. Expired and bad-signature map to different
// log lines (and the refresh protocol treats them all as terminal),
// so the codec keeps them distinct instead of returning one opaque error.
var (
	ErrMalformed    = errors.New("tokenx: malformed token")
	ErrBadSignature = errors.New("tokenx: invalid signature")
	ErrExpired      = errors.New("tokenx: token expired")
)

// Claims are embedded in both access and refresh tokens. The role claim
// is a snapshot taken at issue time; a server-side role change does not
// propagate into already-issued tokens until they expire or are refreshed.
type Claims struct {
	jwt.RegisteredClaims

	Role string `json:"role"`
}

// Codec signs and verifies tokens with a single process-wide secret.
type Codec struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewCodec builds a codec around the given secret. The issuer string is
// stamped into every token and enforced on verification.
func NewCodec(secret []byte, issuer string) *Codec {
	return &Codec{
		secret: secret,
		issuer: issuer,
		now:    time.Now,
	}
}

// WithClock overrides the codec's time source. Tests use this to step
// past expiry without sleeping.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Issue signs a token for the given subject and role, valid for ttl.
// Each token gets a fresh jti, so two issuances with the same subject,
// role and clock second still produce distinct tokens. Rotation relies
// on that: a refreshed pair must never equal the pair it replaces.
func (c *Codec) Issue(subject, role string, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        idx.New().String(),
			Issuer:    c.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("tokenx: sign token: %w", err)
	}
	return token, nil
}

// Verify parses and validates a token, returning its claims. Failures
// are reported as ErrExpired, ErrBadSignature or ErrMalformed; callers
// map those onto HTTP-level outcomes.
func (c *Codec) Verify(token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("tokenx: unexpected signing method %q", t.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrBadSignature
		default:
			return Claims{}, ErrMalformed
		}
	}
	return claims, nil
}

// Pair is one access/refresh issuance. ExpiresIn reports the access
// token lifetime in seconds, the way the wire protocol exposes it.
type Pair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Issuer mints session pairs. It is a pure function of identity,
// configured TTLs and the codec's clock; login, registration and
// refresh all funnel through it.
type Issuer struct {
	Codec      *Codec
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewIssuer builds an issuer with the default TTLs applied where the
// given values are zero.
func NewIssuer(codec *Codec, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}
	return &Issuer{Codec: codec, AccessTTL: accessTTL, RefreshTTL: refreshTTL}
}

// IssuePair signs a fresh access/refresh pair for the subject. Both
// tokens carry the same claims; only the lifetimes differ.
func (i *Issuer) IssuePair(subject, role string) (Pair, error) {
	access, err := i.Codec.Issue(subject, role, i.AccessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := i.Codec.Issue(subject, role, i.RefreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(i.AccessTTL.Seconds()),
	}, nil
}
