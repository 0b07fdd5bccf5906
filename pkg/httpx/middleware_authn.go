package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/premmsharma122/user-management-system/pkg/slogx"
	"github.com/premmsharma122/user-management-system/pkg/tokenx"
)

// ErrUnknownSubject is returned (possibly wrapped) by an
// IdentityResolver when the token subject no longer exists. Any other
// resolver error is treated as an infrastructure failure, not as a bad
// credential.
var ErrUnknownSubject = errors.New("httpx: unknown token subject")

// Identity is the resolved server-side view of a token's subject. The
// role here is authoritative; the role baked into the token is only a
// stale snapshot.
type Identity struct {
	ID   string
	Role string
}

// IdentityResolver looks up the current identity for a token subject.
// ErrUnknownSubject means the subject no longer exists and the token,
// although validly signed, must be rejected.
type IdentityResolver func(ctx context.Context, subject string) (Identity, error)

// AuthnMiddleware verifies the bearer token and re-resolves the subject
// against the user store, so deleted accounts and role changes take
// effect immediately rather than at token expiry. The resolved identity
// is injected into the request context for downstream handlers.
func AuthnMiddleware(codec *tokenx.Codec, resolve IdentityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, http.StatusUnauthorized, "missing_credential", "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := codec.Verify(raw)
			if err != nil {
				log.Warn("token verify failed", "err", err)
				writeBearerError(w, http.StatusUnauthorized, "invalid_credential", "token verification failed")
				return
			}

			identity, err := resolve(ctx, claims.Subject)
			if err != nil {
				// Only a missing subject invalidates the credential.
				// A resolver outage must not push clients into the
				// refresh path, which would log them out.
				if errors.Is(err, ErrUnknownSubject) {
					log.Warn("token subject no longer resolvable", "subject", claims.Subject)
					writeBearerError(w, http.StatusUnauthorized, "invalid_credential", "unknown token subject")
					return
				}
				log.Error("identity resolution failed", "subject", claims.Subject, "err", err)
				WriteJSON(w, http.StatusInternalServerError, map[string]string{
					"error":   "server_error",
					"message": "internal server error",
				})
				return
			}

			// Inject into context for downstream handlers.
			ctx = context.WithValue(ctx, CtxKeyUserID, identity.ID)
			ctx = context.WithValue(ctx, CtxKeyRole, identity.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
