package httpx

import "net/http"

// RequireRole restricts a route to callers holding one of the listed
// roles. It must sit inside AuthnMiddleware in the chain so the role is
// already resolved into the context.
func RequireRole(roles ...string) Middleware {
	want := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := want[CallerRole(r.Context())]; !ok {
				writeBearerError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin restricts a route to administrators.
func RequireAdmin() Middleware {
	return RequireRole(RoleAdmin)
}

// writeBearerError writes an RFC 6750-style challenge header alongside
// the service's JSON error envelope.
func writeBearerError(w http.ResponseWriter, status int, code, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	WriteJSON(w, status, map[string]string{
		"error":   code,
		"message": desc,
	})
}
