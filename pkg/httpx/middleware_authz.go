package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/idgate/pkg/jwtx"
)

// Guard inspects verified claims and returns nil to allow the request.
type Guard func(jwtx.Claims) error

// ErrorWriter renders a denied request.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// RequireGuards runs after AuthnMiddleware. Guards are evaluated in order
// and the first error is handed to deny.
func RequireGuards(deny ErrorWriter, guards ...Guard) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			for _, g := range guards {
				if err := g(claims); err != nil {
					deny(w, r, err)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
