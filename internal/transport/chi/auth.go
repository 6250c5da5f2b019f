package chi

import (
	"context"
	"net/http"
	"strings"
)

// ownerHeader carries the acting user id on every API request.
const ownerHeader = "X-User-ID"

type ownerContextKey struct{}

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware returns a middleware that validates Bearer tokens and
// resolves the acting owner from the X-User-ID header. If apiKeys is empty,
// key validation is disabled (pass-through) but the owner is still extracted.
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	validKeys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			validKeys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			if len(validKeys) > 0 {
				auth := r.Header.Get("Authorization")
				if auth == "" {
					writeError(w, http.StatusUnauthorized, codeBadRequest, "missing authorization header")
					return
				}

				const bearerPrefix = "Bearer "
				if !strings.HasPrefix(auth, bearerPrefix) {
					writeError(w, http.StatusUnauthorized,
						codeBadRequest, "authorization header must use Bearer scheme")
					return
				}

				token := auth[len(bearerPrefix):]
				if _, ok := validKeys[token]; !ok {
					writeError(w, http.StatusUnauthorized, codeBadRequest, "invalid api key")
					return
				}
			}

			if owner := r.Header.Get(ownerHeader); owner != "" {
				r = r.WithContext(context.WithValue(r.Context(), ownerContextKey{}, owner))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OwnerFromContext returns the acting user id placed by the auth middleware.
func OwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerContextKey{}).(string)
	return owner, ok && owner != ""
}

// requireOwner resolves the owner or rejects the request.
func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := OwnerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeBadRequest, "missing "+ownerHeader+" header")
		return "", false
	}
	return owner, true
}
