package auth

import (
	"net/http"
	"strings"

	"github.com/olufinja/naijafind/internal/platform/httpx"
)

// Middleware extracts the bearer token, validates it and stores the caller
// identity in the request context. Requests without a token pass through
// unauthenticated; endpoints decide via the Authorizer.
func Middleware(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "malformed authorization header")
				return
			}
			claims, err := tokens.Validate(strings.TrimSpace(raw))
			if err != nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
				return
			}
			identity := &Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
		})
	}
}
