package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/talentgate/talentgate/pkg/observability"
)

// TokenVerifier verifies a bearer string and returns the principal it
// encodes. Implemented by token.Service.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}

// unauthorizedBody is the fixed rejection payload. It is identical for
// every failure mode so that callers cannot probe which check failed.
const unauthorizedBody = `{"error":{"type":"unauthorized","message":"authentication required"}}`

// Middleware is the auth gate: the single choke point in front of every
// protected route. It extracts the bearer token from the Authorization
// header, verifies it, and injects the principal into the request context.
// On any failure the downstream handler is never invoked.
//
// Paths on the bypass list (health, metrics, register, login) skip the
// gate entirely.
func Middleware(verifier TokenVerifier, bypassPaths []string) func(http.Handler) http.Handler {
	bypass := make(map[string]bool, len(bypassPaths))
	for _, p := range bypassPaths {
		bypass[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypass[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr, ok := bearerToken(r)
			if !ok {
				reject(w, r, "missing_credentials", ErrUnauthenticated)
				return
			}

			principal, err := verifier.Verify(tokenStr)
			if err != nil {
				reject(w, r, "invalid_token", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetPrincipal(r.Context(), principal)))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Absence or any other scheme reports false.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimPrefix(header, prefix)
	if token == "" {
		return "", false
	}
	return token, true
}

func reject(w http.ResponseWriter, r *http.Request, reason string, err error) {
	slog.Warn("authentication failed",
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"error", err,
	)
	observability.AuthRejectedTotal.WithLabelValues(reason).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(unauthorizedBody))
}
