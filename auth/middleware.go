package auth

import (
	"net/http"
	"strings"

	"github.com/RobertLib/todo-api/apperror"
	"github.com/RobertLib/todo-api/config"
)

// JWTMiddleware verifies the bearer token on inbound requests and puts the
// recovered user id into the request context. Three failure modes are kept
// distinct: no credential (missing or malformed header), invalid credential
// (signature or expiry), and a server misconfiguration when the signing
// secret is unset.
func JWTMiddleware(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.JWTSecret == "" {
				WriteError(w, r, apperror.NewConfigError("Server configuration error", nil))
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("No token provided", nil))
				return
			}

			// Only the bearer scheme is accepted: "Bearer {token}".
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				WriteError(w, r, apperror.NewAuthError("No token provided", nil))
				return
			}

			claims, err := ParseToken(parts[1], []byte(cfg.JWTSecret))
			if err != nil {
				WriteError(w, r, apperror.NewAuthError("Invalid token", err))
				return
			}

			ctx := NewContextWithUserID(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
