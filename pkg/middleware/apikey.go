package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"appointment-payments/pkg/utils"

	"go.uber.org/zap"
)

// AdminToken middleware guards the back-office routes with a static bearer
// token. An empty configured token fails closed: every request is rejected
// until one is set.
func AdminToken(token string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				logger.Warn("Admin token not configured, rejecting request",
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Admin access not configured")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
				logger.Warn("Rejected admin request with wrong token",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
