package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ciprian88m/user-posts-lambda/pkg/auth"
	"github.com/ciprian88m/user-posts-lambda/pkg/common"

	"go.uber.org/zap"
)

// CallerIdentity resolves the caller id header for the post routes.
//
// With a validator, the header is always derived from a verified bearer
// token and any client-supplied value is discarded. A request without a
// token passes through without the header and is rejected downstream.
//
// Without a validator (Lambda proxy mode) the header was set from the API
// Gateway authorizer claims and is trusted as is.
func CallerIdentity(validator *auth.JWTValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if validator == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Header.Del(common.CallerIDHeader)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				respondUnauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				logger.Warn("Rejected bearer token",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				respondUnauthorized(w, err.Error())
				return
			}

			r.Header.Set(common.CallerIDHeader, claims.Subject)
			next.ServeHTTP(w, r)
		})
	}
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"statusCode":   http.StatusUnauthorized,
		"errorMessage": message,
	})
}
