package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Chiranjit680/FinAdvisor/pkg/jwtutil"
	"github.com/Chiranjit680/FinAdvisor/pkg/response"
)

// AuthMiddleware gates every request behind a bearer token, except for an
// explicit allow-list of path prefixes (registration, token issuance,
// health). Validation fails closed: signature mismatch or expiry rejects
// before the handler runs.
type AuthMiddleware struct {
	issuer *jwtutil.Issuer
	exempt []string
}

func NewAuthMiddleware(issuer *jwtutil.Issuer, exemptPrefixes []string) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer, exempt: exemptPrefixes}
}

func (am *AuthMiddleware) isExempt(path string) bool {
	for _, p := range am.exempt {
		if p == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (am *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if am.isExempt(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			response.Error(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.Error(w, http.StatusUnauthorized, "Malformed Authorization header")
			return
		}

		claims, err := am.issuer.ParseAndValidate(parts[1])
		if err != nil {
			if err == jwtutil.ErrExpiredToken {
				response.Error(w, http.StatusUnauthorized, "Token has expired")
				return
			}
			response.Error(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		ctx := context.WithValue(r.Context(), ContextUserID, claims.UserID)
		ctx = context.WithValue(ctx, ContextUsername, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
