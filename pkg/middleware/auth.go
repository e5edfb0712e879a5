package middleware

import (
	"context"
	"net/http"
	"strings"

	"hireboard-backend/pkg/models"
	"hireboard-backend/pkg/utils"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticate resolves a Bearer access token into a models.Identity and
// stores it on the request context. Requests without a token pass through
// unauthenticated; RequireIdentity decides per route whether that is an
// error.
func Authenticate(jwtService *utils.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				utils.WriteUnauthorizedResponse(w, "Authorization header must use the Bearer scheme")
				return
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				utils.WriteUnauthorizedResponse(w, "Invalid or expired token")
				return
			}
			if claims.Type != "access" {
				utils.WriteUnauthorizedResponse(w, "Refresh tokens cannot be used for API access")
				return
			}

			identity := &models.Identity{
				ID:        claims.UserID,
				Email:     claims.Email,
				Role:      claims.Role,
				CompanyID: claims.CompanyID,
			}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIdentity rejects requests that did not authenticate.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFrom(r.Context()) == nil {
			utils.WriteUnauthorizedResponse(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFrom returns the authenticated identity, or nil.
func IdentityFrom(ctx context.Context) *models.Identity {
	identity, _ := ctx.Value(identityKey).(*models.Identity)
	return identity
}
