package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// It extracts the token from the "Authorization" header, validates it via
// [service.AccountService.ParseVerificationToken] and stores the decoded
// claims in the request context (see [utils.WithClaims]).
//
// Requests are rejected with 401 Unauthorized when the header is absent or
// malformed, when the token is invalid or expired, and when the token was
// issued to an inactive account.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		ctx := r.Context()
		token, err := h.services.AccountService.ParseVerificationToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if !token.Claims.Active {
			log.Warn().Str("account_id", token.AccountID()).Msg("token of inactive account rejected")
			writeError(w, r, ErrInvalidAuthorizationHeader)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithClaims(ctx, token.Claims)))
	})
}

// requireRole allows the request only when the authenticated caller holds
// one of roles. It must be mounted after [Handler.auth].
func requireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := utils.GetClaimsFromContext(r.Context())
			if !ok {
				writeError(w, r, ErrEmptyAuthorizationHeader)
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.FromRequest(r).Warn().
				Str("account_id", claims.ID).
				Str("role", string(claims.Role)).
				Str("uri", r.RequestURI).
				Msg("role is not allowed")
			writeError(w, r, ErrForbidden)
		})
	}
}
