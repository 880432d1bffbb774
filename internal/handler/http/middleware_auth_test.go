package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	validToken := models.Token{
		SignedString: "good",
		Claims:       models.VerificationClaims{ID: "0192-alice", Email: "alice@example.com", Role: models.RoleUser, Active: true},
	}

	tests := []struct {
		name       string
		header     string
		token      models.Token
		parseErr   error
		wantStatus int
		wantNext   bool
	}{
		{name: "valid bearer token", header: "Bearer good", token: validToken, wantStatus: http.StatusOK, wantNext: true},
		{name: "lowercase scheme", header: "bearer good", token: validToken, wantStatus: http.StatusOK, wantNext: true},
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "token without scheme", header: "good", wantStatus: http.StatusUnauthorized},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "expired or forged", header: "Bearer bad", parseErr: service.ErrTokenIsExpiredOrInvalid, wantStatus: http.StatusUnauthorized},
		{
			name:   "inactive account",
			header: "Bearer good",
			token: models.Token{
				SignedString: "good",
				Claims:       models.VerificationClaims{ID: "0192-alice", Role: models.RoleUser, Active: false},
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &mockAccountService{
				parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
					if tt.parseErr != nil {
						return models.Token{}, tt.parseErr
					}
					return tt.token, nil
				},
			}

			var gotClaims models.VerificationClaims
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotClaims, _ = utils.GetClaimsFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/api/accounts/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			newHandlerWithAccounts(t, accounts).auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.wantNext {
				assert.Equal(t, "0192-alice", gotClaims.ID)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		caller     *models.Role
		wantStatus int
	}{
		{name: "admin passes", caller: rolePtr(models.RoleAdmin), wantStatus: http.StatusOK},
		{name: "user is forbidden", caller: rolePtr(models.RoleUser), wantStatus: http.StatusForbidden},
		{name: "no claims", caller: nil, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

			req := httptest.NewRequest(http.MethodDelete, "/api/accounts/x", nil)
			if tt.caller != nil {
				req = withCaller(req, "caller", *tt.caller)
			}
			rec := httptest.NewRecorder()

			requireRole(models.RoleAdmin)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireRole_SeveralRoles(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := withCaller(httptest.NewRequest(http.MethodGet, "/", nil), "caller", models.Role("editor"))
	rec := httptest.NewRecorder()

	requireRole(models.RoleAdmin, models.Role("editor"))(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusTeapot, rec.Code)
}

func TestAuth_ErrorBodyNamesReason(t *testing.T) {
	rec := httptest.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	newHandlerWithAccounts(t, &mockAccountService{}).auth(next).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/accounts/me", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, ErrEmptyAuthorizationHeader.Error(), decodeResponse[models.ErrorResponse](t, rec).Error)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func rolePtr(r models.Role) *models.Role {
	return &r
}
