package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withURLParam injects a chi route parameter the way the router does.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestSetRole(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		roleErr    error
		wantStatus int
	}{
		{name: "promote", body: `{"role":"admin"}`, wantStatus: http.StatusOK},
		{
			name:       "unknown role",
			body:       `{"role":"root"}`,
			roleErr:    validators.FieldErrors{validators.NewFieldError(validators.ErrValidation, "role", "is not a valid role")},
			wantStatus: http.StatusBadRequest,
		},
		{name: "missing account", body: `{"role":"admin"}`, roleErr: service.ErrAccountNotFound, wantStatus: http.StatusNotFound},
		{name: "bad body", body: `{"role":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &mockAccountService{
				setRoleFn: func(_ context.Context, id string, role models.Role) (models.Account, error) {
					assert.Equal(t, "0192-alice", id)
					if tt.roleErr != nil {
						return models.Account{}, tt.roleErr
					}
					a := aliceAccount()
					a.Role = role
					return a, nil
				},
			}

			req := httptest.NewRequest(http.MethodPut, "/api/accounts/0192-alice/role", strings.NewReader(tt.body))
			req = withURLParam(req, "id", "0192-alice")
			rec := httptest.NewRecorder()

			newHandlerWithAccounts(t, accounts).setRole(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, models.RoleAdmin, decodeResponse[models.AccountView](t, rec).Role)
			}
		})
	}
}

func TestSetActive(t *testing.T) {
	accounts := &mockAccountService{
		setActiveFn: func(_ context.Context, id string, active bool) (models.Account, error) {
			assert.Equal(t, "0192-alice", id)
			a := aliceAccount()
			a.Active = active
			return a, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/accounts/0192-alice/active", strings.NewReader(`{"active":false}`))
	req = withURLParam(req, "id", "0192-alice")
	rec := httptest.NewRecorder()

	newHandlerWithAccounts(t, accounts).setActive(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeResponse[models.AccountView](t, rec).Active)
}

func TestDeleteAccount(t *testing.T) {
	tests := []struct {
		name       string
		deleteErr  error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "already deleted", deleteErr: service.ErrAccountNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &mockAccountService{
				softDeleteFn: func(_ context.Context, id, deletedBy string) error {
					assert.Equal(t, "0192-alice", id)
					assert.Equal(t, "0192-admin", deletedBy)
					return tt.deleteErr
				},
			}

			req := httptest.NewRequest(http.MethodDelete, "/api/accounts/0192-alice", nil)
			req = withCaller(withURLParam(req, "id", "0192-alice"), "0192-admin", models.RoleAdmin)
			rec := httptest.NewRecorder()

			newHandlerWithAccounts(t, accounts).deleteAccount(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRestoreAccount(t *testing.T) {
	tests := []struct {
		name       string
		restoreErr error
		wantStatus int
	}{
		{name: "restored", wantStatus: http.StatusOK},
		{name: "username reused meanwhile", restoreErr: takenUsernameError(), wantStatus: http.StatusConflict},
		{name: "not deleted", restoreErr: service.ErrAccountNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &mockAccountService{
				restoreFn: func(_ context.Context, _ string) (models.Account, error) {
					if tt.restoreErr != nil {
						return models.Account{}, tt.restoreErr
					}
					return aliceAccount(), nil
				},
			}

			req := withURLParam(httptest.NewRequest(http.MethodPost, "/api/accounts/0192-alice/restore", nil), "id", "0192-alice")
			rec := httptest.NewRecorder()

			newHandlerWithAccounts(t, accounts).restoreAccount(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetAccount(t *testing.T) {
	accounts := &mockAccountService{
		getFn: func(_ context.Context, id string) (models.Account, error) {
			assert.Equal(t, "0192-alice", id)
			return aliceAccount(), nil
		},
	}

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/accounts/0192-alice", nil), "id", "0192-alice")
	rec := httptest.NewRecorder()

	newHandlerWithAccounts(t, accounts).getAccount(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", decodeResponse[models.AccountView](t, rec).Email)
}
