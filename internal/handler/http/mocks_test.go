package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/stretchr/testify/require"
)

// mockAccountService implements service.AccountService for unit tests.
// Each method field can be overridden per test case; an unset field panics
// so that unexpected calls fail loudly.
type mockAccountService struct {
	createFn               func(ctx context.Context, account models.Account) (models.Account, error)
	getFn                  func(ctx context.Context, id string) (models.Account, error)
	updateFn               func(ctx context.Context, id string, update models.AccountUpdate) (models.Account, error)
	comparePasswordFn      func(ctx context.Context, plaintext string, account models.Account) (bool, error)
	authenticateFn         func(ctx context.Context, login, password string) (models.Account, error)
	generateTokenFn        func(ctx context.Context, account models.Account) (models.Token, error)
	parseTokenFn           func(ctx context.Context, tokenString string) (models.Token, error)
	generateResetTokenFn   func(ctx context.Context, account *models.Account) error
	requestPasswordResetFn func(ctx context.Context, email string) error
	resetPasswordFn        func(ctx context.Context, token, newPassword string) (models.Account, error)
	purgeExpiredResetFn    func(ctx context.Context) (int64, error)
	checkExistingFieldFn   func(ctx context.Context, field models.AccountField, value string) (models.Account, bool, error)
	setRoleFn              func(ctx context.Context, id string, role models.Role) (models.Account, error)
	setActiveFn            func(ctx context.Context, id string, active bool) (models.Account, error)
	softDeleteFn           func(ctx context.Context, id, deletedBy string) error
	restoreFn              func(ctx context.Context, id string) (models.Account, error)
}

func (m *mockAccountService) Create(ctx context.Context, account models.Account) (models.Account, error) {
	return m.createFn(ctx, account)
}

func (m *mockAccountService) Get(ctx context.Context, id string) (models.Account, error) {
	return m.getFn(ctx, id)
}

func (m *mockAccountService) Update(ctx context.Context, id string, update models.AccountUpdate) (models.Account, error) {
	return m.updateFn(ctx, id, update)
}

func (m *mockAccountService) ComparePassword(ctx context.Context, plaintext string, account models.Account) (bool, error) {
	return m.comparePasswordFn(ctx, plaintext, account)
}

func (m *mockAccountService) Authenticate(ctx context.Context, login, password string) (models.Account, error) {
	return m.authenticateFn(ctx, login, password)
}

func (m *mockAccountService) GenerateVerificationToken(ctx context.Context, account models.Account) (models.Token, error) {
	return m.generateTokenFn(ctx, account)
}

func (m *mockAccountService) ParseVerificationToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAccountService) GeneratePasswordResetToken(ctx context.Context, account *models.Account) error {
	return m.generateResetTokenFn(ctx, account)
}

func (m *mockAccountService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.requestPasswordResetFn(ctx, email)
}

func (m *mockAccountService) ResetPassword(ctx context.Context, token, newPassword string) (models.Account, error) {
	return m.resetPasswordFn(ctx, token, newPassword)
}

func (m *mockAccountService) PurgeExpiredResetTokens(ctx context.Context) (int64, error) {
	return m.purgeExpiredResetFn(ctx)
}

func (m *mockAccountService) CheckExistingField(ctx context.Context, field models.AccountField, value string) (models.Account, bool, error) {
	return m.checkExistingFieldFn(ctx, field, value)
}

func (m *mockAccountService) SetRole(ctx context.Context, id string, role models.Role) (models.Account, error) {
	return m.setRoleFn(ctx, id, role)
}

func (m *mockAccountService) SetActive(ctx context.Context, id string, active bool) (models.Account, error) {
	return m.setActiveFn(ctx, id, active)
}

func (m *mockAccountService) SoftDelete(ctx context.Context, id, deletedBy string) error {
	return m.softDeleteFn(ctx, id, deletedBy)
}

func (m *mockAccountService) Restore(ctx context.Context, id string) (models.Account, error) {
	return m.restoreFn(ctx, id)
}

func (m *mockAccountService) Serialize(account models.Account) models.AccountView {
	return account.View()
}

// mockAppInfoService implements service.AppInfoService for testing.
type mockAppInfoService struct {
	version models.VersionResponse
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) models.VersionResponse {
	return m.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newHandlerWithAccounts(t *testing.T, accounts service.AccountService) *Handler {
	t.Helper()
	return NewHandler(&service.Services{
		AccountService: accounts,
		AppInfoService: &mockAppInfoService{version: models.VersionResponse{Version: "test"}},
	}, logger.Nop())
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return strings.NewReader(string(b))
}

func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

// withCaller returns r carrying the claims of an authenticated caller.
func withCaller(r *http.Request, id string, role models.Role) *http.Request {
	return r.WithContext(utils.WithClaims(r.Context(), models.VerificationClaims{
		ID:     id,
		Role:   role,
		Active: true,
	}))
}

var testCreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func aliceAccount() models.Account {
	return models.Account{
		ID:        "0192-alice",
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "$2a$10$hash",
		Role:      models.RoleUser,
		Active:    true,
		CreatedAt: testCreatedAt,
		UpdatedAt: testCreatedAt,
		Version:   1,
	}
}

func jsonDecode(resp *http.Response, dst any) error {
	return json.NewDecoder(resp.Body).Decode(dst)
}
