package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/go-resty/resty/v2"
)

type httpAccountsClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAccountsClient constructs the REST implementation of
// [AccountsClient]. address may omit the scheme, "http://" is assumed.
//
// Returns an error if address is empty or cannot be parsed as a URL.
func NewHTTPAccountsClient(address string, timeout time.Duration, logger *logger.Logger) (AccountsClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid accounts api address: %w", err)
	}

	return &httpAccountsClient{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAccountsClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAccountsClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [AccountsClient]. It POSTs to /api/accounts/register
// and stores the returned bearer token.
func (h *httpAccountsClient) Register(ctx context.Context, req models.RegisterRequest) (models.AccountView, error) {
	return h.authenticate(ctx, "/api/accounts/register", req)
}

// Login implements [AccountsClient]. It POSTs to /api/accounts/login and
// stores the returned bearer token.
func (h *httpAccountsClient) Login(ctx context.Context, login, password string) (models.AccountView, error) {
	return h.authenticate(ctx, "/api/accounts/login", models.LoginRequest{Login: login, Password: password})
}

func (h *httpAccountsClient) authenticate(ctx context.Context, path string, body any) (models.AccountView, error) {
	var out models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post(path)
	if err != nil {
		return models.AccountView{}, fmt.Errorf("request %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountView{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		token = out.Token
	}
	if token == "" {
		return models.AccountView{}, fmt.Errorf("%s: no token in response", path)
	}

	h.SetToken(token)
	h.logger.Debug().Str("account_id", out.Account.ID).Msg("token received")

	return out.Account, nil
}

func (h *httpAccountsClient) Me(ctx context.Context) (models.AccountView, error) {
	return h.account(h.authedRequest(ctx), "GET", "/api/accounts/me")
}

func (h *httpAccountsClient) UpdateMe(ctx context.Context, update models.AccountUpdate) (models.AccountView, error) {
	return h.account(h.authedRequest(ctx).SetBody(update), "PATCH", "/api/accounts/me")
}

func (h *httpAccountsClient) Exists(ctx context.Context, field models.AccountField, value string) (bool, error) {
	var out models.ExistsResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"field": string(field), "value": value}).
		SetResult(&out).
		Get("/api/accounts/exists")
	if err != nil {
		return false, fmt.Errorf("exists request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	return out.Exists, nil
}

// ForgotPassword implements [AccountsClient]. The server answers 202 whether
// or not the email belongs to an account.
func (h *httpAccountsClient) ForgotPassword(ctx context.Context, email string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.ForgotPasswordRequest{Email: email}).
		Post("/api/accounts/password/forgot")
	if err != nil {
		return fmt.Errorf("forgot password request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAccountsClient) ResetPassword(ctx context.Context, token, password string) (models.AccountView, error) {
	req := h.client.R().SetContext(ctx).SetBody(models.ResetPasswordRequest{Token: token, Password: password})
	return h.account(req, "POST", "/api/accounts/password/reset")
}

func (h *httpAccountsClient) Get(ctx context.Context, id string) (models.AccountView, error) {
	return h.account(h.authedRequest(ctx).SetPathParam("id", id), "GET", "/api/accounts/{id}")
}

func (h *httpAccountsClient) SetRole(ctx context.Context, id string, role models.Role) (models.AccountView, error) {
	req := h.authedRequest(ctx).SetPathParam("id", id).SetBody(models.RoleRequest{Role: role})
	return h.account(req, "PUT", "/api/accounts/{id}/role")
}

func (h *httpAccountsClient) SetActive(ctx context.Context, id string, active bool) (models.AccountView, error) {
	req := h.authedRequest(ctx).SetPathParam("id", id).SetBody(models.ActiveRequest{Active: active})
	return h.account(req, "PUT", "/api/accounts/{id}/active")
}

func (h *httpAccountsClient) Delete(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).SetPathParam("id", id).Delete("/api/accounts/{id}")
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAccountsClient) Restore(ctx context.Context, id string) (models.AccountView, error) {
	return h.account(h.authedRequest(ctx).SetPathParam("id", id), "POST", "/api/accounts/{id}/restore")
}

func (h *httpAccountsClient) Version(ctx context.Context) (models.VersionResponse, error) {
	var out models.VersionResponse

	resp, err := h.client.R().SetContext(ctx).SetResult(&out).Get("/api/version")
	if err != nil {
		return models.VersionResponse{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VersionResponse{}, err
	}

	return out, nil
}

// account executes req and decodes an [models.AccountView] answer.
func (h *httpAccountsClient) account(req *resty.Request, method, path string) (models.AccountView, error) {
	var out models.AccountView

	resp, err := req.SetResult(&out).Execute(method, path)
	if err != nil {
		return models.AccountView{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountView{}, err
	}

	return out, nil
}

func (h *httpAccountsClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
