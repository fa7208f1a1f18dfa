package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/natsalete/Password-Generator/internal/config"
	"github.com/natsalete/Password-Generator/internal/crypto"
	"github.com/natsalete/Password-Generator/internal/metrics"
	"github.com/natsalete/Password-Generator/internal/model"
	"github.com/natsalete/Password-Generator/internal/repository"
	"github.com/natsalete/Password-Generator/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type memAccounts struct {
	mu       sync.Mutex
	accounts []model.Account
}

func (m *memAccounts) Create(_ context.Context, a *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.Email == a.Email {
			return repository.ErrDuplicateEmail
		}
	}
	a.ID = int64(len(m.accounts) + 1)
	m.accounts = append(m.accounts, *a)
	return nil
}

func (m *memAccounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (m *memAccounts) GetByID(_ context.Context, id int64) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

type memPreferences struct {
	mu   sync.Mutex
	data map[int64]model.Preferences
}

func (m *memPreferences) Get(_ context.Context, id int64) (*model.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.data[id]
	if !ok {
		return nil, repository.ErrPreferencesNotFound
	}
	return &p, nil
}

func (m *memPreferences) Upsert(_ context.Context, p *model.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *p
	stored.UpdatedAt = time.Now().UTC()
	m.data[p.AccountID] = stored
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	exporter := metrics.New(&metrics.Exporter{Username: "scraper", Password: "pw"})
	gen := service.NewGeneratorService(config.DefaultGeneratorLimits(), exporter)
	accounts := service.NewAccountService(&memAccounts{}, testSecret, time.Hour)
	prefs := service.NewPreferencesService(&memPreferences{data: map[int64]model.Preferences{}}, gen)

	return NewRouter(RouterConfig{
		Generator:      NewGeneratorHandler(gen),
		Accounts:       NewAccountHandler(accounts),
		Preferences:    NewPreferencesHandler(prefs),
		Metrics:        exporter.Handler(),
		JWTSecret:      testSecret,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	})
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHandleGenerate(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantLength int
		wantError  string
	}{
		{name: "empty body uses defaults", body: "", wantStatus: http.StatusOK, wantLength: 16},
		{name: "explicit length", body: `{"length": 24}`, wantStatus: http.StatusOK, wantLength: 24},
		{name: "digits only", body: `{"length": 8, "uppercase": false, "lowercase": false, "symbols": false}`, wantStatus: http.StatusOK, wantLength: 8},
		{
			name:       "no class selected",
			body:       `{"uppercase": false, "lowercase": false, "digits": false, "symbols": false}`,
			wantStatus: http.StatusBadRequest,
			wantError:  crypto.ErrNoClassSelected.Error(),
		},
		{name: "length out of range", body: `{"length": 100}`, wantStatus: http.StatusBadRequest, wantError: "password length out of range: must be between 4 and 32"},
		{name: "malformed json", body: `{"length":`, wantStatus: http.StatusBadRequest, wantError: "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/generate", tt.body, "")
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decode[map[string]string](t, rec)["error"])
				return
			}

			resp := decode[model.GenerateResponse](t, rec)
			assert.Equal(t, tt.wantLength, resp.Length)
			assert.Len(t, resp.Password, tt.wantLength)
			assert.Equal(t, crypto.Rate(resp.Password), resp.Strength)
		})
	}
}

func TestHandleGenerateExcludeSimilar(t *testing.T) {
	h := newTestRouter(t)

	for i := 0; i < 20; i++ {
		rec := do(t, h, http.MethodPost, "/api/v1/generate", `{"length": 32, "exclude_similar": true}`, "")
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[model.GenerateResponse](t, rec)
		assert.False(t, strings.ContainsAny(resp.Password, "il1Lo0O"), resp.Password)
	}
}

func TestHandleGenerateBodyTooLarge(t *testing.T) {
	body := `{"length": 16, "pad": "` + strings.Repeat("x", maxBodyBytes) + `"}`
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/v1/generate", body, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandleStrength(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/strength", `{"password": "Aa1!aaaa"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[crypto.Strength](t, rec)
	assert.Equal(t, crypto.Strength{Score: 4, Percent: 100, Label: crypto.LabelStrong, Color: "#27AE60"}, resp)

	rec = do(t, h, http.MethodPost, "/api/v1/strength", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodPost, "/api/v1/generate", "", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.SetBasicAuth("scraper", "pw")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `passgen_generations_total{outcome="generated"} 1`)
}

func register(t *testing.T, h http.Handler, email string) model.SessionResponse {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/auth/register", `{"email": "`+email+`", "password": "pw"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.SessionResponse](t, rec)
}

func TestAccountFlow(t *testing.T) {
	h := newTestRouter(t)
	session := register(t, h, "user@example.com")

	rec := do(t, h, http.MethodPost, "/api/v1/auth/register", `{"email": "user@example.com", "password": "pw"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/auth/register", `{"email": "", "password": "pw"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/auth/login", `{"email": "user@example.com", "password": "nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/auth/login", `{"email": "user@example.com", "password": "pw"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/auth/me", "", session.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user@example.com", decode[model.AccountResponse](t, rec).Email)

	rec = do(t, h, http.MethodGet, "/api/v1/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPreferencesFlow(t *testing.T) {
	h := newTestRouter(t)
	token := register(t, h, "prefs@example.com").Token

	rec := do(t, h, http.MethodGet, "/api/v1/preferences", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[model.PreferencesResponse](t, rec).Saved)

	rec = do(t, h, http.MethodPut, "/api/v1/preferences", `{"length": 10, "digits": true}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decode[model.PreferencesResponse](t, rec)
	assert.True(t, saved.Saved)
	assert.Equal(t, 10, saved.Length)

	rec = do(t, h, http.MethodPut, "/api/v1/preferences", `{"length": 10}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/preferences/generate", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[model.GenerateResponse](t, rec)
	assert.Len(t, resp.Password, 10)
	assert.Regexp(t, `^[0-9]+$`, resp.Password)

	rec = do(t, h, http.MethodPost, "/api/v1/preferences/generate", `{"length": 12}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[model.GenerateResponse](t, rec).Password, 12)

	rec = do(t, h, http.MethodGet, "/api/v1/preferences", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterWithoutAccounts(t *testing.T) {
	gen := service.NewGeneratorService(config.DefaultGeneratorLimits(), nil)
	h := NewRouter(RouterConfig{
		Generator:      NewGeneratorHandler(gen),
		RateLimitRPS:   10,
		RateLimitBurst: 10,
	})

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/generate", "", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/v1/auth/login", `{}`, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/preferences", "", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/metrics", "", "").Code)
}
