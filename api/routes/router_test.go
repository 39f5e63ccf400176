package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/timeeasy/backend/internal/auth"
	"github.com/timeeasy/backend/internal/records"
	"github.com/timeeasy/backend/internal/users"
	pkgAuth "github.com/timeeasy/backend/pkg/auth"
	"github.com/timeeasy/backend/pkg/config"
	"github.com/timeeasy/backend/pkg/metrics"
	"github.com/timeeasy/backend/pkg/pagination"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubRedis struct {
	counts map[string]int64
	err    error
}

func (s *stubRedis) Ping(context.Context) error { return s.err }

func (s *stubRedis) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[key]++
	return s.counts[key], s.err
}

type stubSessionManager struct {
	has bool
}

func (s stubSessionManager) HasSession(context.Context, string) (bool, error) { return s.has, nil }

func (s stubSessionManager) Rotate(context.Context, string, string) (string, string, error) {
	return "new-access-id", "new-refresh-token", nil
}

func (s stubSessionManager) Revoke(context.Context, string) error { return nil }

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "a", RefreshToken: "r"}, nil
}

func (stubAuthService) Me(_ context.Context, userID uint) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID, Name: "alice"}, nil
}

type stubRegisterService struct{}

func (stubRegisterService) Register(context.Context, auth.RegisterRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "a", RefreshToken: "r"}, nil
}

type stubRecordsService struct{}

func (stubRecordsService) Create(context.Context, uint, records.RecordPayload) (*records.RecordDTO, error) {
	return &records.RecordDTO{ID: 1}, nil
}

func (stubRecordsService) List(context.Context, records.ListQuery) (*pagination.Envelope, error) {
	return &pagination.Envelope{Page: 1, PerPage: 10, Data: []*records.RecordDTO{}}, nil
}

func (stubRecordsService) Update(context.Context, uint, records.RecordPayload) (*records.RecordDTO, error) {
	return &records.RecordDTO{ID: 1}, nil
}

func (stubRecordsService) Delete(context.Context, uint) error { return nil }

func testConfig(authMode string) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Env:      "test",
			Port:     "8080",
			AuthMode: authMode,
		},
		JWT: config.JWTConfig{
			Secret:                 "router-test-secret",
			Issuer:                 "timeeasy-test",
			ExpirationMinutes:      15,
			RefreshTokenTTLMinutes: 60,
		},
		AuthRateLimit: config.AuthRateLimitConfig{
			LoginWindow:        time.Minute,
			LoginEmailLimit:    5,
			LoginIPLimit:       20,
			RegisterWindow:     5 * time.Minute,
			RegisterEmailLimit: 3,
			RegisterIPLimit:    20,
		},
	}
}

func newTestRouter(t *testing.T, authMode string) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewRouter(RouterParams{
		Config:          testConfig(authMode),
		Logger:          nil,
		DB:              stubPinger{},
		Redis:           &stubRedis{},
		SessionManager:  stubSessionManager{has: true},
		AuthService:     stubAuthService{},
		Register:        stubRegisterService{},
		Records:         stubRecordsService{},
		Metrics:         metrics.NewHTTPMetrics(reg),
		MetricsGatherer: reg,
	})
}

func TestRouterLivenessAndMetrics(t *testing.T) {
	router := newTestRouter(t, config.AuthModeToken)

	for _, path := range []string{"/test", "/healthz", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestRouterTokenModeGatesRecordRoutes(t *testing.T) {
	router := newTestRouter(t, config.AuthModeToken)

	req := httptest.NewRequest(http.MethodGet, "/api/user_leave_overtime/list", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without bearer token, got %d", resp.Code)
	}

	token, err := pkgAuth.MintAccessToken(testConfig(config.AuthModeToken).JWT, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: 3,
		Name:   "alice",
		JTI:    "access-id-1",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/user_leave_overtime/list", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRouterOpenModeSkipsGate(t *testing.T) {
	router := newTestRouter(t, config.AuthModeOpen)

	req := httptest.NewRequest(http.MethodGet, "/api/user_leave_overtime/list?user_id=3", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 in open mode, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRouterLoginRateLimit(t *testing.T) {
	store := &stubRedis{}
	reg := prometheus.NewRegistry()
	cfg := testConfig(config.AuthModeToken)
	cfg.AuthRateLimit.LoginIPLimit = 2
	router := NewRouter(RouterParams{
		Config:         cfg,
		DB:             stubPinger{},
		Redis:          store,
		SessionManager: stubSessionManager{has: true},
		AuthService:    stubAuthService{},
		Register:       stubRegisterService{},
		Records:        stubRecordsService{},
		Metrics:        metrics.NewHTTPMetrics(reg),
	})

	body := `{"email":"alice@example.com","password":"hunter2secret"}`
	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "10.0.0.9:1234"
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		last = resp.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after exceeding limit, got %d", last)
	}
}
