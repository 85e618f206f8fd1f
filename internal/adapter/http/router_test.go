package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tradejournal/internal/adapter/http/handler"
	apimiddleware "github.com/iho/tradejournal/internal/adapter/http/middleware"
	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/infrastructure/auth"
	"github.com/iho/tradejournal/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_ProtectedRoutesRequireToken(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/journals/", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestNewRouter_BearerTokenGrantsAccess(t *testing.T) {
	jwtManager := auth.NewJWTManager("router-test-secret", time.Minute)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.JWTManager = jwtManager
	}))

	token, err := jwtManager.Generate(&domain.User{ID: "user-1", Email: "trader@example.com"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/journals/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"email":"trader@example.com","password":"correct horse battery"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/me",
		"POST /api/v1/journals/",
		"GET /api/v1/journals/",
		"GET /api/v1/journals/{id}",
		"DELETE /api/v1/journals/{id}",
		"POST /api/v1/journals/{id}/trades",
		"GET /api/v1/journals/{id}/trades",
		"GET /api/v1/journals/{id}/calendar",
		"GET /api/v1/journals/{id}/stats",
		"GET /api/v1/journals/{id}/dashboard",
		"PUT /api/v1/trades/{id}",
		"DELETE /api/v1/trades/{id}",
		"GET /api/v1/audit",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	jwtManager := auth.NewJWTManager("router-test-secret", time.Minute)

	cfg := RouterConfig{
		AuthHandler:    handler.NewAuthHandler(&stubUserService{}, jwtManager),
		JournalHandler: handler.NewJournalHandler(&stubJournalService{}),
		TradeHandler:   handler.NewTradeHandler(&stubTradeService{}),
		StatsHandler:   handler.NewStatsHandler(&stubStatsService{}),
		AuditHandler:   handler.NewAuditHandler(&stubAuditService{}),
		HealthHandler:  &handler.HealthHandler{},
		JWTManager:     jwtManager,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubUserService struct{}

func (stubUserService) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	return &domain.User{ID: "user-1", Email: input.Email}, nil
}

func (stubUserService) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
	return &domain.User{ID: "user-1", Email: input.Email}, nil
}

func (stubUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}

type stubJournalService struct{}

func (stubJournalService) CreateJournal(ctx context.Context, input usecase.CreateJournalInput) (*domain.Journal, error) {
	return &domain.Journal{ID: "j-1", UserID: input.UserID}, nil
}

func (stubJournalService) GetJournal(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
	return &domain.Journal{ID: journalID, UserID: userID}, nil
}

func (stubJournalService) ListJournals(ctx context.Context, userID string) ([]*domain.Journal, error) {
	return []*domain.Journal{}, nil
}

func (stubJournalService) DeleteJournal(ctx context.Context, userID, journalID string) error {
	return nil
}

type stubTradeService struct{}

func (stubTradeService) RecordTrade(ctx context.Context, input usecase.RecordTradeInput) (*domain.Trade, error) {
	return &domain.Trade{ID: "t-1"}, nil
}

func (stubTradeService) UpdateTrade(ctx context.Context, tradeID string, input usecase.RecordTradeInput) (*domain.Trade, error) {
	return &domain.Trade{ID: tradeID}, nil
}

func (stubTradeService) DeleteTrade(ctx context.Context, userID, tradeID string) error {
	return nil
}

func (stubTradeService) ListTrades(ctx context.Context, userID, journalID string) ([]domain.Trade, error) {
	return []domain.Trade{}, nil
}

func (stubTradeService) ListTradesByDay(ctx context.Context, userID, journalID string, day time.Time) ([]domain.Trade, error) {
	return []domain.Trade{}, nil
}

type stubStatsService struct{}

func (stubStatsService) Calendar(ctx context.Context, userID, journalID string, month time.Time) (*usecase.CalendarMonth, error) {
	return &usecase.CalendarMonth{Month: month}, nil
}

func (stubStatsService) MonthStats(ctx context.Context, userID, journalID string, month time.Time) (domain.MonthStats, error) {
	return domain.MonthStats{}, nil
}

func (stubStatsService) Dashboard(ctx context.Context, userID, journalID string) (*usecase.Dashboard, error) {
	return &usecase.Dashboard{JournalID: journalID}, nil
}

type stubAuditService struct{}

func (stubAuditService) ListAuditLogs(ctx context.Context, userID string, input usecase.ListAuditLogsInput) ([]*domain.AuditLog, error) {
	return []*domain.AuditLog{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
