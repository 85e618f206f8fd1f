package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/infrastructure/auth"
)

func TestAuthMiddlewareValidToken(t *testing.T) {
	jwtManager := auth.NewJWTManager("middleware-test-secret", time.Hour)

	var captured *domain.User
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok {
			t.Fatal("expected user in context")
		}
		captured = user
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(jwtManager)(inner)

	token, err := jwtManager.Generate(&domain.User{ID: "user-1", Email: "trader@example.com"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journals", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured == nil || captured.ID != "user-1" || captured.Email != "trader@example.com" {
		t.Fatalf("unexpected user in context: %+v", captured)
	}
}

func TestAuthMiddlewareRejects(t *testing.T) {
	jwtManager := auth.NewJWTManager("middleware-test-secret", time.Hour)
	handler := AuthMiddleware(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc123"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/journals", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	expiredManager := auth.NewJWTManager("middleware-test-secret", -time.Hour)
	token, err := expiredManager.Generate(&domain.User{ID: "user-1", Email: "trader@example.com"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	jwtManager := auth.NewJWTManager("middleware-test-secret", time.Hour)
	handler := AuthMiddleware(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journals", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
