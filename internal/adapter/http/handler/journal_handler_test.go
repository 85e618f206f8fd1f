package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/tradejournal/internal/adapter/http/dto"
	"github.com/iho/tradejournal/internal/adapter/http/middleware"
	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/usecase"
)

type journalServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateJournalInput) (*domain.Journal, error)
	getFn    func(ctx context.Context, userID, journalID string) (*domain.Journal, error)
	listFn   func(ctx context.Context, userID string) ([]*domain.Journal, error)
	deleteFn func(ctx context.Context, userID, journalID string) error
}

func (s *journalServiceStub) CreateJournal(ctx context.Context, input usecase.CreateJournalInput) (*domain.Journal, error) {
	return s.createFn(ctx, input)
}

func (s *journalServiceStub) GetJournal(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
	return s.getFn(ctx, userID, journalID)
}

func (s *journalServiceStub) ListJournals(ctx context.Context, userID string) ([]*domain.Journal, error) {
	return s.listFn(ctx, userID)
}

func (s *journalServiceStub) DeleteJournal(ctx context.Context, userID, journalID string) error {
	return s.deleteFn(ctx, userID, journalID)
}

func withUser(r *http.Request, userID string) *http.Request {
	user := &domain.User{ID: userID, Email: userID + "@example.com"}
	return r.WithContext(context.WithValue(r.Context(), middleware.UserContextKey, user))
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}

func TestJournalHandler_Create_Success(t *testing.T) {
	journal := &domain.Journal{
		ID:             "j-1",
		UserID:         "user-1",
		Name:           "Futures",
		InitialBalance: decimal.NewFromInt(5000),
	}

	var captured usecase.CreateJournalInput
	handler := NewJournalHandler(&journalServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateJournalInput) (*domain.Journal, error) {
			captured = input
			return journal, nil
		},
	})

	body := []byte(`{"name":"Futures","initial_balance":5000}`)
	req := withUser(httptest.NewRequest(http.MethodPost, "/journals", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.UserID != "user-1" || captured.Name != "Futures" {
		t.Fatalf("expected input to carry authenticated user, got %+v", captured)
	}
	if !captured.InitialBalance.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("expected initial balance 5000, got %s", captured.InitialBalance)
	}

	var resp dto.JournalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "j-1" {
		t.Fatalf("expected journal ID j-1, got %s", resp.ID)
	}
}

func TestJournalHandler_Create_MalformedBalanceCoercesToZero(t *testing.T) {
	var captured usecase.CreateJournalInput
	handler := NewJournalHandler(&journalServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateJournalInput) (*domain.Journal, error) {
			captured = input
			return &domain.Journal{ID: "j-1"}, nil
		},
	})

	body := []byte(`{"name":"Futures","initial_balance":"garbage"}`)
	req := withUser(httptest.NewRequest(http.MethodPost, "/journals", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !captured.InitialBalance.IsZero() {
		t.Fatalf("malformed balance should coerce to zero, got %s", captured.InitialBalance)
	}
}

func TestJournalHandler_Create_Unauthenticated(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateJournalInput) (*domain.Journal, error) {
			t.Fatal("CreateJournal should not be called without a user")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/journals", bytes.NewBufferString(`{"name":"x"}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJournalHandler_Get_NotOwner(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{
		getFn: func(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
			return nil, domain.ErrNotJournalOwner
		},
	})

	req := withUser(httptest.NewRequest(http.MethodGet, "/journals/j-1", nil), "intruder")
	req = setChiURLParam(req, "id", "j-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestJournalHandler_List_Success(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{
		listFn: func(ctx context.Context, userID string) ([]*domain.Journal, error) {
			return []*domain.Journal{
				{ID: "j-1", UserID: userID, Name: "Futures"},
				{ID: "j-2", UserID: userID, Name: "Options"},
			}, nil
		},
	})

	req := withUser(httptest.NewRequest(http.MethodGet, "/journals", nil), "user-1")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListJournalsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Journals) != 2 || resp.Total != 2 {
		t.Fatalf("expected 2 journals, got %+v", resp)
	}
}

func TestJournalHandler_Delete_Success(t *testing.T) {
	var deletedID string
	handler := NewJournalHandler(&journalServiceStub{
		deleteFn: func(ctx context.Context, userID, journalID string) error {
			deletedID = journalID
			return nil
		},
	})

	req := withUser(httptest.NewRequest(http.MethodDelete, "/journals/j-1", nil), "user-1")
	req = setChiURLParam(req, "id", "j-1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deletedID != "j-1" {
		t.Fatalf("expected j-1 deleted, got %q", deletedID)
	}
}

func TestJournalHandler_Delete_NotFound(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{
		deleteFn: func(ctx context.Context, userID, journalID string) error {
			return domain.ErrJournalNotFound
		},
	})

	req := withUser(httptest.NewRequest(http.MethodDelete, "/journals/missing", nil), "user-1")
	req = setChiURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
