package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/tradejournal/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	testCases := []struct {
		err      error
		expected int
	}{
		{domain.ErrJournalNotFound, http.StatusNotFound},
		{domain.ErrTradeNotFound, http.StatusNotFound},
		{domain.ErrNotJournalOwner, http.StatusForbidden},
		{domain.ErrFutureTradeDate, http.StatusBadRequest},
		{domain.ErrInvalidSymbol, http.StatusBadRequest},
		{domain.ErrInvalidCurrency, http.StatusBadRequest},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrUserInactive, http.StatusForbidden},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		if got := mapDomainError(tc.err); got != tc.expected {
			t.Errorf("mapDomainError(%v) = %d, expected %d", tc.err, got, tc.expected)
		}
	}
}

func TestMapDomainError_WrappedError(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrFutureTradeDate)
	if got := mapDomainError(wrapped); got != http.StatusBadRequest {
		t.Fatalf("expected wrapped error to map to 400, got %d", got)
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=50&bad=abc", nil)

	if got := parseIntQuery(req, "limit", 20); got != 50 {
		t.Errorf("expected 50, got %d", got)
	}
	if got := parseIntQuery(req, "missing", 20); got != 20 {
		t.Errorf("expected default 20, got %d", got)
	}
	if got := parseIntQuery(req, "bad", 20); got != 20 {
		t.Errorf("expected default for unparseable value, got %d", got)
	}
}

func TestParseCurrencyQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?currency=eur", nil)
	currency, err := parseCurrencyQuery(req, "currency")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if currency != "EUR" {
		t.Errorf("expected EUR, got %s", currency)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	currency, err = parseCurrencyQuery(req, "currency")
	if err != nil || currency != domain.DefaultCurrency {
		t.Errorf("missing currency should default to USD, got %s (%v)", currency, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/?currency=DOGE", nil)
	if _, err := parseCurrencyQuery(req, "currency"); !errors.Is(err, domain.ErrInvalidCurrency) {
		t.Errorf("expected ErrInvalidCurrency, got %v", err)
	}
}

func TestParseMonthQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?month=2026-08", nil)
	month, err := parseMonthQuery(req, "month")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if month.Format("2006-01") != "2026-08" {
		t.Errorf("expected 2026-08, got %s", month)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := parseMonthQuery(req, "month"); err != nil {
		t.Errorf("missing month should default, got error %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/?month=August", nil)
	if _, err := parseMonthQuery(req, "month"); err == nil {
		t.Error("expected error for unparseable month")
	}
}
