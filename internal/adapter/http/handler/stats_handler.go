package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tradejournal/internal/adapter/http/dto"
	"github.com/iho/tradejournal/internal/adapter/http/middleware"
	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/usecase"
)

// StatsService defines the behavior needed by StatsHandler.
type StatsService interface {
	Calendar(ctx context.Context, userID, journalID string, month time.Time) (*usecase.CalendarMonth, error)
	MonthStats(ctx context.Context, userID, journalID string, month time.Time) (domain.MonthStats, error)
	Dashboard(ctx context.Context, userID, journalID string) (*usecase.Dashboard, error)
}

// StatsHandler handles calendar, stats and dashboard requests.
type StatsHandler struct {
	statsUC StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsUC StatsService) *StatsHandler {
	return &StatsHandler{statsUC: statsUC}
}

// Calendar returns the month grid for a journal.
func (h *StatsHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	journalID := chi.URLParam(r, "id")
	if journalID == "" {
		writeError(w, http.StatusBadRequest, "missing journal ID", "")
		return
	}

	month, err := parseMonthQuery(r, "month")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'month' format (use YYYY-MM)", err.Error())
		return
	}

	currency, err := parseCurrencyQuery(r, "currency")
	if err != nil {
		writeError(w, mapDomainError(err), "invalid 'currency' code", err.Error())
		return
	}

	cal, err := h.statsUC.Calendar(r.Context(), user.ID, journalID, month)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build calendar", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CalendarFromUseCase(cal, currency))
}

// MonthStats returns statistics for one month of a journal.
func (h *StatsHandler) MonthStats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	journalID := chi.URLParam(r, "id")
	if journalID == "" {
		writeError(w, http.StatusBadRequest, "missing journal ID", "")
		return
	}

	month, err := parseMonthQuery(r, "month")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'month' format (use YYYY-MM)", err.Error())
		return
	}

	currency, err := parseCurrencyQuery(r, "currency")
	if err != nil {
		writeError(w, mapDomainError(err), "invalid 'currency' code", err.Error())
		return
	}

	stats, err := h.statsUC.MonthStats(r.Context(), user.ID, journalID, month)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthStatsFromDomain(stats, currency))
}

// Dashboard returns the all-time overview for a journal.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	journalID := chi.URLParam(r, "id")
	if journalID == "" {
		writeError(w, http.StatusBadRequest, "missing journal ID", "")
		return
	}

	currency, err := parseCurrencyQuery(r, "currency")
	if err != nil {
		writeError(w, mapDomainError(err), "invalid 'currency' code", err.Error())
		return
	}

	dash, err := h.statsUC.Dashboard(r.Context(), user.ID, journalID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build dashboard", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DashboardFromUseCase(dash, currency))
}
