package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tradejournal/internal/adapter/http/dto"
	"github.com/iho/tradejournal/internal/adapter/http/middleware"
	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/usecase"
)

// TradeService defines the behavior needed by TradeHandler.
type TradeService interface {
	RecordTrade(ctx context.Context, input usecase.RecordTradeInput) (*domain.Trade, error)
	UpdateTrade(ctx context.Context, tradeID string, input usecase.RecordTradeInput) (*domain.Trade, error)
	DeleteTrade(ctx context.Context, userID, tradeID string) error
	ListTrades(ctx context.Context, userID, journalID string) ([]domain.Trade, error)
	ListTradesByDay(ctx context.Context, userID, journalID string, day time.Time) ([]domain.Trade, error)
}

// TradeHandler handles trade-related HTTP requests.
type TradeHandler struct {
	tradeUC TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeUC TradeService) *TradeHandler {
	return &TradeHandler{tradeUC: tradeUC}
}

// Record records a trade against a journal.
func (h *TradeHandler) Record(w http.ResponseWriter, r *http.Request) {
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

	var req dto.RecordTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	trade, err := h.tradeUC.RecordTrade(r.Context(), req.ToUseCaseInput(user.ID, journalID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record trade", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TradeFromDomain(trade, domain.DefaultCurrency))
}

// List lists a journal's trades, optionally filtered to one day.
func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
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

	var (
		trades []domain.Trade
		err    error
	)
	if dayStr := r.URL.Query().Get("day"); dayStr != "" {
		day, parseErr := time.Parse("2006-01-02", dayStr)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "invalid 'day' format (use YYYY-MM-DD)", parseErr.Error())
			return
		}
		trades, err = h.tradeUC.ListTradesByDay(r.Context(), user.ID, journalID, day)
	} else {
		trades, err = h.tradeUC.ListTrades(r.Context(), user.ID, journalID)
	}
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list trades", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTradesResponse{
		Trades: dto.TradesFromDomain(trades, domain.DefaultCurrency),
		Total:  int64(len(trades)),
	})
}

// Update replaces a trade's recorded fields.
func (h *TradeHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	tradeID := chi.URLParam(r, "id")
	if tradeID == "" {
		writeError(w, http.StatusBadRequest, "missing trade ID", "")
		return
	}

	var req dto.RecordTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	trade, err := h.tradeUC.UpdateTrade(r.Context(), tradeID, req.ToUseCaseInput(user.ID, ""))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update trade", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TradeFromDomain(trade, domain.DefaultCurrency))
}

// Delete removes a trade.
func (h *TradeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	tradeID := chi.URLParam(r, "id")
	if tradeID == "" {
		writeError(w, http.StatusBadRequest, "missing trade ID", "")
		return
	}

	if err := h.tradeUC.DeleteTrade(r.Context(), user.ID, tradeID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete trade", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
