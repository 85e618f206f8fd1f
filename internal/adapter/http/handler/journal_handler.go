package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tradejournal/internal/adapter/http/dto"
	"github.com/iho/tradejournal/internal/adapter/http/middleware"
	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/usecase"
)

// JournalService defines the behavior needed by JournalHandler.
type JournalService interface {
	CreateJournal(ctx context.Context, input usecase.CreateJournalInput) (*domain.Journal, error)
	GetJournal(ctx context.Context, userID, journalID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, userID string) ([]*domain.Journal, error)
	DeleteJournal(ctx context.Context, userID, journalID string) error
}

// JournalHandler handles journal-related HTTP requests.
type JournalHandler struct {
	journalUC JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalUC JournalService) *JournalHandler {
	return &JournalHandler{journalUC: journalUC}
}

// Create creates a new journal for the authenticated user.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	journal, err := h.journalUC.CreateJournal(r.Context(), req.ToUseCaseInput(user.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create journal", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.JournalFromDomain(journal))
}

// Get retrieves a journal with its trades.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing journal ID", "")
		return
	}

	journal, err := h.journalUC.GetJournal(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get journal", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalFromDomain(journal))
}

// List lists the authenticated user's journals.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	journals, err := h.journalUC.ListJournals(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list journals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListJournalsResponse{
		Journals: dto.JournalsFromDomain(journals),
		Total:    int64(len(journals)),
	})
}

// Delete deletes a journal and all of its trades.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing journal ID", "")
		return
	}

	if err := h.journalUC.DeleteJournal(r.Context(), user.ID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete journal", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
