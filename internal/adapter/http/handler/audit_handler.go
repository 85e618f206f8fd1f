package handler

import (
	"context"
	"net/http"

	"github.com/iho/tradejournal/internal/adapter/http/dto"
	"github.com/iho/tradejournal/internal/adapter/http/middleware"
	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/usecase"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	ListAuditLogs(ctx context.Context, userID string, input usecase.ListAuditLogsInput) ([]*domain.AuditLog, error)
}

// AuditHandler serves the authenticated user's audit trail.
type AuditHandler struct {
	auditUC AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC AuditService) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// List returns the user's audit trail, filtered by the optional
// action, resource_type, resource_id, limit and offset parameters.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	query := r.URL.Query()
	logs, err := h.auditUC.ListAuditLogs(r.Context(), user.ID, usecase.ListAuditLogsInput{
		Action:       query.Get("action"),
		ResourceType: query.Get("resource_type"),
		ResourceID:   query.Get("resource_id"),
		Limit:        parseIntQuery(r, "limit", usecase.DefaultAuditPageSize),
		Offset:       parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list audit logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAuditLogsResponse{
		Logs:  dto.AuditLogsFromDomain(logs),
		Total: int64(len(logs)),
	})
}
