package usecase

import (
	"context"

	"github.com/iho/tradejournal/internal/domain"
)

// Audit listing page size bounds.
const (
	DefaultAuditPageSize = 50
	MaxAuditPageSize     = 500
)

// AuditUseCase serves the audit trail of a single user.
type AuditUseCase struct {
	auditRepo AuditRepository
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(auditRepo AuditRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// ListAuditLogsInput narrows an audit trail listing. Zero values leave
// the corresponding filter open.
type ListAuditLogsInput struct {
	Action       string
	ResourceType string
	ResourceID   string
	Limit        int
	Offset       int
}

// ListAuditLogs returns the user's own audit trail, newest first. The
// user scope is always enforced; callers cannot read other trails.
func (uc *AuditUseCase) ListAuditLogs(ctx context.Context, userID string, input ListAuditLogsInput) ([]*domain.AuditLog, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultAuditPageSize
	}
	if limit > MaxAuditPageSize {
		limit = MaxAuditPageSize
	}

	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	return uc.auditRepo.List(ctx, domain.AuditFilter{
		UserID:       userID,
		Action:       input.Action,
		ResourceType: input.ResourceType,
		ResourceID:   input.ResourceID,
		Limit:        limit,
		Offset:       offset,
	})
}
