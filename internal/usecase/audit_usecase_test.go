package usecase_test

import (
	"context"
	"testing"

	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/usecase"
	"github.com/iho/tradejournal/internal/usecase/mocks"
)

func seedAuditLogs(repo *mocks.MockAuditRepository) {
	entries := []*domain.AuditLog{
		{ID: "a-1", UserID: "user-1", Action: string(domain.AuditActionJournalCreate), ResourceType: "journal", ResourceID: "j-1"},
		{ID: "a-2", UserID: "user-1", Action: string(domain.AuditActionTradeRecord), ResourceType: "trade", ResourceID: "t-1"},
		{ID: "a-3", UserID: "user-1", Action: string(domain.AuditActionTradeRecord), ResourceType: "trade", ResourceID: "t-2"},
		{ID: "a-4", UserID: "user-2", Action: string(domain.AuditActionJournalCreate), ResourceType: "journal", ResourceID: "j-9"},
	}
	for _, e := range entries {
		_ = repo.Create(context.Background(), e)
	}
}

func TestAuditUseCase_ListScopedToUser(t *testing.T) {
	auditRepo := mocks.NewMockAuditRepository()
	seedAuditLogs(auditRepo)
	uc := usecase.NewAuditUseCase(auditRepo)

	logs, err := uc.ListAuditLogs(context.Background(), "user-1", usecase.ListAuditLogsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(logs) != 3 {
		t.Fatalf("expected 3 entries for user-1, got %d", len(logs))
	}
	for _, l := range logs {
		if l.UserID != "user-1" {
			t.Fatalf("foreign audit entry leaked: %+v", l)
		}
	}
}

func TestAuditUseCase_ListFiltersByAction(t *testing.T) {
	auditRepo := mocks.NewMockAuditRepository()
	seedAuditLogs(auditRepo)
	uc := usecase.NewAuditUseCase(auditRepo)

	logs, err := uc.ListAuditLogs(context.Background(), "user-1", usecase.ListAuditLogsInput{
		Action: string(domain.AuditActionTradeRecord),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(logs) != 2 {
		t.Fatalf("expected 2 trade entries, got %d", len(logs))
	}
}

func TestAuditUseCase_ListBoundsPageSize(t *testing.T) {
	auditRepo := mocks.NewMockAuditRepository()
	seedAuditLogs(auditRepo)
	uc := usecase.NewAuditUseCase(auditRepo)

	logs, err := uc.ListAuditLogs(context.Background(), "user-1", usecase.ListAuditLogsInput{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 1 || logs[0].ID != "a-2" {
		t.Fatalf("expected the second entry only, got %+v", logs)
	}

	var captured domain.AuditFilter
	auditRepo.ListFunc = func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
		captured = filter
		return nil, nil
	}

	if _, err := uc.ListAuditLogs(context.Background(), "user-1", usecase.ListAuditLogsInput{Limit: 10_000, Offset: -3}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if captured.Limit != usecase.MaxAuditPageSize || captured.Offset != 0 {
		t.Fatalf("expected clamped paging, got limit=%d offset=%d", captured.Limit, captured.Offset)
	}
	if captured.UserID != "user-1" {
		t.Fatalf("expected user scope to be enforced, got %q", captured.UserID)
	}
}
