package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/usecase"
	"github.com/iho/tradejournal/internal/usecase/mocks"
)

func newJournalUseCase(
	journalRepo *mocks.MockJournalRepository,
	outboxRepo *mocks.MockOutboxRepository,
	auditRepo *mocks.MockAuditRepository,
	cache *mocks.MockCache,
) *usecase.JournalUseCase {
	return usecase.NewJournalUseCase(
		mocks.NewMockTxManager(),
		journalRepo,
		outboxRepo,
		auditRepo,
		cache,
		mocks.NewMockIDGenerator(),
		nil,
	)
}

func TestJournalUseCase_CreateJournal(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateJournalInput
		setupMocks  func(*mocks.MockJournalRepository)
		expectError bool
	}{
		{
			name: "successful creation",
			input: usecase.CreateJournalInput{
				UserID:         "user-1",
				Name:           "Futures",
				InitialBalance: decimal.NewFromInt(10000),
			},
		},
		{
			name: "negative initial balance is permitted",
			input: usecase.CreateJournalInput{
				UserID:         "user-1",
				Name:           "Margin",
				InitialBalance: decimal.NewFromInt(-500),
			},
		},
		{
			name: "empty name rejected",
			input: usecase.CreateJournalInput{
				UserID: "user-1",
				Name:   "   ",
			},
			expectError: true,
		},
		{
			name: "repository error surfaces",
			input: usecase.CreateJournalInput{
				UserID: "user-1",
				Name:   "Futures",
			},
			setupMocks: func(repo *mocks.MockJournalRepository) {
				repo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, journal *domain.Journal) error {
					return errors.New("insert failed")
				}
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journalRepo := mocks.NewMockJournalRepository()
			outboxRepo := mocks.NewMockOutboxRepository()
			auditRepo := mocks.NewMockAuditRepository()
			if tt.setupMocks != nil {
				tt.setupMocks(journalRepo)
			}

			uc := newJournalUseCase(journalRepo, outboxRepo, auditRepo, mocks.NewMockCache())
			journal, err := uc.CreateJournal(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if journal.Name != tt.input.Name {
				t.Errorf("expected name %q, got %q", tt.input.Name, journal.Name)
			}
			if !journal.InitialBalance.Equal(tt.input.InitialBalance) {
				t.Errorf("expected balance %s, got %s", tt.input.InitialBalance, journal.InitialBalance)
			}
			if len(outboxRepo.Events) != 1 || outboxRepo.Events[0].EventType != domain.EventTypeJournalCreated {
				t.Errorf("expected one journal.created event, got %+v", outboxRepo.Events)
			}
			if len(auditRepo.Logs) != 1 {
				t.Errorf("expected one audit log, got %d", len(auditRepo.Logs))
			}
		})
	}
}

func TestJournalUseCase_DeleteJournal_OwnershipEnforced(t *testing.T) {
	journalRepo := mocks.NewMockJournalRepository()
	_ = journalRepo.Create(context.Background(), nil, &domain.Journal{ID: "j-1", UserID: "owner"})

	uc := newJournalUseCase(journalRepo, mocks.NewMockOutboxRepository(), mocks.NewMockAuditRepository(), mocks.NewMockCache())

	if err := uc.DeleteJournal(context.Background(), "intruder", "j-1"); !errors.Is(err, domain.ErrNotJournalOwner) {
		t.Fatalf("expected ErrNotJournalOwner, got %v", err)
	}

	if err := uc.DeleteJournal(context.Background(), "owner", "j-1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	if _, err := journalRepo.GetByID(context.Background(), "j-1"); !errors.Is(err, domain.ErrJournalNotFound) {
		t.Fatalf("expected journal gone, got %v", err)
	}
}

func TestJournalUseCase_ListJournals_CachesSnapshot(t *testing.T) {
	journalRepo := mocks.NewMockJournalRepository()
	cache := mocks.NewMockCache()

	listCalls := 0
	journalRepo.ListByUserFunc = func(ctx context.Context, userID string) ([]*domain.Journal, error) {
		listCalls++
		return []*domain.Journal{{
			ID:             "j-1",
			UserID:         userID,
			Name:           "Futures",
			InitialBalance: decimal.NewFromInt(1000),
			Trades: []domain.Trade{{
				ID:      "t-1",
				PnL:     decimal.NewFromInt(50),
				Outcome: domain.CountedOutcome(2, 1),
			}},
		}}, nil
	}

	uc := newJournalUseCase(journalRepo, mocks.NewMockOutboxRepository(), mocks.NewMockAuditRepository(), cache)

	first, err := uc.ListJournals(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	second, err := uc.ListJournals(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("second list: %v", err)
	}

	if listCalls != 1 {
		t.Errorf("expected one repository hit, got %d", listCalls)
	}
	if len(second) != 1 || second[0].ID != first[0].ID {
		t.Fatalf("cached snapshot mismatch: %+v", second)
	}

	// The outcome variant must survive the cache round trip.
	wins, losses := second[0].Trades[0].WinLoss()
	if wins != 2 || losses != 1 {
		t.Errorf("expected counted outcome 2/1 after round trip, got %d/%d", wins, losses)
	}
}

func TestJournalUseCase_MutationInvalidatesCache(t *testing.T) {
	journalRepo := mocks.NewMockJournalRepository()
	cache := mocks.NewMockCache()

	listCalls := 0
	journalRepo.ListByUserFunc = func(ctx context.Context, userID string) ([]*domain.Journal, error) {
		listCalls++
		return nil, nil
	}

	uc := newJournalUseCase(journalRepo, mocks.NewMockOutboxRepository(), mocks.NewMockAuditRepository(), cache)

	if _, err := uc.ListJournals(context.Background(), "user-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.CreateJournal(context.Background(), usecase.CreateJournalInput{UserID: "user-1", Name: "New"}); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.ListJournals(context.Background(), "user-1"); err != nil {
		t.Fatal(err)
	}

	if listCalls != 2 {
		t.Errorf("expected re-fetch after mutation, got %d repository hits", listCalls)
	}
}
