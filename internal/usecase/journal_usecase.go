package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/infrastructure/metrics"
)

// JournalUseCase handles journal lifecycle and listing.
type JournalUseCase struct {
	txManager   TransactionManager
	journalRepo JournalRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	cache       Cache
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewJournalUseCase creates a new JournalUseCase. cache and metrics
// may be nil to disable snapshot caching and instrumentation.
func NewJournalUseCase(
	txManager TransactionManager,
	journalRepo JournalRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	cache Cache,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *JournalUseCase {
	return &JournalUseCase{
		txManager:   txManager,
		journalRepo: journalRepo,
		outboxRepo:  outboxRepo,
		auditRepo:   auditRepo,
		cache:       cache,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateJournalInput represents input for creating a journal.
type CreateJournalInput struct {
	UserID         string
	Name           string
	InitialBalance decimal.Decimal
}

// CreateJournal creates a new journal. A negative initial balance is
// permitted and flows through balance arithmetic unchanged.
func (uc *JournalUseCase) CreateJournal(ctx context.Context, input CreateJournalInput) (*domain.Journal, error) {
	if err := domain.ValidateJournalName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	journal := &domain.Journal{
		ID:             uc.idGen.Generate(),
		UserID:         input.UserID,
		Name:           input.Name,
		InitialBalance: input.InitialBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.journalRepo.Create(ctx, tx, journal); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   journal.ID,
		AggregateType: domain.AggregateTypeJournal,
		EventType:     domain.EventTypeJournalCreated,
		Payload: domain.MarshalState(domain.JournalCreatedEvent{
			JournalID:      journal.ID,
			UserID:         journal.UserID,
			Name:           journal.Name,
			InitialBalance: journal.InitialBalance.String(),
		}),
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
		UserID:       input.UserID,
		Action:       string(domain.AuditActionJournalCreate),
		ResourceType: domain.AggregateTypeJournal,
		ResourceID:   journal.ID,
		AfterState:   domain.MarshalState(journal),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    now,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.JournalsCreated.Inc()
		uc.metrics.AuditLogsCreated.WithLabelValues(string(domain.AuditActionJournalCreate), string(domain.AuditStatusSuccess)).Inc()
	}

	uc.invalidateCache(ctx, input.UserID)
	return journal, nil
}

// GetJournal retrieves a journal with its trades, enforcing ownership.
func (uc *JournalUseCase) GetJournal(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
	journal, err := uc.journalRepo.GetWithTrades(ctx, journalID)
	if err != nil {
		return nil, err
	}

	if journal.UserID != userID {
		return nil, domain.ErrNotJournalOwner
	}

	return journal, nil
}

// ListJournals returns all of the user's journals with embedded trades.
// The result is served from the snapshot cache when fresh; every
// mutation invalidates the snapshot, so callers always re-read the
// full list after a change rather than patching state locally.
func (uc *JournalUseCase) ListJournals(ctx context.Context, userID string) ([]*domain.Journal, error) {
	key := journalCacheKey(userID)

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
			var cached []*domain.Journal
			if err := json.Unmarshal(data, &cached); err == nil {
				uc.countCacheLookup("hit")
				return cached, nil
			}
		}
		uc.countCacheLookup("miss")
	}

	journals, err := uc.journalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(journals); err == nil {
			_ = uc.cache.Set(ctx, key, data, JournalCacheTTL)
		}
	}

	return journals, nil
}

// DeleteJournal deletes a journal and, via cascade, all of its trades.
func (uc *JournalUseCase) DeleteJournal(ctx context.Context, userID, journalID string) error {
	journal, err := uc.journalRepo.GetWithTrades(ctx, journalID)
	if err != nil {
		return err
	}

	if journal.UserID != userID {
		return domain.ErrNotJournalOwner
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.journalRepo.Delete(ctx, tx, journalID); err != nil {
		return err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   journalID,
		AggregateType: domain.AggregateTypeJournal,
		EventType:     domain.EventTypeJournalDeleted,
		Payload: domain.MarshalState(domain.JournalDeletedEvent{
			JournalID: journalID,
			UserID:    userID,
			Trades:    len(journal.Trades),
		}),
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	if err := uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
		UserID:       userID,
		Action:       string(domain.AuditActionJournalDelete),
		ResourceType: domain.AggregateTypeJournal,
		ResourceID:   journalID,
		BeforeState:  domain.MarshalState(journal),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    now,
	}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.JournalsDeleted.Inc()
		uc.metrics.AuditLogsCreated.WithLabelValues(string(domain.AuditActionJournalDelete), string(domain.AuditStatusSuccess)).Inc()
	}

	uc.invalidateCache(ctx, userID)
	return nil
}

func (uc *JournalUseCase) invalidateCache(ctx context.Context, userID string) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, journalCacheKey(userID))
	}
}

func (uc *JournalUseCase) countCacheLookup(result string) {
	if uc.metrics != nil {
		uc.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}

func journalCacheKey(userID string) string {
	return "journals:" + userID
}
