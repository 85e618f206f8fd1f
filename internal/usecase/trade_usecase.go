package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/infrastructure/metrics"
)

// TradeUseCase handles trade recording and editing.
type TradeUseCase struct {
	txManager   TransactionManager
	journalRepo JournalRepository
	tradeRepo   TradeRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	cache       Cache
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewTradeUseCase creates a new TradeUseCase. cache and metrics may be
// nil to disable snapshot invalidation and instrumentation.
func NewTradeUseCase(
	txManager TransactionManager,
	journalRepo JournalRepository,
	tradeRepo TradeRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	cache Cache,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *TradeUseCase {
	return &TradeUseCase{
		txManager:   txManager,
		journalRepo: journalRepo,
		tradeRepo:   tradeRepo,
		outboxRepo:  outboxRepo,
		auditRepo:   auditRepo,
		cache:       cache,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// RecordTradeInput represents input for recording a trade.
type RecordTradeInput struct {
	UserID    string
	JournalID string
	Date      time.Time
	Symbol    string
	PnL       decimal.Decimal
	Notes     string
	NumWins   int
	NumLosses int
}

func (uc *TradeUseCase) validateTrade(input RecordTradeInput) error {
	if err := domain.ValidateSymbol(input.Symbol); err != nil {
		return err
	}
	if err := domain.ValidatePnL(input.PnL); err != nil {
		return err
	}
	if err := domain.ValidateOutcomeCounts(input.NumWins, input.NumLosses); err != nil {
		return err
	}
	if err := domain.ValidateNotes(input.Notes); err != nil {
		return err
	}

	// Entries on today's date are fine at any hour; anything past the
	// end of the current day is a future trade.
	endOfToday := endOfDay(time.Now().In(input.Date.Location()))
	if input.Date.After(endOfToday) {
		return domain.ErrFutureTradeDate
	}

	return nil
}

// RecordTrade creates a new trade in an owned journal.
func (uc *TradeUseCase) RecordTrade(ctx context.Context, input RecordTradeInput) (*domain.Trade, error) {
	if err := uc.validateTrade(input); err != nil {
		return nil, err
	}

	journal, err := uc.journalRepo.GetByID(ctx, input.JournalID)
	if err != nil {
		return nil, err
	}
	if journal.UserID != input.UserID {
		return nil, domain.ErrNotJournalOwner
	}

	now := time.Now().UTC()
	trade := &domain.Trade{
		ID:        uc.idGen.Generate(),
		JournalID: input.JournalID,
		UserID:    input.UserID,
		Date:      input.Date,
		Symbol:    input.Symbol,
		PnL:       input.PnL,
		Notes:     input.Notes,
		Outcome:   domain.OutcomeOf(input.NumWins, input.NumLosses),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.inTx(ctx, func(tx Transaction) error {
		if err := uc.tradeRepo.Create(ctx, tx, trade); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   trade.ID,
			AggregateType: domain.AggregateTypeTrade,
			EventType:     domain.EventTypeTradeRecorded,
			Payload: domain.MarshalState(domain.TradeRecordedEvent{
				TradeID:   trade.ID,
				JournalID: trade.JournalID,
				Symbol:    trade.Symbol,
				PnL:       trade.PnL.String(),
				Date:      trade.Date.Format(time.RFC3339),
			}),
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		return uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
			UserID:       input.UserID,
			Action:       string(domain.AuditActionTradeRecord),
			ResourceType: domain.AggregateTypeTrade,
			ResourceID:   trade.ID,
			AfterState:   domain.MarshalState(trade),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		})
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TradesRecorded.Inc()
		uc.metrics.TradePnL.Observe(trade.PnL.InexactFloat64())
		uc.metrics.AuditLogsCreated.WithLabelValues(string(domain.AuditActionTradeRecord), string(domain.AuditStatusSuccess)).Inc()
	}

	uc.invalidateCache(ctx, input.UserID)
	return trade, nil
}

// UpdateTrade replaces the mutable fields of an owned trade.
func (uc *TradeUseCase) UpdateTrade(ctx context.Context, tradeID string, input RecordTradeInput) (*domain.Trade, error) {
	if err := uc.validateTrade(input); err != nil {
		return nil, err
	}

	existing, err := uc.tradeRepo.GetByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != input.UserID {
		return nil, domain.ErrNotJournalOwner
	}

	now := time.Now().UTC()
	updated := *existing
	updated.Date = input.Date
	updated.Symbol = input.Symbol
	updated.PnL = input.PnL
	updated.Notes = input.Notes
	updated.Outcome = domain.OutcomeOf(input.NumWins, input.NumLosses)
	updated.UpdatedAt = now

	err = uc.inTx(ctx, func(tx Transaction) error {
		if err := uc.tradeRepo.Update(ctx, tx, &updated); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   updated.ID,
			AggregateType: domain.AggregateTypeTrade,
			EventType:     domain.EventTypeTradeUpdated,
			Payload: domain.MarshalState(domain.TradeUpdatedEvent{
				TradeID:   updated.ID,
				JournalID: updated.JournalID,
				Symbol:    updated.Symbol,
				PnL:       updated.PnL.String(),
			}),
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		return uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
			UserID:       input.UserID,
			Action:       string(domain.AuditActionTradeUpdate),
			ResourceType: domain.AggregateTypeTrade,
			ResourceID:   updated.ID,
			BeforeState:  domain.MarshalState(existing),
			AfterState:   domain.MarshalState(&updated),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		})
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TradesUpdated.Inc()
		uc.metrics.AuditLogsCreated.WithLabelValues(string(domain.AuditActionTradeUpdate), string(domain.AuditStatusSuccess)).Inc()
	}

	uc.invalidateCache(ctx, input.UserID)
	return &updated, nil
}

// DeleteTrade removes an owned trade.
func (uc *TradeUseCase) DeleteTrade(ctx context.Context, userID, tradeID string) error {
	existing, err := uc.tradeRepo.GetByID(ctx, tradeID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return domain.ErrNotJournalOwner
	}

	now := time.Now().UTC()

	err = uc.inTx(ctx, func(tx Transaction) error {
		if err := uc.tradeRepo.Delete(ctx, tx, tradeID); err != nil {
			return err
		}

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   tradeID,
			AggregateType: domain.AggregateTypeTrade,
			EventType:     domain.EventTypeTradeDeleted,
			Payload: domain.MarshalState(domain.TradeDeletedEvent{
				TradeID:   tradeID,
				JournalID: existing.JournalID,
			}),
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		return uc.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
			UserID:       userID,
			Action:       string(domain.AuditActionTradeDelete),
			ResourceType: domain.AggregateTypeTrade,
			ResourceID:   tradeID,
			BeforeState:  domain.MarshalState(existing),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		})
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TradesDeleted.Inc()
		uc.metrics.AuditLogsCreated.WithLabelValues(string(domain.AuditActionTradeDelete), string(domain.AuditStatusSuccess)).Inc()
	}

	uc.invalidateCache(ctx, userID)
	return nil
}

// ListTrades returns an owned journal's trades ascending by date.
func (uc *TradeUseCase) ListTrades(ctx context.Context, userID, journalID string) ([]domain.Trade, error) {
	journal, err := uc.journalRepo.GetByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.UserID != userID {
		return nil, domain.ErrNotJournalOwner
	}

	return uc.tradeRepo.ListByJournal(ctx, journalID)
}

// ListTradesByDay returns an owned journal's trades on one calendar day.
func (uc *TradeUseCase) ListTradesByDay(ctx context.Context, userID, journalID string, day time.Time) ([]domain.Trade, error) {
	trades, err := uc.ListTrades(ctx, userID, journalID)
	if err != nil {
		return nil, err
	}

	var matched []domain.Trade
	for _, t := range trades {
		if domain.SameDay(day, t.Date) {
			matched = append(matched, t)
		}
	}

	return matched, nil
}

func (uc *TradeUseCase) inTx(ctx context.Context, fn func(tx Transaction) error) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (uc *TradeUseCase) invalidateCache(ctx context.Context, userID string) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, journalCacheKey(userID))
	}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
