package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/infrastructure/metrics"
)

// StatsUseCase computes presentation-ready views over a journal's
// trades. All computation is pure and happens over the snapshot
// returned by the journal repository.
type StatsUseCase struct {
	journalRepo JournalRepository
	metrics     *metrics.Metrics
}

// NewStatsUseCase creates a new StatsUseCase. metrics may be nil.
func NewStatsUseCase(journalRepo JournalRepository, metrics *metrics.Metrics) *StatsUseCase {
	return &StatsUseCase{journalRepo: journalRepo, metrics: metrics}
}

// CalendarCell is one rendered day in a month grid.
type CalendarCell struct {
	Date    time.Time
	PnL     decimal.Decimal
	Trades  int
	InMonth bool
}

// CalendarMonth is a full-week-aligned month view with per-day P&L.
type CalendarMonth struct {
	Month time.Time
	Cells []CalendarCell
	Stats domain.MonthStats
}

// Calendar builds the month grid for an owned journal: one cell per
// grid date, bucketing the journal's trades by calendar day.
func (uc *StatsUseCase) Calendar(ctx context.Context, userID, journalID string, month time.Time) (*CalendarMonth, error) {
	if uc.metrics != nil {
		uc.metrics.CalendarRequests.Inc()
	}

	journal, err := uc.ownedJournal(ctx, userID, journalID)
	if err != nil {
		return nil, err
	}

	days := domain.MonthGrid(month)
	cells := make([]CalendarCell, 0, len(days))
	for _, day := range days {
		count := 0
		for _, t := range journal.Trades {
			if domain.SameDay(day, t.Date) {
				count++
			}
		}
		cells = append(cells, CalendarCell{
			Date:    day,
			PnL:     domain.DailyPnL(journal.Trades, day),
			Trades:  count,
			InMonth: domain.SameMonth(month, day),
		})
	}

	return &CalendarMonth{
		Month: time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location()),
		Cells: cells,
		Stats: domain.MonthStatsOf(journal.Trades, month),
	}, nil
}

// MonthStats returns the month's aggregate statistics for an owned journal.
func (uc *StatsUseCase) MonthStats(ctx context.Context, userID, journalID string, month time.Time) (domain.MonthStats, error) {
	journal, err := uc.ownedJournal(ctx, userID, journalID)
	if err != nil {
		return domain.MonthStats{}, err
	}

	return domain.MonthStatsOf(journal.Trades, month), nil
}

// Dashboard is the all-time journal overview.
type Dashboard struct {
	JournalID      string
	JournalName    string
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	Summary        domain.Summary
	Equity         []domain.EquityPoint
	Recent         []domain.Trade
}

// Dashboard builds the overview for an owned journal: summary
// statistics, the equity curve, and the most recent trades.
func (uc *StatsUseCase) Dashboard(ctx context.Context, userID, journalID string) (*Dashboard, error) {
	if uc.metrics != nil {
		uc.metrics.DashboardRequests.Inc()
	}

	journal, err := uc.ownedJournal(ctx, userID, journalID)
	if err != nil {
		return nil, err
	}

	equity := journal.EquityCurve()

	// Newest first, capped.
	recent := make([]domain.Trade, 0, RecentTradesLimit)
	sorted := sortedByDate(journal.Trades)
	for i := len(sorted) - 1; i >= 0 && len(recent) < RecentTradesLimit; i-- {
		recent = append(recent, sorted[i])
	}

	return &Dashboard{
		JournalID:      journal.ID,
		JournalName:    journal.Name,
		InitialBalance: journal.InitialBalance,
		CurrentBalance: journal.CurrentBalance(),
		Summary:        domain.Summarize(journal.Trades),
		Equity:         equity,
		Recent:         recent,
	}, nil
}

func (uc *StatsUseCase) ownedJournal(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
	journal, err := uc.journalRepo.GetWithTrades(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.UserID != userID {
		return nil, domain.ErrNotJournalOwner
	}

	return journal, nil
}

func sortedByDate(trades []domain.Trade) []domain.Trade {
	sorted := make([]domain.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Date.Before(sorted[b].Date)
	})
	return sorted
}
