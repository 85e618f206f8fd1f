package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SameDay reports whether a and b fall on the same calendar day,
// interpreting b in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same calendar month
// and year, interpreting b in a's location.
func SameMonth(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// DailyPnL returns the sum of P&L over all trades on the same calendar
// day as day. Time-of-day is ignored. Returns zero for no matches.
func DailyPnL(trades []Trade, day time.Time) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range trades {
		if SameDay(day, t.Date) {
			sum = sum.Add(t.PnL)
		}
	}
	return sum
}

// MonthStats holds derived statistics for one calendar month.
//
// TotalTrades is the count of classified outcomes, not records: a
// counted batch of 5 wins and 2 losses contributes 7, and a legacy
// record with zero P&L contributes nothing.
type MonthStats struct {
	TotalPnL    decimal.Decimal
	WinRate     float64
	TotalTrades int
	Wins        int
	Losses      int
}

// MonthStatsOf computes statistics over the trades falling in the same
// calendar month and year as ref. Empty input yields zero-valued stats;
// WinRate is 0 when no outcome was classified.
func MonthStatsOf(trades []Trade, ref time.Time) MonthStats {
	var s MonthStats
	s.TotalPnL = decimal.Zero

	for _, t := range trades {
		if !SameMonth(ref, t.Date) {
			continue
		}
		s.TotalPnL = s.TotalPnL.Add(t.PnL)

		wins, losses := t.WinLoss()
		s.Wins += wins
		s.Losses += losses
	}

	s.TotalTrades = s.Wins + s.Losses
	if s.TotalTrades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100
	}

	return s
}

// Summary holds all-time per-record statistics for a journal's
// dashboard. Unlike MonthStats it classifies whole records: a trade
// with positive P&L is one win, anything else is one loss, and the
// win rate is over the record count.
type Summary struct {
	TotalPnL   decimal.Decimal
	WinRate    float64
	Wins       int
	Losses     int
	AvgProfit  decimal.Decimal
	AvgLoss    decimal.Decimal
	TradeCount int
}

// Summarize computes the dashboard summary over all trades.
func Summarize(trades []Trade) Summary {
	s := Summary{
		TotalPnL:   decimal.Zero,
		AvgProfit:  decimal.Zero,
		AvgLoss:    decimal.Zero,
		TradeCount: len(trades),
	}

	profitSum, lossSum := decimal.Zero, decimal.Zero
	lossCount := 0
	for _, t := range trades {
		s.TotalPnL = s.TotalPnL.Add(t.PnL)
		switch {
		case t.PnL.IsPositive():
			s.Wins++
			profitSum = profitSum.Add(t.PnL)
		case t.PnL.IsNegative():
			lossCount++
			lossSum = lossSum.Add(t.PnL)
		}
	}

	// Every non-winning record counts against the win rate.
	s.Losses = len(trades) - s.Wins
	if len(trades) > 0 {
		s.WinRate = float64(s.Wins) / float64(len(trades)) * 100
	}
	if s.Wins > 0 {
		s.AvgProfit = profitSum.Div(decimal.NewFromInt(int64(s.Wins)))
	}
	if lossCount > 0 {
		s.AvgLoss = lossSum.Div(decimal.NewFromInt(int64(lossCount)))
	}

	return s
}
