package domain

import (
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Journal represents a trading account/ledger with a starting balance.
// It owns its trades: deleting a journal deletes every trade in it.
type Journal struct {
	ID             string
	UserID         string
	Name           string
	InitialBalance decimal.Decimal
	Trades         []Trade
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EquityPoint is one point on a journal's equity curve.
type EquityPoint struct {
	Date    time.Time
	PnL     decimal.Decimal
	Balance decimal.Decimal
}

// EquityCurve returns the running balance after each trade, starting
// from the journal's initial balance, in ascending date order. Trades
// on the same date keep their original relative order.
func (j *Journal) EquityCurve() []EquityPoint {
	trades := slices.Clone(j.Trades)
	sort.SliceStable(trades, func(a, b int) bool {
		return trades[a].Date.Before(trades[b].Date)
	})

	balance := j.InitialBalance
	points := make([]EquityPoint, 0, len(trades))
	for _, t := range trades {
		balance = balance.Add(t.PnL)
		points = append(points, EquityPoint{
			Date:    t.Date,
			PnL:     t.PnL,
			Balance: balance,
		})
	}

	return points
}

// CurrentBalance returns the initial balance plus the sum of all trade P&L.
func (j *Journal) CurrentBalance() decimal.Decimal {
	balance := j.InitialBalance
	for _, t := range j.Trades {
		balance = balance.Add(t.PnL)
	}
	return balance
}
