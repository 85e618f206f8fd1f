package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Trade represents a single logged profit/loss entry in a journal.
// A trade may stand for one execution, or for a batch of executions
// recorded as one row with explicit win/loss counts.
type Trade struct {
	ID        string
	JournalID string
	UserID    string
	Date      time.Time
	Symbol    string
	PnL       decimal.Decimal
	Notes     string
	Outcome   Outcome
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Outcome describes how a trade contributes to win/loss statistics.
// It is either a counted batch carrying explicit win and loss counts,
// or a legacy single-outcome record classified by the sign of its P&L.
type Outcome struct {
	counted bool
	wins    int
	losses  int
}

// CountedOutcome returns an outcome carrying explicit win/loss counts.
func CountedOutcome(wins, losses int) Outcome {
	return Outcome{counted: true, wins: wins, losses: losses}
}

// LegacyOutcome returns an outcome classified by P&L sign alone.
func LegacyOutcome() Outcome {
	return Outcome{}
}

// OutcomeOf builds an outcome from raw stored counts. A record is a
// counted batch when either field is positive; otherwise it is a legacy
// record. The per-field check is deliberate: a row with wins=3, losses=0
// is a counted batch, not a legacy record.
func OutcomeOf(wins, losses int) Outcome {
	if wins > 0 || losses > 0 {
		return CountedOutcome(wins, losses)
	}
	return LegacyOutcome()
}

// Counted reports whether the outcome carries explicit counts.
func (o Outcome) Counted() bool { return o.counted }

// Counts returns the explicit win/loss counts. Both are zero for
// legacy outcomes.
func (o Outcome) Counts() (wins, losses int) { return o.wins, o.losses }

type outcomeJSON struct {
	Counted bool `json:"counted"`
	Wins    int  `json:"wins"`
	Losses  int  `json:"losses"`
}

// MarshalJSON keeps the variant tag when an outcome crosses a cache or
// wire boundary.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(outcomeJSON{Counted: o.counted, Wins: o.wins, Losses: o.losses})
}

// UnmarshalJSON restores an outcome serialized by MarshalJSON.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var raw outcomeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Counted {
		*o = CountedOutcome(raw.Wins, raw.Losses)
	} else {
		*o = LegacyOutcome()
	}
	return nil
}

// WinLoss returns the classified win and loss counts for the trade.
// Counted batches contribute their explicit counts; legacy records
// contribute a single win or loss by P&L sign, and nothing when the
// P&L is exactly zero.
func (t Trade) WinLoss() (wins, losses int) {
	if t.Outcome.Counted() {
		return t.Outcome.Counts()
	}
	switch {
	case t.PnL.IsPositive():
		return 1, 0
	case t.PnL.IsNegative():
		return 0, 1
	}
	return 0, 0
}
