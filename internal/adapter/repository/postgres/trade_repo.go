package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/usecase"
)

// TradeRepository implements usecase.TradeRepository.
type TradeRepository struct {
	pool *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository.
func NewTradeRepository(pool *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{pool: pool}
}

const tradeSelectQuery = `
	SELECT id, journal_id, user_id, date, symbol, pnl, notes,
	       num_wins, num_losses, outcome_counted, created_at, updated_at
	FROM trades
`

// Create creates a new trade within a transaction.
func (r *TradeRepository) Create(ctx context.Context, tx usecase.Transaction, trade *domain.Trade) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO trades (
			id, journal_id, user_id, date, symbol, pnl, notes,
			num_wins, num_losses, outcome_counted, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	wins, losses := trade.Outcome.Counts()

	_, err := pgxTx.Exec(ctx, query,
		trade.ID,
		trade.JournalID,
		trade.UserID,
		timeToPgTimestamptz(trade.Date),
		trade.Symbol,
		decimalToNumeric(trade.PnL),
		trade.Notes,
		wins,
		losses,
		trade.Outcome.Counted(),
		timeToPgTimestamptz(trade.CreatedAt),
		timeToPgTimestamptz(trade.UpdatedAt),
	)

	return err
}

// GetByID retrieves a trade by ID.
func (r *TradeRepository) GetByID(ctx context.Context, id string) (*domain.Trade, error) {
	query := tradeSelectQuery + `
		WHERE id = $1
	`

	trade, err := scanTrade(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTradeNotFound
		}

		return nil, err
	}

	return &trade, nil
}

// Update updates a trade within a transaction.
func (r *TradeRepository) Update(ctx context.Context, tx usecase.Transaction, trade *domain.Trade) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE trades
		SET date = $2, symbol = $3, pnl = $4, notes = $5,
		    num_wins = $6, num_losses = $7, outcome_counted = $8, updated_at = $9
		WHERE id = $1
	`

	wins, losses := trade.Outcome.Counts()

	tag, err := pgxTx.Exec(ctx, query,
		trade.ID,
		timeToPgTimestamptz(trade.Date),
		trade.Symbol,
		decimalToNumeric(trade.PnL),
		trade.Notes,
		wins,
		losses,
		trade.Outcome.Counted(),
		timeToPgTimestamptz(trade.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTradeNotFound
	}

	return nil
}

// Delete removes a trade within a transaction.
func (r *TradeRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM trades WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTradeNotFound
	}

	return nil
}

// ListByJournal retrieves the journal's trades ascending by date.
func (r *TradeRepository) ListByJournal(ctx context.Context, journalID string) ([]domain.Trade, error) {
	query := tradeSelectQuery + `
		WHERE journal_id = $1
		ORDER BY date, created_at
	`

	rows, err := r.pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTrades(rows)
}

func collectTrades(rows pgx.Rows) ([]domain.Trade, error) {
	var trades []domain.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}

		trades = append(trades, trade)
	}

	return trades, rows.Err()
}

func scanTrade(row pgx.Row) (domain.Trade, error) {
	var trade domain.Trade
	var date, createdAt, updatedAt pgtype.Timestamptz
	var pnl pgtype.Numeric
	var wins, losses int
	var counted bool

	err := row.Scan(
		&trade.ID,
		&trade.JournalID,
		&trade.UserID,
		&date,
		&trade.Symbol,
		&pnl,
		&trade.Notes,
		&wins,
		&losses,
		&counted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Trade{}, err
	}

	trade.Date = date.Time
	trade.PnL = numericToDecimal(pnl)
	trade.CreatedAt = createdAt.Time
	trade.UpdatedAt = updatedAt.Time

	if counted {
		trade.Outcome = domain.CountedOutcome(wins, losses)
	} else {
		trade.Outcome = domain.LegacyOutcome()
	}

	return trade, nil
}
