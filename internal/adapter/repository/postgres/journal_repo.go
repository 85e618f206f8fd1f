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

// JournalRepository implements usecase.JournalRepository.
type JournalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{pool: pool}
}

// Create creates a new journal within a transaction.
func (r *JournalRepository) Create(ctx context.Context, tx usecase.Transaction, journal *domain.Journal) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO journals (id, user_id, name, initial_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := pgxTx.Exec(ctx, query,
		journal.ID,
		journal.UserID,
		journal.Name,
		decimalToNumeric(journal.InitialBalance),
		timeToPgTimestamptz(journal.CreatedAt),
		timeToPgTimestamptz(journal.UpdatedAt),
	)

	return err
}

// GetByID retrieves a journal without its trades.
func (r *JournalRepository) GetByID(ctx context.Context, id string) (*domain.Journal, error) {
	query := `
		SELECT id, user_id, name, initial_balance, created_at, updated_at
		FROM journals
		WHERE id = $1
	`

	journal, err := scanJournal(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJournalNotFound
		}

		return nil, err
	}

	return journal, nil
}

// GetWithTrades retrieves a journal together with all its trades.
func (r *JournalRepository) GetWithTrades(ctx context.Context, id string) (*domain.Journal, error) {
	journal, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	trades, err := r.tradesByJournal(ctx, id)
	if err != nil {
		return nil, err
	}

	journal.Trades = trades

	return journal, nil
}

// ListByUser retrieves all of a user's journals with trades embedded,
// oldest journal first.
func (r *JournalRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Journal, error) {
	query := `
		SELECT id, user_id, name, initial_balance, created_at, updated_at
		FROM journals
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var journals []*domain.Journal
	for rows.Next() {
		journal, err := scanJournal(rows)
		if err != nil {
			return nil, err
		}

		journals = append(journals, journal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(journals) == 0 {
		return journals, nil
	}

	tradesByJournal, err := r.tradesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, journal := range journals {
		journal.Trades = tradesByJournal[journal.ID]
	}

	return journals, nil
}

// Delete removes a journal within a transaction. Trades are removed by
// the ON DELETE CASCADE constraint.
func (r *JournalRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM journals WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrJournalNotFound
	}

	return nil
}

func (r *JournalRepository) tradesByJournal(ctx context.Context, journalID string) ([]domain.Trade, error) {
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

func (r *JournalRepository) tradesByUser(ctx context.Context, userID string) (map[string][]domain.Trade, error) {
	query := tradeSelectQuery + `
		WHERE user_id = $1
		ORDER BY date, created_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trades, err := collectTrades(rows)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.Trade)
	for _, trade := range trades {
		grouped[trade.JournalID] = append(grouped[trade.JournalID], trade)
	}

	return grouped, nil
}

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var journal domain.Journal
	var initialBalance pgtype.Numeric
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&journal.ID,
		&journal.UserID,
		&journal.Name,
		&initialBalance,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	journal.InitialBalance = numericToDecimal(initialBalance)
	journal.CreatedAt = createdAt.Time
	journal.UpdatedAt = updatedAt.Time

	return &journal, nil
}
