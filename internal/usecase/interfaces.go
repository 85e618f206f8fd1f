package usecase

import (
	"context"
	"time"

	"github.com/iho/tradejournal/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// JournalRepository defines data access for journals.
type JournalRepository interface {
	Create(ctx context.Context, tx Transaction, journal *domain.Journal) error
	GetByID(ctx context.Context, id string) (*domain.Journal, error)
	// GetWithTrades loads a journal together with all its trades.
	GetWithTrades(ctx context.Context, id string) (*domain.Journal, error)
	// ListByUser loads all of a user's journals with their trades
	// embedded, oldest journal first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Journal, error)
	Delete(ctx context.Context, tx Transaction, id string) error
}

// TradeRepository defines data access for trades.
type TradeRepository interface {
	Create(ctx context.Context, tx Transaction, trade *domain.Trade) error
	GetByID(ctx context.Context, id string) (*domain.Trade, error)
	Update(ctx context.Context, tx Transaction, trade *domain.Trade) error
	Delete(ctx context.Context, tx Transaction, id string) error
	// ListByJournal returns the journal's trades ascending by date.
	ListByJournal(ctx context.Context, journalID string) ([]domain.Trade, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient persistence errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
