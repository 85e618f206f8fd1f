package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// JournalCacheTTL is how long a user's journal snapshot stays cached.
	// Mutations invalidate the snapshot eagerly; the TTL is a backstop.
	JournalCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// RecentTradesLimit is how many trades the dashboard lists.
	RecentTradesLimit = 5
)
