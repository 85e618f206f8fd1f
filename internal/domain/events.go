package domain

import "time"

// Event types
const (
	EventTypeJournalCreated = "journal.created"
	EventTypeJournalDeleted = "journal.deleted"
	EventTypeTradeRecorded  = "trade.recorded"
	EventTypeTradeUpdated   = "trade.updated"
	EventTypeTradeDeleted   = "trade.deleted"
	EventTypeUserRegistered = "user.registered"
)

// Aggregate types
const (
	AggregateTypeJournal = "journal"
	AggregateTypeTrade   = "trade"
	AggregateTypeUser    = "user"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// JournalCreatedEvent payload
type JournalCreatedEvent struct {
	JournalID      string `json:"journal_id"`
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	InitialBalance string `json:"initial_balance"`
}

// JournalDeletedEvent payload
type JournalDeletedEvent struct {
	JournalID string `json:"journal_id"`
	UserID    string `json:"user_id"`
	Trades    int    `json:"trades"`
}

// TradeRecordedEvent payload
type TradeRecordedEvent struct {
	TradeID   string `json:"trade_id"`
	JournalID string `json:"journal_id"`
	Symbol    string `json:"symbol"`
	PnL       string `json:"pnl"`
	Date      string `json:"date"`
}

// TradeUpdatedEvent payload
type TradeUpdatedEvent struct {
	TradeID   string `json:"trade_id"`
	JournalID string `json:"journal_id"`
	Symbol    string `json:"symbol"`
	PnL       string `json:"pnl"`
}

// TradeDeletedEvent payload
type TradeDeletedEvent struct {
	TradeID   string `json:"trade_id"`
	JournalID string `json:"journal_id"`
}
