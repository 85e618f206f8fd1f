package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tradejournal/internal/usecase"
)

// LenientDecimal is a decimal that tolerates malformed wire input.
// A value that fails to parse decodes as zero instead of failing the
// whole request, so one corrupt field cannot poison an aggregation.
type LenientDecimal struct {
	decimal.Decimal
}

// UnmarshalJSON decodes a JSON number or string, falling back to zero.
func (d *LenientDecimal) UnmarshalJSON(data []byte) error {
	if err := d.Decimal.UnmarshalJSON(data); err != nil {
		d.Decimal = decimal.Zero
	}
	return nil
}

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// CreateJournalRequest represents a request to create a journal.
type CreateJournalRequest struct {
	Name           string         `json:"name"`
	InitialBalance LenientDecimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateJournalRequest) ToUseCaseInput(userID string) usecase.CreateJournalInput {
	return usecase.CreateJournalInput{
		UserID:         userID,
		Name:           r.Name,
		InitialBalance: r.InitialBalance.Decimal,
	}
}

// RecordTradeRequest represents a request to record or update a trade.
type RecordTradeRequest struct {
	Date      time.Time      `json:"date"`
	Symbol    string         `json:"symbol"`
	PnL       LenientDecimal `json:"pnl"`
	Notes     string         `json:"notes,omitempty"`
	NumWins   int            `json:"num_wins,omitempty"`
	NumLosses int            `json:"num_losses,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordTradeRequest) ToUseCaseInput(userID, journalID string) usecase.RecordTradeInput {
	return usecase.RecordTradeInput{
		UserID:    userID,
		JournalID: journalID,
		Date:      r.Date,
		Symbol:    r.Symbol,
		PnL:       r.PnL.Decimal,
		Notes:     r.Notes,
		NumWins:   r.NumWins,
		NumLosses: r.NumLosses,
	}
}
