package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidJournalName   = errors.New("invalid journal name")
	ErrInvalidSymbol        = errors.New("invalid symbol")
	ErrInvalidCurrency      = errors.New("invalid currency code")
	ErrPnLTooLarge          = errors.New("p&l exceeds maximum allowed magnitude")
	ErrNegativeOutcomeCount = errors.New("win/loss counts must be non-negative")
	ErrNotesTooLong         = errors.New("notes exceed maximum length")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrPasswordTooWeak      = errors.New("password does not meet requirements")
)

// Validation constants
const (
	MaxJournalNameLength = 255
	MaxSymbolLength      = 32
	MaxNotesLength       = 10000
	MaxPnLMagnitude      = "1000000000000" // 1 trillion
	MinPasswordLength    = 8
	MaxPasswordLength    = 128
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "RUB": true, "TRY": true, "HKD": true,
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateJournalName validates a journal display name.
func ValidateJournalName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidJournalName)
	}
	if len(name) > MaxJournalNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidJournalName, MaxJournalNameLength)
	}

	return nil
}

// ValidateSymbol validates an instrument label.
func ValidateSymbol(symbol string) error {
	symbol = strings.TrimSpace(symbol)

	if symbol == "" {
		return fmt.Errorf("%w: symbol cannot be empty", ErrInvalidSymbol)
	}
	if len(symbol) > MaxSymbolLength {
		return fmt.Errorf("%w: symbol exceeds %d characters", ErrInvalidSymbol, MaxSymbolLength)
	}

	return nil
}

// ValidatePnL validates a signed P&L amount. Zero and negative values
// are allowed; only the magnitude is bounded.
func ValidatePnL(pnl decimal.Decimal) error {
	maxPnL, _ := decimal.NewFromString(MaxPnLMagnitude)
	if pnl.Abs().GreaterThan(maxPnL) {
		return fmt.Errorf("%w: maximum magnitude is %s", ErrPnLTooLarge, MaxPnLMagnitude)
	}

	return nil
}

// ValidateOutcomeCounts validates manually entered win/loss counts.
func ValidateOutcomeCounts(wins, losses int) error {
	if wins < 0 || losses < 0 {
		return ErrNegativeOutcomeCount
	}

	return nil
}

// ValidateNotes validates free-text notes length.
func ValidateNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return fmt.Errorf("%w: maximum is %d characters", ErrNotesTooLong, MaxNotesLength)
	}

	return nil
}

// ValidateCurrency validates a currency code.
func ValidateCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a valid ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: %s", ErrInvalidEmail, email)
	}

	return nil
}

// ValidatePassword validates password strength.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: minimum length is %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: maximum length is %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}
