package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/usecase"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse represents a successful login or registration.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// TradeResponse represents a trade in API responses. PnLDisplay is the
// locale-formatted amount for direct rendering.
type TradeResponse struct {
	ID         string          `json:"id"`
	JournalID  string          `json:"journal_id"`
	Date       time.Time       `json:"date"`
	Symbol     string          `json:"symbol"`
	PnL        decimal.Decimal `json:"pnl"`
	PnLDisplay string          `json:"pnl_display"`
	Notes      string          `json:"notes,omitempty"`
	NumWins    int             `json:"num_wins,omitempty"`
	NumLosses  int             `json:"num_losses,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TradeFromDomain converts a domain trade to a response, rendering
// display amounts in the given currency.
func TradeFromDomain(t *domain.Trade, currency string) *TradeResponse {
	resp := &TradeResponse{
		ID:         t.ID,
		JournalID:  t.JournalID,
		Date:       t.Date,
		Symbol:     t.Symbol,
		PnL:        t.PnL,
		PnLDisplay: domain.FormatCurrency(t.PnL, currency),
		Notes:      t.Notes,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	if t.Outcome.Counted() {
		resp.NumWins, resp.NumLosses = t.Outcome.Counts()
	}
	return resp
}

// TradesFromDomain converts domain trades to responses.
func TradesFromDomain(trades []domain.Trade, currency string) []*TradeResponse {
	result := make([]*TradeResponse, len(trades))
	for i := range trades {
		result[i] = TradeFromDomain(&trades[i], currency)
	}
	return result
}

// ListTradesResponse wraps a trade listing.
type ListTradesResponse struct {
	Trades []*TradeResponse `json:"trades"`
	Total  int64            `json:"total"`
}

// JournalResponse represents a journal in API responses.
type JournalResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	InitialBalance decimal.Decimal  `json:"initial_balance"`
	CurrentBalance decimal.Decimal  `json:"current_balance"`
	TradeCount     int              `json:"trade_count"`
	Trades         []*TradeResponse `json:"trades,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// JournalFromDomain converts a domain journal to a response. Trades are
// embedded when the journal carries them.
func JournalFromDomain(j *domain.Journal) *JournalResponse {
	return &JournalResponse{
		ID:             j.ID,
		Name:           j.Name,
		InitialBalance: j.InitialBalance,
		CurrentBalance: j.CurrentBalance(),
		TradeCount:     len(j.Trades),
		Trades:         TradesFromDomain(j.Trades, domain.DefaultCurrency),
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

// JournalsFromDomain converts domain journals to responses.
func JournalsFromDomain(journals []*domain.Journal) []*JournalResponse {
	result := make([]*JournalResponse, len(journals))
	for i, j := range journals {
		result[i] = JournalFromDomain(j)
	}
	return result
}

// ListJournalsResponse wraps a journal listing.
type ListJournalsResponse struct {
	Journals []*JournalResponse `json:"journals"`
	Total    int64              `json:"total"`
}

// MonthStatsResponse represents month statistics in API responses.
type MonthStatsResponse struct {
	TotalPnL        decimal.Decimal `json:"total_pnl"`
	TotalPnLDisplay string          `json:"total_pnl_display"`
	WinRate         float64         `json:"win_rate"`
	TotalTrades     int             `json:"total_trades"`
	Wins            int             `json:"wins"`
	Losses          int             `json:"losses"`
}

// MonthStatsFromDomain converts domain month stats to a response.
func MonthStatsFromDomain(s domain.MonthStats, currency string) MonthStatsResponse {
	return MonthStatsResponse{
		TotalPnL:        s.TotalPnL,
		TotalPnLDisplay: domain.FormatCurrency(s.TotalPnL, currency),
		WinRate:         s.WinRate,
		TotalTrades:     s.TotalTrades,
		Wins:            s.Wins,
		Losses:          s.Losses,
	}
}

// CalendarCellResponse represents one day on the calendar grid.
type CalendarCellResponse struct {
	Date    string          `json:"date"`
	PnL     decimal.Decimal `json:"pnl"`
	Trades  int             `json:"trades"`
	InMonth bool            `json:"in_month"`
}

// CalendarResponse represents the month view for a journal.
type CalendarResponse struct {
	Month string                 `json:"month"`
	Cells []CalendarCellResponse `json:"cells"`
	Stats MonthStatsResponse     `json:"stats"`
}

// CalendarFromUseCase converts a calendar month to a response.
func CalendarFromUseCase(cal *usecase.CalendarMonth, currency string) *CalendarResponse {
	cells := make([]CalendarCellResponse, len(cal.Cells))
	for i, c := range cal.Cells {
		cells[i] = CalendarCellResponse{
			Date:    c.Date.Format("2006-01-02"),
			PnL:     c.PnL,
			Trades:  c.Trades,
			InMonth: c.InMonth,
		}
	}
	return &CalendarResponse{
		Month: cal.Month.Format("2006-01"),
		Cells: cells,
		Stats: MonthStatsFromDomain(cal.Stats, currency),
	}
}

// SummaryResponse represents all-time journal statistics.
type SummaryResponse struct {
	TotalPnL   decimal.Decimal `json:"total_pnl"`
	WinRate    float64         `json:"win_rate"`
	Wins       int             `json:"wins"`
	Losses     int             `json:"losses"`
	AvgProfit  decimal.Decimal `json:"avg_profit"`
	AvgLoss    decimal.Decimal `json:"avg_loss"`
	TradeCount int             `json:"trade_count"`
}

// EquityPointResponse represents one point on the equity curve.
type EquityPointResponse struct {
	Date    string          `json:"date"`
	PnL     decimal.Decimal `json:"pnl"`
	Balance decimal.Decimal `json:"balance"`
}

// DashboardResponse represents the journal overview.
type DashboardResponse struct {
	JournalID      string                `json:"journal_id"`
	JournalName    string                `json:"journal_name"`
	InitialBalance decimal.Decimal       `json:"initial_balance"`
	CurrentBalance decimal.Decimal       `json:"current_balance"`
	BalanceDisplay string                `json:"balance_display"`
	Summary        SummaryResponse       `json:"summary"`
	Equity         []EquityPointResponse `json:"equity"`
	Recent         []*TradeResponse      `json:"recent"`
}

// DashboardFromUseCase converts a dashboard to a response, rendering
// display amounts in the given currency.
func DashboardFromUseCase(d *usecase.Dashboard, currency string) *DashboardResponse {
	equity := make([]EquityPointResponse, len(d.Equity))
	for i, p := range d.Equity {
		equity[i] = EquityPointResponse{
			Date:    p.Date.Format("2006-01-02"),
			PnL:     p.PnL,
			Balance: p.Balance,
		}
	}
	return &DashboardResponse{
		JournalID:      d.JournalID,
		JournalName:    d.JournalName,
		InitialBalance: d.InitialBalance,
		CurrentBalance: d.CurrentBalance,
		BalanceDisplay: domain.FormatCurrency(d.CurrentBalance, currency),
		Summary: SummaryResponse{
			TotalPnL:   d.Summary.TotalPnL,
			WinRate:    d.Summary.WinRate,
			Wins:       d.Summary.Wins,
			Losses:     d.Summary.Losses,
			AvgProfit:  d.Summary.AvgProfit,
			AvgLoss:    d.Summary.AvgLoss,
			TradeCount: d.Summary.TradeCount,
		},
		Equity: equity,
		Recent: TradesFromDomain(d.Recent, currency),
	}
}

// AuditLogResponse represents one audit trail entry in API responses.
type AuditLogResponse struct {
	ID           string      `json:"id"`
	Action       string      `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	BeforeState  domain.JSON `json:"before_state,omitempty"`
	AfterState   domain.JSON `json:"after_state,omitempty"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:           l.ID,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			BeforeState:  l.BeforeState,
			AfterState:   l.AfterState,
			Status:       l.Status,
			CreatedAt:    l.CreatedAt,
		}
	}
	return result
}

// ListAuditLogsResponse wraps an audit trail listing.
type ListAuditLogsResponse struct {
	Logs  []*AuditLogResponse `json:"logs"`
	Total int64               `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
