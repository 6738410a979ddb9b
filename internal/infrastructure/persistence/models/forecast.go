package models

import (
	"time"

	"github.com/cashcast/backend/internal/domain/forecast"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccountModel is the persistence model for a bank account whose balance
// feeds the current cash position.
type BankAccountModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(200);not null"`
	AccountNumber string          `gorm:"type:varchar(50);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'GBP'"`
	Balance       decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	IsActive      bool            `gorm:"not null;default:true;index"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// InvoiceModel is the persistence model for receivable and payable invoices.
type InvoiceModel struct {
	ID               uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Direction        forecast.Direction `gorm:"type:varchar(20);not null;index"`
	CounterpartyID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	CounterpartyName string             `gorm:"type:varchar(200);not null"`
	IssueDate        time.Time          `gorm:"type:date;not null"`
	DueDate          time.Time          `gorm:"type:date;not null;index"`
	TotalAmount      decimal.Decimal    `gorm:"type:decimal(20,4);not null"`
	AmountDue        decimal.Decimal    `gorm:"type:decimal(20,4);not null;index"`
	CreatedAt        time.Time          `gorm:"autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain OpenInvoice
func (m *InvoiceModel) ToDomain() forecast.OpenInvoice {
	return forecast.OpenInvoice{
		ID:               m.ID,
		CounterpartyID:   m.CounterpartyID,
		CounterpartyName: m.CounterpartyName,
		IssueDate:        m.IssueDate,
		DueDate:          m.DueDate,
		AmountDue:        m.AmountDue,
		TotalAmount:      m.TotalAmount,
		Direction:        m.Direction,
	}
}

// RecurringScheduleModel is the persistence model for repeating invoices and
// bills with a fixed cadence.
type RecurringScheduleModel struct {
	ID             uuid.UUID             `gorm:"type:uuid;primaryKey"`
	Direction      forecast.Direction    `gorm:"type:varchar(20);not null;index"`
	CounterpartyID uuid.UUID             `gorm:"type:uuid;not null"`
	IntervalUnit   forecast.IntervalUnit `gorm:"type:varchar(10);not null"`
	IntervalCount  int                   `gorm:"not null;default:1"`
	NextOccurrence time.Time             `gorm:"type:date;not null;index"`
	EndDate        *time.Time            `gorm:"type:date"`
	Amount         decimal.Decimal       `gorm:"type:decimal(20,4);not null"`
	IsActive       bool                  `gorm:"not null;default:true;index"`
	CreatedAt      time.Time             `gorm:"autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (RecurringScheduleModel) TableName() string {
	return "recurring_schedules"
}

// ToDomain converts the persistence model to a domain RecurringSchedule
func (m *RecurringScheduleModel) ToDomain() forecast.RecurringSchedule {
	return forecast.RecurringSchedule{
		ID:             m.ID,
		Direction:      m.Direction,
		CounterpartyID: m.CounterpartyID,
		IntervalUnit:   m.IntervalUnit,
		IntervalCount:  m.IntervalCount,
		NextOccurrence: m.NextOccurrence,
		EndDate:        m.EndDate,
		Amount:         m.Amount,
	}
}

// PaymentPatternModel is the persistence model for per-counterparty payment
// behavior aggregates. One row per counterparty per role.
type PaymentPatternModel struct {
	CounterpartyID   uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	Role             forecast.CounterpartyRole `gorm:"type:varchar(20);primaryKey"`
	AverageDaysToPay int                       `gorm:"not null;default:0"`
	OnTimeRate       float64                   `gorm:"type:decimal(5,4);not null;default:0"`
	SampleSize       int                       `gorm:"not null;default:0"`
	UpdatedAt        time.Time                 `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (PaymentPatternModel) TableName() string {
	return "payment_patterns"
}

// ToDomain converts the persistence model to a domain PaymentPattern
func (m *PaymentPatternModel) ToDomain() forecast.PaymentPattern {
	return forecast.PaymentPattern{
		CounterpartyID:   m.CounterpartyID,
		Role:             m.Role,
		AverageDaysToPay: m.AverageDaysToPay,
		OnTimeRate:       m.OnTimeRate,
		SampleSize:       m.SampleSize,
	}
}

// BudgetLineModel is the persistence model for one account's budgeted amount
// in one month. MonthPeriod is always the first day of the month.
type BudgetLineModel struct {
	ID             uuid.UUID               `gorm:"type:uuid;primaryKey"`
	AccountCode    string                  `gorm:"type:varchar(20);not null;uniqueIndex:idx_budget_account_month,priority:1"`
	Category       forecast.BudgetCategory `gorm:"type:varchar(20);not null;index"`
	MonthPeriod    time.Time               `gorm:"type:date;not null;uniqueIndex:idx_budget_account_month,priority:2"`
	BudgetedAmount decimal.Decimal         `gorm:"type:decimal(20,4);not null"`
	CreatedAt      time.Time               `gorm:"autoCreateTime"`
	UpdatedAt      time.Time               `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (BudgetLineModel) TableName() string {
	return "budget_lines"
}

// ToDomain converts the persistence model to a domain BudgetLine
func (m *BudgetLineModel) ToDomain() forecast.BudgetLine {
	return forecast.BudgetLine{
		AccountCode:    m.AccountCode,
		Category:       m.Category,
		MonthPeriod:    m.MonthPeriod,
		BudgetedAmount: m.BudgetedAmount,
	}
}

// PositionSnapshotModel is the persistence model for fallback cash position
// snapshots. A snapshot is written after every successful live load and read
// back when the live store is unreachable.
type PositionSnapshotModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Cash               decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	AccountsReceivable decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	AccountsPayable    decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CapturedAt         time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PositionSnapshotModel) TableName() string {
	return "position_snapshots"
}

// DailyForecastModel is the persistence model for one projected day of the
// simulation output. Rows are keyed uniquely by forecast date so a rerun
// overwrites rather than duplicates.
type DailyForecastModel struct {
	ForecastDate     time.Time        `gorm:"type:date;primaryKey"`
	OpeningBalance   decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	InflowInvoices   decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	InflowRecurring  decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	InflowOther      decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	InflowTotal      decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	OutflowBills     decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	OutflowRecurring decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	OutflowTax       decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	OutflowInferred  decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	OutflowBudget    decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	OutflowTotal     decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	ClosingBalance   decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	BestCaseBalance  decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	WorstCaseBalance decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	ConfidenceLevel  float64          `gorm:"type:decimal(5,4);not null"`
	Alerts           []forecast.Alert `gorm:"type:jsonb;serializer:json"`
	GeneratedAt      time.Time        `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (DailyForecastModel) TableName() string {
	return "daily_forecasts"
}

// ToDomain converts the persistence model to a domain DailyForecast
func (m *DailyForecastModel) ToDomain() forecast.DailyForecast {
	return forecast.DailyForecast{
		Date:           m.ForecastDate,
		OpeningBalance: m.OpeningBalance,
		Inflows: forecast.Inflows{
			FromInvoices:  m.InflowInvoices,
			FromRecurring: m.InflowRecurring,
			FromOther:     m.InflowOther,
			Total:         m.InflowTotal,
		},
		Outflows: forecast.Outflows{
			ToBills:            m.OutflowBills,
			ToRecurring:        m.OutflowRecurring,
			ToTax:              m.OutflowTax,
			ToInferredPatterns: m.OutflowInferred,
			ToBudget:           m.OutflowBudget,
			Total:              m.OutflowTotal,
		},
		ClosingBalance: m.ClosingBalance,
		Scenarios: forecast.Scenarios{
			BestCase:  m.BestCaseBalance,
			WorstCase: m.WorstCaseBalance,
		},
		ConfidenceLevel: m.ConfidenceLevel,
		Alerts:          m.Alerts,
	}
}

// DailyForecastModelFromDomain creates a persistence model from a domain
// DailyForecast
func DailyForecastModelFromDomain(d forecast.DailyForecast) *DailyForecastModel {
	return &DailyForecastModel{
		ForecastDate:     forecast.DayOf(d.Date),
		OpeningBalance:   d.OpeningBalance,
		InflowInvoices:   d.Inflows.FromInvoices,
		InflowRecurring:  d.Inflows.FromRecurring,
		InflowOther:      d.Inflows.FromOther,
		InflowTotal:      d.Inflows.Total,
		OutflowBills:     d.Outflows.ToBills,
		OutflowRecurring: d.Outflows.ToRecurring,
		OutflowTax:       d.Outflows.ToTax,
		OutflowInferred:  d.Outflows.ToInferredPatterns,
		OutflowBudget:    d.Outflows.ToBudget,
		OutflowTotal:     d.Outflows.Total,
		ClosingBalance:   d.ClosingBalance,
		BestCaseBalance:  d.Scenarios.BestCase,
		WorstCaseBalance: d.Scenarios.WorstCase,
		ConfidenceLevel:  d.ConfidenceLevel,
		Alerts:           d.Alerts,
	}
}
