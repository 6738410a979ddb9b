package handler

import (
	"github.com/cashcast/backend/internal/domain/forecast"
	"github.com/cashcast/backend/internal/domain/tax"
)

const dateLayout = "2006-01-02"

// ===================== Request DTOs =====================

// ForecastRequest defines the query parameters for a forecast run
// @Description Forecast generation parameters
type ForecastRequest struct {
	HorizonDays int `form:"horizon_days" binding:"omitempty,min=1" example:"90"`
}

// ===================== Response DTOs =====================

// AlertResponse represents one forecast alert
// @Description A threshold or due-date advisory attached to a projected day
type AlertResponse struct {
	Kind     string   `json:"kind" example:"LOW_BALANCE" enums:"LOW_BALANCE,LARGE_PAYMENT,TAX_DUE,OVERDUE_INVOICE"`
	Severity string   `json:"severity" example:"warning" enums:"info,warning,critical"`
	Message  string   `json:"message" example:"Projected balance 4200.00 falls below 5000.00"`
	Amount   *float64 `json:"amount,omitempty" example:"4200.00"`
}

// InflowsResponse breaks a day's inflow down by source
// @Description Projected cash inflows for one day
type InflowsResponse struct {
	FromInvoices  float64 `json:"from_invoices" example:"1500.00"`
	FromRecurring float64 `json:"from_recurring" example:"200.00"`
	FromOther     float64 `json:"from_other" example:"0.00"`
	Total         float64 `json:"total" example:"1700.00"`
}

// OutflowsResponse breaks a day's outflow down by destination
// @Description Projected cash outflows for one day
type OutflowsResponse struct {
	ToBills            float64 `json:"to_bills" example:"800.00"`
	ToRecurring        float64 `json:"to_recurring" example:"150.00"`
	ToTax              float64 `json:"to_tax" example:"0.00"`
	ToInferredPatterns float64 `json:"to_inferred_patterns" example:"0.00"`
	ToBudget           float64 `json:"to_budget" example:"60.00"`
	Total              float64 `json:"total" example:"1010.00"`
}

// ScenariosResponse bounds the day's closing balance
// @Description Optimistic and pessimistic closing balances
type ScenariosResponse struct {
	BestCase  float64 `json:"best_case" example:"10750.00"`
	WorstCase float64 `json:"worst_case" example:"10250.00"`
}

// DailyForecastResponse represents one projected day
// @Description One day of the cash flow projection
type DailyForecastResponse struct {
	Date            string            `json:"date" example:"2026-03-02"`
	OpeningBalance  float64           `json:"opening_balance" example:"10000.00"`
	Inflows         InflowsResponse   `json:"inflows"`
	Outflows        OutflowsResponse  `json:"outflows"`
	ClosingBalance  float64           `json:"closing_balance" example:"10690.00"`
	Scenarios       ScenariosResponse `json:"scenarios"`
	ConfidenceLevel float64           `json:"confidence_level" example:"0.92"`
	Alerts          []AlertResponse   `json:"alerts"`
}

// ForecastResponse represents a complete forecast run
// @Description Full forecast output with provenance flags
type ForecastResponse struct {
	HorizonDays int                     `json:"horizon_days" example:"90"`
	FromCache   bool                    `json:"from_cache" example:"false"`
	Persisted   bool                    `json:"persisted" example:"true"`
	Days        []DailyForecastResponse `json:"days"`
}

// ObligationResponse represents one upcoming tax obligation
// @Description A projected or recorded tax payment
type ObligationResponse struct {
	Kind        string  `json:"kind" example:"VAT" enums:"VAT,PAYROLL,CORPORATE"`
	DueDate     string  `json:"due_date" example:"2026-05-07"`
	Amount      float64 `json:"amount" example:"4500.00"`
	PeriodStart string  `json:"period_start,omitempty" example:"2026-01-01"`
	PeriodEnd   string  `json:"period_end,omitempty" example:"2026-03-31"`
	Reference   string  `json:"reference,omitempty" example:"VAT-2026-Q1"`
	Status      string  `json:"status" example:"PENDING" enums:"PENDING,PAID"`
	Precision   string  `json:"precision" example:"PRECISE" enums:"PRECISE,ESTIMATED,DEGRADED"`
}

// toDailyForecastResponse converts one projected day to its response shape
func toDailyForecastResponse(d forecast.DailyForecast) DailyForecastResponse {
	alerts := make([]AlertResponse, len(d.Alerts))
	for i, a := range d.Alerts {
		alert := AlertResponse{
			Kind:     a.Kind.String(),
			Severity: string(a.Severity),
			Message:  a.Message,
		}
		if a.Amount != nil {
			v := a.Amount.InexactFloat64()
			alert.Amount = &v
		}
		alerts[i] = alert
	}

	return DailyForecastResponse{
		Date:           d.Date.Format(dateLayout),
		OpeningBalance: d.OpeningBalance.InexactFloat64(),
		Inflows: InflowsResponse{
			FromInvoices:  d.Inflows.FromInvoices.InexactFloat64(),
			FromRecurring: d.Inflows.FromRecurring.InexactFloat64(),
			FromOther:     d.Inflows.FromOther.InexactFloat64(),
			Total:         d.Inflows.Total.InexactFloat64(),
		},
		Outflows: OutflowsResponse{
			ToBills:            d.Outflows.ToBills.InexactFloat64(),
			ToRecurring:        d.Outflows.ToRecurring.InexactFloat64(),
			ToTax:              d.Outflows.ToTax.InexactFloat64(),
			ToInferredPatterns: d.Outflows.ToInferredPatterns.InexactFloat64(),
			ToBudget:           d.Outflows.ToBudget.InexactFloat64(),
			Total:              d.Outflows.Total.InexactFloat64(),
		},
		ClosingBalance: d.ClosingBalance.InexactFloat64(),
		Scenarios: ScenariosResponse{
			BestCase:  d.Scenarios.BestCase.InexactFloat64(),
			WorstCase: d.Scenarios.WorstCase.InexactFloat64(),
		},
		ConfidenceLevel: d.ConfidenceLevel,
		Alerts:          alerts,
	}
}

// toObligationResponse converts one tax obligation to its response shape
func toObligationResponse(o tax.Obligation) ObligationResponse {
	resp := ObligationResponse{
		Kind:      o.Kind.String(),
		DueDate:   o.DueDate.Format(dateLayout),
		Amount:    o.Amount.InexactFloat64(),
		Reference: o.Reference,
		Status:    o.Status.String(),
		Precision: string(o.Precision),
	}
	if o.PeriodStart != nil {
		resp.PeriodStart = o.PeriodStart.Format(dateLayout)
	}
	if o.PeriodEnd != nil {
		resp.PeriodEnd = o.PeriodEnd.Format(dateLayout)
	}
	return resp
}
