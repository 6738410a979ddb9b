package forecast

import (
	"github.com/shopspring/decimal"
)

// ConfidenceWeights are the per-category confidence constants used in the
// volume-weighted confidence score. Values are fixed at construction time;
// the engine never mutates them.
type ConfidenceWeights struct {
	ConfirmedInvoice  float64
	RepeatingSchedule float64
	InferredPattern   float64
	Budgeted          float64
}

// ScenarioMultipliers scale flows for best/worst-case balance bounds
type ScenarioMultipliers struct {
	BestCaseInflow   decimal.Decimal
	BestCaseOutflow  decimal.Decimal
	WorstCaseInflow  decimal.Decimal
	WorstCaseOutflow decimal.Decimal
}

// AlertThresholds hold the balance and payment levels that trigger alerts
type AlertThresholds struct {
	LowBalance      decimal.Decimal
	CriticalBalance decimal.Decimal
	LargePayment    decimal.Decimal
	// OverdueGraceDays is how many days past due a receivable must be
	// before it counts toward the day-zero overdue alert.
	OverdueGraceDays int
}

// EngineConfig is the immutable configuration of the simulation engine,
// passed in at construction so the engine can be parameterized for other
// jurisdictions and currencies without global state.
type EngineConfig struct {
	Confidence ConfidenceWeights
	Scenarios  ScenarioMultipliers
	Alerts     AlertThresholds
}

// DefaultEngineConfig returns the reference configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Confidence: ConfidenceWeights{
			ConfirmedInvoice:  0.95,
			RepeatingSchedule: 0.98,
			InferredPattern:   0.75,
			Budgeted:          0.60,
		},
		Scenarios: ScenarioMultipliers{
			BestCaseInflow:   decimal.NewFromFloat(1.2),
			BestCaseOutflow:  decimal.NewFromFloat(0.9),
			WorstCaseInflow:  decimal.NewFromFloat(0.8),
			WorstCaseOutflow: decimal.NewFromFloat(1.1),
		},
		Alerts: AlertThresholds{
			LowBalance:       decimal.NewFromInt(5000),
			CriticalBalance:  decimal.NewFromInt(1000),
			LargePayment:     decimal.NewFromInt(10000),
			OverdueGraceDays: 30,
		},
	}
}
