package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cashcast/backend/internal/domain/forecast"
	"github.com/shopspring/decimal"
)

// cacheDateLayout serializes forecast dates as plain calendar days. Forecast
// dates are days, not timestamps; this keeps the round trip exact regardless
// of the timezone the process runs in.
const cacheDateLayout = "2006-01-02"

// wireDay is the cache wire form of a DailyForecast
type wireDay struct {
	Date            string             `json:"date"`
	OpeningBalance  decimal.Decimal    `json:"opening_balance"`
	Inflows         forecast.Inflows   `json:"inflows"`
	Outflows        forecast.Outflows  `json:"outflows"`
	ClosingBalance  decimal.Decimal    `json:"closing_balance"`
	Scenarios       forecast.Scenarios `json:"scenarios"`
	ConfidenceLevel float64            `json:"confidence_level"`
	Alerts          []forecast.Alert   `json:"alerts"`
}

// encodeForecast serializes a horizon result for cache storage
func encodeForecast(days []forecast.DailyForecast) ([]byte, error) {
	wire := make([]wireDay, len(days))
	for i, d := range days {
		wire[i] = wireDay{
			Date:            d.Date.Format(cacheDateLayout),
			OpeningBalance:  d.OpeningBalance,
			Inflows:         d.Inflows,
			Outflows:        d.Outflows,
			ClosingBalance:  d.ClosingBalance,
			Scenarios:       d.Scenarios,
			ConfidenceLevel: d.ConfidenceLevel,
			Alerts:          d.Alerts,
		}
	}
	return json.Marshal(wire)
}

// decodeForecast deserializes a cached horizon result
func decodeForecast(data []byte) ([]forecast.DailyForecast, error) {
	var wire []wireDay
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode cached forecast: %w", err)
	}

	days := make([]forecast.DailyForecast, len(wire))
	for i, w := range wire {
		date, err := time.ParseInLocation(cacheDateLayout, w.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid cached forecast date %q: %w", w.Date, err)
		}
		days[i] = forecast.DailyForecast{
			Date:            date,
			OpeningBalance:  w.OpeningBalance,
			Inflows:         w.Inflows,
			Outflows:        w.Outflows,
			ClosingBalance:  w.ClosingBalance,
			Scenarios:       w.Scenarios,
			ConfidenceLevel: w.ConfidenceLevel,
			Alerts:          w.Alerts,
		}
	}
	return days, nil
}
