// Package quant is the deterministic forecast engine behind the simulator:
// exponential smoothing with trend and dampened seasonality over the
// monthly metric series, plus a memoizing cache keyed by inputs.
package quant

import (
	"github.com/nishanthbasava/quantra-finance-hub/internal/aggregate"
	"github.com/nishanthbasava/quantra-finance-hub/internal/ledger"
	"github.com/nishanthbasava/quantra-finance-hub/internal/scenario"
)

// Metric selects which monthly series the model forecasts.
type Metric string

const (
	MetricTotalBalance Metric = "total_balance"
	MetricCashFlow     Metric = "cash_flow"
	MetricExpenses     Metric = "expenses"
	MetricIncome       Metric = "income"
	MetricSavingsRate  Metric = "savings_rate"
)

// ParseMetric validates a metric string, defaulting to total balance.
func ParseMetric(s string) Metric {
	switch Metric(s) {
	case MetricCashFlow, MetricExpenses, MetricIncome, MetricSavingsRate:
		return Metric(s)
	default:
		return MetricTotalBalance
	}
}

// TimeSeriesPoint is one forecast value; Date is a short month label.
type TimeSeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Inputs feeds one model run.
type Inputs struct {
	TimeRangeDays int                         `json:"timeRangeDays"`
	Transactions  []ledger.Transaction        `json:"transactions"`
	Balances      []aggregate.BalanceSnapshot `json:"balances"`
	Scenario      *scenario.Definition        `json:"scenario,omitempty"`
	Metric        Metric                      `json:"metric"`
}

// ScenarioSeries is the forecast under one scenario's adjustments.
type ScenarioSeries struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Series []TimeSeriesPoint `json:"series"`
}

// Insights summarizes the headline numbers shown next to the chart.
type Insights struct {
	BestMonth  *TimeSeriesPoint `json:"bestMonth,omitempty"`
	WorstMonth *TimeSeriesPoint `json:"worstMonth,omitempty"`
	EndDelta   float64          `json:"endDelta"`
}

// Diagnostics reports model identity and run quality.
type Diagnostics struct {
	ModelName  string  `json:"modelName"`
	Confidence float64 `json:"confidence"`
	LastRunMs  float64 `json:"lastRunMs"`
}

// Outputs is one complete forecast.
type Outputs struct {
	Metric      Metric            `json:"metric"`
	Baseline    []TimeSeriesPoint `json:"baseline"`
	Scenarios   []ScenarioSeries  `json:"scenarios"`
	Insights    Insights          `json:"insights"`
	Diagnostics Diagnostics       `json:"diagnostics"`
}
