package quant

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/nishanthbasava/quantra-finance-hub/internal/aggregate"
	"github.com/nishanthbasava/quantra-finance-hub/internal/ledger"
	"github.com/nishanthbasava/quantra-finance-hub/internal/rng"
	"github.com/nishanthbasava/quantra-finance-hub/internal/scenario"
)

const (
	modelName      = "quantra-ets-v1"
	forecastMonths = 10
	smoothingAlpha = 0.35
	rollingWindow  = 3

	defaultStartBalance = 15000
)

// jsRound rounds half toward positive infinity, which is what the series
// values were historically rounded with. math.Round differs on negative
// halves and would shift cash-flow forecasts.
func jsRound(x float64) float64 {
	return math.Floor(x + 0.5)
}

func round2(x float64) float64 {
	return jsRound(x*100) / 100
}

type monthlyMetrics struct {
	income      float64
	expenses    float64
	cashFlow    float64
	balance     float64
	savingsRate float64
}

func groupByMonth(txns []ledger.Transaction) (map[string][]ledger.Transaction, []string) {
	byMonth := make(map[string][]ledger.Transaction)
	for _, t := range txns {
		if len(t.Date) < 7 {
			continue
		}
		key := t.Date[:7]
		byMonth[key] = append(byMonth[key], t)
	}
	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return byMonth, keys
}

var monthShortLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func monthLabel(key string) string {
	if len(key) < 7 {
		return key
	}
	var y, m int
	if _, err := fmt.Sscanf(key, "%d-%d", &y, &m); err != nil || m < 1 || m > 12 {
		return key[5:]
	}
	return monthShortLabels[m-1]
}

func advanceMonth(key string, n int) string {
	var y, m int
	if _, err := fmt.Sscanf(key, "%d-%d", &y, &m); err != nil {
		return key
	}
	total := y*12 + (m - 1) + n
	return fmt.Sprintf("%d-%02d", total/12, total%12+1)
}

func computeMonthlyMetrics(byMonth map[string][]ledger.Transaction, months []string, balances []aggregate.BalanceSnapshot) map[string]monthlyMetrics {
	// Last snapshot of each month wins.
	balanceByMonth := make(map[string]float64)
	for _, snap := range balances {
		if len(snap.Date) >= 7 {
			balanceByMonth[snap.Date[:7]] = snap.Balance
		}
	}

	runningBalance := defaultStartBalance * 1.0
	if b, ok := balanceByMonth[months[0]]; ok {
		runningBalance = b
	}

	result := make(map[string]monthlyMetrics, len(months))
	for _, month := range months {
		var income, expenses float64
		for _, t := range byMonth[month] {
			if t.Type == ledger.TypeIncome {
				income += t.Amount
			} else {
				expenses += t.Amount
			}
		}
		cashFlow := income - expenses
		runningBalance += cashFlow
		savingsRate := 0.0
		if income > 0 {
			savingsRate = (income - expenses) / income * 100
		}
		result[month] = monthlyMetrics{
			income:      jsRound(income),
			expenses:    jsRound(expenses),
			cashFlow:    jsRound(cashFlow),
			balance:     jsRound(runningBalance),
			savingsRate: jsRound(savingsRate*10) / 10,
		}
	}
	return result
}

func extractSeries(metrics map[string]monthlyMetrics, months []string, metric Metric) []float64 {
	out := make([]float64, len(months))
	for i, m := range months {
		v := metrics[m]
		switch metric {
		case MetricTotalBalance:
			out[i] = v.balance
		case MetricCashFlow:
			out[i] = v.cashFlow
		case MetricExpenses:
			out[i] = v.expenses
		case MetricIncome:
			out[i] = v.income
		case MetricSavingsRate:
			out[i] = v.savingsRate
		}
	}
	return out
}

func exponentialSmoothing(series []float64, alpha float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	smoothed := make([]float64, len(series))
	smoothed[0] = series[0]
	for i := 1; i < len(series); i++ {
		smoothed[i] = alpha*series[i] + (1-alpha)*smoothed[i-1]
	}
	return smoothed
}

func rollingMean(series []float64, window int) []float64 {
	out := make([]float64, len(series))
	for i := range series {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum := 0.0
		for _, v := range series[start : i+1] {
			sum += v
		}
		out[i] = sum / float64(i+1-start)
	}
	return out
}

func estimateTrend(series []float64) (slope, intercept float64) {
	n := len(series)
	if n < 2 {
		if n == 1 {
			return 0, series[0]
		}
		return 0, 0
	}
	var sumX, sumY, sumXY, sumX2 float64
	for i, v := range series {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumX2 += x * x
	}
	fn := float64(n)
	slope = (fn*sumXY - sumX*sumY) / (fn*sumX2 - sumX*sumX)
	intercept = (sumY - slope*sumX) / fn
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		slope = 0
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		intercept = series[0]
	}
	return slope, intercept
}

// seasonality is the residual of the raw series against the rolled one.
func seasonality(series, rolled []float64) []float64 {
	out := make([]float64, len(series))
	for i := range series {
		out[i] = series[i] - rolled[i]
	}
	return out
}

type scenarioDelta struct {
	monthlyExpense float64
	monthlyIncome  float64
	eventMonth     int
	eventAmount    float64
	hasEvent       bool
}

func computeScenarioDelta(def *scenario.Definition, avgIncome, avgExpenses float64, subs []aggregate.SubscriptionCost, monthlyRideshare float64) scenarioDelta {
	switch p := def.Params.(type) {
	case scenario.Budgeting:
		target := avgIncome * ((p.Needs + p.Wants) / 100)
		return scenarioDelta{monthlyExpense: avgExpenses - target}
	case scenario.Habits:
		saving := p.ReduceDiningOut*4 + math.Max(0, monthlyRideshare-p.CapRideshare) - p.IncreaseGroceries
		return scenarioDelta{monthlyExpense: saving}
	case scenario.Subscriptions:
		saved := 0.0
		for _, sub := range subs {
			if keep, ok := p.Toggles[sub.Name]; ok && !keep {
				saved += sub.Cost
			}
		}
		return scenarioDelta{monthlyExpense: saved}
	case scenario.OneTime:
		return scenarioDelta{eventMonth: p.Month, eventAmount: p.Amount, hasEvent: true}
	case scenario.Income:
		return scenarioDelta{monthlyIncome: p.Amount, eventMonth: p.StartMonth, hasEvent: true}
	default:
		return scenarioDelta{}
	}
}

// Run produces the 10-month forecast for one metric, with an optional
// scenario overlay. The model is fully deterministic: the noise generator
// is seeded from the inputs themselves.
func Run(in Inputs) Outputs {
	t0 := time.Now()

	byMonth, months := groupByMonth(in.Transactions)
	if len(months) == 0 {
		return emptyOutput(in.Metric, t0)
	}

	metrics := computeMonthlyMetrics(byMonth, months, in.Balances)
	rawSeries := extractSeries(metrics, months, in.Metric)

	smoothed := exponentialSmoothing(rawSeries, smoothingAlpha)
	rolled := rollingMean(smoothed, rollingWindow)
	seasonal := seasonality(rawSeries, rolled)
	slope, _ := estimateTrend(rolled)

	noise := rng.New(rng.HashInts(len(in.Transactions), len(rawSeries), int(jsRound(slope*100))))

	lastMonth := months[len(months)-1]
	lastVal := rolled[len(rolled)-1]

	baseline := make([]TimeSeriesPoint, 0, forecastMonths)
	for i := 0; i < forecastMonths; i++ {
		monthKey := advanceMonth(lastMonth, i+1)
		trendVal := lastVal + slope*float64(i+1)

		seasonalIdx := i % len(seasonal)
		bump := seasonal[seasonalIdx] * 0.5

		val := trendVal + bump + noise.Normal(0, math.Abs(slope)*0.3+lastVal*0.015)

		switch {
		case in.Metric == MetricSavingsRate:
			val = math.Max(-50, math.Min(100, val))
		case in.Metric != MetricCashFlow:
			val = math.Max(0, val)
		}

		baseline = append(baseline, TimeSeriesPoint{Date: monthLabel(monthKey), Value: round2(val)})
	}

	var scenarios []ScenarioSeries
	if in.Scenario != nil && in.Scenario.Params != nil {
		scenarios = append(scenarios, runScenario(in, metrics, months, baseline))
	}

	insightSeries := baseline
	endDelta := 0.0
	if len(scenarios) > 0 {
		insightSeries = scenarios[0].Series
		endDelta = scenarios[0].Series[len(scenarios[0].Series)-1].Value - baseline[len(baseline)-1].Value
	}
	best := insightSeries[0]
	worst := insightSeries[0]
	for _, p := range insightSeries {
		if p.Value > best.Value {
			best = p
		}
		if p.Value < worst.Value {
			worst = p
		}
	}

	confidence := math.Min(0.95, 0.4+float64(len(months))*0.12)

	return Outputs{
		Metric:    in.Metric,
		Baseline:  baseline,
		Scenarios: scenarios,
		Insights: Insights{
			BestMonth:  &TimeSeriesPoint{Date: best.Date, Value: best.Value},
			WorstMonth: &TimeSeriesPoint{Date: worst.Date, Value: worst.Value},
			EndDelta:   endDelta,
		},
		Diagnostics: Diagnostics{
			ModelName:  modelName,
			Confidence: confidence,
			LastRunMs:  runtimeMs(t0),
		},
	}
}

func runScenario(in Inputs, metrics map[string]monthlyMetrics, months []string, baseline []TimeSeriesPoint) ScenarioSeries {
	def := in.Scenario
	n := float64(len(months))

	avgIncome := sum(extractSeries(metrics, months, MetricIncome)) / n
	avgExpenses := sum(extractSeries(metrics, months, MetricExpenses)) / n

	subs := aggregate.SubscriptionsFromLedger(in.Transactions, len(months))

	rideshareTotal := 0.0
	for _, t := range in.Transactions {
		if t.Type == ledger.TypeExpense && t.Subcategory == "Rideshare" {
			rideshareTotal += t.Amount
		}
	}
	monthlyRideshare := jsRound(rideshareTotal / n)

	delta := computeScenarioDelta(def, avgIncome, avgExpenses, subs, monthlyRideshare)
	scenarioType := def.Params.Type()

	series := make([]TimeSeriesPoint, len(baseline))
	for i, bp := range baseline {
		val := bp.Value
		month := i + 1

		switch in.Metric {
		case MetricTotalBalance:
			val += (delta.monthlyExpense + delta.monthlyIncome) * float64(month)
			if scenarioType == scenario.TypeOneTime && delta.hasEvent && month >= delta.eventMonth {
				val -= delta.eventAmount
			}
		case MetricCashFlow:
			val += delta.monthlyExpense + delta.monthlyIncome
			if scenarioType == scenario.TypeOneTime && delta.hasEvent && month == delta.eventMonth {
				val -= delta.eventAmount
			}
		case MetricExpenses:
			val -= delta.monthlyExpense
			if scenarioType == scenario.TypeOneTime && delta.hasEvent && month == delta.eventMonth {
				val += delta.eventAmount
			}
		case MetricIncome:
			if scenarioType == scenario.TypeIncome && delta.hasEvent && month >= delta.eventMonth {
				val += delta.monthlyIncome
			}
		case MetricSavingsRate:
			adjExpenses := avgExpenses - delta.monthlyExpense
			adjIncome := avgIncome + delta.monthlyIncome
			if adjIncome > 0 {
				val = (adjIncome - adjExpenses) / adjIncome * 100
			} else {
				val = 0
			}
			val = jsRound(val*10) / 10
		}

		series[i] = TimeSeriesPoint{Date: bp.Date, Value: round2(val)}
	}

	return ScenarioSeries{ID: def.ID, Name: def.Name, Series: series}
}

func sum(vs []float64) float64 {
	total := 0.0
	for _, v := range vs {
		total += v
	}
	return total
}

func runtimeMs(t0 time.Time) float64 {
	return round2(float64(time.Since(t0).Microseconds()) / 1000)
}

func emptyOutput(metric Metric, t0 time.Time) Outputs {
	return Outputs{
		Metric:    metric,
		Baseline:  []TimeSeriesPoint{},
		Scenarios: []ScenarioSeries{},
		Diagnostics: Diagnostics{
			ModelName:  modelName,
			Confidence: 0,
			LastRunMs:  runtimeMs(t0),
		},
	}
}
