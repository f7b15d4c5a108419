package scenario

import (
	"fmt"
	"strings"

	"github.com/nishanthbasava/quantra-finance-hub/internal/aggregate"
)

const maxSuggestions = 5

// Suggestions summarizes the monthly impact of each active scenario. With
// no scenarios it falls back to generic starting points.
func Suggestions(defs []*Definition, baseline aggregate.Baseline) []string {
	var out []string

	for _, d := range defs {
		switch p := d.Params.(type) {
		case Subscriptions:
			var cancelled []string
			total := 0.0
			for _, sub := range baseline.Subscriptions {
				if keep, ok := p.Toggles[sub.Name]; ok && !keep {
					cancelled = append(cancelled, sub.Name)
					total += sub.Cost
				}
			}
			if len(cancelled) > 0 {
				out = append(out, fmt.Sprintf("Cancelling %s saves ~$%.0f/mo",
					strings.Join(cancelled, ", "), total))
			}
		case Habits:
			if p.ReduceDiningOut > 0 {
				out = append(out, fmt.Sprintf("Cutting dining out by $%g/wk saves ~$%.0f/mo",
					p.ReduceDiningOut, p.ReduceDiningOut*4))
			}
			if p.CapRideshare < baseline.Rideshare {
				out = append(out, fmt.Sprintf("Capping rideshare to $%g/mo saves ~$%.0f/mo",
					p.CapRideshare, baseline.Rideshare-p.CapRideshare))
			}
		case Budgeting:
			out = append(out, fmt.Sprintf("%g%% savings rate targets ~$%.0f/mo saved",
				p.Savings, baseline.MonthlyIncome*p.Savings/100))
		case Income:
			out = append(out, fmt.Sprintf("Extra $%g/mo starting month %d adds ~$%g over the forecast",
				p.Amount, p.StartMonth, p.Amount*float64(10-p.StartMonth+1)))
		case OneTime:
			out = append(out, fmt.Sprintf("One-time $%g purchase in month %d temporarily reduces your balance",
				p.Amount, p.Month))
		}
	}

	if len(out) == 0 {
		out = []string{
			"Try adjusting your budget allocations to see the impact on savings",
			"Consider which subscriptions provide the most value",
			"Small habit changes compound over time",
		}
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

var metricQuestions = map[string][]string{
	"total_balance": {
		"Do you want to prioritize stability or maximum growth?",
		"What's your target balance by end of year?",
	},
	"cash_flow": {
		"Should we optimize for consistent monthly cash flow?",
		"Are there months where you expect irregular expenses?",
	},
	"expenses": {
		"Which expense categories feel least essential to you?",
		"Would you prefer gradual or aggressive expense cuts?",
	},
	"savings_rate": {
		"What savings rate feels sustainable long-term?",
		"Should we optimize for end-of-semester cash?",
	},
}

// NextQuestion picks the follow-up prompt shown under the forecast chart,
// rotating through the metric's pool as scenarios accumulate.
func NextQuestion(defs []*Definition, metric string) string {
	if len(defs) == 0 {
		return "What area of your spending would you like to optimize first?"
	}
	pool, ok := metricQuestions[metric]
	if !ok {
		pool = metricQuestions["total_balance"]
	}
	return pool[len(defs)%len(pool)]
}
