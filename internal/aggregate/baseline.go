package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/nishanthbasava/quantra-finance-hub/internal/ledger"
	"github.com/nishanthbasava/quantra-finance-hub/internal/persona"
)

// SubscriptionCost is one entry in the baseline's subscription roster.
type SubscriptionCost struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// Baseline is the monthly-normalized view of the ledger that scenario
// simulation starts from. Dollar figures are whole-dollar monthly rates
// except SubscriptionTotal, which keeps cents.
type Baseline struct {
	MonthlyIncome     float64            `json:"monthlyIncome"`
	MonthlyExpenses   float64            `json:"monthlyExpenses"`
	Balance           float64            `json:"balance"`
	DiningOut         float64            `json:"diningOut"`
	Rideshare         float64            `json:"rideshare"`
	Groceries         float64            `json:"groceries"`
	SubscriptionTotal float64            `json:"subscriptionTotal"`
	Subscriptions     []SubscriptionCost `json:"subscriptions"`
}

const ledgerMonths = 3

// ComputeBaseline normalizes the 90-day ledger to monthly rates. The
// balance heuristic anchors the demo account at a plausible cushion:
// four months of net cash flow on top of 15000, floored at 5000.
func ComputeBaseline(txns []ledger.Transaction, p persona.Persona) Baseline {
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	dining := decimal.Zero
	rideshare := decimal.Zero
	groceries := decimal.Zero

	for _, t := range txns {
		amt := decimal.NewFromFloat(t.Amount)
		if t.Type == ledger.TypeIncome {
			totalIncome = totalIncome.Add(amt)
			continue
		}
		totalExpenses = totalExpenses.Add(amt)
		switch t.Subcategory {
		case "Dining Out":
			dining = dining.Add(amt)
		case "Rideshare":
			rideshare = rideshare.Add(amt)
		case "Groceries":
			groceries = groceries.Add(amt)
		}
	}

	monthly := func(total decimal.Decimal) float64 {
		return total.Div(decimal.NewFromInt(ledgerMonths)).Round(0).InexactFloat64()
	}

	monthlyIncome := monthly(totalIncome)
	monthlyExpenses := monthly(totalExpenses)

	subs := make([]SubscriptionCost, len(p.Subscriptions))
	subTotal := decimal.Zero
	for i, s := range p.Subscriptions {
		subs[i] = SubscriptionCost{Name: s.Name, Cost: s.Cost}
		subTotal = subTotal.Add(decimal.NewFromFloat(s.Cost))
	}

	balance := (monthlyIncome-monthlyExpenses)*4 + 15000
	if balance < 5000 {
		balance = 5000
	}

	return Baseline{
		MonthlyIncome:     monthlyIncome,
		MonthlyExpenses:   monthlyExpenses,
		Balance:           balance,
		DiningOut:         monthly(dining),
		Rideshare:         monthly(rideshare),
		Groceries:         monthly(groceries),
		SubscriptionTotal: subTotal.Round(2).InexactFloat64(),
		Subscriptions:     subs,
	}
}

// SubscriptionsFromLedger recovers the per-merchant monthly subscription
// spend actually present in the ledger, in first-seen order. Useful when
// the persona roster is not at hand, e.g. scenario deltas computed from a
// filtered time range.
func SubscriptionsFromLedger(txns []ledger.Transaction, months int) []SubscriptionCost {
	if months <= 0 {
		months = 1
	}
	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, t := range txns {
		if t.Type != ledger.TypeExpense || t.Category != "Subscriptions" {
			continue
		}
		if _, ok := totals[t.Merchant]; !ok {
			order = append(order, t.Merchant)
		}
		totals[t.Merchant] = totals[t.Merchant].Add(decimal.NewFromFloat(t.Amount))
	}

	out := make([]SubscriptionCost, 0, len(order))
	for _, name := range order {
		cost := totals[name].Div(decimal.NewFromInt(int64(months))).Round(2)
		out = append(out, SubscriptionCost{Name: name, Cost: cost.InexactFloat64()})
	}
	return out
}
