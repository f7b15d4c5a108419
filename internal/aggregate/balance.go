package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nishanthbasava/quantra-finance-hub/internal/ledger"
)

// BalanceSnapshot is the account balance at the end of one calendar day.
type BalanceSnapshot struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
}

// BuildBalanceSnapshots replays the ledger forward into one snapshot per
// calendar day, first transaction date through last, no gaps. The starting
// balance is back-derived so the walk lands exactly on estimatedBalance at
// the final day.
func BuildBalanceSnapshots(txns []ledger.Transaction, estimatedBalance float64) []BalanceSnapshot {
	if len(txns) == 0 {
		return nil
	}

	sorted := make([]ledger.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	dailyNet := make(map[string]decimal.Decimal)
	totalNet := decimal.Zero
	for _, t := range sorted {
		net := decimal.NewFromFloat(t.Amount)
		if t.Type == ledger.TypeExpense {
			net = net.Neg()
		}
		dailyNet[t.Date] = dailyNet[t.Date].Add(net)
		totalNet = totalNet.Add(net)
	}

	first, err := time.Parse("2006-01-02", sorted[0].Date)
	if err != nil {
		return nil
	}
	last, err := time.Parse("2006-01-02", sorted[len(sorted)-1].Date)
	if err != nil {
		return nil
	}

	balance := decimal.NewFromFloat(estimatedBalance).Sub(totalNet)

	var snapshots []BalanceSnapshot
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		balance = balance.Add(dailyNet[key])
		snapshots = append(snapshots, BalanceSnapshot{
			Date:    key,
			Balance: balance.Round(2).InexactFloat64(),
		})
	}
	return snapshots
}
