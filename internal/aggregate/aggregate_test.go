package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishanthbasava/quantra-finance-hub/internal/ledger"
	"github.com/nishanthbasava/quantra-finance-hub/internal/persona"
	"github.com/nishanthbasava/quantra-finance-hub/internal/synth"
)

func fixtureLedger(t *testing.T) []ledger.Transaction {
	t.Helper()
	p := persona.Generate(42)
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	return synth.Generate(p, 777, today)
}

func TestBuildCategoryTreeGolden(t *testing.T) {
	tree := BuildCategoryTree(fixtureLedger(t))

	assert.Equal(t, 10107.77, tree.TotalExpenses)
	require.Len(t, tree.Categories, 6)

	names := make([]string, len(tree.Categories))
	for i, c := range tree.Categories {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Bills & Utilities", "Food", "Travel", "Subscriptions", "Other", "Shopping"}, names)

	bills := tree.Categories[0]
	assert.Equal(t, 5885.68, bills.Amount)
	require.Len(t, bills.Children, 4)
	assert.Equal(t, "Rent", bills.Children[0].Name)
	assert.Equal(t, 5128.0, bills.Children[0].Amount)

	food := tree.Categories[1]
	assert.Equal(t, 2755.54, food.Amount)
	require.Len(t, food.Children, 3)
	assert.Equal(t, "Groceries", food.Children[0].Name)
	assert.Equal(t, 1498.60, food.Children[0].Amount)
	require.Len(t, food.Children[0].Children, 3)
	assert.Equal(t, SubSubCategory{Name: "Whole Foods", Amount: 763.61}, food.Children[0].Children[0])
	assert.Equal(t, "Dining Out", food.Children[1].Name)
	assert.Equal(t, 1084.37, food.Children[1].Amount)
	assert.Equal(t, "Coffee", food.Children[2].Name)
	assert.Equal(t, 172.57, food.Children[2].Amount)
}

// Every parent amount must equal the sum of its children exactly, and the
// tree total must equal the sum of top-level categories.
func TestBuildCategoryTreeSumInvariant(t *testing.T) {
	tree := BuildCategoryTree(fixtureLedger(t))

	cents := func(v float64) int64 { return int64(v*100 + 0.5) }

	var total int64
	for _, cat := range tree.Categories {
		var catSum int64
		for _, sub := range cat.Children {
			var subSum int64
			for _, leaf := range sub.Children {
				subSum += cents(leaf.Amount)
			}
			require.Equal(t, cents(sub.Amount), subSum, "%s/%s", cat.Name, sub.Name)
			catSum += subSum
		}
		require.Equal(t, cents(cat.Amount), catSum, cat.Name)
		total += catSum
	}
	assert.Equal(t, cents(tree.TotalExpenses), total)
}

func TestBuildCategoryTreeIgnoresIncome(t *testing.T) {
	tree := BuildCategoryTree(fixtureLedger(t))
	for _, c := range tree.Categories {
		assert.NotEqual(t, "Income", c.Name)
	}
}

func TestBuildCategoryTreeEmpty(t *testing.T) {
	tree := BuildCategoryTree(nil)
	assert.Empty(t, tree.Categories)
	assert.Equal(t, 0.0, tree.TotalExpenses)
}

func TestComputeBaselineGolden(t *testing.T) {
	p := persona.Generate(42)
	b := ComputeBaseline(fixtureLedger(t), p)

	assert.Equal(t, 5299.0, b.MonthlyIncome)
	assert.Equal(t, 3369.0, b.MonthlyExpenses)
	assert.Equal(t, 361.0, b.DiningOut)
	assert.Equal(t, 62.0, b.Rideshare)
	assert.Equal(t, 500.0, b.Groceries)
	assert.Equal(t, 67.46, b.SubscriptionTotal)
	assert.Equal(t, 22720.0, b.Balance)
	require.Len(t, b.Subscriptions, len(p.Subscriptions))
	assert.Equal(t, "Planet Fitness", b.Subscriptions[0].Name)
}

func TestComputeBaselineBalanceFloor(t *testing.T) {
	// A heavily net-negative ledger still reports the minimum cushion.
	txns := []ledger.Transaction{
		{Date: "2026-08-01", Amount: 30000, Type: ledger.TypeExpense,
			Category: "Other", Subcategory: "Miscellaneous", Subsubcategory: "Cash"},
	}
	b := ComputeBaseline(txns, persona.Persona{})
	assert.Equal(t, 5000.0, b.Balance)
}

func TestBuildBalanceSnapshotsGolden(t *testing.T) {
	txns := fixtureLedger(t)
	snaps := BuildBalanceSnapshots(txns, 22720)

	require.Len(t, snaps, 89)
	assert.Equal(t, BalanceSnapshot{Date: "2026-06-03", Balance: 16906.37}, snaps[0])
	assert.Equal(t, BalanceSnapshot{Date: "2026-06-04", Balance: 16840.15}, snaps[1])
	assert.Equal(t, BalanceSnapshot{Date: "2026-08-30", Balance: 22720.0}, snaps[len(snaps)-1])
}

func TestBuildBalanceSnapshotsContinuity(t *testing.T) {
	snaps := BuildBalanceSnapshots(fixtureLedger(t), 22720)
	require.NotEmpty(t, snaps)

	prev, err := time.Parse("2006-01-02", snaps[0].Date)
	require.NoError(t, err)
	for _, s := range snaps[1:] {
		d, err := time.Parse("2006-01-02", s.Date)
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 0, 1), d, "snapshot dates must be consecutive")
		prev = d
	}
}

func TestBuildBalanceSnapshotsEmpty(t *testing.T) {
	assert.Nil(t, BuildBalanceSnapshots(nil, 10000))
}

func TestSubscriptionsFromLedger(t *testing.T) {
	txns := []ledger.Transaction{
		{Date: "2026-06-04", Merchant: "Netflix", Category: "Subscriptions", Amount: 15.49, Type: ledger.TypeExpense},
		{Date: "2026-07-04", Merchant: "Netflix", Category: "Subscriptions", Amount: 15.49, Type: ledger.TypeExpense},
		{Date: "2026-07-11", Merchant: "Spotify", Category: "Subscriptions", Amount: 10.99, Type: ledger.TypeExpense},
		{Date: "2026-07-12", Merchant: "Chipotle", Category: "Food", Amount: 12.00, Type: ledger.TypeExpense},
	}
	got := SubscriptionsFromLedger(txns, 2)
	require.Len(t, got, 2)
	assert.Equal(t, SubscriptionCost{Name: "Netflix", Cost: 15.49}, got[0])
	assert.Equal(t, SubscriptionCost{Name: "Spotify", Cost: 5.5}, got[1])
}
