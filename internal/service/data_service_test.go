package service

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishanthbasava/quantra-finance-hub/internal/ledger"
	"github.com/nishanthbasava/quantra-finance-hub/internal/quant"
	"github.com/nishanthbasava/quantra-finance-hub/internal/scenario"
	"github.com/nishanthbasava/quantra-finance-hub/internal/seed"
)

func newTestService(t *testing.T) *DataService {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	clock := func() time.Time { return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC) }
	return NewDataServiceWithClock(seed.NewMemoryStore(), 10, log, clock)
}

func TestSnapshot(t *testing.T) {
	svc := newTestService(t)

	snap, err := svc.Snapshot(ledger.RangeAll)
	require.NoError(t, err)
	require.NotEmpty(t, snap.Transactions)
	require.NotEmpty(t, snap.Balances)
	assert.NotZero(t, snap.SeedInfo.ProfileSeed)
	assert.False(t, snap.SeedInfo.IsLocked)

	assert.Equal(t, snap.Baseline.Balance, snap.TotalBalance)
	assert.Equal(t, snap.Baseline.MonthlyIncome-snap.Baseline.MonthlyExpenses, snap.CashFlow)
	assert.NotEmpty(t, snap.Tree.Categories)
	assert.NotEmpty(t, snap.Categories)
	assert.NotEmpty(t, snap.Accounts)
}

func TestSnapshotIsStableWithinSession(t *testing.T) {
	svc := newTestService(t)

	a, err := svc.Snapshot(ledger.RangeAll)
	require.NoError(t, err)
	b, err := svc.Snapshot(ledger.RangeAll)
	require.NoError(t, err)
	assert.Equal(t, a.Transactions, b.Transactions)
	assert.Equal(t, a.Baseline, b.Baseline)
}

func TestSnapshotTimeRangeNarrows(t *testing.T) {
	svc := newTestService(t)

	all, err := svc.Snapshot(ledger.RangeAll)
	require.NoError(t, err)
	week, err := svc.Snapshot(ledger.Range7D)
	require.NoError(t, err)

	assert.Less(t, len(week.Transactions), len(all.Transactions))
	assert.Less(t, week.Tree.TotalExpenses, all.Tree.TotalExpenses)
	// Baseline always reflects the full ledger.
	assert.Equal(t, all.Baseline, week.Baseline)
}

func TestTransactionsExplorerFilters(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.Transactions(ledger.RangeAll, ledger.Filters{Search: "employer"}, ledger.SortByDate, true)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, tx := range got {
		assert.Equal(t, "Employer Inc.", tx.Merchant)
	}
}

func TestToggleLock(t *testing.T) {
	svc := newTestService(t)

	info, err := svc.ToggleLock()
	require.NoError(t, err)
	assert.True(t, info.IsLocked)

	locked, err := svc.IsLocked()
	require.NoError(t, err)
	assert.True(t, locked)

	info, err = svc.ToggleLock()
	require.NoError(t, err)
	assert.False(t, info.IsLocked)
}

func TestRegenerateResetsEverything(t *testing.T) {
	svc := newTestService(t)

	before, err := svc.SeedInfo()
	require.NoError(t, err)
	_, err = svc.AddScenario("test", scenario.OneTime{Amount: 100, Month: 1})
	require.NoError(t, err)

	after, err := svc.Regenerate()
	require.NoError(t, err)
	assert.NotEqual(t, before.ProfileSeed, after.ProfileSeed)
	assert.Empty(t, svc.Scenarios())
}

func TestScenarioLifecycle(t *testing.T) {
	svc := newTestService(t)

	var ids []string
	for i := 0; i < scenario.MaxScenarios; i++ {
		def, err := svc.AddScenario("", scenario.OneTime{Amount: float64(100 * (i + 1)), Month: 1})
		require.NoError(t, err)
		assert.Equal(t, "One-Time Purchase", def.Name)
		assert.Equal(t, scenario.Colors[i], def.Color)
		ids = append(ids, def.ID)
	}

	_, err := svc.AddScenario("overflow", scenario.OneTime{Amount: 1, Month: 1})
	assert.ErrorIs(t, err, ErrScenarioLimit)

	require.NoError(t, svc.RemoveScenario(ids[1]))
	assert.Len(t, svc.Scenarios(), 3)
	assert.ErrorIs(t, svc.RemoveScenario("nope"), ErrScenarioNotFound)

	// Freed capacity can be reused; colors keep rotating.
	def, err := svc.AddScenario("again", scenario.OneTime{Amount: 5, Month: 2})
	require.NoError(t, err)
	assert.Equal(t, scenario.Colors[0], def.Color)
}

func TestParseScenario(t *testing.T) {
	svc := newTestService(t)

	def, err := svc.ParseScenario("cut dining out by $40")
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, "Habit Changes", def.Name)
	h, ok := def.Params.(scenario.Habits)
	require.True(t, ok)
	assert.Equal(t, 40.0, h.ReduceDiningOut)
	assert.Len(t, svc.Scenarios(), 1)

	def, err = svc.ParseScenario("tell me a joke")
	require.NoError(t, err)
	assert.Nil(t, def)
	assert.Len(t, svc.Scenarios(), 1, "unparseable text must not add a scenario")
}

func TestForecast(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.Forecast(quant.MetricTotalBalance, ledger.RangeAll, "")
	require.NoError(t, err)
	require.Len(t, out.Baseline, 10)
	assert.Empty(t, out.Scenarios)

	def, err := svc.AddScenario("raise", scenario.Income{Amount: 500, StartMonth: 1})
	require.NoError(t, err)

	out, err = svc.Forecast(quant.MetricTotalBalance, ledger.RangeAll, def.ID)
	require.NoError(t, err)
	require.Len(t, out.Scenarios, 1)
	assert.Equal(t, def.ID, out.Scenarios[0].ID)

	_, err = svc.Forecast(quant.MetricTotalBalance, ledger.RangeAll, "missing")
	assert.ErrorIs(t, err, ErrScenarioNotFound)
}

func TestSuggestions(t *testing.T) {
	svc := newTestService(t)
	suggestions, question, err := svc.Suggestions()
	require.NoError(t, err)
	assert.NotEmpty(t, suggestions)
	assert.NotEmpty(t, question)
}

func TestVaultAndAssistantContext(t *testing.T) {
	svc := newTestService(t)

	vault, err := svc.Vault()
	require.NoError(t, err)
	assert.Contains(t, vault.DataHash, "0x")
	assert.NotEmpty(t, vault.CategoryTotals)
	assert.Greater(t, vault.TotalExpenses, 0.0)

	ctx, err := svc.AssistantContext(ledger.Range30D)
	require.NoError(t, err)
	assert.NotEmpty(t, ctx.TopCategories)
	assert.LessOrEqual(t, len(ctx.TopCategories), 5)
	assert.NotEmpty(t, ctx.NextQuestion)
}
