package scenario

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishanthbasava/quantra-finance-hub/internal/aggregate"
)

var testBaseline = aggregate.Baseline{
	MonthlyIncome:   5299,
	MonthlyExpenses: 3369,
	Rideshare:       62,
	Subscriptions: []aggregate.SubscriptionCost{
		{Name: "Netflix", Cost: 15.49},
		{Name: "Spotify", Cost: 10.99},
		{Name: "Equinox", Cost: 220},
	},
}

func TestHashIgnoresIdentityAndToggleOrder(t *testing.T) {
	a := &Definition{ID: "a", Name: "one", Params: Subscriptions{
		Toggles: map[string]bool{"Netflix": false, "Spotify": true},
	}}
	b := &Definition{ID: "b", Name: "two", Params: Subscriptions{
		Toggles: map[string]bool{"Spotify": true, "Netflix": false},
	}}
	assert.Equal(t, Hash(a), Hash(b))
	assert.Equal(t, "subscriptions:Netflix=false,Spotify=true", Hash(a))
}

func TestHashDistinguishesParams(t *testing.T) {
	a := &Definition{Params: Habits{ReduceDiningOut: 50, CapRideshare: 62}}
	b := &Definition{Params: Habits{ReduceDiningOut: 60, CapRideshare: 62}}
	assert.NotEqual(t, Hash(a), Hash(b))
	assert.Equal(t, "none", Hash(nil))
}

func TestDefinitionJSONRoundTrip(t *testing.T) {
	defs := []Definition{
		{ID: "1", Name: "plan", Color: Colors[0], Params: Budgeting{Preset: "50/30/20", Needs: 50, Wants: 30, Savings: 20}},
		{ID: "2", Name: "habits", Params: Habits{ReduceDiningOut: 40, CapRideshare: 50, IncreaseGroceries: 10}},
		{ID: "3", Name: "cancel", Params: Subscriptions{Toggles: map[string]bool{"Netflix": false}}},
		{ID: "4", Name: "tv", Params: OneTime{Amount: 1200, Month: 2}},
		{ID: "5", Name: "raise", Params: Income{Amount: 500, StartMonth: 3}},
	}
	for _, d := range defs {
		raw, err := json.Marshal(d)
		require.NoError(t, err)

		var got Definition
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, d, got, d.Name)
	}
}

func TestDefinitionUnmarshalRejectsUnknownType(t *testing.T) {
	var d Definition
	err := json.Unmarshal([]byte(`{"id":"x","type":"lottery","params":{}}`), &d)
	assert.Error(t, err)
}

func TestParseHabits(t *testing.T) {
	p, name := Parse("cut dining out by $50", testBaseline)
	require.NotNil(t, p)
	assert.Equal(t, "Habit Changes", name)
	h, ok := p.(Habits)
	require.True(t, ok)
	assert.Equal(t, 50.0, h.ReduceDiningOut)
	// Rideshare cap defaults to the baseline rate, i.e. no change.
	assert.Equal(t, 62.0, h.CapRideshare)
	assert.Equal(t, 0.0, h.IncreaseGroceries)

	p, _ = Parse("limit uber to 40 and raise groceries by $25", testBaseline)
	h, ok = p.(Habits)
	require.True(t, ok)
	assert.Equal(t, 40.0, h.CapRideshare)
	assert.Equal(t, 25.0, h.IncreaseGroceries)
}

func TestParseCancel(t *testing.T) {
	p, name := Parse("cancel netflix and spotify", testBaseline)
	require.NotNil(t, p)
	assert.Equal(t, "Cancel Netflix And Spotify", name)
	s, ok := p.(Subscriptions)
	require.True(t, ok)
	assert.False(t, s.Toggles["Netflix"])
	assert.False(t, s.Toggles["Spotify"])
	assert.True(t, s.Toggles["Equinox"])
}

func TestParseIncomeAndPurchase(t *testing.T) {
	p, _ := Parse("earn extra $400 per month", testBaseline)
	inc, ok := p.(Income)
	require.True(t, ok)
	assert.Equal(t, 400.0, inc.Amount)
	assert.Equal(t, 1, inc.StartMonth)

	p, _ = Parse("add $250 starting month 4", testBaseline)
	inc, ok = p.(Income)
	require.True(t, ok)
	assert.Equal(t, 250.0, inc.Amount)
	assert.Equal(t, 4, inc.StartMonth)

	p, _ = Parse("buy $1200 laptop in month 2", testBaseline)
	ot, ok := p.(OneTime)
	require.True(t, ok)
	assert.Equal(t, 1200.0, ot.Amount)
	assert.Equal(t, 2, ot.Month)

	p, _ = Parse("spend $800 on a trip next month", testBaseline)
	ot, ok = p.(OneTime)
	require.True(t, ok)
	assert.Equal(t, 3, ot.Month, "purchase month defaults to 3")
}

func TestParseNoMatch(t *testing.T) {
	p, name := Parse("what is my balance", testBaseline)
	assert.Nil(t, p)
	assert.Empty(t, name)
}

func TestSuggestions(t *testing.T) {
	defs := []*Definition{
		{Params: Subscriptions{Toggles: map[string]bool{"Netflix": false, "Spotify": false}}},
		{Params: Habits{ReduceDiningOut: 50, CapRideshare: 40}},
		{Params: Budgeting{Preset: "aggressive", Needs: 45, Wants: 15, Savings: 40}},
	}
	got := Suggestions(defs, testBaseline)
	require.Len(t, got, 4)
	assert.Equal(t, "Cancelling Netflix, Spotify saves ~$26/mo", got[0])
	assert.Equal(t, "Cutting dining out by $50/wk saves ~$200/mo", got[1])
	assert.Equal(t, "Capping rideshare to $40/mo saves ~$22/mo", got[2])
	assert.Equal(t, "40% savings rate targets ~$2120/mo saved", got[3])
}

func TestSuggestionsFallback(t *testing.T) {
	got := Suggestions(nil, testBaseline)
	require.Len(t, got, 3)
	assert.Contains(t, got[2], "compound")
}

func TestNextQuestion(t *testing.T) {
	assert.Contains(t, NextQuestion(nil, "expenses"), "optimize first")

	one := []*Definition{{Params: OneTime{Amount: 100, Month: 1}}}
	two := append(one, &Definition{Params: Income{Amount: 100, StartMonth: 1}})
	assert.NotEqual(t, NextQuestion(one, "expenses"), NextQuestion(two, "expenses"))
}

func TestBudgetPresets(t *testing.T) {
	for _, p := range BudgetPresets {
		if p.Value == "zero-based" {
			assert.Equal(t, 100.0, p.Needs+p.Wants+p.Savings)
		}
	}
	require.Len(t, Colors, MaxScenarios)
}
