// Package scenario models what-if simulations layered over the forecast
// baseline: budgeting plans, habit changes, subscription cancellations,
// one-time purchases and income changes.
package scenario

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Type discriminates the scenario parameter union.
type Type string

const (
	TypeBudgeting     Type = "budgeting"
	TypeHabits        Type = "habits"
	TypeSubscriptions Type = "subscriptions"
	TypeOneTime       Type = "one-time"
	TypeIncome        Type = "income"
)

var typeLabels = map[Type]string{
	TypeBudgeting:     "Budgeting Plan",
	TypeHabits:        "Habit Changes",
	TypeSubscriptions: "Subscription Changes",
	TypeOneTime:       "One-Time Purchase",
	TypeIncome:        "Income Changes",
}

// DisplayName returns the human label for a scenario type.
func DisplayName(t Type) string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Params is the sealed parameter union. Each variant knows its type tag
// and renders itself into the canonical form used for cache keys.
type Params interface {
	Type() Type
	canonical() string
}

// Budgeting reallocates income across needs/wants/savings percentages.
type Budgeting struct {
	Preset  string  `json:"preset"`
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
}

func (Budgeting) Type() Type { return TypeBudgeting }
func (b Budgeting) canonical() string {
	return fmt.Sprintf("preset=%s,needs=%g,wants=%g,savings=%g", b.Preset, b.Needs, b.Wants, b.Savings)
}

// Habits tunes weekly dining spend, a monthly rideshare cap and a grocery
// budget increase, all in dollars.
type Habits struct {
	ReduceDiningOut   float64 `json:"reduceDiningOut"`
	CapRideshare      float64 `json:"capRideshare"`
	IncreaseGroceries float64 `json:"increaseGroceries"`
}

func (Habits) Type() Type { return TypeHabits }
func (h Habits) canonical() string {
	return fmt.Sprintf("dining=%g,rideshare=%g,groceries=%g", h.ReduceDiningOut, h.CapRideshare, h.IncreaseGroceries)
}

// Subscriptions keeps or cancels entries of the subscription roster. A
// merchant mapped to false is cancelled; absent merchants stay active.
type Subscriptions struct {
	Toggles map[string]bool `json:"toggles"`
}

func (Subscriptions) Type() Type { return TypeSubscriptions }
func (s Subscriptions) canonical() string {
	keys := make([]string, 0, len(s.Toggles))
	for k := range s.Toggles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%t", k, s.Toggles[k])
	}
	return strings.Join(parts, ",")
}

// OneTime is a single purchase landing in a forecast month (1-based).
type OneTime struct {
	Amount float64 `json:"amount"`
	Month  int     `json:"month"`
}

func (OneTime) Type() Type { return TypeOneTime }
func (o OneTime) canonical() string {
	return fmt.Sprintf("amount=%g,month=%d", o.Amount, o.Month)
}

// Income adds recurring monthly income from a forecast month onward.
type Income struct {
	Amount     float64 `json:"amount"`
	StartMonth int     `json:"startMonth"`
}

func (Income) Type() Type { return TypeIncome }
func (i Income) canonical() string {
	return fmt.Sprintf("amount=%g,start=%d", i.Amount, i.StartMonth)
}

// Definition is one saved scenario. Immutable once created; editing means
// removing and re-adding, which also rotates the cache key.
type Definition struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Params Params `json:"-"`
}

// Hash renders the definition into the canonical string embedded in
// forecast cache keys. Two definitions with equal parameters hash equally
// regardless of ID, name or toggle insertion order.
func Hash(d *Definition) string {
	if d == nil || d.Params == nil {
		return "none"
	}
	return string(d.Params.Type()) + ":" + d.Params.canonical()
}

type definitionJSON struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Color  string          `json:"color"`
	Type   Type            `json:"type"`
	Params json.RawMessage `json:"params"`
}

func (d Definition) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(d.Params)
	if err != nil {
		return nil, fmt.Errorf("marshal scenario params: %w", err)
	}
	var t Type
	if d.Params != nil {
		t = d.Params.Type()
	}
	return json.Marshal(definitionJSON{ID: d.ID, Name: d.Name, Color: d.Color, Type: t, Params: raw})
}

func (d *Definition) UnmarshalJSON(data []byte) error {
	var aux definitionJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("unmarshal scenario: %w", err)
	}
	params, err := decodeParams(aux.Type, aux.Params)
	if err != nil {
		return err
	}
	d.ID = aux.ID
	d.Name = aux.Name
	d.Color = aux.Color
	d.Params = params
	return nil
}

// DecodeParams builds the typed params for a scenario type from raw JSON.
func DecodeParams(t Type, raw json.RawMessage) (Params, error) {
	return decodeParams(t, raw)
}

func decodeParams(t Type, raw json.RawMessage) (Params, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	var (
		p   Params
		err error
	)
	switch t {
	case TypeBudgeting:
		var v Budgeting
		err = json.Unmarshal(raw, &v)
		p = v
	case TypeHabits:
		var v Habits
		err = json.Unmarshal(raw, &v)
		p = v
	case TypeSubscriptions:
		var v Subscriptions
		err = json.Unmarshal(raw, &v)
		p = v
	case TypeOneTime:
		var v OneTime
		err = json.Unmarshal(raw, &v)
		p = v
	case TypeIncome:
		var v Income
		err = json.Unmarshal(raw, &v)
		p = v
	default:
		return nil, fmt.Errorf("unknown scenario type %q", t)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal %s params: %w", t, err)
	}
	return p, nil
}

// BudgetPreset is a named needs/wants/savings split.
type BudgetPreset struct {
	Value   string  `json:"value"`
	Label   string  `json:"label"`
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
}

// BudgetPresets are the built-in budget allocations.
var BudgetPresets = []BudgetPreset{
	{Value: "50/30/20", Label: "50 / 30 / 20", Needs: 50, Wants: 30, Savings: 20},
	{Value: "zero-based", Label: "Zero-Based", Needs: 40, Wants: 25, Savings: 35},
	{Value: "aggressive", Label: "Aggressive Saving", Needs: 45, Wants: 15, Savings: 40},
	{Value: "debt-first", Label: "Debt-First", Needs: 50, Wants: 10, Savings: 40},
	{Value: "custom", Label: "Custom", Needs: 50, Wants: 30, Savings: 20},
}

// Colors is the palette assigned round-robin to saved scenarios.
var Colors = []string{
	"hsl(170, 70%, 50%)",
	"hsl(260, 50%, 60%)",
	"hsl(30, 80%, 55%)",
	"hsl(340, 60%, 60%)",
}

// MaxScenarios caps how many definitions can be active at once.
const MaxScenarios = 4
