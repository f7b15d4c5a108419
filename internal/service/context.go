package service

import (
	"fmt"

	"github.com/nishanthbasava/quantra-finance-hub/internal/aggregate"
	"github.com/nishanthbasava/quantra-finance-hub/internal/ledger"
	"github.com/nishanthbasava/quantra-finance-hub/internal/quant"
	"github.com/nishanthbasava/quantra-finance-hub/internal/scenario"
)

// CategoryTotal is one top-level category rollup without its subtree.
type CategoryTotal struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Color  string  `json:"color"`
}

// VaultPayload is the read-only verification view: the baseline and the
// category totals it was derived from, tagged with the dataset identity so
// a viewer can tell which generation it attests to.
type VaultPayload struct {
	DataHash       string             `json:"dataHash"`
	Baseline       aggregate.Baseline `json:"baseline"`
	CategoryTotals []CategoryTotal    `json:"categoryTotals"`
	TotalExpenses  float64            `json:"totalExpenses"`
}

// Vault builds the read-only payload over the full ledger.
func (s *DataService) Vault() (*VaultPayload, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}

	tree := aggregate.BuildCategoryTree(ds.transactions)
	return &VaultPayload{
		DataHash:       fmt.Sprintf("0x%08X", ds.info.SessionSeed),
		Baseline:       ds.baseline,
		CategoryTotals: categoryTotals(tree),
		TotalExpenses:  tree.TotalExpenses,
	}, nil
}

// AssistantContext is the grounding object handed to the workspace
// assistant: enough aggregates to answer spending questions without access
// to the raw ledger.
type AssistantContext struct {
	Baseline        aggregate.Baseline `json:"baseline"`
	TopCategories   []CategoryTotal    `json:"topCategories"`
	TopMerchants    []string           `json:"topMerchants"`
	ActiveScenarios []string           `json:"activeScenarios"`
	Suggestions     []string           `json:"suggestions"`
	NextQuestion    string             `json:"nextQuestion"`
}

const assistantTopN = 5

// AssistantContext assembles the assistant grounding for a time range.
func (s *DataService) AssistantContext(timeRange ledger.TimeRange) (*AssistantContext, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}

	filtered := ledger.FilterByRange(ds.transactions, timeRange, s.now().UTC())
	tree := aggregate.BuildCategoryTree(filtered)

	totals := categoryTotals(tree)
	if len(totals) > assistantTopN {
		totals = totals[:assistantTopN]
	}

	var merchants []string
	for _, cat := range tree.Categories {
		for _, sub := range cat.Children {
			for _, leaf := range sub.Children {
				merchants = append(merchants, leaf.Name)
				break
			}
			break
		}
		if len(merchants) >= assistantTopN {
			break
		}
	}

	defs := s.Scenarios()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}

	return &AssistantContext{
		Baseline:        ds.baseline,
		TopCategories:   totals,
		TopMerchants:    merchants,
		ActiveScenarios: names,
		Suggestions:     scenario.Suggestions(defs, ds.baseline),
		NextQuestion:    scenario.NextQuestion(defs, string(quant.MetricTotalBalance)),
	}, nil
}

func categoryTotals(tree aggregate.CategoryTree) []CategoryTotal {
	out := make([]CategoryTotal, len(tree.Categories))
	for i, c := range tree.Categories {
		out[i] = CategoryTotal{Name: c.Name, Amount: c.Amount, Color: c.Color}
	}
	return out
}
