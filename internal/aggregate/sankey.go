// Package aggregate rolls the transaction ledger up into the dashboard
// views: the three-level category tree behind the sankey diagram, daily
// balance snapshots, and the monthly baseline the simulator starts from.
//
// Money is summed with decimal arithmetic so category totals are exact to
// the cent; the tree invariant (every parent equals the sum of its
// children) holds without float drift.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/nishanthbasava/quantra-finance-hub/internal/catalog"
	"github.com/nishanthbasava/quantra-finance-hub/internal/ledger"
)

// SubSubCategory is a merchant-level leaf of the expense tree.
type SubSubCategory struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// SubCategory is a mid-level grouping, e.g. Food → Groceries.
type SubCategory struct {
	Name     string           `json:"name"`
	Amount   float64          `json:"amount"`
	Children []SubSubCategory `json:"children"`
}

// Category is a top-level expense grouping with its display color.
type Category struct {
	Name     string        `json:"name"`
	Amount   float64       `json:"amount"`
	Color    string        `json:"color"`
	Children []SubCategory `json:"children"`
}

// CategoryTree is the full expense rollup for one time range.
type CategoryTree struct {
	Categories    []Category `json:"categories"`
	TotalExpenses float64    `json:"totalExpenses"`
}

type leafBucket struct {
	name   string
	amount decimal.Decimal
}

type subBucket struct {
	name   string
	leaves []*leafBucket
	index  map[string]*leafBucket
}

type catBucket struct {
	name  string
	subs  []*subBucket
	index map[string]*subBucket
}

// BuildCategoryTree aggregates expense transactions into a three-level
// tree. Buckets keep first-seen order before the final sort so equal
// amounts resolve deterministically; siblings are sorted by descending
// amount at every level.
func BuildCategoryTree(txns []ledger.Transaction) CategoryTree {
	var cats []*catBucket
	catIndex := make(map[string]*catBucket)

	for _, t := range txns {
		if t.Type != ledger.TypeExpense {
			continue
		}

		cb, ok := catIndex[t.Category]
		if !ok {
			cb = &catBucket{name: t.Category, index: make(map[string]*subBucket)}
			catIndex[t.Category] = cb
			cats = append(cats, cb)
		}

		sb, ok := cb.index[t.Subcategory]
		if !ok {
			sb = &subBucket{name: t.Subcategory, index: make(map[string]*leafBucket)}
			cb.index[t.Subcategory] = sb
			cb.subs = append(cb.subs, sb)
		}

		lb, ok := sb.index[t.Subsubcategory]
		if !ok {
			lb = &leafBucket{name: t.Subsubcategory}
			sb.index[t.Subsubcategory] = lb
			sb.leaves = append(sb.leaves, lb)
		}
		lb.amount = lb.amount.Add(decimal.NewFromFloat(t.Amount))
	}

	tree := CategoryTree{Categories: make([]Category, 0, len(cats))}
	total := decimal.Zero

	for _, cb := range cats {
		children := make([]SubCategory, 0, len(cb.subs))
		catAmount := decimal.Zero

		for _, sb := range cb.subs {
			leaves := make([]SubSubCategory, 0, len(sb.leaves))
			subAmount := decimal.Zero
			for _, lb := range sb.leaves {
				rounded := lb.amount.Round(2)
				leaves = append(leaves, SubSubCategory{Name: lb.name, Amount: rounded.InexactFloat64()})
				subAmount = subAmount.Add(rounded)
			}
			sort.SliceStable(leaves, func(i, j int) bool { return leaves[i].Amount > leaves[j].Amount })
			children = append(children, SubCategory{
				Name:     sb.name,
				Amount:   subAmount.Round(2).InexactFloat64(),
				Children: leaves,
			})
			catAmount = catAmount.Add(subAmount)
		}

		sort.SliceStable(children, func(i, j int) bool { return children[i].Amount > children[j].Amount })
		tree.Categories = append(tree.Categories, Category{
			Name:     cb.name,
			Amount:   catAmount.Round(2).InexactFloat64(),
			Color:    catalog.ColorFor(cb.name),
			Children: children,
		})
		total = total.Add(catAmount)
	}

	sort.SliceStable(tree.Categories, func(i, j int) bool {
		return tree.Categories[i].Amount > tree.Categories[j].Amount
	})
	tree.TotalExpenses = total.Round(2).InexactFloat64()
	return tree
}
