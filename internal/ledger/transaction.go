// Package ledger defines the transaction record produced by the synthesizer
// and the read-only filtering applied before re-aggregation.
package ledger

// TransactionType distinguishes inflows from outflows. Amounts are always
// stored as positive magnitudes.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is a single synthetic ledger entry. Dates are ISO day strings
// (yyyy-mm-dd) so lexical order is chronological order. Records are created
// by the synthesizer and read-only afterwards.
type Transaction struct {
	ID             string          `json:"id"`
	Date           string          `json:"date"`
	Merchant       string          `json:"merchant"`
	Category       string          `json:"category"`
	Subcategory    string          `json:"subcategory"`
	Subsubcategory string          `json:"subsubcategory"`
	CategoryPath   [3]string       `json:"categoryPath"`
	Account        string          `json:"account"`
	Amount         float64         `json:"amount"`
	Type           TransactionType `json:"type"`
}

// Signed returns the amount with income positive and expenses negative.
func (t Transaction) Signed() float64 {
	if t.Type == TypeIncome {
		return t.Amount
	}
	return -t.Amount
}
