package ledger

import (
	"sort"
	"strings"
	"time"
)

// TimeRange selects how far back the dashboard looks before re-aggregating.
type TimeRange string

const (
	Range7D  TimeRange = "7d"
	Range30D TimeRange = "30d"
	Range90D TimeRange = "90d"
	RangeYTD TimeRange = "ytd"
	RangeAll TimeRange = "all"
)

// TimeRangeDays maps a range to the day count used in forecast cache keys.
// RangeYTD and RangeAll have no fixed width and use sentinel values.
func TimeRangeDays(r TimeRange) int {
	switch r {
	case Range7D:
		return 7
	case Range30D:
		return 30
	case Range90D:
		return 90
	case RangeYTD:
		return 365
	default:
		return 0
	}
}

// ParseTimeRange validates a range string, defaulting to RangeAll.
func ParseTimeRange(s string) TimeRange {
	switch TimeRange(s) {
	case Range7D, Range30D, Range90D, RangeYTD:
		return TimeRange(s)
	default:
		return RangeAll
	}
}

// CutoffDate derives the inclusive earliest date for a range, as an ISO day
// string. The window includes today, so 7d covers today and the 6 days
// before it. RangeAll returns "" meaning no cutoff.
func CutoffDate(r TimeRange, today time.Time) string {
	switch r {
	case Range7D:
		return today.AddDate(0, 0, -6).Format("2006-01-02")
	case Range30D:
		return today.AddDate(0, 0, -29).Format("2006-01-02")
	case Range90D:
		return today.AddDate(0, 0, -89).Format("2006-01-02")
	case RangeYTD:
		return time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	default:
		return ""
	}
}

// FilterByRange returns the transactions on or after the range's cutoff.
// The input slice is never mutated; RangeAll returns a copy of everything,
// so re-aggregating "all" reproduces the unfiltered result exactly.
func FilterByRange(txns []Transaction, r TimeRange, today time.Time) []Transaction {
	cutoff := CutoffDate(r, today)
	out := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		if cutoff == "" || t.Date >= cutoff {
			out = append(out, t)
		}
	}
	return out
}

// SortField orders explorer results.
type SortField string

const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"
)

// Filters narrows the transaction explorer view. Zero values mean "no
// constraint".
type Filters struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Account  string `json:"account"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
}

// Apply returns the transactions matching the filters, sorted by the given
// field and direction. The input is copied, never reordered in place.
func Apply(txns []Transaction, f Filters, field SortField, ascending bool) []Transaction {
	result := make([]Transaction, 0, len(txns))
	q := strings.ToLower(f.Search)
	for _, t := range txns {
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Merchant), q) &&
			!strings.Contains(strings.ToLower(t.Category), q) &&
			!strings.Contains(strings.ToLower(t.Subcategory), q) {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Account != "" && t.Account != f.Account {
			continue
		}
		if f.DateFrom != "" && t.Date < f.DateFrom {
			continue
		}
		if f.DateTo != "" && t.Date > f.DateTo {
			continue
		}
		result = append(result, t)
	}

	sort.SliceStable(result, func(i, j int) bool {
		var less bool
		if field == SortByAmount {
			less = result[i].Amount < result[j].Amount
		} else {
			less = result[i].Date < result[j].Date
		}
		if ascending {
			return less
		}
		return !less && notEqual(result[i], result[j], field)
	})
	return result
}

func notEqual(a, b Transaction, field SortField) bool {
	if field == SortByAmount {
		return a.Amount != b.Amount
	}
	return a.Date != b.Date
}

// Categories returns the distinct categories in first-seen order.
func Categories(txns []Transaction) []string {
	return distinct(txns, func(t Transaction) string { return t.Category })
}

// Accounts returns the distinct accounts in first-seen order.
func Accounts(txns []Transaction) []string {
	return distinct(txns, func(t Transaction) string { return t.Account })
}

func distinct(txns []Transaction, key func(Transaction) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range txns {
		k := key(t)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
