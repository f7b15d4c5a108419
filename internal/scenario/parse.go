package scenario

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nishanthbasava/quantra-finance-hub/internal/aggregate"
)

var (
	diningRe    = regexp.MustCompile(`(?:cut|reduce|lower)\s+(?:dining|eating)\s+(?:out\s+)?(?:by\s+)?\$?(\d+)`)
	rideshareRe = regexp.MustCompile(`(?:cap|limit)\s+(?:rideshare|uber|lyft)\s+(?:to\s+)?\$?(\d+)`)
	groceryRe   = regexp.MustCompile(`(?:increase|raise|add)\s+grocer\w*\s+(?:by\s+)?\$?(\d+)`)
	cancelRe    = regexp.MustCompile(`cancel\s+([\w\s,+]+)`)
	incomeRe    = regexp.MustCompile(`(?:add|earn|get)\s+(?:extra\s+)?\$?(\d+).*?(?:month|mo)\s*(\d+)?`)
	purchaseRe  = regexp.MustCompile(`(?:buy|purchase|spend)\s+\$?(\d+).*?month\s*(\d+)?`)
)

var titler = cases.Title(language.English)

// Parse extracts a scenario from free-form text. Phrasings are matched in
// priority order: habit changes, cancellations, income, purchases. Text
// that matches nothing returns (nil, "") — an expected outcome, not an
// error.
func Parse(text string, baseline aggregate.Baseline) (Params, string) {
	lower := strings.ToLower(text)

	diningM := diningRe.FindStringSubmatch(lower)
	rideshareM := rideshareRe.FindStringSubmatch(lower)
	groceryM := groceryRe.FindStringSubmatch(lower)

	if diningM != nil || rideshareM != nil || groceryM != nil {
		h := Habits{CapRideshare: baseline.Rideshare}
		if diningM != nil {
			h.ReduceDiningOut = parseAmount(diningM[1])
		}
		if rideshareM != nil {
			h.CapRideshare = parseAmount(rideshareM[1])
		}
		if groceryM != nil {
			h.IncreaseGroceries = parseAmount(groceryM[1])
		}
		return h, DisplayName(TypeHabits)
	}

	if m := cancelRe.FindStringSubmatch(lower); m != nil {
		target := strings.TrimSpace(m[1])
		toggles := make(map[string]bool, len(baseline.Subscriptions))
		for _, sub := range baseline.Subscriptions {
			toggles[sub.Name] = !strings.Contains(target, strings.ToLower(sub.Name))
		}
		return Subscriptions{Toggles: toggles}, "Cancel " + titler.String(target)
	}

	if m := incomeRe.FindStringSubmatch(lower); m != nil {
		start := 1
		if m[2] != "" {
			start = parseInt(m[2])
		}
		return Income{Amount: parseAmount(m[1]), StartMonth: start}, DisplayName(TypeIncome)
	}

	if m := purchaseRe.FindStringSubmatch(lower); m != nil {
		month := 3
		if m[2] != "" {
			month = parseInt(m[2])
		}
		return OneTime{Amount: parseAmount(m[1]), Month: month}, DisplayName(TypeOneTime)
	}

	return nil, ""
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseAmount(s string) float64 {
	return float64(parseInt(s))
}
