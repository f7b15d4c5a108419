// Package synth generates the 90-day synthetic transaction ledger for a
// persona and session seed.
//
// Generation runs four passes in a fixed order: recurring income, fixed
// monthly bills, variable daily spending, then rare travel. A single
// generator is advanced in the exact pass/day/event order written below;
// that order is part of the function's contract, and the golden tests in
// this package exist to catch any refactor that reorders a draw. The same
// (persona, sessionSeed, today) triple always yields byte-identical output.
package synth

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/nishanthbasava/quantra-finance-hub/internal/catalog"
	"github.com/nishanthbasava/quantra-finance-hub/internal/ledger"
	"github.com/nishanthbasava/quantra-finance-hub/internal/persona"
	"github.com/nishanthbasava/quantra-finance-hub/internal/rng"
)

// windowDays is the trailing generation window including today.
const windowDays = 90

type generator struct {
	r     *rng.RNG
	txns  []ledger.Transaction
	nextN int
}

func (g *generator) nextID() string {
	g.nextN++
	return fmt.Sprintf("tx-%d", g.nextN)
}

func (g *generator) add(date time.Time, merchant string, path [3]string, amount float64, account string, typ ledger.TransactionType) {
	g.txns = append(g.txns, ledger.Transaction{
		ID:             g.nextID(),
		Date:           date.Format("2006-01-02"),
		Merchant:       merchant,
		Category:       path[0],
		Subcategory:    path[1],
		Subsubcategory: path[2],
		CategoryPath:   path,
		Account:        account,
		Amount:         math.Round(math.Abs(amount)*100) / 100,
		Type:           typ,
	})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func inWindow(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// Generate produces the transaction ledger for the trailing 90-day window
// ending on today (truncated to a calendar day, UTC).
func Generate(p persona.Persona, sessionSeed uint32, today time.Time) []ledger.Transaction {
	g := &generator{r: rng.New(sessionSeed)}
	r := g.r

	end := day(today.Year(), today.Month(), today.Day())
	start := end.AddDate(0, 0, -(windowDays - 1))

	// Months touched by the window, in calendar order.
	type monthKey struct {
		year  int
		month time.Month
	}
	var months []monthKey
	seen := make(map[monthKey]bool)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		k := monthKey{d.Year(), d.Month()}
		if !seen[k] {
			seen[k] = true
			months = append(months, k)
		}
	}

	salaryPath := [3]string{"Income", "Salary", "Payroll"}
	freelancePath := [3]string{"Income", "Freelance", "Invoice"}

	// Pass A: recurring income.
	for _, mk := range months {
		if p.PayFrequency == persona.PayMonthly {
			payDay := day(mk.year, mk.month, 1).AddDate(0, 0, r.IntN(-1, 1))
			if inWindow(payDay, start, end) {
				g.add(payDay, "Employer Inc.", salaryPath,
					r.JitterAmount(p.PaycheckAmount, 1), p.PrimaryAccount, ledger.TypeIncome)
			}
		} else {
			for _, baseDay := range []int{1, 15} {
				payDay := day(mk.year, mk.month, baseDay).AddDate(0, 0, r.IntN(-1, 1))
				if inWindow(payDay, start, end) {
					g.add(payDay, "Employer Inc.", salaryPath,
						r.JitterAmount(p.PaycheckAmount, 1.5), p.PrimaryAccount, ledger.TypeIncome)
				}
			}
		}

		if r.Chance(0.3) {
			freelanceDay := day(mk.year, mk.month, r.IntN(5, 25))
			if inWindow(freelanceDay, start, end) {
				g.add(freelanceDay, "Freelance Client", freelancePath,
					float64(r.IntN(300, 2000)), catalog.AccountSavings, ledger.TypeIncome)
			}
		}
	}

	// Pass B: fixed recurring expenses.
	for _, mk := range months {
		rentDay := day(mk.year, mk.month, r.IntN(1, 3))
		if inWindow(rentDay, start, end) {
			g.add(rentDay, "Apartment Mgmt", [3]string{"Bills & Utilities", "Rent", "Apartment"},
				r.JitterAmount(p.Rent, 0), p.PrimaryAccount, ledger.TypeExpense)
		}

		elecDay := day(mk.year, mk.month, r.IntN(8, 12))
		if inWindow(elecDay, start, end) {
			g.add(elecDay, "ConEd", [3]string{"Bills & Utilities", "Electricity", "ConEd"},
				r.JitterAmount(p.Electricity, 15), p.PrimaryAccount, ledger.TypeExpense)
		}

		internetDay := day(mk.year, mk.month, r.IntN(3, 7))
		if inWindow(internetDay, start, end) {
			g.add(internetDay, "Comcast", [3]string{"Bills & Utilities", "Internet", "Comcast"},
				r.JitterAmount(p.Internet, 5), p.PrimaryAccount, ledger.TypeExpense)
		}

		waterDay := day(mk.year, mk.month, r.IntN(13, 17))
		if inWindow(waterDay, start, end) {
			g.add(waterDay, "City Water", [3]string{"Bills & Utilities", "Water", "City Water"},
				r.JitterAmount(p.Water, 20), p.PrimaryAccount, ledger.TypeExpense)
		}

		for idx, sub := range p.Subscriptions {
			subDOM := (idx*7+3)%28 + 1
			if subDOM > 28 {
				subDOM = 28
			}
			subDay := day(mk.year, mk.month, subDOM)
			if inWindow(subDay, start, end) {
				amount := r.JitterAmount(sub.Cost, 0.5)
				account := p.PrimaryAccount
				if r.Chance(0.6) {
					account = p.CreditCard
				}
				g.add(subDay, sub.Name, sub.CategoryPath, amount, account, ledger.TypeExpense)
			}
		}
	}

	// Pass C: variable daily spending.
	groceryCounter := 0
	coffeeCounter := 0

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		weekday := d.Weekday()
		isWeekend := weekday == time.Sunday || weekday == time.Saturday
		isFriSat := weekday == time.Friday || weekday == time.Saturday

		// Coffee: counter forces a purchase every ~7/freq days, the residual
		// chance covers the fractional remainder. The chance draw happens
		// only when the counter has not yet fired.
		coffeeCounter++
		coffeeEvery := int(math.Round(7 / float64(p.CoffeeFrequency)))
		if coffeeCounter >= coffeeEvery || r.Chance(float64(p.CoffeeFrequency)/7) {
			coffeeCounter = 0
			m := rng.Choice(r, p.FavoriteCoffee)
			amount := r.FloatN(m.AmountRange[0], m.AmountRange[1])
			account := rng.Choice(r, []string{catalog.AccountAppleCard, p.CreditCard})
			g.add(d, m.Name, m.CategoryPath, amount, account, ledger.TypeExpense)
		}

		// Groceries: counter-gated with 70% follow-through.
		groceryCounter++
		if groceryCounter >= int(math.Round(7/float64(p.GroceryFrequency))) {
			if r.Chance(0.7) {
				groceryCounter = 0
				m := rng.Choice(r, p.FavoriteGrocery)
				amount := r.FloatN(m.AmountRange[0], m.AmountRange[1])
				account := rng.Choice(r, []string{p.PrimaryAccount, p.CreditCard})
				g.add(d, m.Name, m.CategoryPath, amount, account, ledger.TypeExpense)
			}
		}

		// Dining out, boosted on Fri/Sat.
		diningChance := float64(p.DiningFrequency) / 10
		if isFriSat {
			diningChance = float64(p.DiningFrequency) / 4
		}
		if r.Chance(diningChance) {
			m := rng.Choice(r, p.FavoriteDining)
			amount := r.FloatN(m.AmountRange[0], m.AmountRange[1])
			account := rng.Choice(r, []string{p.CreditCard, catalog.AccountAppleCard})
			g.add(d, m.Name, m.CategoryPath, amount, account, ledger.TypeExpense)
		}

		// Rideshare, boosted on weekends.
		rideshareChance := float64(p.RideshareFrequency) / 12
		if isWeekend {
			rideshareChance = float64(p.RideshareFrequency) / 5
		}
		if r.Chance(rideshareChance) {
			m := rng.Choice(r, p.FavoriteRideshare)
			g.add(d, m.Name, m.CategoryPath,
				r.FloatN(m.AmountRange[0], m.AmountRange[1]), p.PrimaryAccount, ledger.TypeExpense)
		}

		// Weekday transit.
		if !isWeekend && r.Chance(0.15) {
			m := rng.Choice(r, catalog.Transit)
			g.add(d, m.Name, m.CategoryPath,
				r.FloatN(m.AmountRange[0], m.AmountRange[1]), p.PrimaryAccount, ledger.TypeExpense)
		}

		// Shopping bursts scaled by persona volatility.
		if r.Chance(0.04 * p.ShoppingVolatility) {
			pool := make([]catalog.Merchant, 0, len(catalog.Clothing)+len(catalog.Electronics)+len(catalog.Home))
			pool = append(pool, catalog.Clothing...)
			pool = append(pool, catalog.Electronics...)
			pool = append(pool, catalog.Home...)
			m := rng.Choice(r, pool)
			amount := r.FloatN(m.AmountRange[0], m.AmountRange[1])
			account := rng.Choice(r, []string{p.CreditCard, catalog.AccountCapitalOne})
			g.add(d, m.Name, m.CategoryPath, amount, account, ledger.TypeExpense)
		}

		// Weekend entertainment.
		if isWeekend && r.Chance(0.08) {
			m := rng.Choice(r, catalog.Entertainment)
			g.add(d, m.Name, m.CategoryPath,
				r.FloatN(m.AmountRange[0], m.AmountRange[1]), p.CreditCard, ledger.TypeExpense)
		}

		// Rare ATM withdrawal.
		if r.Chance(0.02) {
			g.add(d, "ATM Withdrawal", [3]string{"Other", "Miscellaneous", "Cash"},
				float64(r.IntN(20, 100)), p.PrimaryAccount, ledger.TypeExpense)
		}
	}

	// Pass D: rare travel, 0-2 flights in the window.
	numTrips := r.IntN(0, 2)
	for t := 0; t < numTrips; t++ {
		tripStart := start.AddDate(0, 0, r.IntN(10, 75))
		if tripStart.After(end) {
			continue
		}
		m := rng.Choice(r, catalog.Flights)
		g.add(tripStart, m.Name, m.CategoryPath,
			r.FloatN(m.AmountRange[0], m.AmountRange[1]), p.CreditCard, ledger.TypeExpense)
	}

	sort.SliceStable(g.txns, func(i, j int) bool {
		return g.txns[i].Date < g.txns[j].Date
	})

	return g.txns
}
