// Package catalog holds the fixed merchant taxonomy the synthetic engine
// draws from: merchant pools with category paths and amount ranges, the
// subscription pool, account names and category display colors.
//
// Entry order is part of the determinism contract. Sampling indexes into
// these slices, so reordering an entry changes every generated dataset.
package catalog

// Merchant describes a spending target with its 3-level category path and
// the uniform amount range a single visit draws from.
type Merchant struct {
	Name         string
	CategoryPath [3]string
	AmountRange  [2]float64
}

// Subscription is a fixed-cost recurring merchant.
type Subscription struct {
	Name         string     `json:"name"`
	CategoryPath [3]string  `json:"-"`
	Cost         float64    `json:"cost"`
}

var Coffee = []Merchant{
	{Name: "Starbucks", CategoryPath: [3]string{"Food", "Coffee", "Starbucks"}, AmountRange: [2]float64{4, 8}},
	{Name: "Blue Bottle", CategoryPath: [3]string{"Food", "Coffee", "Blue Bottle"}, AmountRange: [2]float64{5, 9}},
	{Name: "Dunkin'", CategoryPath: [3]string{"Food", "Coffee", "Dunkin'"}, AmountRange: [2]float64{3, 7}},
	{Name: "Peet's Coffee", CategoryPath: [3]string{"Food", "Coffee", "Peet's"}, AmountRange: [2]float64{4, 8}},
}

var Groceries = []Merchant{
	{Name: "Trader Joe's", CategoryPath: [3]string{"Food", "Groceries", "Trader Joe's"}, AmountRange: [2]float64{35, 120}},
	{Name: "Whole Foods", CategoryPath: [3]string{"Food", "Groceries", "Whole Foods"}, AmountRange: [2]float64{40, 150}},
	{Name: "Costco", CategoryPath: [3]string{"Food", "Groceries", "Costco"}, AmountRange: [2]float64{60, 200}},
	{Name: "Safeway", CategoryPath: [3]string{"Food", "Groceries", "Safeway"}, AmountRange: [2]float64{25, 90}},
}

var Dining = []Merchant{
	{Name: "Chipotle", CategoryPath: [3]string{"Food", "Dining Out", "Restaurants"}, AmountRange: [2]float64{10, 18}},
	{Name: "Nobu", CategoryPath: [3]string{"Food", "Dining Out", "Restaurants"}, AmountRange: [2]float64{45, 130}},
	{Name: "Sweetgreen", CategoryPath: [3]string{"Food", "Dining Out", "Restaurants"}, AmountRange: [2]float64{12, 20}},
	{Name: "Shake Shack", CategoryPath: [3]string{"Food", "Dining Out", "Restaurants"}, AmountRange: [2]float64{12, 25}},
}

var Takeout = []Merchant{
	{Name: "DoorDash", CategoryPath: [3]string{"Food", "Dining Out", "Takeout"}, AmountRange: [2]float64{18, 50}},
	{Name: "Uber Eats", CategoryPath: [3]string{"Food", "Dining Out", "Takeout"}, AmountRange: [2]float64{15, 45}},
}

var Clothing = []Merchant{
	{Name: "Zara", CategoryPath: [3]string{"Shopping", "Clothing", "Zara"}, AmountRange: [2]float64{35, 180}},
	{Name: "H&M", CategoryPath: [3]string{"Shopping", "Clothing", "H&M"}, AmountRange: [2]float64{20, 120}},
	{Name: "Nike", CategoryPath: [3]string{"Shopping", "Clothing", "Nike"}, AmountRange: [2]float64{50, 200}},
	{Name: "Uniqlo", CategoryPath: [3]string{"Shopping", "Clothing", "Uniqlo"}, AmountRange: [2]float64{25, 100}},
}

var Electronics = []Merchant{
	{Name: "Amazon", CategoryPath: [3]string{"Shopping", "Electronics", "Amazon"}, AmountRange: [2]float64{15, 250}},
	{Name: "Best Buy", CategoryPath: [3]string{"Shopping", "Electronics", "Best Buy"}, AmountRange: [2]float64{30, 400}},
}

var Home = []Merchant{
	{Name: "IKEA", CategoryPath: [3]string{"Shopping", "Home", "IKEA"}, AmountRange: [2]float64{30, 250}},
	{Name: "Target", CategoryPath: [3]string{"Shopping", "Home", "Target"}, AmountRange: [2]float64{20, 100}},
}

var Rideshare = []Merchant{
	{Name: "Uber", CategoryPath: [3]string{"Travel", "Rideshare", "Uber"}, AmountRange: [2]float64{8, 35}},
	{Name: "Lyft", CategoryPath: [3]string{"Travel", "Rideshare", "Lyft"}, AmountRange: [2]float64{8, 30}},
}

var Transit = []Merchant{
	{Name: "Metro Card", CategoryPath: [3]string{"Travel", "Transport", "Metro"}, AmountRange: [2]float64{2.75, 33}},
}

var Flights = []Merchant{
	{Name: "Delta Airlines", CategoryPath: [3]string{"Travel", "Flights", "Delta"}, AmountRange: [2]float64{150, 600}},
	{Name: "United Airlines", CategoryPath: [3]string{"Travel", "Flights", "United"}, AmountRange: [2]float64{130, 500}},
	{Name: "JetBlue", CategoryPath: [3]string{"Travel", "Flights", "JetBlue"}, AmountRange: [2]float64{90, 350}},
}

var Entertainment = []Merchant{
	{Name: "AMC Theatres", CategoryPath: [3]string{"Other", "Miscellaneous", "Entertainment"}, AmountRange: [2]float64{15, 35}},
	{Name: "Steam", CategoryPath: [3]string{"Other", "Miscellaneous", "Games"}, AmountRange: [2]float64{10, 60}},
}

// SubscriptionPool is the 12-item pool personas sample 4-7 entries from.
var SubscriptionPool = []Subscription{
	{Name: "Netflix", CategoryPath: [3]string{"Subscriptions", "Streaming", "Netflix"}, Cost: 15.49},
	{Name: "Spotify", CategoryPath: [3]string{"Subscriptions", "Streaming", "Spotify"}, Cost: 10.99},
	{Name: "Disney+", CategoryPath: [3]string{"Subscriptions", "Streaming", "Disney+"}, Cost: 13.99},
	{Name: "YouTube Premium", CategoryPath: [3]string{"Subscriptions", "Streaming", "YouTube"}, Cost: 13.99},
	{Name: "HBO Max", CategoryPath: [3]string{"Subscriptions", "Streaming", "HBO"}, Cost: 15.99},
	{Name: "Adobe CC", CategoryPath: [3]string{"Subscriptions", "Software", "Adobe"}, Cost: 54.99},
	{Name: "Notion", CategoryPath: [3]string{"Subscriptions", "Software", "Notion"}, Cost: 10.00},
	{Name: "ChatGPT Plus", CategoryPath: [3]string{"Subscriptions", "Software", "ChatGPT"}, Cost: 20.00},
	{Name: "iCloud+", CategoryPath: [3]string{"Subscriptions", "Software", "iCloud"}, Cost: 2.99},
	{Name: "Equinox", CategoryPath: [3]string{"Subscriptions", "Gym", "Equinox"}, Cost: 220.00},
	{Name: "Planet Fitness", CategoryPath: [3]string{"Subscriptions", "Gym", "Planet Fitness"}, Cost: 24.99},
	{Name: "ClassPass", CategoryPath: [3]string{"Subscriptions", "Gym", "ClassPass"}, Cost: 49.00},
}

// Account names used across generated transactions.
const (
	AccountChecking   = "Chase Checking"
	AccountAmex       = "Amex Gold"
	AccountCapitalOne = "Capital One"
	AccountAppleCard  = "Apple Card"
	AccountSavings    = "Savings"
)

// CreditCards is the pool a persona's preferred card is chosen from.
var CreditCards = []string{AccountAmex, AccountCapitalOne, AccountAppleCard}

// CategoryColors assigns each top-level category a display color for the
// flow diagram.
var CategoryColors = map[string]string{
	"Shopping":          "hsl(260, 50%, 65%)",
	"Food":              "hsl(170, 65%, 48%)",
	"Travel":            "hsl(200, 70%, 55%)",
	"Bills & Utilities": "hsl(215, 45%, 55%)",
	"Subscriptions":     "hsl(185, 55%, 50%)",
	"Other":             "hsl(210, 20%, 70%)",
	"Income":            "hsl(155, 65%, 42%)",
}

// FallbackColor is used for categories missing from CategoryColors.
const FallbackColor = "hsl(210, 20%, 70%)"

// ColorFor returns the display color for a top-level category.
func ColorFor(category string) string {
	if c, ok := CategoryColors[category]; ok {
		return c
	}
	return FallbackColor
}
