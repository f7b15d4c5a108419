package quant

import (
	"fmt"
	"sync"

	"github.com/nishanthbasava/quantra-finance-hub/internal/scenario"
)

// DefaultCacheSize is the forecast cache capacity used in production.
const DefaultCacheSize = 50

// evictSlack is how far below capacity a trim drains the cache, so
// eviction does not run on every insert at the boundary.
const evictSlack = 10

// Runner computes a forecast. Injectable so tests can count executions.
type Runner func(Inputs) Outputs

// Cache memoizes forecast runs by their identifying inputs. The key
// deliberately excludes the transaction slice itself: the data seed plus
// time range fully determine the ledger.
type Cache struct {
	mu      sync.Mutex
	maxSize int
	run     Runner
	entries map[string]Outputs
	order   []string
}

// NewCache builds a cache with the given capacity and runner. Size zero
// or negative falls back to DefaultCacheSize; a nil runner uses Run.
func NewCache(maxSize int, run Runner) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	if run == nil {
		run = Run
	}
	return &Cache{
		maxSize: maxSize,
		run:     run,
		entries: make(map[string]Outputs),
	}
}

func cacheKey(metric Metric, timeRangeDays int, def *scenario.Definition, dataSeed uint32) string {
	return fmt.Sprintf("%s|%d|%s|%d", metric, timeRangeDays, scenario.Hash(def), dataSeed)
}

// Get returns the cached forecast for the inputs, running the model on a
// miss. dataSeed identifies the generated dataset the inputs came from.
func (c *Cache) Get(in Inputs, dataSeed uint32) Outputs {
	key := cacheKey(in.Metric, in.TimeRangeDays, in.Scenario, dataSeed)

	c.mu.Lock()
	if out, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return out
	}
	c.mu.Unlock()

	out := c.run(in)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked()
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = out
	return out
}

// evictLocked drops the oldest entries once the cache overflows, down to
// evictSlack below capacity.
func (c *Cache) evictLocked() {
	if len(c.entries) <= c.maxSize {
		return
	}
	drop := len(c.entries) - c.maxSize + evictSlack
	if drop > len(c.order) {
		drop = len(c.order)
	}
	for _, key := range c.order[:drop] {
		delete(c.entries, key)
	}
	c.order = append([]string(nil), c.order[drop:]...)
}

// Len reports the number of cached forecasts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every cached forecast. Called when the dataset regenerates.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Outputs)
	c.order = nil
}
