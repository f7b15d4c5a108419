// Package service orchestrates the data pipeline: seed manager to persona
// to ledger to aggregates to forecasts, with per-seed memoization so a
// dashboard render never regenerates data it already has.
package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nishanthbasava/quantra-finance-hub/internal/aggregate"
	"github.com/nishanthbasava/quantra-finance-hub/internal/ledger"
	"github.com/nishanthbasava/quantra-finance-hub/internal/persona"
	"github.com/nishanthbasava/quantra-finance-hub/internal/quant"
	"github.com/nishanthbasava/quantra-finance-hub/internal/scenario"
	"github.com/nishanthbasava/quantra-finance-hub/internal/seed"
	"github.com/nishanthbasava/quantra-finance-hub/internal/synth"
)

// ErrSuperseded is returned when a computation finished after the dataset
// it was based on had been regenerated. The caller should retry against
// the new dataset or drop the result.
var ErrSuperseded = errors.New("dataset superseded during computation")

// ErrScenarioLimit is returned when adding a scenario beyond the cap.
var ErrScenarioLimit = fmt.Errorf("at most %d scenarios can be active", scenario.MaxScenarios)

// ErrScenarioNotFound is returned for unknown scenario IDs.
var ErrScenarioNotFound = errors.New("scenario not found")

// dataset is one fully generated and aggregated universe for a seed pair.
type dataset struct {
	info         seed.Info
	persona      persona.Persona
	transactions []ledger.Transaction
	balances     []aggregate.BalanceSnapshot
	baseline     aggregate.Baseline
}

// DataService owns the full demo data pipeline and the forecast cache.
type DataService struct {
	mu    sync.Mutex
	seeds *seed.Manager
	cache *quant.Cache
	log   *logrus.Logger
	now   func() time.Time

	// generation increments whenever the dataset identity changes, so
	// long-running computations can detect they have been superseded.
	generation uint64

	personaSeed  uint32
	personaMemo  *persona.Persona
	datasetSeed  uint32
	datasetMemo  *dataset
	scenarios    []*scenario.Definition
	colorCounter int
}

// NewDataService wires a service over the given seed store.
func NewDataService(store seed.Store, cacheSize int, log *logrus.Logger) *DataService {
	return newDataService(seed.NewManager(store), cacheSize, log, time.Now)
}

// NewDataServiceWithClock pins the clock, for tests.
func NewDataServiceWithClock(store seed.Store, cacheSize int, log *logrus.Logger, now func() time.Time) *DataService {
	return newDataService(seed.NewManagerWithClock(store, now), cacheSize, log, now)
}

func newDataService(seeds *seed.Manager, cacheSize int, log *logrus.Logger, now func() time.Time) *DataService {
	if log == nil {
		log = logrus.New()
	}
	return &DataService{
		seeds: seeds,
		cache: quant.NewCache(cacheSize, nil),
		log:   log,
		now:   now,
	}
}

// dataset returns the generated universe for the current seeds, reusing
// memoized stages whose seed has not changed. The persona memo survives
// session rotation; the ledger memo survives only within one session.
func (s *DataService) dataset() (*dataset, error) {
	info, err := s.seeds.SeedInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve seeds: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.datasetMemo != nil && s.datasetSeed == info.SessionSeed && s.datasetMemo.info.ProfileSeed == info.ProfileSeed {
		s.datasetMemo.info = info
		return s.datasetMemo, nil
	}

	if s.personaMemo == nil || s.personaSeed != info.ProfileSeed {
		p := persona.Generate(info.ProfileSeed)
		s.personaMemo = &p
		s.personaSeed = info.ProfileSeed
	}

	start := s.now()
	txns := synth.Generate(*s.personaMemo, info.SessionSeed, s.now().UTC())
	baseline := aggregate.ComputeBaseline(txns, *s.personaMemo)
	balances := aggregate.BuildBalanceSnapshots(txns, baseline.Balance)

	s.log.WithFields(logrus.Fields{
		"profileSeed":  info.ProfileSeed,
		"sessionSeed":  info.SessionSeed,
		"transactions": len(txns),
		"elapsed":      time.Since(start).String(),
	}).Info("[data] generated ledger")

	s.datasetMemo = &dataset{
		info:         info,
		persona:      *s.personaMemo,
		transactions: txns,
		balances:     balances,
		baseline:     baseline,
	}
	s.datasetSeed = info.SessionSeed
	return s.datasetMemo, nil
}

// Snapshot is everything the dashboard needs for one time range.
type Snapshot struct {
	SeedInfo        seed.Info                   `json:"seedInfo"`
	TimeRange       ledger.TimeRange            `json:"timeRange"`
	Transactions    []ledger.Transaction        `json:"transactions"`
	Categories      []string                    `json:"categories"`
	Accounts        []string                    `json:"accounts"`
	Tree            aggregate.CategoryTree      `json:"tree"`
	Balances        []aggregate.BalanceSnapshot `json:"balances"`
	Baseline        aggregate.Baseline          `json:"baseline"`
	TotalBalance    float64                     `json:"totalBalance"`
	MonthlyIncome   float64                     `json:"monthlyIncome"`
	MonthlyExpenses float64                     `json:"monthlyExpenses"`
	CashFlow        float64                     `json:"cashFlow"`
}

// Snapshot generates (or reuses) the dataset and aggregates it for the
// requested time range.
func (s *DataService) Snapshot(timeRange ledger.TimeRange) (*Snapshot, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}

	filtered := ledger.FilterByRange(ds.transactions, timeRange, s.now().UTC())
	return &Snapshot{
		SeedInfo:        ds.info,
		TimeRange:       timeRange,
		Transactions:    filtered,
		Categories:      ledger.Categories(ds.transactions),
		Accounts:        ledger.Accounts(ds.transactions),
		Tree:            aggregate.BuildCategoryTree(filtered),
		Balances:        ds.balances,
		Baseline:        ds.baseline,
		TotalBalance:    ds.baseline.Balance,
		MonthlyIncome:   ds.baseline.MonthlyIncome,
		MonthlyExpenses: ds.baseline.MonthlyExpenses,
		CashFlow:        ds.baseline.MonthlyIncome - ds.baseline.MonthlyExpenses,
	}, nil
}

// Transactions applies explorer filters on top of a time range.
func (s *DataService) Transactions(timeRange ledger.TimeRange, f ledger.Filters, sortBy ledger.SortField, ascending bool) ([]ledger.Transaction, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}
	ranged := ledger.FilterByRange(ds.transactions, timeRange, s.now().UTC())
	return ledger.Apply(ranged, f, sortBy, ascending), nil
}

// Forecast runs (or fetches from cache) the quant model for one metric,
// time range and optional saved scenario.
func (s *DataService) Forecast(metric quant.Metric, timeRange ledger.TimeRange, scenarioID string) (quant.Outputs, error) {
	gen := s.currentGeneration()

	ds, err := s.dataset()
	if err != nil {
		return quant.Outputs{}, err
	}

	var def *scenario.Definition
	if scenarioID != "" {
		def = s.findScenario(scenarioID)
		if def == nil {
			return quant.Outputs{}, ErrScenarioNotFound
		}
	}

	filtered := ledger.FilterByRange(ds.transactions, timeRange, s.now().UTC())
	out := s.cache.Get(quant.Inputs{
		TimeRangeDays: ledger.TimeRangeDays(timeRange),
		Transactions:  filtered,
		Balances:      aggregate.BuildBalanceSnapshots(filtered, ds.baseline.Balance),
		Scenario:      def,
		Metric:        metric,
	}, ds.info.SessionSeed)

	// Last request wins: a regeneration racing this run invalidates it.
	if s.currentGeneration() != gen {
		return quant.Outputs{}, ErrSuperseded
	}
	return out, nil
}

func (s *DataService) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func (s *DataService) findScenario(id string) *scenario.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.scenarios {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// AddScenario saves a new scenario definition, assigning it an ID and the
// next palette color.
func (s *DataService) AddScenario(name string, p scenario.Params) (*scenario.Definition, error) {
	if p == nil {
		return nil, errors.New("scenario params are required")
	}
	if name == "" {
		name = scenario.DisplayName(p.Type())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scenarios) >= scenario.MaxScenarios {
		return nil, ErrScenarioLimit
	}

	def := &scenario.Definition{
		ID:     uuid.New().String(),
		Name:   name,
		Color:  scenario.Colors[s.colorCounter%len(scenario.Colors)],
		Params: p,
	}
	s.colorCounter++
	s.scenarios = append(s.scenarios, def)

	s.log.WithFields(logrus.Fields{"id": def.ID, "type": p.Type()}).Info("[scenario] added")
	return def, nil
}

// ParseScenario interprets free-form text against the current baseline and
// saves the resulting scenario. Text that parses to nothing returns
// (nil, nil).
func (s *DataService) ParseScenario(text string) (*scenario.Definition, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}
	params, name := scenario.Parse(text, ds.baseline)
	if params == nil {
		return nil, nil
	}
	return s.AddScenario(name, params)
}

// RemoveScenario deletes a saved scenario by ID.
func (s *DataService) RemoveScenario(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.scenarios {
		if d.ID == id {
			s.scenarios = append(s.scenarios[:i], s.scenarios[i+1:]...)
			return nil
		}
	}
	return ErrScenarioNotFound
}

// Scenarios lists the saved definitions in creation order.
func (s *DataService) Scenarios() []*scenario.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*scenario.Definition, len(s.scenarios))
	copy(out, s.scenarios)
	return out
}

// Suggestions summarizes active scenarios against the current baseline.
func (s *DataService) Suggestions() ([]string, string, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, "", err
	}
	defs := s.Scenarios()
	return scenario.Suggestions(defs, ds.baseline), scenario.NextQuestion(defs, string(quant.MetricTotalBalance)), nil
}

// ToggleLock flips session-seed locking and returns the new seed state.
func (s *DataService) ToggleLock() (seed.Info, error) {
	if _, err := s.seeds.ToggleLock(); err != nil {
		return seed.Info{}, err
	}
	info, err := s.seeds.SeedInfo()
	if err != nil {
		return seed.Info{}, err
	}
	s.log.WithField("isLocked", info.IsLocked).Info("[seed] lock toggled")
	return info, nil
}

// Regenerate discards the synthetic identity: seeds, memoized dataset,
// forecast cache and saved scenarios all reset.
func (s *DataService) Regenerate() (seed.Info, error) {
	if err := s.seeds.Regenerate(); err != nil {
		return seed.Info{}, err
	}

	s.mu.Lock()
	s.generation++
	s.personaMemo = nil
	s.datasetMemo = nil
	s.scenarios = nil
	s.colorCounter = 0
	s.mu.Unlock()
	s.cache.Clear()

	info, err := s.seeds.SeedInfo()
	if err != nil {
		return seed.Info{}, err
	}
	s.log.WithField("profileSeed", info.ProfileSeed).Info("[seed] regenerated identity")
	return info, nil
}

// ClearForecastCache drops cached forecasts. Invoked by the hourly sweep
// once session seeds rotate.
func (s *DataService) ClearForecastCache() {
	s.cache.Clear()
	s.log.Debug("[quant] forecast cache cleared")
}

// SeedInfo exposes the current seed state.
func (s *DataService) SeedInfo() (seed.Info, error) {
	return s.seeds.SeedInfo()
}

// IsLocked reports whether the session seed is pinned.
func (s *DataService) IsLocked() (bool, error) {
	info, err := s.seeds.SeedInfo()
	if err != nil {
		return false, err
	}
	return info.IsLocked, nil
}
