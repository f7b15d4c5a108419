package seed

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/nishanthbasava/quantra-finance-hub/internal/rng"
)

// lockedBucket is the sentinel time bucket used while the seed is locked so
// the session seed stops rotating.
const lockedBucket = "locked_demo"

// Info describes the current seed state. The same profile seed and time
// bucket always yield the same session seed and therefore the same ledger.
type Info struct {
	ProfileSeed uint32 `json:"profileSeed"`
	SessionSeed uint32 `json:"sessionSeed"`
	IsLocked    bool   `json:"isLocked"`
}

// Manager derives seed info from a Store. The clock is injectable so tests
// can pin the time bucket.
type Manager struct {
	store Store
	now   func() time.Time
}

// NewManager creates a manager over the given store using wall-clock time.
func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// NewManagerWithClock creates a manager with a fixed clock, for tests.
func NewManagerWithClock(store Store, now func() time.Time) *Manager {
	return &Manager{store: store, now: now}
}

// SeedInfo loads or lazily creates the persisted profile seed, reads the
// lock flag and derives the session seed for the current hour bucket.
// A non-numeric persisted seed is treated as absent and regenerated.
func (m *Manager) SeedInfo() (Info, error) {
	raw, ok, err := m.store.Get(keyProfileSeed)
	if err != nil {
		return Info{}, fmt.Errorf("failed to load profile seed: %w", err)
	}

	var profileSeed uint32
	if ok {
		parsed, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr == nil {
			profileSeed = uint32(parsed)
		} else {
			ok = false
		}
	}
	if !ok {
		profileSeed = uint32(rand.Int31())
		if err := m.store.Set(keyProfileSeed, strconv.FormatUint(uint64(profileSeed), 10)); err != nil {
			return Info{}, fmt.Errorf("failed to persist profile seed: %w", err)
		}
	}

	lockRaw, _, err := m.store.Get(keyLockSeed)
	if err != nil {
		return Info{}, fmt.Errorf("failed to load lock flag: %w", err)
	}
	isLocked := lockRaw == "true"

	bucket := lockedBucket
	if !isLocked {
		bucket = m.now().UTC().Format("2006010215")
	}

	return Info{
		ProfileSeed: profileSeed,
		SessionSeed: profileSeed ^ rng.HashString(bucket),
		IsLocked:    isLocked,
	}, nil
}

// ToggleLock flips the persisted lock flag and returns the new state.
func (m *Manager) ToggleLock() (bool, error) {
	raw, _, err := m.store.Get(keyLockSeed)
	if err != nil {
		return false, fmt.Errorf("failed to load lock flag: %w", err)
	}
	next := raw != "true"
	if err := m.store.Set(keyLockSeed, strconv.FormatBool(next)); err != nil {
		return false, fmt.Errorf("failed to persist lock flag: %w", err)
	}
	return next, nil
}

// Regenerate deletes the profile seed and lock flag, forcing a brand-new
// synthetic identity on the next SeedInfo call. This is irreversible.
func (m *Manager) Regenerate() error {
	if err := m.store.Delete(keyProfileSeed); err != nil {
		return fmt.Errorf("failed to delete profile seed: %w", err)
	}
	if err := m.store.Delete(keyLockSeed); err != nil {
		return fmt.Errorf("failed to delete lock flag: %w", err)
	}
	return nil
}
