// ABOUTME: Shopper reward points, levels, and badges
// ABOUTME: Every mutation is written through to the local store before returning
package gamification

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/harperreed/phonestore/models"
	"github.com/harperreed/phonestore/store"
)

// PointsPerLevel is the width of one level.
const PointsPerLevel = 500

// Reward amounts for storefront actions.
const (
	RewardFilterCategory = 1
	RewardViewProduct    = 5
	RewardAddToCart      = 10
	RewardFirstOrder     = 100
	RewardCartOrder      = 500
)

// BadgeFirstOrder is granted with the single-item order reward.
const BadgeFirstOrder = "First Order"

// LevelFor returns the level reached with points.
func LevelFor(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

// AwardResult describes the state after an Award call.
type AwardResult struct {
	State         models.GamificationState
	LeveledUp     bool
	PreviousLevel int
}

// LevelUpFunc is called after a level increase, outside the engine lock.
type LevelUpFunc func(previous, current int)

// Engine serializes all reward mutations.
type Engine struct {
	store  store.KeyValueStore
	logger *log.Logger

	mu      sync.Mutex
	state   models.GamificationState
	onLevel LevelUpFunc
}

func NewEngine(kv store.KeyValueStore, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		store:  kv,
		logger: logger.WithPrefix("gamification"),
		state:  models.GamificationState{Level: 1},
	}
}

// OnLevelUp registers fn as the level-up listener.
func (e *Engine) OnLevelUp(fn LevelUpFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onLevel = fn
}

// Load reads the persisted state. Missing or malformed values start at
// zero; the level is always derived from points.
func (e *Engine) Load() models.GamificationState {
	points, _, err := store.GetInt(e.store, store.KeyPoints)
	if err != nil || points < 0 {
		e.logger.Warn("ignoring unreadable points", "err", err)
		points = 0
	}

	var badges []string
	if _, err := store.GetJSON(e.store, store.KeyBadges, &badges); err != nil {
		e.logger.Warn("ignoring unreadable badges", "err", err)
		badges = nil
	}

	e.mu.Lock()
	e.state = models.GamificationState{
		Points: points,
		Level:  LevelFor(points),
		Badges: dedupe(badges),
	}
	st := e.snapshotLocked()
	e.mu.Unlock()
	return st
}

// State returns a copy of the current state.
func (e *Engine) State() models.GamificationState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Award adds amount points and, if given, a badge. Non-positive amounts
// change nothing.
func (e *Engine) Award(amount int, badge string) AwardResult {
	e.mu.Lock()
	prev := e.state.Level
	if amount <= 0 {
		st := e.snapshotLocked()
		e.mu.Unlock()
		return AwardResult{State: st, PreviousLevel: prev}
	}

	e.state.Points += amount
	badgeAdded := false
	if badge != "" && !e.state.HasBadge(badge) {
		e.state.Badges = append(e.state.Badges, badge)
		badgeAdded = true
	}
	e.state.Level = LevelFor(e.state.Points)
	e.persistLocked(badgeAdded)

	st := e.snapshotLocked()
	listener := e.onLevel
	e.mu.Unlock()

	res := AwardResult{State: st, PreviousLevel: prev, LeveledUp: st.Level > prev}
	if res.LeveledUp {
		e.logger.Info("level up", "level", st.Level, "points", st.Points)
		if listener != nil {
			listener(prev, st.Level)
		}
	}
	return res
}

func (e *Engine) persistLocked(badgesChanged bool) {
	if err := store.SetInt(e.store, store.KeyPoints, e.state.Points); err != nil {
		e.logger.Warn("failed to persist points", "err", err)
	}
	if err := store.SetInt(e.store, store.KeyLevel, e.state.Level); err != nil {
		e.logger.Warn("failed to persist level", "err", err)
	}
	if badgesChanged {
		if err := store.SetJSON(e.store, store.KeyBadges, e.state.Badges); err != nil {
			e.logger.Warn("failed to persist badges", "err", err)
		}
	}
}

func (e *Engine) snapshotLocked() models.GamificationState {
	st := e.state
	st.Badges = append([]string(nil), e.state.Badges...)
	return st
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, b := range in {
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}
