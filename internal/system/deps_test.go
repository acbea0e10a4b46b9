package system

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lanewar/engine/internal/config"
	"github.com/lanewar/engine/internal/core/event/eventtest"
	"github.com/lanewar/engine/internal/core/timer"
	"github.com/lanewar/engine/internal/data"
	"github.com/lanewar/engine/internal/economy"
	"github.com/lanewar/engine/internal/scripting"
	"github.com/lanewar/engine/internal/world"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	deps   *Deps
	rec    *eventtest.Recorder
	combat *Combat
}

func newFixture(t *testing.T, mutate func(*config.Config)) *fixture {
	t.Helper()
	cfg := config.Defaults()
	if mutate != nil {
		mutate(cfg)
	}
	log := zaptest.NewLogger(t)

	catalog, err := data.LoadCatalog("", "", "")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	engine, err := scripting.NewEngine("", log)
	if err != nil {
		t.Fatalf("scripting engine: %v", err)
	}
	t.Cleanup(engine.Close)

	diff, _ := config.LookupDifficulty(cfg.Difficulty)
	rec := &eventtest.Recorder{}
	d := &Deps{
		Config:     cfg,
		Difficulty: diff,
		Catalog:    catalog,
		World:      world.NewState(cfg),
		Ledger: economy.NewLedger(economy.Options{
			StartingGold:  cfg.StartingGold(diff),
			GoldPerSecond: cfg.Economy.GoldPerSecond,
			MaxXPEvent:    cfg.Economy.MaxXPEvent,
		}, catalog.Epochs, rec, log),
		Timers: timer.NewScheduler(),
		XP:     engine,
		Notify: rec,
		Clock:  &Clock{},
		Match:  &Match{},
		Rand:   rand.New(rand.NewSource(7)),
		Log:    log,
	}
	return &fixture{deps: d, rec: rec, combat: NewCombat(d)}
}

// advance moves the clock and runs due callbacks, like the first half of
// the PreUpdate phase.
func (f *fixture) advance(now time.Duration) {
	f.deps.Clock.Set(now)
	f.deps.Timers.RunDue(now)
}

func (f *fixture) unit(t *testing.T, side world.Side, x float64, attrs world.UnitAttrs) *world.Unit {
	t.Helper()
	u, err := f.deps.World.Units(side).Acquire(x, f.deps.World.Lane.LaneY, attrs)
	if err != nil {
		t.Fatalf("acquire %s unit: %v", side, err)
	}
	return u
}
