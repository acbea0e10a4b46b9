// Package battle is the entry point for driving a match: it wires the
// economy, the battlefield and the lane systems together behind Tick and
// the player commands.
package battle

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lanewar/engine/internal/config"
	"github.com/lanewar/engine/internal/core/event"
	coresys "github.com/lanewar/engine/internal/core/system"
	"github.com/lanewar/engine/internal/core/timer"
	"github.com/lanewar/engine/internal/data"
	"github.com/lanewar/engine/internal/economy"
	"github.com/lanewar/engine/internal/scripting"
	"github.com/lanewar/engine/internal/system"
	"github.com/lanewar/engine/internal/world"
	"go.uber.org/zap"
)

// Simulation is one match. Tick and the command methods must be called from
// a single goroutine; other goroutines go through Commands().
type Simulation struct {
	cfg    *config.Config
	deps   *system.Deps
	bus    *event.Bus
	runner *coresys.Runner
	engine *scripting.Engine

	commands  *Commands
	turrets   *system.TurretSystem
	abilities *system.AbilitySystem
	spawner   *system.SpawnerSystem

	log *zap.Logger
}

// New builds a match from cfg. Notifications go to notify; when notify is
// nil they are queued on the simulation's bus and delivered to Bus()
// subscribers at the end of each tick.
func New(cfg *config.Config, notify event.Notifier, log *zap.Logger) (*Simulation, error) {
	catalog, err := data.LoadCatalog(cfg.Data.Units, cfg.Data.Turrets, cfg.Data.Epochs)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return nil, fmt.Errorf("scripting: %w", err)
	}

	diff, ok := config.LookupDifficulty(cfg.Difficulty)
	if !ok {
		log.Warn("unknown difficulty, using medium", zap.String("difficulty", cfg.Difficulty))
	}

	bus := event.NewBus()
	if notify == nil {
		notify = event.NewBusNotifier(bus)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	d := &system.Deps{
		Config:     cfg,
		Difficulty: diff,
		Catalog:    catalog,
		World:      world.NewState(cfg),
		Ledger: economy.NewLedger(economy.Options{
			StartingGold:  cfg.StartingGold(diff),
			GoldPerSecond: cfg.Economy.GoldPerSecond,
			MaxXPEvent:    cfg.Economy.MaxXPEvent,
		}, catalog.Epochs, notify, log),
		Timers: timer.NewScheduler(),
		XP:     engine,
		Notify: notify,
		Clock:  &system.Clock{},
		Match:  &system.Match{},
		Rand:   rand.New(rand.NewSource(seed)),
		Log:    log,
	}

	s := &Simulation{
		cfg:      cfg,
		deps:     d,
		bus:      bus,
		runner:   coresys.NewRunner(),
		engine:   engine,
		commands: NewCommands(cfg.Loop.CommandQueue, log),
		log:      log,
	}

	combat := system.NewCombat(d)
	s.turrets = system.NewTurretSystem(d)
	s.abilities = system.NewAbilitySystem(d, combat)
	s.spawner = system.NewSpawnerSystem(d)

	// Registration order is the order within a phase.
	s.runner.Register(system.NewInputSystem(s.commands.receive(), s.dispatch, cfg.Loop.CommandQueue, log))
	s.runner.Register(system.NewTimerSystem(d))
	s.runner.Register(system.NewPhysicsSystem(d, combat))
	s.runner.Register(system.NewEconomySystem(d))
	s.runner.Register(s.abilities)
	s.runner.Register(s.turrets)
	s.runner.Register(system.NewCleanupSystem(d))
	s.runner.Register(s.spawner)
	s.runner.Register(system.NewOutputSystem(bus))

	log.Info("match created",
		zap.String("difficulty", diff.Name),
		zap.Int64("seed", seed),
		zap.Int("units", catalog.Units.Count()),
		zap.Int("turrets", catalog.Turrets.Count()),
		zap.Int("epochs", catalog.Epochs.Count()),
	)
	d.Ledger.Sync()
	d.Notify.BaseHPChanged(d.World.PlayerBase.HP, d.World.PlayerBase.MaxHP, world.SidePlayer.String())
	d.Notify.BaseHPChanged(d.World.EnemyBase.HP, d.World.EnemyBase.MaxHP, world.SideEnemy.String())
	return s, nil
}

// Close releases the scripting VM.
func (s *Simulation) Close() {
	s.engine.Close()
}

// Tick advances the match to now, delta after the previous tick. Does
// nothing once the match is over.
func (s *Simulation) Tick(now, delta time.Duration) {
	if s.deps.Match.Over() {
		return
	}
	s.deps.Clock.Set(now)
	s.runner.Tick(delta)
}

// Over reports whether a base has fallen.
func (s *Simulation) Over() bool { return s.deps.Match.Over() }

// Winner returns the winning side; meaningful only when Over is true.
func (s *Simulation) Winner() world.Side { return s.deps.Match.Winner() }

// Now is the match time of the latest tick.
func (s *Simulation) Now() time.Duration { return s.deps.Clock.Now() }

// Bus is where bus notifications are delivered when New was given no
// notifier.
func (s *Simulation) Bus() *event.Bus { return s.bus }

// Commands returns the queue other goroutines use to send commands.
func (s *Simulation) Commands() *Commands { return s.commands }

func (s *Simulation) World() *world.State          { return s.deps.World }
func (s *Simulation) Ledger() *economy.Ledger      { return s.deps.Ledger }
func (s *Simulation) Catalog() *data.Catalog       { return s.deps.Catalog }
func (s *Simulation) Config() *config.Config       { return s.cfg }
func (s *Simulation) Pending() int                 { return s.deps.Timers.Pending() }
func (s *Simulation) SpawnInterval() time.Duration { return s.spawner.Interval() }

func (s *Simulation) SpawnUnit(side world.Side, index int) error {
	if s.Over() {
		return ErrMatchOver
	}
	_, err := s.spawner.Spawn(side, index)
	return err
}

func (s *Simulation) SelectTurretType(index int) error {
	if s.Over() {
		return ErrMatchOver
	}
	return s.turrets.SelectTurretType(index)
}

func (s *Simulation) PlaceTurret(row, col int) error {
	if s.Over() {
		return ErrMatchOver
	}
	return s.turrets.PlaceTurret(row, col)
}

// UseAbilityA drops raining rocks on the mid-field.
func (s *Simulation) UseAbilityA() error {
	if s.Over() {
		return ErrMatchOver
	}
	return s.abilities.Use(system.AbilityRocks)
}

// UseAbilityB fires the artillery salvo down the lane.
func (s *Simulation) UseAbilityB() error {
	if s.Over() {
		return ErrMatchOver
	}
	return s.abilities.Use(system.AbilityArtillery)
}

// CooldownRemaining reports the time left before ability can be used.
func (s *Simulation) CooldownRemaining(ability system.Ability) time.Duration {
	return s.abilities.CooldownRemaining(ability, s.deps.Clock.Now())
}

func (s *Simulation) dispatch(cmd Command) error {
	switch cmd.Kind {
	case system.CmdSpawnUnit:
		return s.SpawnUnit(cmd.Side, cmd.Index)
	case system.CmdSelectTurret:
		return s.SelectTurretType(cmd.Index)
	case system.CmdPlaceTurret:
		return s.PlaceTurret(cmd.Row, cmd.Col)
	case system.CmdAbilityA:
		return s.UseAbilityA()
	case system.CmdAbilityB:
		return s.UseAbilityB()
	}
	return fmt.Errorf("unknown command %s: %w", cmd.Kind, ErrInvalidSelection)
}
