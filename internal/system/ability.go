package system

import (
	"fmt"
	"math"
	"time"

	"github.com/lanewar/engine/internal/config"
	coresys "github.com/lanewar/engine/internal/core/system"
	"github.com/lanewar/engine/internal/world"
	"go.uber.org/zap"
)

// Ability identifies one of the player's area attacks.
type Ability uint8

const (
	AbilityRocks     Ability = iota // A: raining rocks, random impacts mid-field
	AbilityArtillery                // B: artillery strike, a line of blasts along the lane
)

func (a Ability) String() string {
	switch a {
	case AbilityRocks:
		return "raining_rocks"
	case AbilityArtillery:
		return "artillery_strike"
	}
	return fmt.Sprintf("ability(%d)", uint8(a))
}

type abilityState struct {
	cfg      config.AbilityConfig
	lastUsed time.Duration
}

// AbilitySystem gates the abilities on their cooldowns, schedules the
// impacts and broadcasts the remaining cooldown every tick. Phase Update.
type AbilitySystem struct {
	deps   *Deps
	combat *Combat
	states [2]abilityState
}

func NewAbilitySystem(d *Deps, combat *Combat) *AbilitySystem {
	s := &AbilitySystem{deps: d, combat: combat}
	s.states[AbilityRocks].cfg = d.Config.Abilities.Rocks
	s.states[AbilityArtillery].cfg = d.Config.Abilities.Artillery
	// Ready at match start.
	for i := range s.states {
		s.states[i].lastUsed = -s.states[i].cfg.Cooldown
	}
	return s
}

func (s *AbilitySystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *AbilitySystem) state(a Ability) (*abilityState, error) {
	if int(a) >= len(s.states) {
		return nil, fmt.Errorf("%s: %w", a, ErrInvalidSelection)
	}
	return &s.states[a], nil
}

// LastUsed returns the activation time of a, negative if never used.
func (s *AbilitySystem) LastUsed(a Ability) time.Duration {
	st, err := s.state(a)
	if err != nil {
		return 0
	}
	return st.lastUsed
}

// CooldownRemaining is the time until a can be used again, never negative.
func (s *AbilitySystem) CooldownRemaining(a Ability, now time.Duration) time.Duration {
	st, err := s.state(a)
	if err != nil {
		return 0
	}
	remaining := st.cfg.Cooldown - (now - st.lastUsed)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Use activates a. The cooldown starts now; the impacts land over the
// following interval*count.
func (s *AbilitySystem) Use(a Ability) error {
	st, err := s.state(a)
	if err != nil {
		return err
	}
	now := s.deps.Clock.Now()
	if remaining := s.CooldownRemaining(a, now); remaining > 0 {
		s.deps.Log.Debug("ability on cooldown",
			zap.Stringer("ability", a),
			zap.Duration("remaining", remaining),
		)
		return fmt.Errorf("%s: %s left: %w", a, remaining, ErrAbilityOnCooldown)
	}
	st.lastUsed = now
	s.deps.Log.Info("ability activated", zap.Stringer("ability", a))

	cfg := st.cfg
	for i := 0; i < cfg.Count; i++ {
		due := now + time.Duration(i)*cfg.Interval
		switch a {
		case AbilityRocks:
			s.deps.Timers.At(due, func(time.Duration) {
				x := cfg.MinX + s.deps.Rand.Float64()*(cfg.MaxX-cfg.MinX)
				y := s.deps.World.Lane.LaneY + (s.deps.Rand.Float64()-0.5)*s.deps.World.Lane.LaneHeight
				s.impact(x, y, cfg)
			})
		case AbilityArtillery:
			x := cfg.StartX + float64(i)*cfg.Spacing
			s.deps.Timers.At(due, func(time.Duration) {
				s.impact(x, s.deps.World.Lane.LaneY, cfg)
			})
		}
	}
	return nil
}

// impact damages every active enemy unit within the blast radius. Survivors
// are pushed away from the centre when the ability has knockback.
func (s *AbilitySystem) impact(x, y float64, cfg config.AbilityConfig) {
	for _, u := range s.deps.World.EnemyUnits.Active() {
		if math.Hypot(u.X-x, u.Y-y) > cfg.Radius {
			continue
		}
		if cfg.Knockback > 0 {
			angle := math.Atan2(u.Y-y, u.X-x)
			u.X += math.Cos(angle) * cfg.Knockback
			u.Y += math.Sin(angle) * cfg.Knockback
		}
		s.combat.ApplyDamage(u, cfg.Damage, world.SidePlayer)
	}
}

func (s *AbilitySystem) Update(_ time.Duration) {
	now := s.deps.Clock.Now()
	for i := range s.states {
		a := Ability(i)
		s.deps.Notify.AbilityCooldown(a.String(), s.CooldownRemaining(a, now), s.states[i].cfg.Cooldown)
	}
}
