package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Difficulty string          `toml:"difficulty"` // easy, medium, hard
	Seed       int64           `toml:"seed"`       // 0 = seed from clock at boot
	Loop       LoopConfig      `toml:"loop"`
	Battle     BattleConfig    `toml:"battle"`
	Economy    EconomyConfig   `toml:"economy"`
	Pools      PoolsConfig     `toml:"pools"`
	Combat     CombatConfig    `toml:"combat"`
	Turrets    TurretsConfig   `toml:"turrets"`
	Abilities  AbilitiesConfig `toml:"abilities"`
	Spawner    SpawnerConfig   `toml:"spawner"`
	Data       DataConfig      `toml:"data"`
	Scripting  ScriptingConfig `toml:"scripting"`
	Logging    LoggingConfig   `toml:"logging"`
	Output     OutputConfig    `toml:"output"`
}

type LoopConfig struct {
	TickRate     time.Duration `toml:"tick_rate"`
	CommandQueue int           `toml:"command_queue"`
}

// BattleConfig describes lane geometry in world pixels.
type BattleConfig struct {
	LaneY         float64 `toml:"lane_y"`
	LaneWidth     float64 `toml:"lane_width"`
	LaneHeight    float64 `toml:"lane_height"`
	PlayerSpawnX  float64 `toml:"player_spawn_x"`
	EnemySpawnX   float64 `toml:"enemy_spawn_x"`
	PlayerBaseX   float64 `toml:"player_base_x"`
	EnemyBaseX    float64 `toml:"enemy_base_x"`
	BaseHP        int     `toml:"base_hp"`
	CleanupMargin float64 `toml:"cleanup_margin"`
	FieldHeight   float64 `toml:"field_height"` // projectiles below 0 or above this are recycled
}

type EconomyConfig struct {
	StartingGold  int     `toml:"starting_gold"` // 0 = difficulty preset
	GoldPerSecond float64 `toml:"gold_per_second"`
	MaxXPEvent    int     `toml:"max_xp_event"`
}

type PoolsConfig struct {
	PlayerUnits int `toml:"player_units"`
	EnemyUnits  int `toml:"enemy_units"`
	Projectiles int `toml:"projectiles"`
}

type CombatConfig struct {
	Windup            time.Duration `toml:"windup"`
	KnockbackDistance float64       `toml:"knockback_distance"`
	DefaultKillCost   int           `toml:"default_kill_cost"` // used when a victim has no gold cost
	UnitWidth         float64       `toml:"unit_width"`
	UnitHeight        float64       `toml:"unit_height"`
	ProjectileRadius  float64       `toml:"projectile_radius"`
}

type TurretsConfig struct {
	Rows     int     `toml:"rows"`
	Cols     int     `toml:"cols"`
	StartX   float64 `toml:"start_x"`
	StartY   float64 `toml:"start_y"`
	CellSize float64 `toml:"cell_size"`
}

type AbilitiesConfig struct {
	Rocks     AbilityConfig `toml:"rocks"`
	Artillery AbilityConfig `toml:"artillery"`
}

// AbilityConfig covers both barrage shapes. Rocks uses MinX/MaxX for random
// impact positions; artillery uses StartX/Spacing along the lane centre.
type AbilityConfig struct {
	Cooldown  time.Duration `toml:"cooldown"`
	Count     int           `toml:"count"`
	Interval  time.Duration `toml:"interval"`
	Damage    int           `toml:"damage"`
	Radius    float64       `toml:"radius"`
	Knockback float64       `toml:"knockback"`
	MinX      float64       `toml:"min_x"`
	MaxX      float64       `toml:"max_x"`
	StartX    float64       `toml:"start_x"`
	Spacing   float64       `toml:"spacing"`
}

type SpawnerConfig struct {
	Enabled  bool          `toml:"enabled"`
	Interval time.Duration `toml:"interval"`
	// Enemy picks come from the first min(epoch+Lookahead, len(units)) entries.
	Lookahead int `toml:"lookahead"`
}

// DataConfig points at catalog overrides. Empty paths use the embedded tables.
type DataConfig struct {
	Units   string `toml:"units"`
	Turrets string `toml:"turrets"`
	Epochs  string `toml:"epochs"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"` // optional directory of .lua overrides
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type OutputConfig struct {
	SnapshotFile string `toml:"snapshot_file"` // msgpack snapshot written on exit, empty = off
}

// Difficulty scales the enemy side and the player's starting purse.
type Difficulty struct {
	Name             string
	SpawnIntervalMul float64
	EnemyStatMul     float64
	StartingGold     int
}

var difficulties = map[string]Difficulty{
	"easy":   {Name: "easy", SpawnIntervalMul: 1.4, EnemyStatMul: 0.8, StartingGold: 150},
	"medium": {Name: "medium", SpawnIntervalMul: 1.0, EnemyStatMul: 1.0, StartingGold: 100},
	"hard":   {Name: "hard", SpawnIntervalMul: 0.7, EnemyStatMul: 1.25, StartingGold: 75},
}

// LookupDifficulty returns the named preset, or medium and false if unknown.
func LookupDifficulty(name string) (Difficulty, bool) {
	d, ok := difficulties[name]
	if !ok {
		return difficulties["medium"], false
	}
	return d, true
}

// StartingGold is the player's opening purse: the configured amount if set,
// otherwise the difficulty preset's.
func (c *Config) StartingGold(d Difficulty) int {
	if c.Economy.StartingGold > 0 {
		return c.Economy.StartingGold
	}
	return d.StartingGold
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the stock balance used when no config file overrides it.
func Defaults() *Config {
	return &Config{
		Difficulty: "medium",
		Loop: LoopConfig{
			TickRate:     16 * time.Millisecond,
			CommandQueue: 64,
		},
		Battle: BattleConfig{
			LaneY:         360,
			LaneWidth:     1280,
			LaneHeight:    120,
			PlayerSpawnX:  150,
			EnemySpawnX:   1130,
			PlayerBaseX:   100,
			EnemyBaseX:    1180,
			BaseHP:        1000,
			CleanupMargin: 50,
			FieldHeight:   720,
		},
		Economy: EconomyConfig{
			GoldPerSecond: 2,
			MaxXPEvent:    2000,
		},
		Pools: PoolsConfig{
			PlayerUnits: 50,
			EnemyUnits:  50,
			Projectiles: 200,
		},
		Combat: CombatConfig{
			Windup:            time.Second,
			KnockbackDistance: 5,
			DefaultKillCost:   50,
			UnitWidth:         32,
			UnitHeight:        32,
			ProjectileRadius:  8,
		},
		Turrets: TurretsConfig{
			Rows:     3,
			Cols:     5,
			StartX:   50,
			StartY:   150,
			CellSize: 60,
		},
		Abilities: AbilitiesConfig{
			Rocks: AbilityConfig{
				Cooldown: 45 * time.Second,
				Count:    8,
				Interval: 200 * time.Millisecond,
				Damage:   30,
				Radius:   80,
				MinX:     300,
				MaxX:     900,
			},
			Artillery: AbilityConfig{
				Cooldown:  60 * time.Second,
				Count:     10,
				Interval:  150 * time.Millisecond,
				Damage:    50,
				Radius:    60,
				Knockback: 15,
				StartX:    400,
				Spacing:   80,
			},
		},
		Spawner: SpawnerConfig{
			Enabled:   true,
			Interval:  5 * time.Second,
			Lookahead: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
