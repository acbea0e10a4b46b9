package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/lanewar/engine/internal/battle"
	"github.com/lanewar/engine/internal/config"
	"github.com/lanewar/engine/internal/core/event"
	"github.com/lanewar/engine/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(difficulty string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              LANEWAR  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        lane battle simulation core        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mdifficulty:\033[0m %s\n\n", difficulty)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := strconv.Itoa(count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Match loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/battle.toml"
	if p := os.Getenv("LANEWAR_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Difficulty)

	// 3. Build the match
	sim, err := battle.New(cfg, nil, log)
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}
	defer sim.Close()

	printSection("catalog")
	printStat("unit types", sim.Catalog().Units.Count())
	printStat("turret types", sim.Catalog().Turrets.Count())
	printStat("epochs", sim.Catalog().Epochs.Count())
	printOK("xp scripts loaded")

	subscribeLogging(sim.Bus(), log)

	// 4. Console commands
	go readConsole(os.Stdin, sim.Commands(), log)

	// 5. Start match loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Loop.TickRate)
	defer ticker.Stop()

	printSection("match")
	printReady(fmt.Sprintf("enemy spawn every %s", sim.SpawnInterval()))
	printReady(fmt.Sprintf("match loop running (tick: %s)", cfg.Loop.TickRate))
	printReady("commands: spawn <n> | enemy <n> | select <n> | place <row> <col> | a | b")
	fmt.Println()

	var now time.Duration
	for {
		select {
		case <-ticker.C:
			now += cfg.Loop.TickRate
			sim.Tick(now, cfg.Loop.TickRate)
			if sim.Over() {
				log.Info("match over",
					zap.String("winner", sim.Winner().String()),
					zap.Duration("time", now),
					zap.Int("xp", sim.Ledger().XP()),
					zap.String("epoch", sim.Ledger().Epoch().Name),
					zap.Int("turrets", sim.World().Turrets.Occupied()),
					zap.Uint64("dropped_commands", sim.Commands().Dropped()),
				)
				return writeSnapshot(sim, cfg.Output.SnapshotFile, log)
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return writeSnapshot(sim, cfg.Output.SnapshotFile, log)
		}
	}
}

// subscribeLogging turns bus notifications into log lines.
func subscribeLogging(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(e event.GoldChanged) {
		log.Debug("gold", zap.Int("gold", e.Gold))
	})
	event.Subscribe(bus, func(e event.XPChanged) {
		log.Debug("xp", zap.Int("xp", e.XP), zap.Int("next", e.XPToNext))
	})
	event.Subscribe(bus, func(e event.EpochChanged) {
		log.Info("epoch", zap.String("name", e.Name))
	})
	event.Subscribe(bus, func(e event.BaseHPChanged) {
		log.Info("base hp", zap.String("side", e.Side), zap.Int("hp", e.HP), zap.Int("max", e.MaxHP))
	})
	event.Subscribe(bus, func(e event.PlacementFailed) {
		log.Info("placement failed", zap.String("reason", e.Reason))
	})
	event.Subscribe(bus, func(e event.SpawnFailed) {
		log.Info("spawn failed", zap.String("reason", e.Reason))
	})
	event.Subscribe(bus, func(e event.MatchEnded) {
		log.Info("match ended", zap.String("winner", e.Winner))
	})
}

// readConsole parses one command per line and queues it for the match loop.
func readConsole(r io.Reader, cmds *battle.Commands, log *zap.Logger) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, err := parseCommand(fields)
		if err != nil {
			log.Warn("bad command", zap.String("input", sc.Text()), zap.Error(err))
			continue
		}
		cmds.Send(cmd)
	}
}

func parseCommand(fields []string) (battle.Command, error) {
	args := make([]int, 0, 2)
	for _, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return battle.Command{}, fmt.Errorf("argument %q: %w", f, err)
		}
		args = append(args, n)
	}
	need := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d argument(s)", fields[0], n)
		}
		return nil
	}

	switch fields[0] {
	case "spawn", "enemy":
		if err := need(1); err != nil {
			return battle.Command{}, err
		}
		side := world.SidePlayer
		if fields[0] == "enemy" {
			side = world.SideEnemy
		}
		return battle.SpawnUnitCommand(side, args[0]), nil
	case "select":
		if err := need(1); err != nil {
			return battle.Command{}, err
		}
		return battle.SelectTurretCommand(args[0]), nil
	case "place":
		if err := need(2); err != nil {
			return battle.Command{}, err
		}
		return battle.PlaceTurretCommand(args[0], args[1]), nil
	case "a", "rocks":
		return battle.AbilityACommand(), nil
	case "b", "artillery":
		return battle.AbilityBCommand(), nil
	}
	return battle.Command{}, fmt.Errorf("unknown command %q", fields[0])
}

func writeSnapshot(sim *battle.Simulation, path string, log *zap.Logger) error {
	if path == "" {
		return nil
	}
	snap := sim.Snapshot()
	data, err := battle.EncodeSnapshot(&snap)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	log.Info("snapshot written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
