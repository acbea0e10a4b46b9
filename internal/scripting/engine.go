package scripting

import (
	"embed"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed scripts
var builtin embed.FS

// Fallback rates used when a script function is missing or fails.
const (
	fallbackDamageXPRate  = 1.0
	fallbackKillBonusRate = 0.5
)

// Engine wraps a single gopher-lua VM for balance formulas.
// Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine with the built-in scripts loaded, then any
// .lua files under overrideDir/xp. Later definitions replace earlier ones.
func NewEngine(overrideDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	if err := e.loadFS(builtin, "scripts/xp"); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load builtin scripts: %w", err)
	}

	if overrideDir != "" {
		if err := e.loadDir(filepath.Join(overrideDir, "xp")); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load xp scripts: %w", err)
		}
	}

	return e, nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// DoString runs a chunk in the engine's VM. Used for tuning constants at runtime.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

func (e *Engine) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".lua" {
			continue
		}
		p := path.Join(dir, entry.Name())
		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		if err := e.vm.DoString(string(src)); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", p))
	}
	return nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", p))
	}
	return nil
}

// CalcDamageXP calls the Lua calc_damage_xp function. The result is never
// more than the HP the target had before the hit.
func (e *Engine) CalcDamageXP(damage, hpBefore int) float64 {
	ctx := e.vm.NewTable()
	ctx.RawSetString("damage", lua.LNumber(damage))
	ctx.RawSetString("hp_before", lua.LNumber(hpBefore))

	xp, ok := e.callNumber("calc_damage_xp", ctx)
	if !ok {
		xp = fallbackDamageXP(damage, hpBefore)
	}
	if limit := float64(max(min(damage, hpBefore), 0)); xp > limit {
		xp = limit
	}
	return xp
}

// CalcKillBonusXP calls the Lua calc_kill_bonus_xp function.
func (e *Engine) CalcKillBonusXP(goldCost int) float64 {
	ctx := e.vm.NewTable()
	ctx.RawSetString("gold_cost", lua.LNumber(goldCost))

	xp, ok := e.callNumber("calc_kill_bonus_xp", ctx)
	if !ok {
		return math.Floor(float64(goldCost) * fallbackKillBonusRate)
	}
	return xp
}

func (e *Engine) callNumber(name string, arg lua.LValue) (float64, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("fn", name))
		return 0, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		e.log.Error("lua call error", zap.String("fn", name), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number", zap.String("fn", name))
		return 0, false
	}
	return float64(n), true
}

func fallbackDamageXP(damage, hpBefore int) float64 {
	dealt := max(min(damage, hpBefore), 0)
	return math.Floor(float64(dealt) * fallbackDamageXPRate)
}
