package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func newTestEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestDamageXPCappedByRemainingHP(t *testing.T) {
	e := newTestEngine(t, "")

	if got := e.CalcDamageXP(10, 30); got != 10 {
		t.Errorf("damage below hp: expected 10, got %v", got)
	}
	if got := e.CalcDamageXP(50, 20); got != 20 {
		t.Errorf("overkill: expected 20, got %v", got)
	}
	if got := e.CalcDamageXP(10, -5); got != 0 {
		t.Errorf("already dead target: expected 0, got %v", got)
	}
}

func TestKillBonusXP(t *testing.T) {
	e := newTestEngine(t, "")

	if got := e.CalcKillBonusXP(50); got != 25 {
		t.Errorf("expected 25, got %v", got)
	}
	if got := e.CalcKillBonusXP(15); got != 7 {
		t.Errorf("expected floor(7.5)=7, got %v", got)
	}
}

func TestOverrideDirReplacesFormula(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "xp"), 0o755); err != nil {
		t.Fatal(err)
	}
	src := "function calc_kill_bonus_xp(ctx) return ctx.gold_cost * 2 end\n"
	if err := os.WriteFile(filepath.Join(dir, "xp", "bonus.lua"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	e := newTestEngine(t, dir)
	if got := e.CalcKillBonusXP(40); got != 80 {
		t.Errorf("override not applied: got %v", got)
	}
	// Untouched function keeps the built-in definition.
	if got := e.CalcDamageXP(5, 100); got != 5 {
		t.Errorf("builtin damage formula lost: got %v", got)
	}
}

func TestMissingFunctionFallsBack(t *testing.T) {
	e, err := NewEngine("", zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer e.Close()

	if err := e.DoString("calc_damage_xp = nil; calc_kill_bonus_xp = nil"); err != nil {
		t.Fatalf("unset functions: %v", err)
	}
	if got := e.CalcDamageXP(12, 8); got != 8 {
		t.Errorf("fallback damage xp: expected 8, got %v", got)
	}
	if got := e.CalcKillBonusXP(50); got != 25 {
		t.Errorf("fallback kill bonus: expected 25, got %v", got)
	}
}

func TestBadScriptFails(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "xp"), 0o755)
	os.WriteFile(filepath.Join(dir, "xp", "broken.lua"), []byte("function ("), 0o644)

	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatal("expected syntax error to fail engine construction")
	}
}
