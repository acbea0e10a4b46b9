package economy

import (
	"math"
	"testing"
	"time"

	"github.com/lanewar/engine/internal/core/event/eventtest"
	"github.com/lanewar/engine/internal/data"
	"go.uber.org/zap"
)

func newTestLedger(t *testing.T, opts Options) (*Ledger, *eventtest.Recorder) {
	t.Helper()
	epochs, err := data.LoadEpochTable("")
	if err != nil {
		t.Fatalf("load epochs: %v", err)
	}
	rec := &eventtest.Recorder{}
	return NewLedger(opts, epochs, rec, zap.NewNop()), rec
}

func TestClamp(t *testing.T) {
	cases := []struct {
		raw  float64
		want float64
	}{
		{-50, 0},
		{150, 150},
		{DefaultMaxXPEvent + 5000, DefaultMaxXPEvent},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
		{0, 0},
	}
	for _, c := range cases {
		if got := Clamp(c.raw, DefaultMaxXPEvent); got != c.want {
			t.Errorf("Clamp(%v) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestAwardXPAppliesClampedAmount(t *testing.T) {
	l, _ := newTestLedger(t, Options{})

	if got := l.AwardXP(-10); got != 0 || l.XP() != 0 {
		t.Errorf("negative award applied %d, xp=%d", got, l.XP())
	}
	if got := l.AwardXP(math.NaN()); got != 0 || l.XP() != 0 {
		t.Errorf("NaN award applied %d, xp=%d", got, l.XP())
	}
	if got := l.AwardXP(40); got != 40 || l.XP() != 40 {
		t.Errorf("normal award applied %d, xp=%d", got, l.XP())
	}
}

func TestAccrueGoldDeltaIndependent(t *testing.T) {
	for _, gps := range []float64{2, 3, 7.5} {
		whole, _ := newTestLedger(t, Options{GoldPerSecond: gps})
		sliced, _ := newTestLedger(t, Options{GoldPerSecond: gps})

		whole.AccrueGold(10 * time.Second)
		for i := 0; i < 625; i++ {
			sliced.AccrueGold(16 * time.Millisecond)
		}

		if whole.Gold() != sliced.Gold() {
			t.Errorf("gps=%v: one call gave %d gold, sliced gave %d", gps, whole.Gold(), sliced.Gold())
		}
		if whole.Accumulator() != sliced.Accumulator() {
			t.Errorf("gps=%v: remainder differs %v vs %v", gps, whole.Accumulator(), sliced.Accumulator())
		}
		if acc := sliced.Accumulator(); acc < 0 || acc >= sliced.TickInterval() {
			t.Errorf("gps=%v: accumulator %v out of [0, %v)", gps, acc, sliced.TickInterval())
		}
	}
}

func TestAccrueGoldCarriesRemainder(t *testing.T) {
	l, rec := newTestLedger(t, Options{StartingGold: 100, GoldPerSecond: 2})

	l.AccrueGold(400 * time.Millisecond)
	if l.Gold() != 100 {
		t.Fatalf("gold awarded before interval elapsed: %d", l.Gold())
	}
	if len(rec.Gold) != 0 {
		t.Errorf("gold notification without change: %v", rec.Gold)
	}
	l.AccrueGold(100 * time.Millisecond)
	if l.Gold() != 101 {
		t.Errorf("expected 101 gold, got %d", l.Gold())
	}
	if rec.LastGold() != 101 {
		t.Errorf("expected goldChanged(101), got %v", rec.Gold)
	}
}

func TestSpendGold(t *testing.T) {
	l, rec := newTestLedger(t, Options{StartingGold: 50})

	if l.SpendGold(80) {
		t.Error("spend beyond purse succeeded")
	}
	if l.Gold() != 50 || len(rec.Gold) != 0 {
		t.Errorf("failed spend changed state: gold=%d notes=%v", l.Gold(), rec.Gold)
	}
	if !l.SpendGold(50) {
		t.Error("exact spend failed")
	}
	if l.Gold() != 0 {
		t.Errorf("expected 0 gold, got %d", l.Gold())
	}
	if l.SpendGold(-5) {
		t.Error("negative spend accepted")
	}
}

func TestEpochAdvanceOneTierPerAward(t *testing.T) {
	l, rec := newTestLedger(t, Options{})

	// Stone Age needs 100; a max-size award would cover several tiers.
	l.AwardXP(DefaultMaxXPEvent)
	if l.EpochIndex() != 1 {
		t.Fatalf("expected one advance, at index %d", l.EpochIndex())
	}
	if l.XP() != 0 {
		t.Errorf("xp should reset on advance, got %d", l.XP())
	}
	if len(rec.Epochs) != 1 || rec.Epochs[0] != "Castle Age" {
		t.Errorf("epoch notifications: %v", rec.Epochs)
	}
	last, _ := rec.LastXP()
	if last.XP != 0 || last.XPToNext != 400 {
		t.Errorf("xp notification after advance: %+v", last)
	}
}

func TestEpochIndexMonotonic(t *testing.T) {
	l, _ := newTestLedger(t, Options{})
	prev := l.EpochIndex()
	for i := 0; i < 50; i++ {
		l.AwardXP(float64(i * 97 % 3000))
		if l.EpochIndex() < prev {
			t.Fatalf("epoch index decreased from %d to %d", prev, l.EpochIndex())
		}
		prev = l.EpochIndex()
	}
	if l.EpochIndex() != 4 {
		t.Errorf("expected to reach the last epoch, at %d", l.EpochIndex())
	}
	// XP keeps accumulating at the top of the ladder.
	before := l.XP()
	l.AwardXP(10)
	if l.XP() != before+10 || l.EpochIndex() != 4 {
		t.Errorf("last epoch: xp %d -> %d, index %d", before, l.XP(), l.EpochIndex())
	}
}

func TestProgressNotificationBelowThreshold(t *testing.T) {
	l, rec := newTestLedger(t, Options{})
	l.AwardXP(30)
	last, ok := rec.LastXP()
	if !ok || last.XP != 30 || last.XPToNext != 100 {
		t.Errorf("expected xpChanged(30, 100), got %+v", last)
	}
	if len(rec.Epochs) != 0 {
		t.Errorf("unexpected epoch change %v", rec.Epochs)
	}
}
