package event

import "time"

// Notifier receives state-change notifications from the simulation. It is
// passed in at construction; implementations are called on the simulation
// goroutine and must not block.
type Notifier interface {
	GoldChanged(gold int)
	XPChanged(xp, xpToNext int)
	EpochChanged(name string)
	BaseHPChanged(hp, maxHP int, side string)
	PlacementFailed(reason string)
	SpawnFailed(reason string)
	AbilityCooldown(ability string, remaining, total time.Duration)
	MatchEnded(winner string)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) GoldChanged(int)                                      {}
func (Nop) XPChanged(int, int)                                   {}
func (Nop) EpochChanged(string)                                  {}
func (Nop) BaseHPChanged(int, int, string)                       {}
func (Nop) PlacementFailed(string)                               {}
func (Nop) SpawnFailed(string)                                   {}
func (Nop) AbilityCooldown(string, time.Duration, time.Duration) {}
func (Nop) MatchEnded(string)                                    {}

// BusNotifier queues notifications on a Bus. They reach subscribers when the
// output phase flushes the bus.
type BusNotifier struct {
	bus *Bus
}

func NewBusNotifier(b *Bus) *BusNotifier {
	return &BusNotifier{bus: b}
}

func (n *BusNotifier) GoldChanged(gold int) {
	Emit(n.bus, GoldChanged{Gold: gold})
}

func (n *BusNotifier) XPChanged(xp, xpToNext int) {
	Emit(n.bus, XPChanged{XP: xp, XPToNext: xpToNext})
}

func (n *BusNotifier) EpochChanged(name string) {
	Emit(n.bus, EpochChanged{Name: name})
}

func (n *BusNotifier) BaseHPChanged(hp, maxHP int, side string) {
	Emit(n.bus, BaseHPChanged{HP: hp, MaxHP: maxHP, Side: side})
}

func (n *BusNotifier) PlacementFailed(reason string) {
	Emit(n.bus, PlacementFailed{Reason: reason})
}

func (n *BusNotifier) SpawnFailed(reason string) {
	Emit(n.bus, SpawnFailed{Reason: reason})
}

func (n *BusNotifier) AbilityCooldown(ability string, remaining, total time.Duration) {
	Emit(n.bus, AbilityCooldown{Ability: ability, Remaining: remaining, Total: total})
}

func (n *BusNotifier) MatchEnded(winner string) {
	Emit(n.bus, MatchEnded{Winner: winner})
}
