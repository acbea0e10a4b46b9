package event

import "time"

// Notification payloads carried on the Bus. Field sets match the Notifier
// methods one-to-one.

type GoldChanged struct {
	Gold int
}

type XPChanged struct {
	XP       int
	XPToNext int
}

type EpochChanged struct {
	Name string
}

type BaseHPChanged struct {
	HP    int
	MaxHP int
	Side  string
}

type PlacementFailed struct {
	Reason string
}

type SpawnFailed struct {
	Reason string
}

type AbilityCooldown struct {
	Ability   string
	Remaining time.Duration
	Total     time.Duration
}

type MatchEnded struct {
	Winner string
}
