package battle

import (
	"errors"

	"github.com/lanewar/engine/internal/core/ecs"
	"github.com/lanewar/engine/internal/system"
)

// Errors returned by the command methods. None are fatal; test with errors.Is.
var (
	ErrInsufficientFunds = system.ErrInsufficientFunds
	ErrPoolExhausted     = ecs.ErrPoolExhausted
	ErrInvalidSelection  = system.ErrInvalidSelection
	ErrSlotOccupied      = system.ErrSlotOccupied
	ErrAbilityOnCooldown = system.ErrAbilityOnCooldown
	ErrMatchOver         = errors.New("match over")
)
