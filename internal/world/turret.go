package world

import (
	"time"

	"github.com/lanewar/engine/internal/data"
)

// TurretSlot is one cell of the placement grid.
type TurretSlot struct {
	Row, Col int
	X, Y     float64
	Occupied bool
	Turret   *data.TurretType
	LastFire time.Duration
}

// Cooldown is the turret's time between shots.
func (s *TurretSlot) Cooldown() time.Duration {
	if s.Turret == nil {
		return 0
	}
	return time.Duration(s.Turret.AttackSpeed * float64(time.Second))
}

// Ready reports whether the occupant may fire at now.
func (s *TurretSlot) Ready(now time.Duration) bool {
	return s.Occupied && now-s.LastFire >= s.Cooldown()
}

// TurretGrid holds rows*cols slots laid out row-major from (startX, startY).
type TurretGrid struct {
	rows, cols int
	slots      []TurretSlot
}

func NewTurretGrid(rows, cols int, startX, startY, cell float64) *TurretGrid {
	g := &TurretGrid{rows: rows, cols: cols, slots: make([]TurretSlot, rows*cols)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.slots[r*cols+c] = TurretSlot{
				Row: r,
				Col: c,
				X:   startX + float64(c)*cell,
				Y:   startY + float64(r)*cell,
			}
		}
	}
	return g
}

// Slot returns the slot at (row, col), or false if out of the grid.
func (g *TurretGrid) Slot(row, col int) (*TurretSlot, bool) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return nil, false
	}
	return &g.slots[row*g.cols+col], true
}

// Each visits slots row-major.
func (g *TurretGrid) Each(fn func(s *TurretSlot)) {
	for i := range g.slots {
		fn(&g.slots[i])
	}
}

func (g *TurretGrid) Rows() int { return g.rows }
func (g *TurretGrid) Cols() int { return g.cols }

// Occupied returns the number of placed turrets.
func (g *TurretGrid) Occupied() int {
	n := 0
	for i := range g.slots {
		if g.slots[i].Occupied {
			n++
		}
	}
	return n
}
