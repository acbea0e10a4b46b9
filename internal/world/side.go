package world

// Side is the team an entity fights for.
type Side uint8

const (
	SidePlayer Side = iota
	SideEnemy
)

func (s Side) String() string {
	if s == SidePlayer {
		return "player"
	}
	return "enemy"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// Dir is the marching direction along x: player units walk right, enemies left.
func (s Side) Dir() float64 {
	if s == SidePlayer {
		return 1
	}
	return -1
}
