package world

// Base is a side's headquarters at the end of the lane.
type Base struct {
	Side  Side
	X, Y  float64
	HP    int
	MaxHP int
}

func NewBase(side Side, x, y float64, hp int) *Base {
	return &Base{Side: side, X: x, Y: y, HP: hp, MaxHP: hp}
}

// Damage subtracts amount, clamping at zero, and returns the new hp.
func (b *Base) Damage(amount int) int {
	if amount <= 0 {
		return b.HP
	}
	b.HP -= amount
	if b.HP < 0 {
		b.HP = 0
	}
	return b.HP
}

func (b *Base) Destroyed() bool { return b.HP <= 0 }
