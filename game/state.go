package game

// Internal truth authoritative game state

type State struct {
	Tick    int
	Players map[string]*Player
}

type Player struct {
	ID           string
	Name         string
	X, Y, VX, VY float64

	// Previous button state for just-pressed edge detection; the room
	// fires chain actions only on the rising edge.
	PrevPrimary   bool
	PrevSecondary bool
}

// Pos returns the player's position as the chain anchor point.
func (p *Player) Pos() Vec2 {
	return Vec2{X: p.X, Y: p.Y}
}

// PrimaryEdge reports whether primary transitioned from released to pressed
// and records the new state.
func (p *Player) PrimaryEdge(pressed bool) bool {
	edge := pressed && !p.PrevPrimary
	p.PrevPrimary = pressed
	return edge
}

// SecondaryEdge reports whether secondary transitioned from released to
// pressed and records the new state.
func (p *Player) SecondaryEdge(pressed bool) bool {
	edge := pressed && !p.PrevSecondary
	p.PrevSecondary = pressed
	return edge
}
