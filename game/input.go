package game

// Input is the latest per-player input snapshot for one tick.
type Input struct {
	Ax, Ay float64 // -1..1 movement
	Boost  bool

	Primary   bool // fire a chain toward the target point
	Secondary bool // remove the oldest chain

	// Target is the cursor projected into world space. HasTarget is false
	// when the client has no valid cursor position; a primary press without
	// a target is skipped with no side effects.
	TargetX, TargetY float64
	HasTarget        bool
}

// Target returns the world-space target point.
func (in Input) Target() Vec2 {
	return Vec2{X: in.TargetX, Y: in.TargetY}
}
