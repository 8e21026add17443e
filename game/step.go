package game

import "math"

// Step advances player movement one tick. Chain actions are edge-triggered
// and handled by the room before the physics step, not here.
func Step(s *State, inputs map[string]Input) {
	s.Tick++

	for id, p := range s.Players {
		inp, ok := inputs[id]
		if !ok {
			inp = Input{}
		}

		ax := inp.Ax
		ay := inp.Ay
		mag := math.Hypot(ax, ay)
		if mag > Deadzone {
			nx := ax / mag
			ny := ay / mag
			accel := AccelPerTick
			if inp.Boost {
				accel *= BoostMult
			}
			p.VX += nx * accel
			p.VY += ny * accel
		}

		p.VX /= PlayerDampingDiv
		p.VY /= PlayerDampingDiv

		maxSpeed := MaxSpeedNormal
		if inp.Boost {
			maxSpeed = MaxSpeedSprint
		}
		speed := math.Hypot(p.VX, p.VY)
		if speed > maxSpeed {
			scale := maxSpeed / speed
			p.VX *= scale
			p.VY *= scale
		}

		p.X += p.VX
		p.Y += p.VY

		p.X = math.Max(-MapWidth/2, math.Min(MapWidth/2, p.X))
		p.Y = math.Max(-MapHeight/2, math.Min(MapHeight/2, p.Y))
	}
}
