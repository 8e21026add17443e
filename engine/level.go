package engine

import (
	"github.com/jakecoffman/cp/v2"

	"chainshot/game"
)

// Static obstacle tuning, matched to the demo arena.
const (
	staticBoxSize       = 40.0
	staticBoxFriction   = 0.9
	staticBoxElasticity = 0.1

	dynamicBoxSize = 30.0
	dynamicBoxMass = 0.5
)

// arenaBoxes is the fixed obstacle arrangement chains interact with.
var arenaBoxes = []game.Vec2{
	{X: 200, Y: 100},
	{X: -150, Y: 50},
	{X: 100, Y: -100},
	{X: -200, Y: -150},
	{X: 0, Y: 200},
	{X: 300, Y: -50},
}

// SetupArena builds the demo level: a walled region, the static boxes and
// one dynamic test box above the first obstacle.
func (e *Engine) SetupArena(halfWidth, halfHeight float64) {
	e.AddWalls(halfWidth, halfHeight)
	for _, pos := range arenaBoxes {
		e.AddStaticBox(pos, staticBoxSize, staticBoxSize)
	}
	e.AddDynamicBox(game.Vec2{X: 200, Y: 200}, dynamicBoxSize, dynamicBoxSize, dynamicBoxMass)
}

// AddWalls bounds the play area with static segments so chains cannot fall
// out of the world.
func (e *Engine) AddWalls(halfWidth, halfHeight float64) {
	corners := []cp.Vector{
		{X: -halfWidth, Y: -halfHeight},
		{X: halfWidth, Y: -halfHeight},
		{X: halfWidth, Y: halfHeight},
		{X: -halfWidth, Y: halfHeight},
	}
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		shape := e.space.AddShape(cp.NewSegment(e.space.StaticBody, a, b, 0))
		shape.SetElasticity(staticBoxElasticity)
		shape.SetFriction(staticBoxFriction)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryObstacle, CategoryChainLink|CategoryObstacle))
	}
}

// AddStaticBox places an immovable box obstacle centered at pos.
func (e *Engine) AddStaticBox(pos game.Vec2, w, h float64) {
	body := e.space.AddBody(cp.NewStaticBody())
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})

	shape := e.space.AddShape(cp.NewBox(body, w, h, 0))
	shape.SetFriction(staticBoxFriction)
	shape.SetElasticity(staticBoxElasticity)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryObstacle, CategoryChainLink|CategoryObstacle))
}

// AddDynamicBox places a free box for chains to knock around.
func (e *Engine) AddDynamicBox(pos game.Vec2, w, h, mass float64) {
	body := e.space.AddBody(cp.NewBody(mass, cp.MomentForBox(mass, w, h)))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})

	shape := e.space.AddShape(cp.NewBox(body, w, h, 0))
	shape.SetFriction(0.5)
	shape.SetElasticity(0.3)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryObstacle, cp.ALL_CATEGORIES))
}
