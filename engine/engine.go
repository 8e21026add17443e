// Package engine adapts the Chipmunk2D port (jakecoffman/cp) to the chain
// core: opaque handles in, direct ordered space mutations out.
package engine

import (
	"github.com/jakecoffman/cp/v2"

	"chainshot/game"
)

// Collision categories. Links collide with each other and with obstacles;
// adjacent links are excluded pairwise on their joints instead of by layer.
const (
	CategoryChainLink uint = 1 << 0
	CategoryObstacle  uint = 1 << 1
)

const (
	gravityY           = -100.0
	solverIterations   = 30
	sleepTimeThreshold = 0.5
)

type linkRec struct {
	body  *cp.Body
	shape *cp.Shape
}

type jointRec struct {
	constraint *cp.Constraint
	prev, next game.Handle
}

// Engine owns a cp.Space plus handle-indexed arenas for link bodies and
// joint constraints. It is driven by one room loop; calls apply immediately,
// in order, within the tick.
type Engine struct {
	space  *cp.Space
	links  map[game.Handle]*linkRec
	joints map[game.Handle]*jointRec
	nextID game.Handle

	stepDt float64 // current step size, read by joint pre-solve hooks
}

func New() *Engine {
	space := cp.NewSpace()
	space.Iterations = solverIterations
	space.SetGravity(cp.Vector{Y: gravityY})
	space.SleepTimeThreshold = sleepTimeThreshold

	return &Engine{
		space:  space,
		links:  make(map[game.Handle]*linkRec),
		joints: make(map[game.Handle]*jointRec),
		nextID: 1,
	}
}

// Step advances the simulation by dt seconds.
func (e *Engine) Step(dt float64) {
	e.stepDt = dt
	e.space.Step(dt)
}

// CreateLink spawns one capsule link: a dynamic body with a segment collider
// along its local X axis and per-body linear/angular damping.
func (e *Engine) CreateLink(spec game.LinkSpec) game.Handle {
	length := spec.HalfLength * 2
	body := e.space.AddBody(cp.NewBody(spec.Mass, cp.MomentForBox(spec.Mass, length, spec.Thickness*2)))
	body.SetPosition(cp.Vector{X: spec.Position.X, Y: spec.Position.Y})
	body.SetAngle(spec.Angle)

	linDamp := spec.LinearDamping
	angDamp := spec.AngularDamping
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(b, gravity, damping, dt)
		b.SetVelocityVector(b.Velocity().Mult(1 / (1 + linDamp*dt)))
		b.SetAngularVelocity(b.AngularVelocity() / (1 + angDamp*dt))
	})

	shape := e.space.AddShape(cp.NewSegment(body,
		cp.Vector{X: -spec.HalfLength}, cp.Vector{X: spec.HalfLength}, spec.Thickness))
	shape.SetFriction(spec.Friction)
	shape.SetElasticity(spec.Restitution)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryChainLink, CategoryChainLink|CategoryObstacle))

	h := e.nextID
	e.nextID++
	e.links[h] = &linkRec{body: body, shape: shape}
	return h
}

// CreateJoint hinges two links at the opposing ends of their long axes.
// Compliance maps onto the constraint error bias (fraction of joint error
// left uncorrected per second); adjacent links do not collide.
func (e *Engine) CreateJoint(spec game.JointSpec, prev, next game.Handle) game.Handle {
	a, okA := e.links[prev]
	b, okB := e.links[next]
	if !okA || !okB {
		return 0
	}

	joint := cp.NewPivotJoint2(a.body, b.body,
		cp.Vector{X: spec.AnchorA.X, Y: spec.AnchorA.Y},
		cp.Vector{X: spec.AnchorB.X, Y: spec.AnchorB.Y})
	joint.SetCollideBodies(false)
	if spec.Compliance > 0 && spec.Compliance < 1 {
		joint.SetErrorBias(spec.Compliance)
	}
	if spec.AngularDamping > 0 {
		bodyA, bodyB := a.body, b.body
		damp := spec.AngularDamping
		joint.PreSolve = func(c *cp.Constraint, space *cp.Space) {
			dt := e.stepDt
			rel := bodyB.AngularVelocity() - bodyA.AngularVelocity()
			adjust := rel * damp * dt * 0.5
			bodyA.SetAngularVelocity(bodyA.AngularVelocity() + adjust)
			bodyB.SetAngularVelocity(bodyB.AngularVelocity() - adjust)
		}
	}
	e.space.AddConstraint(joint)

	h := e.nextID
	e.nextID++
	e.joints[h] = &jointRec{constraint: joint, prev: prev, next: next}
	return h
}

// Destroy releases the body or constraint behind h. Unknown or stale handles
// are no-ops. Destroying a link first removes any joints still attached so
// the space never solves a constraint against a removed body.
func (e *Engine) Destroy(h game.Handle) {
	if j, ok := e.joints[h]; ok {
		e.space.RemoveConstraint(j.constraint)
		delete(e.joints, h)
		return
	}
	l, ok := e.links[h]
	if !ok {
		return
	}
	for jh, j := range e.joints {
		if j.prev == h || j.next == h {
			e.space.RemoveConstraint(j.constraint)
			delete(e.joints, jh)
		}
	}
	e.space.RemoveShape(l.shape)
	e.space.RemoveBody(l.body)
	delete(e.links, h)
}

// ApplyImpulse applies a world-space impulse at the link's center.
func (e *Engine) ApplyImpulse(h game.Handle, impulse game.Vec2) {
	l, ok := e.links[h]
	if !ok {
		return
	}
	l.body.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse.X, Y: impulse.Y}, l.body.Position())
}

// LinkPose reads a link's current position and angle. ok is false for stale
// handles so callers can skip.
func (e *Engine) LinkPose(h game.Handle) (game.Vec2, float64, bool) {
	l, ok := e.links[h]
	if !ok {
		return game.Vec2{}, 0, false
	}
	p := l.body.Position()
	return game.Vec2{X: p.X, Y: p.Y}, l.body.Angle(), true
}

// LinkCount reports live link bodies (joints excluded).
func (e *Engine) LinkCount() int {
	return len(e.links)
}

// JointCount reports live joint constraints.
func (e *Engine) JointCount() int {
	return len(e.joints)
}
