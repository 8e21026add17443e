package engine

import (
	"math"
	"testing"

	"chainshot/game"
)

func spawnTestChain(t *testing.T, e *Engine) ([]game.Handle, []game.Handle) {
	t.Helper()
	bp := game.BuildChain(game.Vec2{}, game.Vec2{X: 100}, game.DefaultChainParams())
	links := make([]game.Handle, 0, len(bp.Links))
	for _, spec := range bp.Links {
		links = append(links, e.CreateLink(spec))
	}
	joints := make([]game.Handle, 0, len(bp.Joints))
	for _, spec := range bp.Joints {
		joints = append(joints, e.CreateJoint(spec, links[spec.PrevLink], links[spec.NextLink]))
	}
	return links, joints
}

func TestCreateLinkPlacesBodyAtSpecPose(t *testing.T) {
	e := New()
	spec := game.LinkSpec{
		Position:   game.Vec2{X: 12, Y: -7},
		Angle:      math.Pi / 3,
		HalfLength: 8,
		Thickness:  2,
		Mass:       2,
	}
	h := e.CreateLink(spec)

	pos, angle, ok := e.LinkPose(h)
	if !ok {
		t.Fatalf("fresh handle reported stale")
	}
	if pos != spec.Position {
		t.Fatalf("body at (%f,%f), want (%f,%f)", pos.X, pos.Y, spec.Position.X, spec.Position.Y)
	}
	if angle != spec.Angle {
		t.Fatalf("body angle %f, want %f", angle, spec.Angle)
	}
}

func TestChainSpawnAndTeardown(t *testing.T) {
	e := New()
	links, joints := spawnTestChain(t, e)

	if e.LinkCount() != len(links) || e.JointCount() != len(joints) {
		t.Fatalf("engine tracks %d links / %d joints, want %d / %d",
			e.LinkCount(), e.JointCount(), len(links), len(joints))
	}
	for i, h := range joints {
		if h == 0 {
			t.Fatalf("joint %d creation failed", i)
		}
	}

	for _, h := range joints {
		e.Destroy(h)
	}
	for _, h := range links {
		e.Destroy(h)
	}
	if e.LinkCount() != 0 || e.JointCount() != 0 {
		t.Fatalf("%d links / %d joints still live after teardown", e.LinkCount(), e.JointCount())
	}
}

func TestDestroyIsIdempotentAndOrderIndependent(t *testing.T) {
	e := New()
	links, joints := spawnTestChain(t, e)

	// Destroy bodies before their constraints: attached joints must go with
	// them, and the later explicit joint destroys must be no-ops.
	for _, h := range links {
		e.Destroy(h)
		e.Destroy(h)
	}
	for _, h := range joints {
		e.Destroy(h)
	}
	if e.LinkCount() != 0 || e.JointCount() != 0 {
		t.Fatalf("%d links / %d joints live after reversed teardown", e.LinkCount(), e.JointCount())
	}

	// The space still steps cleanly afterwards.
	for i := 0; i < 10; i++ {
		e.Step(1.0 / 60)
	}
}

func TestImpulseMovesLinkUnderStep(t *testing.T) {
	e := New()
	h := e.CreateLink(game.LinkSpec{
		HalfLength: 8,
		Thickness:  2,
		Mass:       2,
	})
	e.ApplyImpulse(h, game.Vec2{X: 200})

	for i := 0; i < 30; i++ {
		e.Step(1.0 / 60)
	}
	pos, _, ok := e.LinkPose(h)
	if !ok {
		t.Fatalf("link handle went stale")
	}
	if pos.X <= 0 {
		t.Fatalf("link did not move along the impulse: x=%f", pos.X)
	}
}

func TestJointKeepsLinksTogetherUnderStep(t *testing.T) {
	e := New()
	links, _ := spawnTestChain(t, e)

	e.ApplyImpulse(links[0], game.Vec2{X: 200})
	for i := 0; i < 60; i++ {
		e.Step(1.0 / 60)
	}

	// Joined links stay within a few spacings of their neighbors; without
	// joints the impulsed root would fly away from the tail.
	params := game.DefaultChainParams()
	for i := 1; i < len(links); i++ {
		a, _, okA := e.LinkPose(links[i-1])
		b, _, okB := e.LinkPose(links[i])
		if !okA || !okB {
			t.Fatalf("link handle went stale mid-chain")
		}
		if d := b.Sub(a).Length(); d > params.Spacing()*3 {
			t.Fatalf("links %d and %d drifted %f apart", i-1, i, d)
		}
	}
}

func TestStaleHandleLookupsAreSafe(t *testing.T) {
	e := New()
	h := e.CreateLink(game.LinkSpec{HalfLength: 8, Thickness: 2, Mass: 1})
	e.Destroy(h)

	if _, _, ok := e.LinkPose(h); ok {
		t.Fatalf("stale handle reported live")
	}
	e.ApplyImpulse(h, game.Vec2{X: 100}) // no panic
	e.Destroy(h)                         // no panic
}

func TestCreateJointAgainstStaleLinkIsRejected(t *testing.T) {
	e := New()
	a := e.CreateLink(game.LinkSpec{HalfLength: 8, Thickness: 2, Mass: 1})
	b := e.CreateLink(game.LinkSpec{Position: game.Vec2{X: 16}, HalfLength: 8, Thickness: 2, Mass: 1})
	e.Destroy(b)

	if h := e.CreateJoint(game.JointSpec{}, a, b); h != 0 {
		t.Fatalf("joint created against a destroyed link")
	}
	if e.JointCount() != 0 {
		t.Fatalf("joint arena not empty")
	}
}

func TestArenaSetupSteps(t *testing.T) {
	e := New()
	e.SetupArena(320, 240)
	spawnTestChain(t, e)

	for i := 0; i < 120; i++ {
		e.Step(1.0 / 60)
	}
}
