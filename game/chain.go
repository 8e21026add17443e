package game

import "math"

// ChainParams bundles the geometry and physical tuning for one chain spawn.
type ChainParams struct {
	LinkSize        float64 // nominal link size; packing distance derives from it
	Thickness       float64 // capsule radius
	Mass            float64
	LinearDamping   float64
	AngularDamping  float64
	Restitution     float64
	Friction        float64
	JointCompliance float64
	JointDamping    float64 // relative angular damping between joined links
	ImpulseStrength float64
}

// HalfLength is the capsule half-length for a link of this size.
func (p ChainParams) HalfLength() float64 {
	return p.LinkSize * 0.4
}

// Spacing is the center-to-center distance between consecutive links.
// This, not LinkSize, governs packing: it comes from the collider geometry
// (half-length × 2) so links meet end-to-end with no overlap and no gap.
func (p ChainParams) Spacing() float64 {
	return p.HalfLength() * 2
}

// LinkSpec describes one rigid segment of a chain before it exists in the
// engine. Index 0 is the anchor-facing end.
type LinkSpec struct {
	Index          int
	Position       Vec2
	Angle          float64
	HalfLength     float64
	Thickness      float64
	Mass           float64
	LinearDamping  float64
	AngularDamping float64
	Restitution    float64
	Friction       float64
}

// JointSpec describes a hinge between two adjacent links, referenced by
// their indices into Blueprint.Links. Anchors are local offsets at the
// opposing ends of each link's long axis so the chain connects end-to-end.
type JointSpec struct {
	PrevLink       int
	NextLink       int
	AnchorA        Vec2
	AnchorB        Vec2
	Compliance     float64
	AngularDamping float64
}

// Blueprint is the full construction plan for one chain: count, placement
// and the joints binding consecutive links into a simple path.
type Blueprint struct {
	Links     []LinkSpec
	Joints    []JointSpec
	Direction Vec2 // unit vector from anchor toward target; zero when degenerate
	Impulse   Vec2 // initial impulse for link 0
}

// BuildChain computes the discretization of a chain from anchor toward
// target: how many links to spawn, where, at what orientation, and the
// joints connecting them. Pure; it touches neither the registry nor the
// engine.
//
// Degenerate input (anchor within DegenerateEpsilon of target) yields a
// single link at the anchor with a zero orientation rather than an error.
func BuildChain(anchor, target Vec2, params ChainParams) Blueprint {
	delta := target.Sub(anchor)
	distance := delta.Length()
	spacing := params.Spacing()

	var dir Vec2
	var angle float64
	count := 1
	if distance > DegenerateEpsilon {
		dir = delta.Scale(1 / distance)
		angle = dir.Angle()
		if n := int(math.Floor(distance / spacing)); n > 1 {
			count = n
		}
	}

	bp := Blueprint{
		Links:     make([]LinkSpec, 0, count),
		Joints:    make([]JointSpec, 0, count-1),
		Direction: dir,
		Impulse:   dir.Scale(params.ImpulseStrength),
	}

	half := params.HalfLength()
	for i := 0; i < count; i++ {
		bp.Links = append(bp.Links, LinkSpec{
			Index:          i,
			Position:       anchor.Add(dir.Scale(spacing * float64(i))),
			Angle:          angle,
			HalfLength:     half,
			Thickness:      params.Thickness,
			Mass:           params.Mass,
			LinearDamping:  params.LinearDamping,
			AngularDamping: params.AngularDamping,
			Restitution:    params.Restitution,
			Friction:       params.Friction,
		})
		if i == 0 {
			continue
		}
		bp.Joints = append(bp.Joints, JointSpec{
			PrevLink:       i - 1,
			NextLink:       i,
			AnchorA:        Vec2{X: half},  // far end of the previous link
			AnchorB:        Vec2{X: -half}, // near end of the current link
			Compliance:     params.JointCompliance,
			AngularDamping: params.JointDamping,
		})
	}
	return bp
}
