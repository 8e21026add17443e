package game

const (
	MapWidth  = 2000.0
	MapHeight = 2000.0

	PlayerRadius     = 25.0
	Deadzone         = 0.08
	AccelPerTick     = 0.7 // base (normal) acceleration
	BoostMult        = 2.5 // sprint = this × base
	PlayerDampingDiv = 1.1
	MaxSpeedNormal   = 9.0  // cap when not sprinting
	MaxSpeedSprint   = 22.0 // fast enough to reposition before firing again

	LinkSize           = 20.0               // nominal link size (visual/config)
	LinkHalfLength     = LinkSize * 0.4     // capsule half-length
	LinkSpacing        = LinkHalfLength * 2 // center-to-center packing distance
	LinkThickness      = 2.0                // capsule radius
	LinkMass           = 2.0
	LinkLinearDamping  = 0.2
	LinkAngularDamping = 0.3
	LinkRestitution    = 0.1
	LinkFriction       = 0.7

	// JointCompliance is the fraction of joint error left uncorrected per
	// second; lower = stiffer.
	JointCompliance     = 0.002
	JointAngularDamping = 0.1

	ChainImpulseStrength = 200.0

	// DegenerateEpsilon is the anchor/target distance under which a spawn
	// degrades to a single link instead of normalizing a zero vector.
	DegenerateEpsilon = 1e-9
)

// DefaultChainParams is the tuning used by the demo rooms. Tests build their
// own params when a property needs exact numbers.
func DefaultChainParams() ChainParams {
	return ChainParams{
		LinkSize:        LinkSize,
		Thickness:       LinkThickness,
		Mass:            LinkMass,
		LinearDamping:   LinkLinearDamping,
		AngularDamping:  LinkAngularDamping,
		Restitution:     LinkRestitution,
		Friction:        LinkFriction,
		JointCompliance: JointCompliance,
		JointDamping:    JointAngularDamping,
		ImpulseStrength: ChainImpulseStrength,
	}
}
