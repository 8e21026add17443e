package game

import "iter"

// Handle is an opaque engine identifier for one rigid body or joint.
type Handle uint64

// Engine is the boundary toward the physics engine adapter. Adapter calls
// either succeed or are fatal to the host; lookups on stale handles report
// ok=false and callers skip.
type Engine interface {
	CreateLink(spec LinkSpec) Handle
	CreateJoint(spec JointSpec, prev, next Handle) Handle
	Destroy(h Handle)
	ApplyImpulse(h Handle, impulse Vec2)
	LinkPose(h Handle) (pos Vec2, angle float64, ok bool)
}

// SpawnPolicy selects what a primary action does to chains already alive.
type SpawnPolicy uint8

const (
	// SpawnAppend adds a new chain alongside existing ones.
	SpawnAppend SpawnPolicy = iota
	// SpawnReplace despawns every existing chain before building the new one.
	SpawnReplace
)

// Chain owns the engine handles of one spawned chain. Links and joints are
// created together and destroyed together; a partial chain is never visible
// across ticks.
type Chain struct {
	ID     uint64
	Links  []Handle // ordered, index 0 nearest the anchor
	Joints []Handle // len == max(0, len(Links)-1)

	expiry    float64
	hasExpiry bool
}

// Segment is one debug line between two consecutive link positions.
type Segment struct {
	From, To Vec2
}

// Manager owns the ordered set of live chains (oldest first) and mediates
// between input events, the chain builder and the engine adapter. It is
// exclusively owned and ticked by one room loop, so it carries no locking.
type Manager struct {
	engine Engine
	params ChainParams
	policy SpawnPolicy

	// Expiry in simulation seconds per spawned chain; 0 disables.
	lifetime float64

	chains []*Chain
	nextID uint64
}

func NewManager(engine Engine, params ChainParams, policy SpawnPolicy, lifetime float64) *Manager {
	return &Manager{
		engine:   engine,
		params:   params,
		policy:   policy,
		lifetime: lifetime,
		nextID:   1,
	}
}

// Len reports the number of live chains.
func (m *Manager) Len() int {
	return len(m.chains)
}

// Chains returns the live chains oldest first. Callers must not mutate.
func (m *Manager) Chains() []*Chain {
	return m.chains
}

// PrimaryAction fires a chain from anchor toward target. Under SpawnReplace
// all existing chains are despawned first. Returns the new chain.
func (m *Manager) PrimaryAction(anchor, target Vec2) *Chain {
	if m.policy == SpawnReplace {
		for len(m.chains) > 0 {
			m.SecondaryAction()
		}
	}

	bp := BuildChain(anchor, target, m.params)

	c := &Chain{
		ID:     m.nextID,
		Links:  make([]Handle, 0, len(bp.Links)),
		Joints: make([]Handle, 0, len(bp.Joints)),
	}
	m.nextID++

	for _, spec := range bp.Links {
		c.Links = append(c.Links, m.engine.CreateLink(spec))
	}
	for _, spec := range bp.Joints {
		c.Joints = append(c.Joints, m.engine.CreateJoint(spec, c.Links[spec.PrevLink], c.Links[spec.NextLink]))
	}

	m.engine.ApplyImpulse(c.Links[0], bp.Impulse)

	if m.lifetime > 0 {
		c.expiry = m.lifetime
		c.hasExpiry = true
	}

	m.chains = append(m.chains, c)
	return c
}

// SecondaryAction removes the oldest chain. No-op when the registry is empty.
func (m *Manager) SecondaryAction() {
	if len(m.chains) == 0 {
		return
	}
	m.despawn(m.chains[0])
}

// Tick advances expiry countdowns by dt and despawns chains whose countdown
// crossed zero. Chains already removed this frame by an input action are no
// longer in the registry and are never visited.
func (m *Manager) Tick(dt float64) {
	var expired []Handle
	for _, c := range m.chains {
		if !c.hasExpiry {
			continue
		}
		c.expiry -= dt
		if c.expiry <= 0 {
			expired = append(expired, c.Links[0])
		}
	}
	// The countdown lives on the anchor-facing link; locate each expiring
	// chain by that handle. A miss means it was already removed: skip.
	for _, root := range expired {
		if c := m.chainByRoot(root); c != nil {
			m.despawn(c)
		}
	}
}

// Remove despawns the chain with the given id. Removing an id twice, or an
// id that never existed, is a no-op.
func (m *Manager) Remove(id uint64) {
	for _, c := range m.chains {
		if c.ID == id {
			m.despawn(c)
			return
		}
	}
}

// DebugSegments yields the line segments connecting consecutive link
// positions of every live chain, for debug rendering. The sequence is lazy
// and restartable per frame; links with stale handles are skipped.
func (m *Manager) DebugSegments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for _, c := range m.chains {
			prevOK := false
			var prev Vec2
			for _, h := range c.Links {
				pos, _, ok := m.engine.LinkPose(h)
				if !ok {
					prevOK = false
					continue
				}
				if prevOK {
					if !yield(Segment{From: prev, To: pos}) {
						return
					}
				}
				prev, prevOK = pos, true
			}
		}
	}
}

func (m *Manager) chainByRoot(root Handle) *Chain {
	for _, c := range m.chains {
		if len(c.Links) > 0 && c.Links[0] == root {
			return c
		}
	}
	return nil
}

// despawn releases every joint and link handle of c, then drops the
// registry entry. Joints go first so the engine never solves a constraint
// against a destroyed body within the same call.
func (m *Manager) despawn(c *Chain) {
	for _, h := range c.Joints {
		m.engine.Destroy(h)
	}
	for _, h := range c.Links {
		m.engine.Destroy(h)
	}
	for i, live := range m.chains {
		if live == c {
			m.chains = append(m.chains[:i], m.chains[i+1:]...)
			break
		}
	}
}
