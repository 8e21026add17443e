package protocol

type Welcome struct {
	PlayerID string `json:"playerId"`
	TickHz   int    `json:"tickHz"`
}

type State struct {
	Tick     int               `json:"tick"`
	Players  []PlayerSnapshot  `json:"players"`
	Chains   []ChainSnapshot   `json:"chains,omitempty"`
	Segments []SegmentSnapshot `json:"segments,omitempty"` // debug lines between links
}

type PlayerSnapshot struct {
	ID   string  `json:"id"`
	Name string  `json:"name,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type ChainSnapshot struct {
	ID    uint64         `json:"id"`
	Links []LinkSnapshot `json:"links"`
}

// LinkSnapshot is one link's live pose, ordered root (anchor end) first.
type LinkSnapshot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	A float64 `json:"a,omitempty"`
}

// SegmentSnapshot is one debug line between two consecutive link centers.
type SegmentSnapshot struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}
