package protocol

// Messages coming in from the client.

type Hello struct {
	V    int    `json:"v"`              // version
	Name string `json:"name,omitempty"` // optional name
}

type Input struct {
	Ax    float64 `json:"ax"`              // -1..1 movement X
	Ay    float64 `json:"ay"`              // -1..1 movement Y
	Boost bool    `json:"boost,omitempty"` // sprint

	Primary   bool `json:"primary,omitempty"`   // fire chain toward target
	Secondary bool `json:"secondary,omitempty"` // remove oldest chain

	// Cursor projected into world space by the client camera. HasTarget is
	// false when no valid cursor position exists this frame; primary presses
	// without a target are skipped server-side.
	TargetX   float64 `json:"tx,omitempty"`
	TargetY   float64 `json:"ty,omitempty"`
	HasTarget bool    `json:"hasTarget,omitempty"`
}
