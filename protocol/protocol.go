// Package protocol defines the websocket wire format shared by the server
// and the browser client. Every frame is a JSON Envelope whose "t" field
// names one of the Msg* types below.
package protocol

import (
	"encoding/json"
)

// Message types. Hello and input travel client to server; welcome and
// state travel server to client.
const (
	MsgHello   = "hello"   // first frame after connect, carries the player name
	MsgInput   = "input"   // movement axes, boost, and the chain buttons
	MsgWelcome = "welcome" // join ack with the assigned player id
	MsgState   = "state"   // world snapshot: players, chains, debug segments
)

// Tick cadence. The room simulates at SimTickHz and snapshots every other
// frame; clients are expected to sample input at the simulation rate.
const (
	SimTickHz     = 40
	ClientInputHz = 40
	BroadcastHz   = 20
)

// Envelope wraps every frame. P stays raw until the handler knows, from T,
// which payload type to decode.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}
