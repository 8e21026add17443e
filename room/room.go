package room

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"chainshot/engine"
	"chainshot/game"
	"chainshot/protocol"
)

// ErrRoomClosed is returned by JoinPlayer when the room stopped before the
// join could complete.
var ErrRoomClosed = errors.New("room closed")

const joinTimeout = 5 * time.Second

// Options selects the chain policy for a room.
type Options struct {
	Policy game.SpawnPolicy
	// ChainLifetime is the expiry countdown in seconds; 0 keeps chains
	// until explicitly removed.
	ChainLifetime float64
	// ArenaHalfWidth/Height bound the physics space.
	ArenaHalfWidth  float64
	ArenaHalfHeight float64
}

func DefaultOptions() Options {
	return Options{
		Policy:          game.SpawnAppend,
		ChainLifetime:   0,
		ArenaHalfWidth:  game.MapWidth / 2,
		ArenaHalfHeight: game.MapHeight / 2,
	}
}

// Room owns one simulation: the players, the physics space and the chain
// registry. Everything is mutated on the Run goroutine only; the outside
// world talks through Inbox. numPlayers mirrors len(clients) atomically so
// HTTP handlers can read the count without touching the map.
type Room struct {
	Inbox          chan any
	tickHz         int
	broadcastEvery int

	state        game.State
	engine       *engine.Engine
	chains       *game.Manager
	clients      map[string]Conn
	latestInputs map[string]game.Input
	nextID       int
	numPlayers   atomic.Int64
	quit         chan struct{}

	Code    string            // room code (e.g. "ABC123")
	OnEmpty func(code string) // called when last player leaves
}

func New(opts Options) *Room {
	broadcastEvery := protocol.SimTickHz / protocol.BroadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}

	eng := engine.New()
	eng.SetupArena(opts.ArenaHalfWidth, opts.ArenaHalfHeight)

	return &Room{
		Inbox:          make(chan any, 256),
		tickHz:         protocol.SimTickHz,
		broadcastEvery: broadcastEvery,
		state: game.State{
			Players: make(map[string]*game.Player),
		},
		engine:       eng,
		chains:       game.NewManager(eng, game.DefaultChainParams(), opts.Policy, opts.ChainLifetime),
		clients:      make(map[string]Conn),
		latestInputs: make(map[string]game.Input),
		nextID:       1,
		quit:         make(chan struct{}),
	}
}

func (r *Room) Stop() {
	close(r.quit)
}

// NumPlayers returns the current number of connected clients. Safe to call
// from any goroutine.
func (r *Room) NumPlayers() int {
	return int(r.numPlayers.Load())
}

// JoinPlayer registers conn with the room and blocks until the Run loop
// replies with the assigned player id. Errors when the room has been
// stopped (e.g. its last player left between lookup and join) instead of
// blocking forever.
func (r *Room) JoinPlayer(conn Conn, name string) (JoinResult, error) {
	reply := make(chan JoinResult, 1)
	select {
	case r.Inbox <- Join{Conn: conn, Name: name, Reply: reply}:
	case <-r.quit:
		return JoinResult{}, ErrRoomClosed
	}
	select {
	case res := <-reply:
		return res, nil
	case <-r.quit:
		return JoinResult{}, ErrRoomClosed
	case <-time.After(joinTimeout):
		return JoinResult{}, ErrRoomClosed
	}
}

func (r *Room) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(r.tickHz))
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			r.tick()
			if r.state.Tick%r.broadcastEvery == 0 {
				r.broadcastState()
			}
		}
	}
}

// tick runs one simulation frame in fixed order: input actions first, then
// the expiry sweep, then the physics step. A chain removed by input this
// frame is gone from the registry before the sweep runs, so handles are
// never freed twice.
func (r *Room) tick() {
	dt := 1.0 / float64(r.tickHz)

	for id, p := range r.state.Players {
		inp := r.latestInputs[id]
		if p.PrimaryEdge(inp.Primary) && inp.HasTarget {
			r.chains.PrimaryAction(p.Pos(), inp.Target())
		}
		if p.SecondaryEdge(inp.Secondary) {
			r.chains.SecondaryAction()
		}
	}

	game.Step(&r.state, r.latestInputs)
	r.chains.Tick(dt)
	r.engine.Step(dt)
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		idNum := r.nextID
		playerID := fmt.Sprintf("p%d", idNum)
		r.nextID++
		r.clients[playerID] = c.Conn
		r.numPlayers.Store(int64(len(r.clients)))
		r.latestInputs[playerID] = game.Input{}
		if _, ok := r.state.Players[playerID]; !ok {
			spawn := float64(100 * idNum)
			name := c.Name
			if name == "" {
				name = fmt.Sprintf("Player %d", idNum)
			}
			r.state.Players[playerID] = &game.Player{ID: playerID, Name: name, X: spawn, Y: spawn}
		}
		c.Reply <- JoinResult{PlayerID: playerID}
	case Input:
		if _, ok := r.clients[c.PlayerID]; !ok {
			return
		}
		r.latestInputs[c.PlayerID] = c.Input
	case Leave:
		r.handleLeave(c.PlayerID)
	}
}

func (r *Room) handleLeave(playerID string) {
	c, ok := r.clients[playerID]
	delete(r.latestInputs, playerID)
	delete(r.state.Players, playerID)
	if ok {
		r.sendStateTo(c)
		_ = c.Close()
		delete(r.clients, playerID)
		r.numPlayers.Store(int64(len(r.clients)))
	}
	if len(r.clients) == 0 && r.OnEmpty != nil && r.Code != "" {
		r.OnEmpty(r.Code)
	}
}

func (r *Room) removePlayer(playerID string) {
	if c, ok := r.clients[playerID]; ok {
		_ = c.Close()
	}
	delete(r.clients, playerID)
	r.numPlayers.Store(int64(len(r.clients)))
	delete(r.latestInputs, playerID)
	delete(r.state.Players, playerID)
}

func (r *Room) broadcastState() {
	snapshot := r.buildSnapshot()
	b, err := protocol.Encode(protocol.MsgState, snapshot)
	if err != nil {
		return
	}

	var failed []string
	for id, c := range r.clients {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.removePlayer(id)
	}
}

func (r *Room) sendStateTo(c Conn) {
	snapshot := r.buildSnapshot()
	b, err := protocol.Encode(protocol.MsgState, snapshot)
	if err != nil {
		return
	}
	_ = c.Send(b)
}

func (r *Room) buildSnapshot() protocol.State {
	snapshot := protocol.State{
		Tick:    r.state.Tick,
		Players: make([]protocol.PlayerSnapshot, 0, len(r.state.Players)),
		Chains:  make([]protocol.ChainSnapshot, 0, r.chains.Len()),
	}
	for id, p := range r.state.Players {
		snapshot.Players = append(snapshot.Players, protocol.PlayerSnapshot{
			ID:   id,
			Name: p.Name,
			X:    p.X,
			Y:    p.Y,
		})
	}
	for _, c := range r.chains.Chains() {
		cs := protocol.ChainSnapshot{
			ID:    c.ID,
			Links: make([]protocol.LinkSnapshot, 0, len(c.Links)),
		}
		for _, h := range c.Links {
			pos, angle, ok := r.engine.LinkPose(h)
			if !ok {
				continue
			}
			cs.Links = append(cs.Links, protocol.LinkSnapshot{X: pos.X, Y: pos.Y, A: angle})
		}
		snapshot.Chains = append(snapshot.Chains, cs)
	}
	for seg := range r.chains.DebugSegments() {
		snapshot.Segments = append(snapshot.Segments, protocol.SegmentSnapshot{
			X1: seg.From.X, Y1: seg.From.Y,
			X2: seg.To.X, Y2: seg.To.Y,
		})
	}
	return snapshot
}
