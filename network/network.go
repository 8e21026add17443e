package network

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chainshot/game"
	"chainshot/protocol"
	"chainshot/room"
)

const (
	readLimit     = 1 << 20 // 1MB
	readDeadline  = 60 * time.Second
	writeDeadline = 10 * time.Second
	pingEvery     = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server bridges websocket clients to rooms.
type Server struct {
	rooms *room.Manager
}

func NewServer(rooms *room.Manager) *Server {
	return &Server{rooms: rooms}
}

// Handler returns the HTTP mux: /ws joins a room, /rooms lists them,
// /create makes a new one.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.wsHandler)
	mux.HandleFunc("/rooms", s.listHandler)
	mux.HandleFunc("/create", s.createHandler)
	return mux
}

func (s *Server) listHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.rooms.ListRooms())
}

func (s *Server) createHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(room.RoomInfo{Code: s.rooms.CreateRoom()})
}

// wsClient adapts a websocket connection to room.Conn. Send may be called
// from the room goroutine while the ping loop writes too, hence the mutex.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (c *wsClient) Close() error {
	return c.conn.Close()
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	rm := s.rooms.GetOrCreateRoom(code)
	if rm == nil {
		http.Error(w, "missing room code", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	client := &wsClient{conn: conn}
	defer conn.Close()

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				client.mu.Lock()
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				err := conn.WriteMessage(websocket.PingMessage, nil)
				client.mu.Unlock()
				if err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	playerID, err := s.handshake(rm, client, conn)
	if err != nil {
		log.Println("handshake:", err)
		return
	}
	defer func() {
		rm.Inbox <- room.Leave{PlayerID: playerID}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			continue
		}
		if env.T != protocol.MsgInput {
			continue
		}
		in, err := protocol.DecodePayload[protocol.Input](env)
		if err != nil {
			continue
		}
		rm.Inbox <- room.Input{PlayerID: playerID, Input: toGameInput(in)}
	}
}

func toGameInput(in protocol.Input) game.Input {
	return game.Input{
		Ax:        in.Ax,
		Ay:        in.Ay,
		Boost:     in.Boost,
		Primary:   in.Primary,
		Secondary: in.Secondary,
		TargetX:   in.TargetX,
		TargetY:   in.TargetY,
		HasTarget: in.HasTarget,
	}
}

// handshake waits for the hello, joins the room and sends the welcome.
func (s *Server) handshake(rm *room.Room, client *wsClient, conn *websocket.Conn) (string, error) {
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", err
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		return "", err
	}
	if env.T != protocol.MsgHello {
		return "", fmt.Errorf("expected %q, got %q", protocol.MsgHello, env.T)
	}
	hello, err := protocol.DecodePayload[protocol.Hello](env)
	if err != nil {
		return "", err
	}

	res, err := rm.JoinPlayer(client, hello.Name)
	if err != nil {
		return "", err
	}

	welcome, err := protocol.Encode(protocol.MsgWelcome, protocol.Welcome{
		PlayerID: res.PlayerID,
		TickHz:   protocol.SimTickHz,
	})
	if err != nil {
		return "", err
	}
	return res.PlayerID, client.Send(welcome)
}
