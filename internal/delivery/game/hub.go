package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"goban/internal/domain/game"
)

const writeWait = 10 * time.Second

const (
	MessageState  = "state"
	MessageResult = "result"
	MessageError  = "error"
)

// Message is everything the server sends over a game's websocket.
type Message struct {
	Type   string       `json:"type"`
	State  *game.State  `json:"state,omitempty"`
	Result *game.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// client serialises writes; a websocket connection allows one writer at a
// time.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// Hub tracks the open connections of every game.
type Hub struct {
	log   *zap.SugaredLogger
	mu    sync.RWMutex
	games map[uuid.UUID]map[*client]struct{}
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		log:   log,
		games: make(map[uuid.UUID]map[*client]struct{}),
	}
}

func (h *Hub) add(gameID uuid.UUID, conn *websocket.Conn) *client {
	c := &client{conn: conn}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.games[gameID] == nil {
		h.games[gameID] = make(map[*client]struct{})
	}
	h.games[gameID][c] = struct{}{}
	return c
}

func (h *Hub) remove(gameID uuid.UUID, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.games[gameID], c)
	if len(h.games[gameID]) == 0 {
		delete(h.games, gameID)
	}
}

func (h *Hub) count(gameID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}

func (h *Hub) clients(gameID uuid.UUID) []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*client, 0, len(h.games[gameID]))
	for c := range h.games[gameID] {
		out = append(out, c)
	}
	return out
}

func (h *Hub) broadcast(gameID uuid.UUID, msg Message) {
	for _, c := range h.clients(gameID) {
		if err := c.send(msg); err != nil {
			h.log.Warnw("failed to write to client", "game_id", gameID, "error", err)
			_ = c.conn.Close()
		}
	}
}

// Publish sends the new state to every connection of the game, followed by
// the result if the game is over.
func (h *Hub) Publish(gameID uuid.UUID, state game.State, result *game.Result) {
	h.broadcast(gameID, Message{Type: MessageState, State: &state})
	if result != nil {
		h.broadcast(gameID, Message{Type: MessageResult, Result: result})
	}
}
