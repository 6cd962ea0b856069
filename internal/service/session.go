package service

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/valentinaoliveira/JogoDama/internal/model"
	"github.com/valentinaoliveira/JogoDama/internal/shell"
	"github.com/valentinaoliveira/JogoDama/internal/ws"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Client is one websocket connection watching a session. Writes are
// serialised because a connection supports a single concurrent writer.
type Client struct {
	ID   string
	conn Conn
	mu   sync.Mutex
	// version of the last game state written to conn
	version uint64
}

func (c *Client) Send(msg ws.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// sendState writes a game state unless the client already has this version or
// a newer one.
func (c *Client) sendState(msg ws.Message, version uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version <= c.version {
		return nil
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		return err
	}
	c.version = version
	return nil
}

// The connections for a specific game
type sessionClients struct {
	clients map[string]*Client // clientID -> client
	mu      sync.RWMutex
}

// Session is a single hot-seat game and the clients rendering it. The game
// itself is not thread-safe; every access goes through mu. version counts the
// changes to the game so clients never go back to an older state.
type Session struct {
	ID      string
	mu      sync.Mutex
	game    *model.Game
	version uint64
	clients *sessionClients
}

func NewSession(id string) *Session {
	return &Session{
		ID:      id,
		game:    model.NewGame(),
		version: 1,
		clients: &sessionClients{
			clients: make(map[string]*Client),
		},
	}
}

func (s *Session) State() model.GameState {
	state, _ := s.snapshot()
	return state
}

func (s *Session) snapshot() (model.GameState, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State(), s.version
}

func (s *Session) LegalOptions(pos model.Position) []model.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LegalOptions(pos)
}

// Move validates and applies a move, then pushes the new state to every client.
func (s *Session) Move(move model.Move) (model.MoveResult, model.GameState, error) {
	s.mu.Lock()
	result, err := s.game.ApplyMove(move.From, move.To)
	if err == nil {
		s.version++
	}
	state, version := s.game.State(), s.version
	s.mu.Unlock()

	if err != nil {
		log.Debug().Str("game", s.ID).Err(err).Msg("move rejected")
		return model.MoveResult{}, state, err
	}
	log.Info().
		Str("game", s.ID).
		Stringer("move", move).
		Bool("capture", result.Captured != nil).
		Bool("promoted", result.Promoted).
		Msg("move applied")
	s.broadcastState(state, version)
	return result, state, nil
}

// Reset starts the game over in place, so selectors bound to it stay valid.
func (s *Session) Reset() model.GameState {
	s.mu.Lock()
	*s.game = *model.NewGame()
	s.version++
	state, version := s.game.State(), s.version
	s.mu.Unlock()

	log.Info().Str("game", s.ID).Msg("game reset")
	s.broadcastState(state, version)
	return state
}

func (s *Session) NewSelector() *shell.Selector {
	s.mu.Lock()
	defer s.mu.Unlock()
	return shell.NewSelector(s.game)
}

// Click runs a click through sel under the session lock and broadcasts when it
// completed a move.
func (s *Session) Click(sel *shell.Selector, pos model.Position) (shell.Outcome, error) {
	s.mu.Lock()
	out, err := sel.Click(pos)
	moved := err == nil && out.Kind == shell.Moved
	if moved {
		s.version++
	}
	state, version := s.game.State(), s.version
	s.mu.Unlock()

	if moved {
		log.Info().Str("game", s.ID).Stringer("move", out.Result.Move).Msg("move applied")
		s.broadcastState(state, version)
	}
	return out, err
}

func (s *Session) Register(conn Conn) *Client {
	client := &Client{ID: uuid.New().String(), conn: conn}

	s.clients.mu.Lock()
	s.clients.clients[client.ID] = client
	s.clients.mu.Unlock()
	log.Debug().Str("game", s.ID).Str("client", client.ID).Msg("client registered")

	// Send initial state; a broadcast that got there first is newer or equal
	state, version := s.snapshot()
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err == nil {
		if err := client.sendState(msg, version); err != nil {
			log.Warn().Str("game", s.ID).Str("client", client.ID).Err(err).Msg("failed to send initial state")
		}
	}
	return client
}

func (s *Session) Unregister(clientID string) {
	s.clients.mu.Lock()
	defer s.clients.mu.Unlock()

	if _, exists := s.clients.clients[clientID]; exists {
		delete(s.clients.clients, clientID)
		log.Debug().Str("game", s.ID).Str("client", clientID).Msg("client unregistered")
	}
}

func (s *Session) ClientCount() int {
	s.clients.mu.RLock()
	defer s.clients.mu.RUnlock()
	return len(s.clients.clients)
}

// closeClients closes and forgets every client connection.
func (s *Session) closeClients() {
	s.clients.mu.Lock()
	defer s.clients.mu.Unlock()
	for id, client := range s.clients.clients {
		if err := client.conn.Close(); err != nil {
			log.Debug().Str("game", s.ID).Str("client", id).Err(err).Msg("close failed")
		}
		delete(s.clients.clients, id)
	}
}

func (s *Session) broadcastState(state model.GameState, version uint64) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Error().Str("game", s.ID).Err(err).Msg("failed to marshal state")
		return
	}

	// Get a snapshot of clients so no lock is held while writing
	s.clients.mu.RLock()
	active := make([]*Client, 0, len(s.clients.clients))
	for _, client := range s.clients.clients {
		active = append(active, client)
	}
	s.clients.mu.RUnlock()

	for _, client := range active {
		if err := client.sendState(msg, version); err != nil {
			log.Warn().Str("game", s.ID).Str("client", client.ID).Err(err).Msg("failed to send state, dropping client")
			s.Unregister(client.ID)
		}
	}
}
