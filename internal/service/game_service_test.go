package service

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valentinaoliveira/JogoDama/internal/model"
	"github.com/valentinaoliveira/JogoDama/internal/shell"
	"github.com/valentinaoliveira/JogoDama/internal/ws"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	failing  bool
	closed   bool
}

func (c *fakeConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) last(t *testing.T) (ws.MessageType, model.GameState) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.messages)
	msg := c.messages[len(c.messages)-1]
	var state model.GameState
	require.NoError(t, json.Unmarshal(msg.Payload, &state))
	return msg.Type, state
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// stallingConn holds its first write after arm until release is closed.
type stallingConn struct {
	fakeConn
	armed   atomic.Bool
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newStallingConn() *stallingConn {
	return &stallingConn{entered: make(chan struct{}), release: make(chan struct{})}
}

func (c *stallingConn) WriteJSON(v any) error {
	if c.armed.Load() {
		c.once.Do(func() {
			close(c.entered)
			<-c.release
		})
	}
	return c.fakeConn.WriteJSON(v)
}

func pos(row, col int) model.Position {
	return model.Position{Row: row, Col: col}
}

func newService(t *testing.T) (*GameService, string) {
	t.Helper()
	gs := NewGameService(NewGameManager())
	gameID, err := gs.CreateGame()
	require.NoError(t, err)
	require.NotEmpty(t, gameID)
	return gs, gameID
}

func TestCreateAndGetGame(t *testing.T) {
	gs, gameID := newService(t)

	state, err := gs.GetGameState(gameID)
	require.NoError(t, err)
	assert.Equal(t, model.Player1, state.ToMove)
	assert.Equal(t, model.NewBoard(), state.Board)

	_, err = gs.GetGameState("missing")
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestGameManagerRejectsDuplicateID(t *testing.T) {
	gm := NewGameManager()
	_, err := gm.CreateGame("g1")
	require.NoError(t, err)
	_, err = gm.CreateGame("g1")
	require.ErrorIs(t, err, ErrGameExists)
	assert.Equal(t, 1, gm.Count())
}

func TestLegalOptions(t *testing.T) {
	gs, gameID := newService(t)

	options, err := gs.LegalOptions(gameID, pos(2, 1))
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.Position{pos(3, 0), pos(3, 2)}, options)

	_, err = gs.LegalOptions(gameID, pos(9, 1))
	require.ErrorIs(t, err, model.ErrOutOfBounds)
}

func TestHandleMoveBroadcasts(t *testing.T) {
	gs, gameID := newService(t)
	a, b := &fakeConn{}, &fakeConn{}
	_, _, err := gs.RegisterConnection(gameID, a)
	require.NoError(t, err)
	_, _, err = gs.RegisterConnection(gameID, b)
	require.NoError(t, err)
	require.Equal(t, 1, a.count(), "initial state on register")

	result, state, err := gs.HandleMove(gameID, model.Move{From: pos(2, 1), To: pos(3, 2)})
	require.NoError(t, err)
	assert.Equal(t, model.Player1Man, result.Piece)
	assert.Equal(t, model.Player2, state.ToMove)

	for _, conn := range []*fakeConn{a, b} {
		msgType, got := conn.last(t)
		assert.Equal(t, ws.MessageTypeGameState, msgType)
		assert.Equal(t, model.Player2, got.ToMove)
		assert.Equal(t, model.Player1Man, got.Board[3][2])
	}
}

func TestHandleMoveRejectedDoesNotBroadcast(t *testing.T) {
	gs, gameID := newService(t)
	conn := &fakeConn{}
	_, _, err := gs.RegisterConnection(gameID, conn)
	require.NoError(t, err)

	_, state, err := gs.HandleMove(gameID, model.Move{From: pos(5, 0), To: pos(4, 1)})
	require.ErrorIs(t, err, model.ErrWrongPlayerTurn)
	assert.Equal(t, model.Player1, state.ToMove)
	assert.Equal(t, 1, conn.count())

	_, _, err = gs.HandleMove("missing", model.Move{})
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestFailingClientIsDropped(t *testing.T) {
	gs, gameID := newService(t)
	good, bad := &fakeConn{}, &fakeConn{}
	_, _, err := gs.RegisterConnection(gameID, good)
	require.NoError(t, err)
	_, _, err = gs.RegisterConnection(gameID, bad)
	require.NoError(t, err)

	bad.mu.Lock()
	bad.failing = true
	bad.mu.Unlock()

	_, _, err = gs.HandleMove(gameID, model.Move{From: pos(2, 1), To: pos(3, 2)})
	require.NoError(t, err)

	session, err := gs.GetSession(gameID)
	require.NoError(t, err)
	assert.Equal(t, 1, session.ClientCount())
	assert.Equal(t, 2, good.count())
}

func TestHandleClick(t *testing.T) {
	gs, gameID := newService(t)
	conn := &fakeConn{}
	_, sel, err := gs.RegisterConnection(gameID, conn)
	require.NoError(t, err)

	out, err := gs.HandleClick(gameID, sel, pos(2, 1))
	require.NoError(t, err)
	assert.Equal(t, shell.Selected, out.Kind)
	assert.Equal(t, 1, conn.count())

	out, err = gs.HandleClick(gameID, sel, pos(3, 0))
	require.NoError(t, err)
	assert.Equal(t, shell.Moved, out.Kind)
	assert.Equal(t, 2, conn.count())

	_, state := conn.last(t)
	assert.Equal(t, model.Player1Man, state.Board[3][0])
}

func TestResetKeepsSelectorsBound(t *testing.T) {
	gs, gameID := newService(t)
	_, sel, err := gs.RegisterConnection(gameID, &fakeConn{})
	require.NoError(t, err)

	_, _, err = gs.HandleMove(gameID, model.Move{From: pos(2, 1), To: pos(3, 2)})
	require.NoError(t, err)

	state, err := gs.ResetGame(gameID)
	require.NoError(t, err)
	assert.Equal(t, model.Player1, state.ToMove)
	assert.Equal(t, model.NewBoard(), state.Board)

	out, err := gs.HandleClick(gameID, sel, pos(2, 1))
	require.NoError(t, err)
	assert.Equal(t, shell.Selected, out.Kind)
}

func TestUnregisterAndDelete(t *testing.T) {
	gs, gameID := newService(t)
	a, b := &fakeConn{}, &fakeConn{}
	client, _, err := gs.RegisterConnection(gameID, a)
	require.NoError(t, err)
	_, _, err = gs.RegisterConnection(gameID, b)
	require.NoError(t, err)

	gs.UnregisterConnection(gameID, client.ID)
	session, err := gs.GetSession(gameID)
	require.NoError(t, err)
	assert.Equal(t, 1, session.ClientCount())

	require.NoError(t, gs.DeleteGame(gameID))
	assert.True(t, b.closed)
	require.ErrorIs(t, gs.DeleteGame(gameID), ErrGameNotFound)

	_, _, err = gs.RegisterConnection(gameID, &fakeConn{})
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestStaleStateIsNotDelivered(t *testing.T) {
	s := NewSession("g1")
	conn := &fakeConn{}
	s.Register(conn)

	older, olderVersion := s.snapshot()
	_, newer, err := s.Move(model.Move{From: pos(2, 1), To: pos(3, 2)})
	require.NoError(t, err)
	require.Equal(t, 2, conn.count())

	s.broadcastState(older, olderVersion)
	assert.Equal(t, 2, conn.count())
	_, got := conn.last(t)
	assert.Equal(t, newer.ToMove, got.ToMove)
	assert.Equal(t, newer.Board, got.Board)
}

func TestConcurrentMovesLeaveClientsOnLatestState(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		s := NewSession("g1")
		slow, watcher := newStallingConn(), &fakeConn{}
		s.Register(slow)
		s.Register(watcher)
		slow.armed.Store(true)

		var wg sync.WaitGroup
		firstDone := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			defer close(firstDone)
			_, _, _ = s.Move(model.Move{From: pos(2, 1), To: pos(3, 2)})
		}()
		select {
		case <-slow.entered:
		case <-firstDone:
		}
		go func() {
			defer wg.Done()
			_, _, _ = s.Move(model.Move{From: pos(5, 0), To: pos(4, 1)})
		}()
		close(slow.release)
		wg.Wait()

		want := s.State()
		for _, conn := range []*fakeConn{&slow.fakeConn, watcher} {
			_, got := conn.last(t)
			require.Equal(t, want.ToMove, got.ToMove, "trial %d", trial)
			require.Equal(t, want.Board, got.Board, "trial %d", trial)
		}
	}
}
