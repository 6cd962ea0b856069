package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/valentinaoliveira/JogoDama/internal/model"
	"github.com/valentinaoliveira/JogoDama/internal/shell"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if _, err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) GetSession(gameID string) (*Session, error) {
	return gs.gameManager.GetSession(gameID)
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.RemoveGame(gameID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return session.State(), nil
}

func (gs *GameService) LegalOptions(gameID string, pos model.Position) ([]model.Position, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return nil, err
	}
	if !pos.InBounds() {
		return nil, &model.MoveError{Move: model.Move{From: pos, To: pos}, Err: model.ErrOutOfBounds}
	}
	return session.LegalOptions(pos), nil
}

func (gs *GameService) HandleMove(gameID string, move model.Move) (model.MoveResult, model.GameState, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return model.MoveResult{}, model.GameState{}, err
	}
	return session.Move(move)
}

func (gs *GameService) HandleClick(gameID string, sel *shell.Selector, pos model.Position) (shell.Outcome, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return shell.Outcome{}, err
	}
	return session.Click(sel, pos)
}

func (gs *GameService) ResetGame(gameID string) (model.GameState, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return session.Reset(), nil
}

func (gs *GameService) RegisterConnection(gameID string, conn Conn) (*Client, *shell.Selector, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return nil, nil, err
	}
	return session.Register(conn), session.NewSelector(), nil
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return
	}
	session.Unregister(clientID)
}
