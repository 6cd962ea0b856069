package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"

	"github.com/valentinaoliveira/JogoDama/internal/middleware"
	"github.com/valentinaoliveira/JogoDama/internal/model"
	"github.com/valentinaoliveira/JogoDama/internal/service"
	"github.com/valentinaoliveira/JogoDama/internal/shell"
	"github.com/valentinaoliveira/JogoDama/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals(middleware.LocalGameID).(string)

	// Register this connection with the game
	client, sel, err := wsc.gameService.RegisterConnection(gameID, c)
	if err != nil {
		log.Warn().Str("game", gameID).Err(err).Msg("failed to register connection")
		c.Close()
		return
	}
	logger := log.With().Str("game", gameID).Str("client", client.ID).Logger()
	logger.Debug().Msg("websocket connected")

	// Start message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug().Err(err).Msg("read error")
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Debug().Err(err).Msg("parse error")
			wsc.sendError(client, fmt.Errorf("invalid message: %w", err))
			continue
		}

		if err := wsc.handleMessage(gameID, client, sel, msg); err != nil {
			logger.Debug().Err(err).Str("type", string(msg.Type)).Msg("handle error")
			wsc.sendError(client, err)
		}
	}

	// Clean up when connection closes
	wsc.gameService.UnregisterConnection(gameID, client.ID)
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID string, client *service.Client, sel *shell.Selector, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.Move
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		// the new state reaches every client through the session broadcast
		_, _, err := wsc.gameService.HandleMove(gameID, move)
		return err

	case ws.MessageTypeClick:
		var click ws.ClickPayload
		if err := json.Unmarshal(msg.Payload, &click); err != nil {
			return err
		}
		out, err := wsc.gameService.HandleClick(gameID, sel, click.Position)
		if err != nil {
			return err
		}
		return wsc.send(client, ws.MessageTypeOptions, out)

	case ws.MessageTypeReset:
		sel.Reset()
		_, err := wsc.gameService.ResetGame(gameID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) send(client *service.Client, t ws.MessageType, payload any) error {
	msg, err := ws.NewMessage(t, payload)
	if err != nil {
		return err
	}
	return client.Send(msg)
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(client *service.Client, err error) {
	payload := ws.ErrorPayload{Error: err.Error(), Kind: model.ErrorKind(err)}
	if sendErr := wsc.send(client, ws.MessageTypeError, payload); sendErr != nil {
		log.Debug().Err(sendErr).Str("client", client.ID).Msg("failed to send error")
	}
}
