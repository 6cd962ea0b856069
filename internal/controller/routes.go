package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/valentinaoliveira/JogoDama/internal/middleware"
	"github.com/valentinaoliveira/JogoDama/internal/service"
)

// RegisterRoutes mounts the REST and websocket endpoints on app.
func RegisterRoutes(app *fiber.App, gameService *service.GameService, wsConfig websocket.Config) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)
	loadGame := middleware.LoadGame(gameService)

	// Set up WebSocket routes
	app.Get("/ws/game/:gameId", loadGame, middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, wsConfig))

	// Set up REST routes
	api := app.Group("/api")

	// Game routes
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", loadGame, gameController.GetGameState)
	gameRoutes.Delete("/:gameId", loadGame, gameController.DeleteGame)
	gameRoutes.Get("/:gameId/options", loadGame, gameController.GetOptions)
	gameRoutes.Post("/:gameId/move", loadGame, gameController.MakeMove)
	gameRoutes.Post("/:gameId/reset", loadGame, gameController.ResetGame)
}
