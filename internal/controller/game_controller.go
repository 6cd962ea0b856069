package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/valentinaoliveira/JogoDama/internal/middleware"
	"github.com/valentinaoliveira/JogoDama/internal/model"
	"github.com/valentinaoliveira/JogoDama/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		log.Error().Err(err).Msg("create game")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(gameID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

// GetOptions lists the destinations of the piece at ?row=&col=.
func (gc *GameController) GetOptions(c *fiber.Ctx) error {
	from := model.Position{Row: c.QueryInt("row", -1), Col: c.QueryInt("col", -1)}

	options, err := gc.gameService.LegalOptions(gameID(c), from)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"from":    from,
		"options": options,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.Move
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}

	result, state, err := gc.gameService.HandleMove(gameID(c), move)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"result": result,
		"state":  state,
	})
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	state, err := gc.gameService.ResetGame(gameID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(gameID(c)); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game deleted",
	})
}

func gameID(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.LocalGameID).(string); ok {
		return id
	}
	return c.Params("gameId")
}

// errorResponse maps service and rule errors to HTTP statuses.
func errorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrGameNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	var moveErr *model.MoveError
	if errors.As(err, &moveErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": moveErr.Error(),
			"kind":  model.ErrorKind(err),
		})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
	})
}
