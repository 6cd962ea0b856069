package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/valentinaoliveira/JogoDama/internal/service"
)

const (
	LocalGameID  = "gameID"
	LocalSession = "session"
)

// LoadGame resolves the :gameId route parameter to a running session and
// stores both in the request locals.
func LoadGame(gameService *service.GameService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gameID := c.Params("gameId")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		session, err := gameService.GetSession(gameID)
		if err != nil {
			if errors.Is(err, service.ErrGameNotFound) {
				log.Debug().Str("game", gameID).Msg("unknown game requested")
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to load game",
			})
		}

		// Store in context for this request
		c.Locals(LocalGameID, gameID)
		c.Locals(LocalSession, session)
		return c.Next()
	}
}

// RequestLogger logs every request once it has been handled.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Err(err).
			Msg("request")
		return err
	}
}
