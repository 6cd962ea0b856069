package main

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"

	"github.com/valentinaoliveira/JogoDama/internal/config"
	"github.com/valentinaoliveira/JogoDama/internal/controller"
	"github.com/valentinaoliveira/JogoDama/internal/middleware"
	"github.com/valentinaoliveira/JogoDama/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := config.SetupLogging(cfg, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("setup logging")
	}

	// Initialize the application
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	// Then add the CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger())

	// Initialize services
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)

	controller.RegisterRoutes(app, gameService, websocket.Config{
		ReadBufferSize:  cfg.WSBufferSize,
		WriteBufferSize: cfg.WSBufferSize,
		Origins:         cfg.AllowedOrigins,
	})

	log.Info().Str("addr", cfg.Addr).Msg("checkers server listening")
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
