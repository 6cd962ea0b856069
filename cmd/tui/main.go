package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/valentinaoliveira/JogoDama/internal/config"
	"github.com/valentinaoliveira/JogoDama/internal/model"
	"github.com/valentinaoliveira/JogoDama/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// the screen owns stdout, so logs only go to a file when one is configured
	w, closeLog, err := config.OpenLogFile(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	if err := config.SetupLogging(cfg, w); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	log.Info().Msg("terminal game started")
	return tui.NewView(screen, model.NewGame()).Run()
}
