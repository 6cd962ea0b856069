package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Addr           string   `env:"CHECKERS_ADDR" envDefault:":3000"`
	AllowedOrigins []string `env:"CHECKERS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	WSBufferSize   int      `env:"CHECKERS_WS_BUFFER_SIZE" envDefault:"1024"`
	LogLevel       string   `env:"CHECKERS_LOG_LEVEL" envDefault:"info"`
	LogPretty      bool     `env:"CHECKERS_LOG_PRETTY" envDefault:"false"`
	// LogFile receives logs from the terminal client, which owns stdout.
	LogFile string `env:"CHECKERS_LOG_FILE"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.WSBufferSize <= 0 {
		return Config{}, fmt.Errorf("CHECKERS_WS_BUFFER_SIZE must be positive, got %d", cfg.WSBufferSize)
	}
	return cfg, nil
}

// SetupLogging points the global zerolog logger at w with the configured level.
func SetupLogging(cfg Config, w io.Writer) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	if cfg.LogPretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}

// OpenLogFile opens the log file for appending, or returns io.Discard when no
// file is configured.
func OpenLogFile(cfg Config) (io.Writer, func() error, error) {
	if cfg.LogFile == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}
