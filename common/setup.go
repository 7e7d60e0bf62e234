package common

import (
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config contains the common configuration data for the launcher.
type Config struct {
	LogLevel string `envconfig:"LOGLEVEL" default:"info"`
}

// HandleSetup takes care of initializing the logger. Diagnostics always go to
// stderr because stdout belongs to the process we hand off to.
// A non-empty level overrides the LOGLEVEL environment variable.
func HandleSetup(level string) error {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return fmt.Errorf("fatal error reading environment variables: %s", err.Error())
	}
	if level != "" {
		c.LogLevel = level
	}

	loglevel, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("fatal error reading log level: %s", err)
	}
	zerolog.SetGlobalLevel(loglevel)

	log.Logger = NewLogger(os.Stderr)
	return nil
}

// NewLogger returns a console logger writing to w, colored only when w is a terminal.
func NewLogger(w io.Writer) zerolog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
}
