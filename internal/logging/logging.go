// =============================================================================
// UCaaS Import Generator - Logging
// =============================================================================
//
// Global zerolog setup. Console output goes through the human-friendly
// ConsoleWriter; --verbose drops the level to debug.
//
// =============================================================================

package logging

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var once sync.Once

// Init configures the global zerolog logger. Safe to call more than once;
// only the first call wins.
func Init(verbose bool) {
	once.Do(func() {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}

		console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		logger := zerolog.New(console).With().Timestamp().Logger().Level(level)

		log.Logger = logger
	})
}
