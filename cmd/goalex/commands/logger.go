package commands

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements openalex.Logger on top of a zerolog console
// logger writing to stderr.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger creates a debug-level console logger.
func NewZerologLogger() *ZerologLogger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	logger := zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()

	return &ZerologLogger{logger: logger}
}

func (l *ZerologLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}
