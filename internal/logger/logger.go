package logger

import (
	"io"

	"github.com/aleister1102/harextractor/internal/config"
	"github.com/rs/zerolog"
)

// Logger pairs the built zerolog instance with the settings it came from.
type Logger struct {
	zerolog zerolog.Logger
	config  LoggerConfig
}

func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// New builds the diagnostic logger for one run: console output on console
// (os.Stderr when nil) plus the rotating log file when cfg names one.
func New(cfg config.LogConfig, console io.Writer) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().WithConsole(console).WithConfig(cfg).Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}
