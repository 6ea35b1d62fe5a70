package logger

import (
	"strings"

	"github.com/aleister1102/harextractor/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// LogLevelParser reads log_level values such as "debug" or "WARN".
type LogLevelParser struct{}

func NewLogLevelParser() *LogLevelParser {
	return &LogLevelParser{}
}

// ParseLevel is case-insensitive; an unset level means info.
func (llp *LogLevelParser) ParseLevel(levelStr string) (zerolog.Level, error) {
	if levelStr == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return zerolog.InfoLevel, errorwrapper.WrapError(err, "invalid log level")
	}
	return level, nil
}

// LogFormatParser reads log_format values. The validator rejects unknown
// formats before they get here, so anything unrecognised renders as console.
type LogFormatParser struct{}

func NewLogFormatParser() *LogFormatParser {
	return &LogFormatParser{}
}

func (lfp *LogFormatParser) ParseFormat(formatStr string) LogFormat {
	switch strings.ToLower(formatStr) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatConsole
	}
}
