package logger

import (
	"io"

	"github.com/aleister1102/harextractor/internal/config"
	"github.com/rs/zerolog"
)

// LoggerConfig is the resolved form of config.LogConfig that the builder
// works from.
type LoggerConfig struct {
	Level         zerolog.Level
	Format        LogFormat
	EnableConsole bool
	EnableFile    bool
	FilePath      string
	MaxSizeMB     int
	MaxBackups    int
	NoColor       bool
	// Console receives diagnostics; nil means os.Stderr. Extracted entry
	// summaries go to stdout and never pass through here.
	Console io.Writer
}

// LogFormat selects how records are rendered.
type LogFormat int

const (
	FormatJSON LogFormat = iota
	FormatConsole
	FormatText
)

func (lf LogFormat) String() string {
	switch lf {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "console"
	}
}

// DefaultLoggerConfig logs info and above to stderr only.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:         zerolog.InfoLevel,
		Format:        FormatConsole,
		EnableConsole: true,
		MaxSizeMB:     config.DefaultMaxLogSizeMB,
		MaxBackups:    config.DefaultMaxLogBackups,
	}
}
