package logger

import (
	"io"
	"os"

	"github.com/aleister1102/harextractor/internal/config"
	"github.com/mattn/go-isatty"
)

// ConfigConverter turns the log section of the configuration file into a
// LoggerConfig.
type ConfigConverter struct {
	levelParser  *LogLevelParser
	formatParser *LogFormatParser
}

func NewConfigConverter() *ConfigConverter {
	return &ConfigConverter{
		levelParser:  NewLogLevelParser(),
		formatParser: NewLogFormatParser(),
	}
}

// ConvertConfig resolves cfg for a console writing to console. Colour is
// dropped unless console is a terminal, so piped or captured stderr stays
// free of escape codes. An empty log_file keeps logging on the console only.
func (cc *ConfigConverter) ConvertConfig(cfg config.LogConfig, console io.Writer) (LoggerConfig, error) {
	level, err := cc.levelParser.ParseLevel(cfg.LogLevel)
	if err != nil {
		return LoggerConfig{}, err
	}

	return LoggerConfig{
		Level:         level,
		Format:        cc.formatParser.ParseFormat(cfg.LogFormat),
		EnableConsole: true,
		EnableFile:    cfg.LogFile != "",
		FilePath:      cfg.LogFile,
		MaxSizeMB:     positiveOr(cfg.MaxLogSizeMB, config.DefaultMaxLogSizeMB),
		MaxBackups:    positiveOr(cfg.MaxLogBackups, config.DefaultMaxLogBackups),
		NoColor:       cfg.NoColor || !isTerminal(console),
		Console:       console,
	}, nil
}

func positiveOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

// isTerminal reports whether out is a terminal device; nil stands for
// os.Stderr.
func isTerminal(out io.Writer) bool {
	if out == nil {
		out = os.Stderr
	}
	f, ok := out.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
