package logger

import (
	"io"
	stdlog "log"

	"github.com/aleister1102/harextractor/internal/common/errorwrapper"
	"github.com/aleister1102/harextractor/internal/config"
	"github.com/rs/zerolog"
)

// LoggerBuilder assembles the run logger from configuration. Conversion
// errors are kept until Build.
type LoggerBuilder struct {
	config    LoggerConfig
	converter *ConfigConverter
	err       error
}

func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		config:    DefaultLoggerConfig(),
		converter: NewConfigConverter(),
	}
}

// WithConfig applies the log section of the configuration file. Call it
// after WithConsole so colour detection sees the final console.
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	loggerConfig, err := lb.converter.ConvertConfig(cfg, lb.config.Console)
	if err != nil {
		lb.err = err
		return lb
	}
	lb.config = loggerConfig
	return lb
}

// WithConsole redirects console output, os.Stderr by default.
func (lb *LoggerBuilder) WithConsole(out io.Writer) *LoggerBuilder {
	lb.config.Console = out
	return lb
}

// Build validates the settings and creates the logger.
func (lb *LoggerBuilder) Build() (*Logger, error) {
	if lb.err != nil {
		return nil, lb.err
	}
	if err := lb.validateConfig(); err != nil {
		return nil, err
	}

	writers, err := lb.createWriters()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create log writers")
	}
	if len(writers) == 0 {
		return nil, errorwrapper.NewError("no output writers configured")
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	zerologInstance := zerolog.New(multiWriter).
		Level(lb.config.Level).
		With().
		Timestamp().
		Logger()

	lb.configureStandardLog(zerologInstance)

	return &Logger{
		zerolog: zerologInstance,
		config:  lb.config,
	}, nil
}

func (lb *LoggerBuilder) validateConfig() error {
	if lb.config.EnableFile && lb.config.FilePath == "" {
		return errorwrapper.NewValidationError("file_path", lb.config.FilePath, "file path required when file logging enabled")
	}

	if lb.config.MaxSizeMB <= 0 {
		return errorwrapper.NewValidationError("max_size_mb", lb.config.MaxSizeMB, "max size must be positive")
	}

	return nil
}

// createWriters returns the console writer and, when enabled, the file writer.
func (lb *LoggerBuilder) createWriters() ([]io.Writer, error) {
	factory := NewWriterFactory(lb.config.NoColor)
	var writers []io.Writer

	if lb.config.EnableConsole {
		writers = append(writers, factory.CreateConsoleWriter(lb.config.Format, lb.config.Console))
	}

	if lb.config.EnableFile {
		fileWriter, err := factory.CreateFileWriter(lb.config)
		if err != nil {
			return nil, err
		}
		writers = append(writers, fileWriter)
	}

	return writers, nil
}

// configureStandardLog sends output of the standard log package, used by
// some dependencies, through the same writers.
func (lb *LoggerBuilder) configureStandardLog(logger zerolog.Logger) {
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)
}
