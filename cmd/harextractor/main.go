package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/harextractor/internal/config"
	"github.com/aleister1102/harextractor/internal/logger"
	"github.com/aleister1102/harextractor/internal/models"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	bootstrap, err := logger.New(config.NewDefaultLogConfig(), stderr)
	if err != nil {
		bootstrap = zerolog.New(stderr).With().Timestamp().Logger()
	}
	r := &runner{stdin: stdin, stdout: stdout, stderr: stderr, logger: bootstrap}

	app := &cli.App{
		Name:                   "harextractor",
		Usage:                  "extract response bodies from an HTTP Archive (HAR) file",
		ArgsUsage:              "[FILE]",
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
		Reader:                 stdin,
		Writer:                 stdout,
		ErrWriter:              stderr,
		Flags:                  appFlags(),
		Action: func(c *cli.Context) error {
			flags, err := ParseFlags(c)
			if err != nil {
				return err
			}
			return r.run(c.Context, flags)
		},
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			return models.NewUsageError("%v", err)
		},
		// Exit codes are chosen by run, never by the cli package.
		ExitErrHandler: func(c *cli.Context, err error) {},
	}

	err = app.RunContext(ctx, hoistFlags(args, app.Flags))
	switch {
	case err == nil:
		return exitOK
	case isUsageError(err):
		r.logger.Error().Err(err).Msg("Invalid arguments, see --help")
		return exitUsage
	case isOutputDirError(err):
		r.logger.Error().Err(err).Msg("Invalid output directory")
		return exitError
	case errors.Is(err, errEntriesFailed):
		return exitError
	default:
		r.logger.Error().Err(err).Msg("Extraction failed")
		return exitError
	}
}

func isUsageError(err error) bool {
	var usageErr *models.UsageError
	return errors.As(err, &usageErr)
}

func isOutputDirError(err error) bool {
	var dirErr *models.OutputDirError
	return errors.As(err, &dirErr)
}
