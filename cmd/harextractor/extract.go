package main

import (
	"context"
	"errors"
	"io"

	"github.com/aleister1102/harextractor/internal/archive"
	"github.com/aleister1102/harextractor/internal/common/errorwrapper"
	"github.com/aleister1102/harextractor/internal/common/filemanager"
	"github.com/aleister1102/harextractor/internal/config"
	"github.com/aleister1102/harextractor/internal/extractor"
	"github.com/aleister1102/harextractor/internal/logger"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// errEntriesFailed ends a lenient run in which some entries were skipped.
var errEntriesFailed = errors.New("some entries could not be extracted")

type runner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
}

func (r *runner) run(ctx context.Context, flags AppFlags) error {
	gCfg, err := config.LoadGlobalConfig(flags.ConfigFile, r.logger)
	if err != nil {
		return errorwrapper.WrapError(err, "could not load configuration")
	}
	if err := config.ValidateConfig(gCfg); err != nil {
		return err
	}

	zLogger, err := logger.New(gCfg.LogConfig, r.stderr)
	if err != nil {
		return errorwrapper.WrapError(err, "could not initialize logger")
	}
	r.logger = zLogger

	extCfg := gCfg.ExtractorConfig
	fm := filemanager.NewFileManager(r.logger)

	opts := extractor.Options{
		Hierarchical:    flags.Directories || extCfg.Hierarchical,
		Verbose:         flags.Verbose || extCfg.Verbose,
		Strict:          flags.Strict || extCfg.Strict,
		FilePermissions: extCfg.FileMode(),
		DirPermissions:  extCfg.DirMode(),
	}
	if !flags.List {
		opts.OutputDir, err = resolveOutputDir(fm, flags.OutputPath, defaultOutputName(flags.InputFile, extCfg.OutputSuffix))
		if err != nil {
			return err
		}
	}
	createdByRun := !opts.ListOnly() && !fm.FileExists(opts.OutputDir)

	input, err := archive.OpenInput(flags.InputFile, r.stdin)
	if err != nil {
		return err
	}
	defer func() {
		if err := input.Close(); err != nil {
			r.logger.Warn().Err(err).Msg("Failed to close archive")
		}
	}()

	iterative := flags.Iterative || r.tooLargeToLoad(fm, flags.InputFile, extCfg.DecoderBackend)
	decoder, err := archive.SelectDecoder(extCfg.DecoderBackend, iterative, archive.IsStdin(flags.InputFile), extCfg.StreamBufferSize)
	if err != nil {
		return err
	}
	src, err := decoder.Decode(input)
	if err != nil {
		return err
	}
	if eager, ok := src.(*archive.EagerSource); ok {
		r.logger.Debug().Int("entries", len(eager.Entries())).Msg("Loaded archive")
	}

	ex := extractor.NewExtractor(opts, fm, r.stdout, r.logger)
	summary, err := ex.Extract(ctx, src)
	if err != nil {
		if opts.Strict && createdByRun {
			r.removeOutput(fm, opts.OutputDir)
		}
		return err
	}

	if summary.HasFailures() {
		r.logger.Warn().
			Int("failed", summary.Failed).
			Int("written", summary.Written).
			Str("output", summary.OutputDir).
			Msg("Extraction finished with skipped entries")
		return errEntriesFailed
	}
	return nil
}

// tooLargeToLoad reports whether the auto backend should stream a file that
// would not fit in memory once decoded.
func (r *runner) tooLargeToLoad(fm *filemanager.FileManager, inputFile, backend string) bool {
	if (backend != archive.BackendAuto && backend != "") || archive.IsStdin(inputFile) {
		return false
	}
	info, err := fm.GetFileInfo(inputFile)
	if err != nil || archive.FitsInMemory(info.Size) {
		return false
	}
	r.logger.Info().
		Str("archive", inputFile).
		Str("size", humanize.Bytes(uint64(info.Size))).
		Msg("Archive too large to load at once, streaming it")
	return true
}

func (r *runner) removeOutput(fm *filemanager.FileManager, dir string) {
	if err := fm.RemoveAll(dir); err != nil {
		r.logger.Error().Err(err).Str("path", dir).Msg("Failed to remove output directory")
		return
	}
	r.logger.Info().Str("path", dir).Msg("Removed output directory after failure")
}
