package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/aleister1102/harextractor/internal/common/filemanager"
	"github.com/aleister1102/harextractor/internal/models"
	"github.com/aleister1102/harextractor/internal/urlhandler"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// EntrySource yields archive entries in order and io.EOF after the last one.
// A *models.InvalidEntryError marks a single undecodable entry; any other
// error ends the run.
type EntrySource interface {
	Next() (*models.HAREntry, error)
}

// FileOperator is the filesystem surface used by the Extractor.
type FileOperator interface {
	DirectoryOperator
	EnsureDirectory(path string, perm fs.FileMode) error
	WriteFile(path string, data []byte, opts filemanager.FileWriteOptions) error
}

// Options controls one extraction run.
type Options struct {
	// OutputDir receives the extracted files. Empty selects list-only mode:
	// every entry is summarized and nothing is written.
	OutputDir string
	// Hierarchical lays files out as host/full/path instead of flat basenames.
	Hierarchical bool
	// Verbose prints each entry summary and its destination.
	Verbose bool
	// Strict aborts the run on the first per-entry failure.
	Strict bool

	FilePermissions fs.FileMode
	DirPermissions  fs.FileMode
}

// ListOnly reports whether the options disable all writes.
func (o Options) ListOnly() bool {
	return o.OutputDir == ""
}

// Extractor writes the response bodies of archive entries to files.
//
// Entries are handled one at a time in source order, which decides who gets
// the unsuffixed name on a collision. An Extractor assumes it is the only
// writer in OutputDir: name probing and the following write are not atomic.
type Extractor struct {
	opts       Options
	fs         FileOperator
	reconciler *DirectoryReconciler
	out        io.Writer
	logger     zerolog.Logger
}

// NewExtractor creates an Extractor printing summaries to out and reporting
// skipped entries through logger.
func NewExtractor(opts Options, fsOps FileOperator, out io.Writer, logger zerolog.Logger) *Extractor {
	if opts.FilePermissions == 0 {
		opts.FilePermissions = 0644
	}
	if opts.DirPermissions == 0 {
		opts.DirPermissions = 0755
	}
	componentLogger := logger.With().Str("component", "Extractor").Logger()

	return &Extractor{
		opts:       opts,
		fs:         fsOps,
		reconciler: NewDirectoryReconciler(fsOps, opts.DirPermissions, logger),
		out:        out,
		logger:     componentLogger,
	}
}

// Extract consumes src until io.EOF. Under Strict the first failing entry is
// returned as a *models.EntryError; otherwise failures are logged, counted in
// the summary and the run continues. The output directory is never removed
// here, even on failure.
func (e *Extractor) Extract(ctx context.Context, src EntrySource) (*models.ExtractionSummary, error) {
	start := time.Now()
	summary := &models.ExtractionSummary{
		OutputDir: e.opts.OutputDir,
		ListOnly:  e.opts.ListOnly(),
	}

	if !e.opts.ListOnly() {
		if err := e.fs.EnsureDirectory(e.opts.OutputDir, e.opts.DirPermissions); err != nil {
			return summary, &models.WriteError{Op: "create output directory", Path: e.opts.OutputDir, Err: err}
		}
	}

	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		entry, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		var outcome models.EntryOutcome
		if err != nil {
			var invalid *models.InvalidEntryError
			if !errors.As(err, &invalid) {
				return summary, err
			}
			outcome = models.EntryOutcome{Index: index, State: models.EntryStateFailed, Err: err}
		} else {
			outcome = e.processEntry(ctx, index, entry)
		}
		summary.Record(outcome)

		if outcome.State != models.EntryStateFailed {
			continue
		}

		url, _ := entry.URL()
		entryErr := &models.EntryError{Index: index, URL: url, Err: outcome.Err}
		if e.opts.Strict {
			return summary, entryErr
		}
		e.logger.Error().Err(entryErr).Int("index", index).Msg("Skipping entry")
	}

	summary.Duration = time.Since(start)
	e.logger.Debug().
		Int("entries", summary.Processed).
		Int("written", summary.Written).
		Int("no_content", summary.NoContent).
		Int("failed", summary.Failed).
		Str("bytes", humanize.Bytes(uint64(summary.BytesWritten))).
		Dur("duration", summary.Duration).
		Msg("Extraction finished")

	return summary, nil
}

// processEntry drives one entry through
// Pending -> Summarized -> {NoContent | ContentExtracted -> PathResolved -> Written} | Failed.
func (e *Extractor) processEntry(ctx context.Context, index int, entry *models.HAREntry) models.EntryOutcome {
	outcome := models.EntryOutcome{Index: index, State: models.EntryStatePending}
	fail := func(err error) models.EntryOutcome {
		outcome.State = models.EntryStateFailed
		outcome.Err = err
		return outcome
	}

	if e.opts.Verbose || e.opts.ListOnly() {
		e.println(FormatEntry(entry))
	}
	outcome.State = models.EntryStateSummarized

	if e.opts.ListOnly() {
		return outcome
	}

	data, ok, err := EntryContent(entry)
	if err != nil {
		var invalid *models.InvalidEntryError
		if errors.As(err, &invalid) {
			invalid.Index = index
		}
		return fail(err)
	}
	if !ok {
		if e.opts.Verbose {
			e.println(FormatDestination(NoContentMarker))
		}
		outcome.State = models.EntryStateNoContent
		return outcome
	}
	outcome.State = models.EntryStateContentExtracted

	relPath, err := urlhandler.DeriveEntryPath(entry, e.opts.Hierarchical)
	if err != nil {
		return fail(err)
	}

	target := UnusedPath(e.fs, filepath.Join(e.opts.OutputDir, relPath))
	if e.opts.Hierarchical {
		relocated, err := e.reconciler.EnsureDirsFor(e.opts.OutputDir, target)
		if err != nil {
			return fail(err)
		}
		if relocated {
			target = UnusedPath(e.fs, target)
		}
	}
	outcome.State = models.EntryStatePathResolved
	outcome.Path = target

	if e.opts.Verbose {
		e.println(FormatDestination(target))
	}

	writeOpts := filemanager.DefaultFileWriteOptions()
	writeOpts.Permissions = e.opts.FilePermissions
	writeOpts.Context = ctx
	if err := e.fs.WriteFile(target, data, writeOpts); err != nil {
		return fail(&models.WriteError{Op: "write", Path: target, Err: err})
	}

	outcome.State = models.EntryStateWritten
	outcome.Bytes = int64(len(data))
	return outcome
}

func (e *Extractor) println(line string) {
	fmt.Fprintln(e.out, line)
}
