package filemanager

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
)

// writeChunkSize bounds how much is written between cancellation checks.
const writeChunkSize = 1 << 20

// FileWriter handles file writing operations
type FileWriter struct {
	logger zerolog.Logger
}

// NewFileWriter creates a new FileWriter instance
func NewFileWriter(logger zerolog.Logger) *FileWriter {
	return &FileWriter{
		logger: logger.With().Str("component", "FileWriter").Logger(),
	}
}

// WriteFile writes data to path, truncating any existing file. The write
// stops between chunks once opts.Context is done and the partial file is
// removed.
func (fw *FileWriter) WriteFile(path string, data []byte, opts FileWriteOptions) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	perm := opts.Permissions
	if perm == 0 {
		perm = 0644
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	err = writeChunks(ctx, file, data)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			fw.logger.Warn().Str("path", path).Msg("File write cancelled")
			if rmErr := os.Remove(path); rmErr != nil {
				fw.logger.Error().Err(rmErr).Str("path", path).Msg("Failed to remove partial file")
			}
		}
		return err
	}

	fw.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File written")
	return nil
}

func writeChunks(ctx context.Context, file *os.File, data []byte) error {
	for len(data) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := min(len(data), writeChunkSize)
		if _, err := file.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
