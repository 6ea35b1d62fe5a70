package filemanager

import (
	"fmt"
	"io"
	"os"

	"github.com/aleister1102/harextractor/internal/common/errorwrapper"
)

// ReadFile reads a whole regular file, refusing files larger than
// opts.MaxSize.
func (fm *FileManager) ReadFile(path string, opts FileReadOptions) ([]byte, error) {
	info, err := fm.GetFileInfo(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir {
		return nil, errorwrapper.NewValidationError("path", path, "is a directory")
	}
	if opts.MaxSize > 0 && info.Size > opts.MaxSize {
		return nil, errorwrapper.NewValidationError("path", path, fmt.Sprintf("file size %d exceeds limit %d", info.Size, opts.MaxSize))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errorwrapper.WrapError(err, fmt.Sprintf("failed to open file: %s", path))
	}
	defer func() {
		if err := file.Close(); err != nil {
			fm.logger.Error().Err(err).Str("path", path).Msg("Failed to close file")
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errorwrapper.WrapError(err, fmt.Sprintf("failed to read file content: %s", path))
	}
	return content, nil
}
