package filemanager

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/aleister1102/harextractor/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// FileManager provides the filesystem primitives used while laying out
// extracted files, with standardized error wrapping and logging.
type FileManager struct {
	logger zerolog.Logger
	writer *FileWriter
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	componentLogger := logger.With().Str("component", "FileManager").Logger()

	return &FileManager{
		logger: componentLogger,
		writer: NewFileWriter(componentLogger),
	}
}

// FileExists reports whether anything (file, directory, symlink) is present at
// path. Any stat failure counts as absent, including ENOTDIR when an ancestor
// of path is a plain file.
func (fm *FileManager) FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether path resolves to a directory.
func (fm *FileManager) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// GetFileInfo returns information about a file
func (fm *FileManager) GetFileInfo(path string) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errorwrapper.WrapError(errorwrapper.ErrNotFound, fmt.Sprintf("file not found: %s", path))
		}
		return nil, errorwrapper.WrapError(err, fmt.Sprintf("failed to get file info for: %s", path))
	}

	return &FileInfo{
		Path:        path,
		Name:        stat.Name(),
		Size:        stat.Size(),
		IsDir:       stat.IsDir(),
		ModTime:     stat.ModTime(),
		Permissions: stat.Mode(),
	}, nil
}

// EnsureDirectory creates a directory and its parents if they don't exist
func (fm *FileManager) EnsureDirectory(path string, perm fs.FileMode) error {
	if fm.FileExists(path) {
		info, err := fm.GetFileInfo(path)
		if err != nil {
			return errorwrapper.WrapError(err, "failed to check directory: "+path)
		}
		if !info.IsDir {
			return errorwrapper.NewValidationError("path", path, "exists but is not a directory")
		}
		return nil
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return errorwrapper.WrapError(err, "failed to create directory: "+path)
	}

	fm.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// MakeDirAll creates path and any missing parents. The raw os error is
// returned so callers can react to a plain file blocking the chain.
func (fm *FileManager) MakeDirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// MakeDir creates a single directory.
func (fm *FileManager) MakeDir(path string, perm fs.FileMode) error {
	if err := os.Mkdir(path, perm); err != nil {
		return err
	}
	fm.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// Move renames src to dst.
func (fm *FileManager) Move(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return err
	}
	fm.logger.Debug().Str("from", src).Str("to", dst).Msg("Moved file")
	return nil
}

// RemoveAll deletes path recursively.
func (fm *FileManager) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return errorwrapper.WrapError(err, "failed to remove: "+path)
	}
	fm.logger.Debug().Str("path", path).Msg("Removed directory tree")
	return nil
}

// WriteFile writes data to path. The parent directory must already exist.
func (fm *FileManager) WriteFile(path string, data []byte, opts FileWriteOptions) error {
	return fm.writer.WriteFile(path, data, opts)
}
