package filemanager

import (
	"context"
	"io/fs"
	"time"
)

// FileInfo contains metadata about a file
type FileInfo struct {
	Path        string      // Full file path
	Name        string      // File name only
	Size        int64       // File size in bytes
	IsDir       bool        // Whether it's a directory
	ModTime     time.Time   // Last modification time
	Permissions fs.FileMode // File permissions
}

// FileWriteOptions configures file writing behavior
type FileWriteOptions struct {
	Permissions fs.FileMode     // File permissions
	Context     context.Context // Cancels a write in progress
}

// DefaultFileWriteOptions returns default file writing options
func DefaultFileWriteOptions() FileWriteOptions {
	return FileWriteOptions{
		Permissions: 0644,
		Context:     context.Background(),
	}
}

// FileReadOptions configures file reading behavior
type FileReadOptions struct {
	MaxSize int64 // Maximum accepted file size in bytes, 0 means unlimited
}

// DefaultFileReadOptions returns default file reading options
func DefaultFileReadOptions() FileReadOptions {
	return FileReadOptions{MaxSize: 0}
}
