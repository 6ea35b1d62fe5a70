package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingURL indicates an entry without request.url; no path can be derived for it.
	ErrMissingURL = errors.New("entry has no request URL")
	// ErrMalformedArchive indicates the document has no log.entries array.
	ErrMalformedArchive = errors.New("malformed archive: log.entries not found")
)

// UsageError reports bad command line arguments.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// NewUsageError creates a UsageError with a formatted message.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// OutputDirError reports an output path that exists and is not a directory.
// Nothing is extracted when it is returned.
type OutputDirError struct {
	Path string
}

func (e *OutputDirError) Error() string {
	return fmt.Sprintf("output path %q exists and is not a directory", e.Path)
}

// UnknownEncodingError is returned for a content encoding other than base64.
type UnknownEncodingError struct {
	Encoding string
}

func (e *UnknownEncodingError) Error() string {
	return fmt.Sprintf("unknown content encoding: %q", e.Encoding)
}

// WriteError wraps a filesystem failure while placing an entry on disk.
type WriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// InvalidEntryError reports an entry that could not be decoded, either from
// the archive JSON or from its content encoding.
type InvalidEntryError struct {
	Index int
	Err   error
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid entry: %v", e.Err)
}

func (e *InvalidEntryError) Unwrap() error {
	return e.Err
}

// EntryError attaches the entry position and URL to a per-entry failure.
type EntryError struct {
	Index int
	URL   string
	Err   error
}

func (e *EntryError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("entry #%d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("entry #%d (%s): %v", e.Index, e.URL, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
