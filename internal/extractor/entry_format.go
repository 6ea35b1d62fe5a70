package extractor

import (
	"fmt"
	"strconv"

	"github.com/aleister1102/harextractor/internal/models"
)

// Placeholders printed for fields missing from an entry.
const (
	NoMethodPlaceholder     = "<no method>"
	NoURLPlaceholder        = "<no url>"
	NoStatusPlaceholder     = "<no status>"
	NoStatusTextPlaceholder = "<no status text>"
	NoMimeTypePlaceholder   = "<no mime type>"
	NoContentMarker         = "<no content>"
)

// destinationPrefix starts the verbose line that follows a summary line.
const destinationPrefix = "\t----> "

// FormatEntry renders the one-line summary of an entry:
//
//	GET https://127.0.0.1/ -> 200 OK text/plain 4B
func FormatEntry(entry *models.HAREntry) string {
	method, ok := entry.Method()
	if !ok {
		method = NoMethodPlaceholder
	}

	url, ok := entry.URL()
	if !ok {
		url = NoURLPlaceholder
	}

	status := NoStatusPlaceholder
	if code, ok := entry.Status(); ok {
		status = strconv.Itoa(code)
	}

	statusText, ok := entry.StatusText()
	if !ok {
		statusText = NoStatusTextPlaceholder
	}

	mimeType, ok := entry.MimeType()
	if !ok {
		mimeType = NoMimeTypePlaceholder
	}

	size := invalidSizePlaceholder
	if n, ok := entry.Size(); ok {
		size = FormatSize(n)
	}

	return fmt.Sprintf("%s %s -> %s %s %s %s", method, url, status, statusText, mimeType, size)
}

// FormatDestination renders the verbose line naming where an entry went.
func FormatDestination(dest string) string {
	return destinationPrefix + dest
}
