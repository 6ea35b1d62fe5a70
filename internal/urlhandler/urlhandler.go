package urlhandler

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/aleister1102/harextractor/internal/models"
)

// IndexFileName replaces an empty URL path, e.g. "https://example.com/".
const IndexFileName = "index.html"

// DeriveEntryPath maps the request URL of an entry to a relative filesystem
// path. Flat mode keeps only the last path segment; hierarchical mode returns
// host/full/path. Query and fragment never take part in the result.
func DeriveEntryPath(entry *models.HAREntry, hierarchical bool) (string, error) {
	rawURL, ok := entry.URL()
	if !ok {
		return "", models.ErrMissingURL
	}
	return DerivePath(rawURL, hierarchical)
}

// DerivePath is DeriveEntryPath for a bare URL string.
func DerivePath(rawURL string, hierarchical bool) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("could not parse URL '%s': %w", rawURL, err)
	}

	relPath := stripURLPath(parsedURL.EscapedPath())
	if relPath == "" {
		relPath = IndexFileName
	}

	if !hierarchical {
		return filepath.FromSlash(path.Base(relPath)), nil
	}

	host := sanitizeSegment(parsedURL.Host)
	if host == "" {
		return filepath.FromSlash(relPath), nil
	}
	return filepath.FromSlash(path.Join(host, relPath)), nil
}

// stripURLPath removes dot segments and surrounding slashes so the result can
// be joined under an output directory without escaping it.
func stripURLPath(escapedPath string) string {
	cleaned := path.Clean("/" + escapedPath)
	return strings.Trim(cleaned, "/")
}

func sanitizeSegment(segment string) string {
	if segment == "." || segment == ".." {
		return "_"
	}
	return segment
}
