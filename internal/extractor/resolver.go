package extractor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathProber answers whether a path is taken.
type PathProber interface {
	FileExists(path string) bool
}

// UnusedPath returns candidate if nothing exists there, otherwise the first of
// name.1.ext, name.2.ext, ... that does not exist. The probe is unbounded.
//
// The check is not atomic with the later write: two writers sharing an output
// directory can both be handed the same name.
func UnusedPath(prober PathProber, candidate string) string {
	if !prober.FileExists(candidate) {
		return candidate
	}

	name, ext := splitExt(candidate)
	for i := 1; ; i++ {
		probe := numberedPath(name, i, ext)
		if !prober.FileExists(probe) {
			return probe
		}
	}
}

func numberedPath(name string, n int, ext string) string {
	return fmt.Sprintf("%s.%d%s", name, n, ext)
}

// splitExt splits path into name and extension. The extension starts at the
// last dot of the base name; leading dots of the base name ("..name",
// ".bashrc") never start one.
func splitExt(path string) (name, ext string) {
	base := filepath.Base(path)
	if base == string(filepath.Separator) || base == "." {
		return path, ""
	}
	rest := strings.TrimLeft(base, ".")
	dot := strings.LastIndex(rest, ".")
	if dot < 0 {
		return path, ""
	}
	ext = rest[dot:]
	return path[:len(path)-len(ext)], ext
}
