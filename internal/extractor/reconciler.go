package extractor

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/aleister1102/harextractor/internal/models"
	"github.com/aleister1102/harextractor/internal/urlhandler"
	"github.com/rs/zerolog"
)

// DirectoryOperator is the filesystem surface the reconciler needs.
type DirectoryOperator interface {
	PathProber
	IsDir(path string) bool
	MakeDirAll(path string, perm fs.FileMode) error
	MakeDir(path string, perm fs.FileMode) error
	Move(src, dst string) error
}

// DirectoryReconciler creates the ancestor directories of hierarchical
// targets. When an ancestor is occupied by a plain file (an earlier entry
// whose URL is a prefix of this one), the file is demoted: it becomes
// index.html inside a new directory of the same name, and its numbered
// collision siblings become index.1.html, index.2.html, ...
type DirectoryReconciler struct {
	fs      DirectoryOperator
	logger  zerolog.Logger
	dirPerm fs.FileMode
}

// NewDirectoryReconciler creates a DirectoryReconciler.
func NewDirectoryReconciler(fsOps DirectoryOperator, dirPerm fs.FileMode, logger zerolog.Logger) *DirectoryReconciler {
	if dirPerm == 0 {
		dirPerm = 0755
	}
	return &DirectoryReconciler{
		fs:      fsOps,
		logger:  logger.With().Str("component", "DirectoryReconciler").Logger(),
		dirPerm: dirPerm,
	}
}

// EnsureDirsFor makes every ancestor of targetPath below outputRoot a
// directory. relocated reports whether existing files were moved, in which
// case a previously resolved target name may have to be resolved again.
func (r *DirectoryReconciler) EnsureDirsFor(outputRoot, targetPath string) (relocated bool, err error) {
	parent := filepath.Dir(targetPath)
	if err := r.fs.MakeDirAll(parent, r.dirPerm); err == nil {
		return false, nil
	}

	ancestors, err := ancestorDirs(outputRoot, targetPath)
	if err != nil {
		return false, &models.WriteError{Op: "create directories for", Path: targetPath, Err: err}
	}

	// ancestors is deepest first; repair from the shallowest one down.
	for i := len(ancestors) - 1; i >= 0; i-- {
		dir := ancestors[i]
		if !r.fs.FileExists(dir) {
			if err := r.fs.MakeDir(dir, r.dirPerm); err != nil {
				return relocated, &models.WriteError{Op: "create directory", Path: dir, Err: err}
			}
			continue
		}
		if r.fs.IsDir(dir) {
			continue
		}
		if err := r.demoteFile(dir); err != nil {
			return relocated, err
		}
		relocated = true
	}

	return relocated, nil
}

// demoteFile turns the plain file at path into a directory holding that file
// as its index.
func (r *DirectoryReconciler) demoteFile(path string) error {
	parked := UnusedPath(r.fs, path)
	if err := r.fs.Move(path, parked); err != nil {
		return &models.WriteError{Op: "move", Path: path, Err: err}
	}
	if err := r.fs.MakeDir(path, r.dirPerm); err != nil {
		return &models.WriteError{Op: "create directory", Path: path, Err: err}
	}
	if err := r.moveFilesToDir(path, parked); err != nil {
		return err
	}

	r.logger.Info().Str("path", path).Msg("Converted file into directory, content moved to index file")
	return nil
}

// moveFilesToDir moves last to dir/index.html, then every sibling file
// name.1.ext, name.2.ext, ... of dir, in ascending order, to dir/index.N.html,
// stopping at the first missing number. Sibling directories belong to other
// URLs and stay where they are.
func (r *DirectoryReconciler) moveFilesToDir(dir, last string) error {
	indexPath := filepath.Join(dir, urlhandler.IndexFileName)
	if err := r.fs.Move(last, indexPath); err != nil {
		return &models.WriteError{Op: "move", Path: last, Err: err}
	}

	name, ext := splitExt(dir)
	indexName, indexExt := splitExt(urlhandler.IndexFileName)
	for i := 1; ; i++ {
		sibling := numberedPath(name, i, ext)
		if !r.fs.FileExists(sibling) {
			return nil
		}
		if r.fs.IsDir(sibling) {
			continue
		}
		dest := filepath.Join(dir, numberedPath(indexName, i, indexExt))
		if err := r.fs.Move(sibling, dest); err != nil {
			return &models.WriteError{Op: "move", Path: sibling, Err: err}
		}
	}
}

// ancestorDirs lists the directories between root (exclusive) and path
// (exclusive), deepest first.
func ancestorDirs(root, path string) ([]string, error) {
	root = filepath.Clean(root)
	rel, err := filepath.Rel(root, filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%q is not inside %q", path, root)
	}

	var dirs []string
	for dir := filepath.Dir(rel); dir != "."; dir = filepath.Dir(dir) {
		dirs = append(dirs, filepath.Join(root, dir))
	}
	return dirs, nil
}
