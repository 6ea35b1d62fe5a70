package main

import (
	"path/filepath"

	"github.com/aleister1102/harextractor/internal/archive"
	"github.com/aleister1102/harextractor/internal/common/filemanager"
	"github.com/aleister1102/harextractor/internal/models"
)

const stdinBaseName = "stdin"

// defaultOutputName names the output directory after the archive.
func defaultOutputName(inputFile, suffix string) string {
	if archive.IsStdin(inputFile) {
		return stdinBaseName + suffix
	}
	return filepath.Base(inputFile) + suffix
}

// resolveOutputDir applies --output: absent selects defaultName, an existing
// directory receives defaultName inside it and anything else is used as is.
// The resolved path must be a directory or not exist yet.
func resolveOutputDir(fm *filemanager.FileManager, outputPath, defaultName string) (string, error) {
	resolved := outputPath
	switch {
	case outputPath == "":
		resolved = defaultName
	case fm.IsDir(outputPath):
		resolved = filepath.Join(outputPath, defaultName)
	}

	if fm.FileExists(resolved) && !fm.IsDir(resolved) {
		return "", &models.OutputDirError{Path: resolved}
	}
	return resolved, nil
}
