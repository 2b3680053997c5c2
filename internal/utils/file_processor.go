package utils

import (
	"io/fs"
	"path/filepath"
	"strings"
)

const (
	// SceneExtension marks scene description files
	SceneExtension = ".scene"

	// GeneratedFileSuffix marks regenerated source files
	GeneratedFileSuffix = "_autobind.go"

	// GeneratedHeader is the first line of every regenerated source file
	GeneratedHeader = "// Code generated by autobind. DO NOT EDIT."
)

// FileProcessor provides utilities for common file processing operations
type FileProcessor struct{}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info fs.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info fs.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
	Recursive       bool
}

// SceneFileFilter matches scene description files
func SceneFileFilter() FileFilter {
	return func(path string, info fs.DirEntry) bool {
		return !info.IsDir() && strings.HasSuffix(info.Name(), SceneExtension)
	}
}

// GeneratedFileFilter matches files written by the generator that are
// safe to delete. Hand-written companions never match.
func GeneratedFileFilter() FileFilter {
	return func(path string, info fs.DirEntry) bool {
		return !info.IsDir() && strings.HasSuffix(info.Name(), GeneratedFileSuffix)
	}
}

// DefaultDirectoryFilter skips common directories that shouldn't contain project files
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
		"build":        true,
		"dist":         true,
	}

	return func(path string, info fs.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()

		// Skip hidden directories
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}

		return !skipDirs[name]
	}
}

// WalkFiles walks rootDir and returns the files accepted by the filters in
// lexical order. Without Recursive only rootDir itself is listed.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path == rootDir {
				return nil
			}
			if !options.Recursive {
				return filepath.SkipDir
			}
			if options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})

	return matchedFiles, err
}

// SplitPattern splits a Go-style "dir/..." pattern into its directory and
// whether it is recursive
func SplitPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}
	if strings.HasSuffix(pattern, "/...") {
		dir := strings.TrimSuffix(pattern, "/...")
		if dir == "" {
			dir = "."
		}
		return dir, true
	}
	return pattern, false
}
