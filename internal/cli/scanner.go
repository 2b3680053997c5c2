package cli

import (
	"os"
	"path/filepath"

	"github.com/toyz/autobind/internal/errors"
	"github.com/toyz/autobind/internal/utils"
)

// DirectoryScanner resolves file and directory patterns into files
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// ScanScenes returns the scene files named by patterns, relative patterns
// being resolved against root. Supports Go-style patterns like "./..." for
// recursive scanning; files named explicitly are always included.
func (s *DirectoryScanner) ScanScenes(root string, patterns []string) ([]string, error) {
	return s.ScanFiles(root, patterns, utils.SceneFileFilter())
}

// ScanFiles is ScanScenes with a custom filter
func (s *DirectoryScanner) ScanFiles(root string, patterns []string, filter utils.FileFilter) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		dir, recursive := utils.SplitPattern(pattern)
		dir = resolveAgainst(root, dir)

		info, err := os.Stat(dir)
		if err != nil {
			return nil, errors.WrapFileSystemError("scan", dir, err)
		}
		if !info.IsDir() {
			add(dir)
			continue
		}

		matched, err := s.fileProcessor.WalkFiles(dir, utils.FileWalkOptions{
			FileFilter:      filter,
			DirectoryFilter: utils.DefaultDirectoryFilter(),
			Recursive:       recursive,
		})
		if err != nil {
			return nil, errors.WrapFileSystemError("scan", dir, err)
		}
		for _, path := range matched {
			add(path)
		}
	}

	return files, nil
}

func resolveAgainst(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
