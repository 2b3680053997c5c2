package cli

import (
	"strings"

	"github.com/toyz/autobind/internal/utils"
	"github.com/toyz/autobind/internal/utils/fileops"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	scanner *DirectoryScanner
	fileOps *fileops.FileOps
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		scanner: NewDirectoryScanner(),
		fileOps: fileops.NewFileOps(),
	}
}

// CleanGeneratedFiles removes every *_autobind.go file matched by patterns
// below root that starts with the generated-code header, and returns the
// removed paths. Hand-written files are never touched, whatever their name.
// Missing directories are skipped.
func (c *Cleaner) CleanGeneratedFiles(root string, patterns []string) ([]string, error) {
	var existing []string
	for _, pattern := range patterns {
		dir, _ := utils.SplitPattern(pattern)
		if !c.fileOps.Exists(resolveAgainst(root, dir)) {
			continue
		}
		existing = append(existing, pattern)
	}

	files, err := c.scanner.ScanFiles(root, existing, utils.GeneratedFileFilter())
	if err != nil {
		return nil, err
	}

	var removedFiles []string
	for _, file := range files {
		if !strings.HasSuffix(file, utils.GeneratedFileSuffix) {
			continue
		}
		generated, err := c.fileOps.StartsWith(file, []byte(utils.GeneratedHeader))
		if err != nil {
			return removedFiles, err
		}
		if !generated {
			continue
		}
		if err := c.fileOps.RemoveFile(file); err != nil {
			return removedFiles, err
		}
		removedFiles = append(removedFiles, file)
	}
	return removedFiles, nil
}
