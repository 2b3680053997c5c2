package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autobind/internal/errors"
)

func TestDirectoryScanner_ScanScenes(t *testing.T) {
	root := newTestProject(t)
	writeFile(t, filepath.Join(root, "scenes", "notes.txt"), "not a scene")
	writeFile(t, filepath.Join(root, "vendor", "lib", "skip.scene"), "Skipped")
	writeFile(t, filepath.Join(root, ".cache", "hidden.scene"), "Hidden")

	login := filepath.Join(root, "scenes", "login.scene")
	menu := filepath.Join(root, "scenes", "menus", "main.scene")
	scanner := NewDirectoryScanner()

	tests := []struct {
		name     string
		patterns []string
		expected []string
	}{
		{name: "recursive", patterns: []string{"./..."}, expected: []string{login, menu}},
		{name: "single directory", patterns: []string{"scenes"}, expected: []string{login}},
		{name: "nested recursive", patterns: []string{"scenes/menus/..."}, expected: []string{menu}},
		{name: "explicit file", patterns: []string{"scenes/menus/main.scene"}, expected: []string{menu}},
		{name: "duplicates removed", patterns: []string{"scenes/...", "scenes/login.scene"}, expected: []string{login, menu}},
		{name: "absolute pattern", patterns: []string{filepath.Join(root, "scenes")}, expected: []string{login}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := scanner.ScanScenes(root, tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, files)
		})
	}
}

func TestDirectoryScanner_MissingPath(t *testing.T) {
	root := t.TempDir()

	_, err := NewDirectoryScanner().ScanScenes(root, []string{"nowhere/..."})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.FileSystemErrorCode))
}
