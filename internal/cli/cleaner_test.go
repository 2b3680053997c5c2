package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autobind/internal/utils"
)

func generatedSource(pkg string) string {
	return utils.GeneratedHeader + "\n\npackage " + pkg + "\n"
}

func TestCleaner_CleanGeneratedFiles(t *testing.T) {
	root := t.TempDir()
	generated := filepath.Join(root, "internal", "ui", "login_view_autobind.go")
	manual := filepath.Join(root, "internal", "ui", "login_view.go")
	nested := filepath.Join(root, "pkg", "menus", "main_menu_autobind.go")
	writeFile(t, generated, generatedSource("ui"))
	writeFile(t, manual, "package ui\n")
	writeFile(t, nested, generatedSource("menus"))

	removed, err := NewCleaner().CleanGeneratedFiles(root, []string{"./...", "missing/..."})
	require.NoError(t, err)

	assert.Equal(t, []string{generated, nested}, removed)
	assert.NoFileExists(t, generated)
	assert.NoFileExists(t, nested)
	assert.FileExists(t, manual)
}

func TestCleaner_ExplicitFiles(t *testing.T) {
	root := t.TempDir()
	generated := filepath.Join(root, "ui", "hud_autobind.go")
	manual := filepath.Join(root, "ui", "hud.go")
	writeFile(t, generated, generatedSource("ui"))
	writeFile(t, manual, "package ui\n")

	removed, err := NewCleaner().CleanGeneratedFiles(root, []string{"ui/hud.go", "ui/hud_autobind.go"})
	require.NoError(t, err)

	assert.Equal(t, []string{generated}, removed)
	assert.FileExists(t, manual)
}

func TestCleaner_NothingToClean(t *testing.T) {
	removed, err := NewCleaner().CleanGeneratedFiles(t.TempDir(), []string{"./..."})
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestCleaner_KeepsHandWrittenFilesWithGeneratedSuffix(t *testing.T) {
	root := t.TempDir()
	generated := filepath.Join(root, "ui", "settings_autobind.go")
	handWritten := filepath.Join(root, "ui", "notes_autobind.go")
	empty := filepath.Join(root, "ui", "empty_autobind.go")
	writeFile(t, generated, generatedSource("ui"))
	writeFile(t, handWritten, "package ui\n\n// user edits\n")
	writeFile(t, empty, "")

	removed, err := NewCleaner().CleanGeneratedFiles(root, []string{"./..."})
	require.NoError(t, err)

	assert.Equal(t, []string{generated}, removed)
	assert.FileExists(t, handWritten)
	assert.FileExists(t, empty)
}
