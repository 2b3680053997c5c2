package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/require"
)

const testModule = "github.com/acme/game"

var loginScene = dedent.Dedent(`
	Root @owner(mode = AutoSuffix, class = "LoginView") {
	  Panel {
	    ConfirmButton [ "github.com/toyz/autobind/pkg/autobind/widgets.Button" ]
	    TitleLabel    [ "github.com/toyz/autobind/pkg/autobind/widgets.Text" ]
	  }
	}

	Footer @owner(mode = Manual)
`)

var menuScene = dedent.Dedent(`
	Menu @owner(mode = AutoSuffix, class = "MainMenu") {
	  PlayButton [ "github.com/toyz/autobind/pkg/autobind/widgets.Button" ]
	  Banner
	}
`)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// newTestProject lays out a module with scenes/login.scene and
// scenes/menus/main.scene and returns its root
func newTestProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module "+testModule+"\n\ngo 1.22\n")
	writeFile(t, filepath.Join(root, "scenes", "login.scene"), loginScene)
	writeFile(t, filepath.Join(root, "scenes", "menus", "main.scene"), menuScene)
	return root
}
