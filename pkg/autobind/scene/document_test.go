package scene

import (
	"path/filepath"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autobind/internal/errors"
	"github.com/toyz/autobind/pkg/autobind"
	"github.com/toyz/autobind/pkg/autobind/widgets"
)

var loginSource = dedent.Dedent(`
	// login screen
	Root @owner(mode = AutoSuffix, class = "LoginView") {
	  Panel {
	    ConfirmButton [ "github.com/toyz/autobind/pkg/autobind/widgets.Button" ]
	    TitleLabel    [ "github.com/toyz/autobind/pkg/autobind/widgets.Text" ]
	    "Close Button" [
	      "github.com/toyz/autobind/pkg/autobind/widgets.Button",
	      "github.com/toyz/autobind/pkg/autobind/widgets.Image"
	    ]
	  }
	}

	Footer @owner(mode = Manual)
`)

func TestLoad_BuildsTreesAndOwners(t *testing.T) {
	doc, err := Load("login.scene", []byte(loginSource))
	require.NoError(t, err)

	require.Len(t, doc.Roots, 2)
	root := doc.Roots[0]
	assert.Equal(t, "Root", root.Name())

	button := doc.Node("Root/Panel/ConfirmButton")
	require.NotNil(t, button)
	require.Len(t, button.Components(), 1)
	assert.Equal(t, widgets.ButtonType, button.Components()[0].ComponentType())
	assert.IsType(t, &autobind.BasicComponent{}, button.Components()[0])

	closeButton := doc.Node("Root/Panel/Close Button")
	require.NotNil(t, closeButton)
	assert.Len(t, closeButton.Components(), 2)

	owners := doc.Owners()
	require.Len(t, owners, 2)
	assert.Equal(t, "LoginView", owners[0].ClassName())
	assert.Equal(t, autobind.AutoSuffix, owners[0].Mode)
	assert.Equal(t, "Root", doc.OwnerPath(owners[0]))
	assert.Same(t, owners[0], autobind.OwnerOf(root))

	assert.Equal(t, autobind.Manual, owners[1].Mode)
	assert.Equal(t, "Footer", owners[1].ClassName())
	assert.Same(t, owners[1], doc.FindOwner("Footer"))
}

func TestLoad_WithWidgetFactory(t *testing.T) {
	doc, err := Load("login.scene", []byte(loginSource), WithComponentFactory(widgets.Factory))
	require.NoError(t, err)

	button := doc.Node("Root/Panel/ConfirmButton")
	require.NotNil(t, button)
	assert.IsType(t, &widgets.Button{}, button.Components()[0])
}

func TestLoad_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{name: "unclosed block", source: "Root {\n  Panel\n", message: "unexpected"},
		{name: "unknown marker", source: "Root @widget", message: "unknown marker"},
		{name: "unknown option", source: "Root @owner(color = red)", message: "unknown owner option"},
		{name: "bad mode", source: "Root @owner(mode = Sometimes)", message: "unknown bind mode"},
		{name: "bad component", source: `Root [ "Button" ]`, message: "no package path"},
		{name: "slash in name", source: `"a/b"`, message: "cannot contain"},
		{name: "duplicate sibling", source: "Root {\n  Item\n  Item\n}", message: "duplicate node name 'Item' under Root"},
		{name: "duplicate root", source: "Hud\nHud", message: "duplicate node name 'Hud' under the document root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("broken.scene", []byte(tt.source))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.SyntaxErrorCode))
			assert.Contains(t, err.Error(), tt.message)
			assert.Contains(t, err.Error(), "broken.scene")
		})
	}
}

func TestLoad_SameNameUnderDifferentParents(t *testing.T) {
	doc, err := Load("menus.scene", []byte("Left @owner { Item }\nRight @owner { Item }"))
	require.NoError(t, err)
	require.Len(t, doc.Owners(), 2)
	assert.NotEqual(t, OwnerID(doc.Name, doc.OwnerPath(doc.Owners()[0])), OwnerID(doc.Name, doc.OwnerPath(doc.Owners()[1])))
	assert.NotNil(t, doc.Node("Left/Item"))
	assert.NotNil(t, doc.Node("Right/Item"))
}

func TestFormat_RoundTrip(t *testing.T) {
	doc, err := Load("login.scene", []byte(loginSource))
	require.NoError(t, err)

	formatted := Format(doc)
	reloaded, err := Load("login.scene", []byte(formatted))
	require.NoError(t, err)

	assert.Equal(t, formatted, Format(reloaded))
	assert.Contains(t, formatted, `Root @owner(mode = AutoSuffix, class = "LoginView") {`)
	assert.Contains(t, formatted, `"Close Button" [`)
	assert.Equal(t, treeShape(doc), treeShape(reloaded))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "login.scene")
	writeFile(t, path, loginSource)

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.scene"))
	assert.True(t, errors.HasCode(err, errors.FileSystemErrorCode))
}

func treeShape(doc *Document) []string {
	var shape []string
	for _, root := range doc.Roots {
		autobind.Walk(root, func(node autobind.Node, relPath string) {
			shape = append(shape, root.Name()+"/"+relPath)
		})
	}
	return shape
}
