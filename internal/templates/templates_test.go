package templates

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autobind/pkg/autobind"
)

func loginViewData() FileData {
	im := NewImportManager("github.com/acme/game/internal/ui")
	button := autobind.MustTypeRef("github.com/acme/ui/widgets.Button")
	text := autobind.MustTypeRef("github.com/acme/ui/widgets.Text")
	base := autobind.MustTypeRef("github.com/acme/ui/screens.Screen")
	iface := autobind.MustTypeRef("github.com/acme/ui/screens.Screener")

	data := FileData{
		Package:   "ui",
		ClassName: "LoginView",
		NodeName:  "Root",
		Receiver:  "v",
		TypeVar:   "autobindTypeLoginView",
		TypeRef:   autobind.TypeRef{Path: "github.com/acme/game/internal/ui", Name: "LoginView"},
		BaseType:  im.Qualify(base),
		Fields: []FieldData{
			{Name: "confirm", Type: im.Qualify(button), Ref: button},
			{Name: "title", Type: im.Qualify(text), Ref: text},
		},
		Interfaces:    []string{im.Qualify(iface)},
		GeneratedFile: "login_view_autobind.go",
	}
	im.AddBlankImport("github.com/acme/ui/themes")
	data.Imports = im.Imports()
	return data
}

func TestRenderGenerated(t *testing.T) {
	src, err := RenderGenerated(loginViewData())
	require.NoError(t, err)

	assert.Contains(t, src, "// Code generated by autobind. DO NOT EDIT.")
	assert.Contains(t, src, "package ui")
	assert.Contains(t, src, `_ "github.com/acme/ui/themes"`)
	assert.Contains(t, src, "\tscreens.Screen\n")
	assert.Contains(t, src, "\tconfirm *widgets.Button\n")
	assert.Contains(t, src, "var _ screens.Screener = (*LoginView)(nil)")
	assert.Contains(t, src, `autobind.RegisterType(autobindTypeLoginView, func() autobind.Bindable { return &LoginView{} })`)
	assert.Contains(t, src, `autobind.Field("title", autobind.TypeRef{Path: "github.com/acme/ui/widgets", Name: "Text"}, &v.title),`)

	file, err := parser.ParseFile(token.NewFileSet(), "login_view_autobind.go", src, parser.ParseComments)
	require.NoError(t, err, src)
	assert.Equal(t, "ui", file.Name.Name)
	assert.Len(t, file.Imports, 4)
}

func TestRenderGenerated_MinimalOwner(t *testing.T) {
	data := loginViewData()
	data.BaseType = ""
	data.Interfaces = nil
	data.Imports = []Import{{Path: "github.com/acme/ui/widgets"}, {Path: RuntimeImport}}

	src, err := RenderGenerated(data)
	require.NoError(t, err)
	assert.NotContains(t, src, "var _ ")

	_, err = parser.ParseFile(token.NewFileSet(), "", src, 0)
	require.NoError(t, err, src)
}

func TestRenderGenerated_Deterministic(t *testing.T) {
	first, err := RenderGenerated(loginViewData())
	require.NoError(t, err)
	second, err := RenderGenerated(loginViewData())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderManual(t *testing.T) {
	src, err := RenderManual(loginViewData())
	require.NoError(t, err)

	assert.Equal(t, "package ui\n", src[:len("package ui\n")])
	assert.Contains(t, src, "login_view_autobind.go")
	assert.Contains(t, src, "func (v *LoginView) OnBound() {")

	_, err = parser.ParseFile(token.NewFileSet(), "login_view.go", src, parser.ParseComments)
	require.NoError(t, err, src)
}

func TestTemplateRegistry(t *testing.T) {
	registry := NewTemplateRegistry()

	for _, name := range []string{GeneratedFileTemplate, ManualFileTemplate, FieldTableTemplate, RegistrationTemplate} {
		_, ok := registry.Get(name)
		assert.True(t, ok, name)
	}
	assert.Len(t, registry.Names(), 4)

	_, ok := registry.Get("missing")
	assert.False(t, ok)
	assert.Panics(t, func() { registry.MustGet("missing") })
}

func TestExecuteTemplate_Unknown(t *testing.T) {
	_, err := ExecuteTemplate("missing", nil)
	assert.Error(t, err)
}
