package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/autobind/pkg/autobind"
)

func TestPackageName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"github.com/acme/ui/widgets", "widgets"},
		{"gopkg.in/yaml.v3", "yaml"},
		{"github.com/acme/go-widgets/v2", "widgets"},
		{"github.com/acme/ui-kit", "uikit"},
		{"example.com/Mixed", "mixed"},
		{"example.com/123", "pkg"},
		{"example.com/type", "pkg"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, PackageName(tt.path))
		})
	}
}

func TestImportManager_RuntimeAlwaysImported(t *testing.T) {
	im := NewImportManager("github.com/acme/game/internal/ui")

	assert.Equal(t, []Import{{Path: RuntimeImport}}, im.Imports())
}

func TestImportManager_Qualify(t *testing.T) {
	im := NewImportManager("github.com/acme/game/internal/ui")

	assert.Equal(t, "widgets.Button", im.Qualify(autobind.MustTypeRef("github.com/acme/ui/widgets.Button")))
	assert.Equal(t, "widgets.Text", im.Qualify(autobind.MustTypeRef("github.com/acme/ui/widgets.Text")))
	assert.Equal(t, "Panel", im.Qualify(autobind.MustTypeRef("github.com/acme/game/internal/ui.Panel")))

	assert.Equal(t, []Import{
		{Path: "github.com/acme/ui/widgets"},
		{Path: RuntimeImport},
	}, im.Imports())
}

func TestImportManager_AliasesClashingNames(t *testing.T) {
	im := NewImportManager("github.com/acme/game/internal/ui")

	first := im.Qualify(autobind.MustTypeRef("github.com/acme/ui/widgets.Button"))
	second := im.Qualify(autobind.MustTypeRef("github.com/other/widgets.Button"))
	runtime := im.Qualify(autobind.MustTypeRef("github.com/other/autobind.Thing"))

	assert.Equal(t, "widgets.Button", first)
	assert.Equal(t, "widgets2.Button", second)
	assert.Equal(t, "autobind2.Thing", runtime)

	imports := im.Imports()
	assert.Contains(t, imports, Import{Alias: "widgets2", Path: "github.com/other/widgets"})
	assert.Contains(t, imports, Import{Alias: "autobind2", Path: "github.com/other/autobind"})
	assert.Contains(t, imports, Import{Path: RuntimeImport})
}

func TestImportManager_BlankImports(t *testing.T) {
	im := NewImportManager("github.com/acme/game/internal/ui")

	im.AddBlankImport("github.com/acme/ui/themes")
	im.AddBlankImport("github.com/acme/game/internal/ui")
	im.AddBlankImport(RuntimeImport)

	assert.Equal(t, []Import{
		{Path: "github.com/acme/ui/themes", Blank: true},
		{Path: RuntimeImport},
	}, im.Imports())

	// a later named import wins over the blank one
	im.AddImport("github.com/acme/ui/themes")
	assert.Equal(t, []Import{
		{Path: "github.com/acme/ui/themes"},
		{Path: RuntimeImport},
	}, im.Imports())
}

func TestImport_String(t *testing.T) {
	assert.Equal(t, `"a/b"`, Import{Path: "a/b"}.String())
	assert.Equal(t, `c "a/b"`, Import{Alias: "c", Path: "a/b"}.String())
	assert.Equal(t, `_ "a/b"`, Import{Path: "a/b", Blank: true}.String())
}

func TestImportManager_Reserve(t *testing.T) {
	im := NewImportManager("github.com/acme/game/internal/ui")
	im.Reserve("widgets")

	assert.Equal(t, "widgets2.Button", im.Qualify(autobind.MustTypeRef("github.com/acme/ui/widgets.Button")))
	assert.Equal(t, []Import{
		{Alias: "widgets2", Path: "github.com/acme/ui/widgets"},
		{Path: RuntimeImport},
	}, im.Imports())
}
