package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autobind/pkg/autobind/scene"
)

func loadRefs(t *testing.T) []OwnerRef {
	t.Helper()
	login, err := scene.Load("scenes/login.scene", []byte(loginScene))
	require.NoError(t, err)
	menu, err := scene.Load("scenes/menus/main.scene", []byte(menuScene))
	require.NoError(t, err)

	var refs []OwnerRef
	for _, doc := range []*scene.Document{login, menu} {
		for _, owner := range doc.Owners() {
			refs = append(refs, OwnerRef{Document: doc, Owner: owner, Path: doc.OwnerPath(owner)})
		}
	}
	return refs
}

func matchedClasses(f *OwnerFilter, refs []OwnerRef) []string {
	var classes []string
	for _, ref := range refs {
		if f.Match(ref) {
			classes = append(classes, ref.Owner.ClassName())
		}
	}
	return classes
}

func TestOwnerFilter_Match(t *testing.T) {
	refs := loadRefs(t)

	tests := []struct {
		name     string
		patterns []string
		expected []string
	}{
		{name: "no patterns", patterns: nil, expected: []string{"LoginView", "Footer", "MainMenu"}},
		{name: "node path", patterns: []string{"Root"}, expected: []string{"LoginView"}},
		{name: "path glob", patterns: []string{"M*"}, expected: []string{"MainMenu"}},
		{name: "class glob", patterns: []string{"class=*View"}, expected: []string{"LoginView"}},
		{name: "scene glob", patterns: []string{"scene=scenes/**"}, expected: []string{"LoginView", "Footer", "MainMenu"}},
		{name: "scene single segment", patterns: []string{"scene=scenes/*"}, expected: []string{"LoginView", "Footer"}},
		{name: "any of several", patterns: []string{"Footer", "class=MainMenu"}, expected: []string{"Footer", "MainMenu"}},
		{name: "exclude only", patterns: []string{"!class=Footer"}, expected: []string{"LoginView", "MainMenu"}},
		{name: "exclude wins", patterns: []string{"scene=scenes/*", "!Footer"}, expected: []string{"LoginView"}},
		{name: "blank patterns ignored", patterns: []string{"  ", ""}, expected: []string{"LoginView", "Footer", "MainMenu"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewOwnerFilter(tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, matchedClasses(f, refs))
		})
	}
}

func TestOwnerFilter_Errors(t *testing.T) {
	_, err := NewOwnerFilter([]string{"color=red"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown attribute 'color'")

	_, err = NewOwnerFilter([]string{"Root/[unclosed"})
	require.Error(t, err)
}

func TestOwnerFilter_Empty(t *testing.T) {
	var nilFilter *OwnerFilter
	assert.True(t, nilFilter.Empty())
	assert.True(t, nilFilter.Match(OwnerRef{}))

	f, err := NewOwnerFilter([]string{"Root"})
	require.NoError(t, err)
	assert.False(t, f.Empty())
}
